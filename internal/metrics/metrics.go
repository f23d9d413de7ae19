package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ekko-ai/agentgate/internal/types"
)

var (
	// HTTPRequestsTotal counts gateway API requests by method, path and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agentgate_http_requests_total",
			Help: "Total number of HTTP requests handled by the gateway",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes gateway API latency by method and path
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agentgate_http_request_duration_seconds",
			Help:    "Duration of HTTP requests handled by the gateway",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// DispatchTotal counts finished dispatches by agent and terminal status
	DispatchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agentgate_agent_dispatch_total",
			Help: "Total number of agent dispatches by terminal status",
		},
		[]string{"agent_type", "status"},
	)

	// DispatchAttempts observes how many HTTP calls a dispatch needed
	DispatchAttempts = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agentgate_agent_dispatch_attempts",
			Help:    "Number of HTTP attempts per dispatch",
			Buckets: []float64{1, 2, 3, 4, 5, 8, 10},
		},
		[]string{"agent_type"},
	)

	// AgentHealthy reports the last observed health status per agent
	AgentHealthy = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "agentgate_agent_healthy",
			Help: "Agent health as observed by the monitor, 1 healthy 0 unhealthy",
		},
		[]string{"agent_type"},
	)
)

// SetAgentHealth records the health gauge for an agent
func SetAgentHealth(agentType types.AgentType, status types.HealthStatus) {
	value := 0.0
	if status.IsAvailable() {
		value = 1.0
	}
	AgentHealthy.WithLabelValues(agentType.String()).Set(value)
}

// RecordDispatch records the outcome of a finished dispatch
func RecordDispatch(agentType types.AgentType, status types.DispatchStatus, attempts int) {
	DispatchTotal.WithLabelValues(agentType.String(), status.String()).Inc()
	DispatchAttempts.WithLabelValues(agentType.String()).Observe(float64(attempts))
}
