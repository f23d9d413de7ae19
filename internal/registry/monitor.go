package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/domain/agent"
	"github.com/ekko-ai/agentgate/internal/httpclient"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/metrics"
	"github.com/ekko-ai/agentgate/internal/types"
)

// Monitor pings every registered agent on a fixed interval and feeds the
// outcomes into the registry. One goroutine per agent per sweep so a slow
// agent cannot delay the others.
type Monitor struct {
	registry agent.Registry
	client   httpclient.Client
	logger   *logger.Logger
	interval time.Duration
	timeout  time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

func NewMonitor(registry agent.Registry, client httpclient.Client, cfg *config.Configuration, logger *logger.Logger) *Monitor {
	m := &Monitor{
		registry: registry,
		client:   client,
		logger:   logger,
		interval: cfg.Health.Interval,
		timeout:  cfg.Health.Timeout,
	}

	registry.OnTransition(func(ctx context.Context, a *agent.Agent, from, to types.HealthStatus, health *agent.Health) {
		metrics.SetAgentHealth(a.Type, to)
	})

	return m
}

// Start runs one immediate sweep and then sweeps on every interval tick
// until Stop is called
func (m *Monitor) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.done = make(chan struct{})

	go m.run(runCtx)

	m.logger.Infow("agent health monitor started",
		"interval", m.interval,
		"timeout", m.timeout,
	)
	return nil
}

// Stop cancels the sweep loop and waits for the in-flight sweep to finish
func (m *Monitor) Stop(ctx context.Context) error {
	if m.cancel == nil {
		return nil
	}
	m.cancel()

	select {
	case <-m.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	m.logger.Info("agent health monitor stopped")
	return nil
}

func (m *Monitor) run(ctx context.Context) {
	defer close(m.done)

	m.CheckAll(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.CheckAll(ctx)
		}
	}
}

// CheckAll sweeps every registered agent concurrently. Failures only
// mutate registry state, a sweep never returns an error.
func (m *Monitor) CheckAll(ctx context.Context) {
	agents := m.registry.List(ctx)
	if len(agents) == 0 {
		return
	}

	var wg conc.WaitGroup
	for _, a := range agents {
		agentType := a.Type
		wg.Go(func() {
			if _, err := m.CheckAgent(ctx, agentType); err != nil {
				m.logger.Errorw("health check could not be recorded",
					"agent_type", agentType,
					"error", err,
				)
			}
		})
	}
	wg.Wait()
}

// CheckAgent pings one agent's health endpoint and records the outcome.
// It returns the updated health state.
func (m *Monitor) CheckAgent(ctx context.Context, agentType types.AgentType) (*agent.Health, error) {
	a, err := m.registry.Get(ctx, agentType)
	if err != nil {
		return nil, err
	}

	result := m.ping(ctx, a)
	health, err := m.registry.RecordHealthCheck(ctx, agentType, result)
	if err != nil {
		return nil, err
	}

	if result.Success {
		m.logger.Debugw("agent health check passed",
			"agent_type", agentType,
			"response_time_ms", result.ResponseTimeMs,
		)
	} else {
		m.logger.Warnw("agent health check failed",
			"agent_type", agentType,
			"status", result.StatusCode,
			"error", result.Error,
		)
	}

	return health, nil
}

func (m *Monitor) ping(ctx context.Context, a *agent.Agent) agent.CheckResult {
	started := time.Now()

	resp, err := m.client.Send(ctx, &httpclient.Request{
		Method:  http.MethodGet,
		URL:     a.HealthURL(),
		Timeout: m.timeout,
	})

	result := agent.CheckResult{
		ResponseTimeMs: time.Since(started).Milliseconds(),
		CheckedAt:      time.Now().UTC(),
	}

	if err != nil {
		result.Error = err.Error()
		if httpErr, ok := httpclient.IsHTTPError(err); ok {
			result.StatusCode = httpErr.StatusCode
		}
		return result
	}

	result.Success = true
	result.StatusCode = resp.StatusCode

	// Agents report service name and version in the health body, a non
	// JSON body is still a passing check
	var payload agent.HealthPayload
	if jsonErr := json.Unmarshal(resp.Body, &payload); jsonErr == nil {
		result.Service = payload.Service
		result.Version = payload.Version
	}

	return result
}
