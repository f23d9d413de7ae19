package agent

import (
	"strings"
	"time"

	ierr "github.com/ekko-ai/agentgate/internal/errors"
	"github.com/ekko-ai/agentgate/internal/types"
)

// Agent is the immutable definition of one remote agent as configured in
// the gateway. Mutable health state lives in Health.
type Agent struct {
	Type types.AgentType `json:"type"`
	Name string          `json:"name"`
	// BaseURL is the root of the agent service, e.g. http://contenu:5003
	BaseURL string `json:"base_url"`
	// HealthEndpoint is the path pinged by the health monitor
	HealthEndpoint string `json:"health_endpoint"`
	// Endpoints maps operation names to paths, e.g. blog -> /api/content/blog
	Endpoints map[string]string `json:"endpoints"`
	// Timeout bounds a single dispatch attempt against this agent
	Timeout time.Duration `json:"timeout"`
	// MaxAttempts is the total attempt budget for a dispatch including the
	// first call
	MaxAttempts  int                `json:"max_attempts"`
	Capabilities []types.Capability `json:"capabilities"`
	Status       types.Status       `json:"status"`
}

func (a *Agent) Validate() error {
	if err := a.Type.Validate(); err != nil {
		return err
	}
	if a.BaseURL == "" {
		return ierr.NewError("agent base url is required").
			WithHint("Agent base URL must not be empty").
			WithReportableDetails(map[string]any{
				"agent_type": a.Type,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// HasCapability returns true if the agent advertises the given capability
func (a *Agent) HasCapability(capability types.Capability) bool {
	for _, c := range a.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

// URL joins a path onto the agent's base URL
func (a *Agent) URL(path string) string {
	return strings.TrimSuffix(a.BaseURL, "/") + path
}

// HealthURL is the absolute URL pinged by the health monitor
func (a *Agent) HealthURL() string {
	endpoint := a.HealthEndpoint
	if endpoint == "" {
		endpoint = "/health"
	}
	return a.URL(endpoint)
}

// ResolvePath turns a dispatch endpoint into a path on the agent. A value
// starting with "/" is used as a raw path; anything else must name an entry
// in the agent's endpoint map.
func (a *Agent) ResolvePath(endpoint string) (string, error) {
	if endpoint == "" {
		return "", ierr.NewError("endpoint is required").
			WithHint("Endpoint must not be empty").
			WithReportableDetails(map[string]any{
				"agent_type": a.Type,
			}).
			Mark(ierr.ErrValidation)
	}

	if strings.HasPrefix(endpoint, "/") {
		return endpoint, nil
	}

	mapped, ok := a.Endpoints[endpoint]
	if !ok {
		return "", ierr.NewError("unknown endpoint for agent").
			WithHintf("Agent %s does not define operation %s", a.Type, endpoint).
			WithReportableDetails(map[string]any{
				"agent_type": a.Type,
				"endpoint":   endpoint,
			}).
			Mark(ierr.ErrValidation)
	}
	return mapped, nil
}

// ResolveEndpoint turns a dispatch endpoint into an absolute URL
func (a *Agent) ResolveEndpoint(endpoint string) (string, error) {
	path, err := a.ResolvePath(endpoint)
	if err != nil {
		return "", err
	}
	return a.URL(path), nil
}

// Health is the observed state of one agent. Counters are cumulative for
// the lifetime of the process and are never reset by sweeps.
type Health struct {
	Status        types.HealthStatus `json:"status"`
	LastCheckedAt time.Time          `json:"last_checked_at"`
	// ResponseTimeMs is the duration of the last successful ping
	ResponseTimeMs int64  `json:"response_time_ms"`
	SuccessCount   int64  `json:"success_count"`
	ErrorCount     int64  `json:"error_count"`
	LastError      string `json:"last_error,omitempty"`
	// Service and Version are parsed from the agent health payload when the
	// agent reports them
	Service string `json:"service,omitempty"`
	Version string `json:"version,omitempty"`
}

// ErrorRate is errors / (errors + successes), 0 when no traffic has been
// recorded yet
func (h *Health) ErrorRate() float64 {
	total := h.ErrorCount + h.SuccessCount
	if total == 0 {
		return 0
	}
	return float64(h.ErrorCount) / float64(total)
}

// HealthPayload is the body returned by agent health endpoints,
// e.g. {"status":"OK","service":"Ekko Analysis AI Agent","version":"1.0.0"}
type HealthPayload struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}
