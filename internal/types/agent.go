package types

import (
	ierr "github.com/ekko-ai/agentgate/internal/errors"
)

// AgentType identifies a configured remote agent, e.g. "contenu" or "analyse".
// The set of valid values is defined by the gateway configuration, not code.
type AgentType string

func (t AgentType) String() string {
	return string(t)
}

func (t AgentType) Validate() error {
	if t == "" {
		return ierr.NewError("agent type is required").
			WithHint("Agent type must not be empty").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Capability is a routable skill tag advertised by an agent,
// e.g. "blog-writing" or "checkout-analysis"
type Capability string

func (c Capability) String() string {
	return string(c)
}

func (c Capability) Validate() error {
	if c == "" {
		return ierr.NewError("capability is required").
			WithHint("Capability must not be empty").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// HealthStatus is the observed availability of an agent
type HealthStatus string

const (
	// HealthStatusUnknown is the initial status before the first health check
	HealthStatusUnknown HealthStatus = "unknown"
	HealthStatusHealthy HealthStatus = "healthy"
	// HealthStatusUnhealthy marks an agent that failed its last health check
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

func (s HealthStatus) String() string {
	return string(s)
}

// IsAvailable returns true only for agents that passed their last health check
func (s HealthStatus) IsAvailable() bool {
	return s == HealthStatusHealthy
}
