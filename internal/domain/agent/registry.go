package agent

import (
	"context"
	"time"

	"github.com/ekko-ai/agentgate/internal/types"
)

// CheckResult is the outcome of a single health ping
type CheckResult struct {
	Success        bool
	StatusCode     int
	ResponseTimeMs int64
	Error          string
	Service        string
	Version        string
	CheckedAt      time.Time
}

// TransitionFunc is invoked whenever a health check flips an agent between
// statuses. Callbacks run synchronously on the monitor goroutine and must
// not block.
type TransitionFunc func(ctx context.Context, a *Agent, from, to types.HealthStatus, health *Health)

// Registry holds the configured agents and their observed health
type Registry interface {
	// Get returns the agent definition for the given type
	Get(ctx context.Context, agentType types.AgentType) (*Agent, error)

	// List returns all published agents in sorted type order
	List(ctx context.Context) []*Agent

	// GetHealth returns a copy of the current health state for the agent
	GetHealth(ctx context.Context, agentType types.AgentType) (*Health, error)

	// RecordHealthCheck applies a ping outcome: it sets the status, bumps
	// the success or error counter and fires transition callbacks
	RecordHealthCheck(ctx context.Context, agentType types.AgentType, result CheckResult) (*Health, error)

	// RecordSuccess bumps the success counter after a dispatch attempt
	// succeeded. It does not change the health status, only pings do.
	RecordSuccess(ctx context.Context, agentType types.AgentType, responseTimeMs int64)

	// RecordFailure bumps the error counter after a dispatch attempt failed
	RecordFailure(ctx context.Context, agentType types.AgentType, errMsg string)

	// FindForCapability returns the healthy agent with the lowest error rate
	// among those advertising the capability
	FindForCapability(ctx context.Context, capability types.Capability) (*Agent, error)

	// OnTransition registers a callback fired on health status transitions
	OnTransition(fn TransitionFunc)
}
