package registry

import (
	"context"
	"sort"
	"sync"

	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/domain/agent"
	ierr "github.com/ekko-ai/agentgate/internal/errors"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/types"
)

// InMemoryRegistry is the canonical agent.Registry implementation. The
// agent set is fixed at construction from config, only health state
// changes at runtime.
type InMemoryRegistry struct {
	mu          sync.RWMutex
	agents      map[types.AgentType]*agent.Agent
	health      map[types.AgentType]*agent.Health
	order       []types.AgentType
	transitions []agent.TransitionFunc
	logger      *logger.Logger
}

// NewRegistry builds the registry from the configured agent fleet
func NewRegistry(cfg *config.Configuration, logger *logger.Logger) (agent.Registry, error) {
	r := &InMemoryRegistry{
		agents: make(map[types.AgentType]*agent.Agent),
		health: make(map[types.AgentType]*agent.Health),
		logger: logger,
	}

	for name, agentCfg := range cfg.Agents {
		a := fromConfig(name, agentCfg)
		if err := a.Validate(); err != nil {
			return nil, err
		}
		r.agents[a.Type] = a
		r.health[a.Type] = &agent.Health{Status: types.HealthStatusUnknown}
		r.order = append(r.order, a.Type)
	}

	// Sorted iteration keeps capability selection deterministic under ties
	sort.Slice(r.order, func(i, j int) bool { return r.order[i] < r.order[j] })

	logger.Infow("agent registry initialized", "agents", len(r.agents))
	return r, nil
}

func fromConfig(name string, cfg config.AgentConfig) *agent.Agent {
	status := types.StatusPublished
	if cfg.Disabled {
		status = types.StatusArchived
	}

	capabilities := make([]types.Capability, 0, len(cfg.Capabilities))
	for _, c := range cfg.Capabilities {
		capabilities = append(capabilities, types.Capability(c))
	}

	return &agent.Agent{
		Type:           types.AgentType(name),
		Name:           cfg.Name,
		BaseURL:        cfg.BaseURL,
		HealthEndpoint: cfg.HealthEndpoint,
		Endpoints:      cfg.Endpoints,
		Timeout:        cfg.Timeout,
		MaxAttempts:    cfg.MaxAttempts,
		Capabilities:   capabilities,
		Status:         status,
	}
}

func (r *InMemoryRegistry) Get(ctx context.Context, agentType types.AgentType) (*agent.Agent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.agents[agentType]
	if !ok {
		return nil, ierr.NewError("unknown agent type").
			WithHintf("Agent %s is not configured", agentType).
			WithReportableDetails(map[string]any{
				"agent_type": agentType,
			}).
			Mark(ierr.ErrNotFound)
	}
	return a, nil
}

func (r *InMemoryRegistry) List(ctx context.Context) []*agent.Agent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	agents := make([]*agent.Agent, 0, len(r.order))
	for _, agentType := range r.order {
		a := r.agents[agentType]
		if a.Status != types.StatusPublished {
			continue
		}
		agents = append(agents, a)
	}
	return agents
}

func (r *InMemoryRegistry) GetHealth(ctx context.Context, agentType types.AgentType) (*agent.Health, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.health[agentType]
	if !ok {
		return nil, ierr.NewError("unknown agent type").
			WithHintf("Agent %s is not configured", agentType).
			WithReportableDetails(map[string]any{
				"agent_type": agentType,
			}).
			Mark(ierr.ErrNotFound)
	}

	copied := *h
	return &copied, nil
}

func (r *InMemoryRegistry) RecordHealthCheck(ctx context.Context, agentType types.AgentType, result agent.CheckResult) (*agent.Health, error) {
	r.mu.Lock()

	h, ok := r.health[agentType]
	if !ok {
		r.mu.Unlock()
		return nil, ierr.NewError("unknown agent type").
			WithHintf("Agent %s is not configured", agentType).
			Mark(ierr.ErrNotFound)
	}

	a := r.agents[agentType]
	from := h.Status

	if result.Success {
		h.Status = types.HealthStatusHealthy
		h.SuccessCount++
		h.ResponseTimeMs = result.ResponseTimeMs
		h.LastError = ""
		if result.Service != "" {
			h.Service = result.Service
		}
		if result.Version != "" {
			h.Version = result.Version
		}
	} else {
		h.Status = types.HealthStatusUnhealthy
		h.ErrorCount++
		h.LastError = result.Error
	}
	h.LastCheckedAt = result.CheckedAt

	to := h.Status
	copied := *h
	callbacks := r.transitions
	r.mu.Unlock()

	if from != to {
		r.logger.Infow("agent health transition",
			"agent_type", agentType,
			"from", from,
			"to", to,
			"error", copied.LastError,
		)
		for _, fn := range callbacks {
			fn(ctx, a, from, to, &copied)
		}
	}

	return &copied, nil
}

func (r *InMemoryRegistry) RecordSuccess(ctx context.Context, agentType types.AgentType, responseTimeMs int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.health[agentType]
	if !ok {
		return
	}
	h.SuccessCount++
	h.ResponseTimeMs = responseTimeMs
}

func (r *InMemoryRegistry) RecordFailure(ctx context.Context, agentType types.AgentType, errMsg string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.health[agentType]
	if !ok {
		return
	}
	h.ErrorCount++
	h.LastError = errMsg
}

// FindForCapability picks the healthy agent with the lowest historical
// error rate among those advertising the capability. Iteration is in
// sorted type order so ties resolve deterministically.
func (r *InMemoryRegistry) FindForCapability(ctx context.Context, capability types.Capability) (*agent.Agent, error) {
	if err := capability.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var best *agent.Agent
	var bestRate float64

	for _, agentType := range r.order {
		a := r.agents[agentType]
		if a.Status != types.StatusPublished || !a.HasCapability(capability) {
			continue
		}
		h := r.health[agentType]
		if !h.Status.IsAvailable() {
			continue
		}

		rate := h.ErrorRate()
		if best == nil || rate < bestRate {
			best = a
			bestRate = rate
		}
	}

	if best == nil {
		return nil, ierr.NewError("no healthy agent for capability").
			WithHintf("No healthy agent advertises capability %s", capability).
			WithReportableDetails(map[string]any{
				"capability": capability,
			}).
			Mark(ierr.ErrAgentUnavailable)
	}

	return best, nil
}

func (r *InMemoryRegistry) OnTransition(fn agent.TransitionFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transitions = append(r.transitions, fn)
}
