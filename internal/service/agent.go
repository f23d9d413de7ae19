package service

import (
	"context"

	"github.com/ekko-ai/agentgate/internal/api/dto"
	"github.com/ekko-ai/agentgate/internal/types"
)

const (
	// GatewayService is the service name reported on the health endpoint
	GatewayService = "agentgate"
	// GatewayVersion is the build version reported on the health endpoint
	GatewayVersion = "1.0.0"
)

// AgentService exposes the registry and its observed health
type AgentService interface {
	// GetAgent returns one agent definition together with its health
	GetAgent(ctx context.Context, agentType types.AgentType) (*dto.AgentResponse, error)

	// ListAgents returns all registered agents with their health
	ListAgents(ctx context.Context) (*dto.ListAgentsResponse, error)

	// CheckAgentHealth pings one agent immediately and returns the
	// recorded outcome, outside the regular monitor sweep
	CheckAgentHealth(ctx context.Context, agentType types.AgentType) (*dto.AgentHealthResponse, error)

	// ResolveCapability reports which agent a capability routed dispatch
	// would hit right now, along with every candidate considered
	ResolveCapability(ctx context.Context, capability types.Capability) (*dto.CapabilityRoutingResponse, error)

	// GatewayHealth summarizes the gateway and its agents for /health
	GatewayHealth(ctx context.Context) *dto.HealthResponse
}

type agentService struct {
	ServiceParams
}

func NewAgentService(params ServiceParams) AgentService {
	return &agentService{
		ServiceParams: params,
	}
}

func (s *agentService) GetAgent(ctx context.Context, agentType types.AgentType) (*dto.AgentResponse, error) {
	a, err := s.Registry.Get(ctx, agentType)
	if err != nil {
		return nil, err
	}

	health, err := s.Registry.GetHealth(ctx, agentType)
	if err != nil {
		return nil, err
	}

	return dto.NewAgentResponse(a, health), nil
}

func (s *agentService) ListAgents(ctx context.Context) (*dto.ListAgentsResponse, error) {
	agents := s.Registry.List(ctx)

	response := &dto.ListAgentsResponse{
		Agents: make([]*dto.AgentResponse, 0, len(agents)),
		Total:  len(agents),
	}

	for _, a := range agents {
		health, err := s.Registry.GetHealth(ctx, a.Type)
		if err != nil {
			return nil, err
		}
		response.Agents = append(response.Agents, dto.NewAgentResponse(a, health))
	}

	return response, nil
}

func (s *agentService) CheckAgentHealth(ctx context.Context, agentType types.AgentType) (*dto.AgentHealthResponse, error) {
	health, err := s.HealthChecker.CheckAgent(ctx, agentType)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("on demand health check",
		"agent_type", agentType,
		"status", health.Status,
		"response_time_ms", health.ResponseTimeMs,
	)

	return dto.NewAgentHealthResponse(health), nil
}

func (s *agentService) ResolveCapability(ctx context.Context, capability types.Capability) (*dto.CapabilityRoutingResponse, error) {
	if err := capability.Validate(); err != nil {
		return nil, err
	}

	chosen, err := s.Registry.FindForCapability(ctx, capability)
	if err != nil {
		return nil, err
	}

	chosenHealth, err := s.Registry.GetHealth(ctx, chosen.Type)
	if err != nil {
		return nil, err
	}

	response := &dto.CapabilityRoutingResponse{
		Capability: capability,
		Agent:      dto.NewAgentResponse(chosen, chosenHealth),
		Candidates: make([]dto.RoutingCandidateResponse, 0),
	}

	for _, a := range s.Registry.List(ctx) {
		if !a.HasCapability(capability) {
			continue
		}
		health, err := s.Registry.GetHealth(ctx, a.Type)
		if err != nil {
			return nil, err
		}
		response.Candidates = append(response.Candidates, dto.RoutingCandidateResponse{
			Type:      a.Type,
			Status:    health.Status,
			ErrorRate: health.ErrorRate(),
			Chosen:    a.Type == chosen.Type,
		})
	}

	return response, nil
}

func (s *agentService) GatewayHealth(ctx context.Context) *dto.HealthResponse {
	response := &dto.HealthResponse{
		Status:  "OK",
		Service: GatewayService,
		Version: GatewayVersion,
	}

	for _, a := range s.Registry.List(ctx) {
		response.Agents.Total++

		health, err := s.Registry.GetHealth(ctx, a.Type)
		if err != nil {
			continue
		}
		switch health.Status {
		case types.HealthStatusHealthy:
			response.Agents.Healthy++
		case types.HealthStatusUnhealthy:
			response.Agents.Unhealthy++
		default:
			response.Agents.Unknown++
		}
	}

	return response
}
