package dto

import (
	"time"

	"github.com/ekko-ai/agentgate/internal/domain/agent"
	"github.com/ekko-ai/agentgate/internal/types"
)

// AgentHealthResponse is the observed health of one agent
type AgentHealthResponse struct {
	Status         types.HealthStatus `json:"status" example:"healthy"`
	LastCheckedAt  time.Time          `json:"last_checked_at" example:"2026-01-20T15:04:05Z"`
	ResponseTimeMs int64              `json:"response_time_ms" example:"12"`
	SuccessCount   int64              `json:"success_count" example:"240"`
	ErrorCount     int64              `json:"error_count" example:"3"`
	ErrorRate      float64            `json:"error_rate" example:"0.0123"`
	LastError      string             `json:"last_error,omitempty"`
	Service        string             `json:"service,omitempty" example:"agent-contenu"`
	Version        string             `json:"version,omitempty" example:"1.4.2"`
}

func NewAgentHealthResponse(h *agent.Health) *AgentHealthResponse {
	if h == nil {
		return nil
	}
	return &AgentHealthResponse{
		Status:         h.Status,
		LastCheckedAt:  h.LastCheckedAt,
		ResponseTimeMs: h.ResponseTimeMs,
		SuccessCount:   h.SuccessCount,
		ErrorCount:     h.ErrorCount,
		ErrorRate:      h.ErrorRate(),
		LastError:      h.LastError,
		Service:        h.Service,
		Version:        h.Version,
	}
}

// AgentResponse is one agent definition together with its current health
type AgentResponse struct {
	Type         types.AgentType      `json:"type" example:"contenu"`
	Name         string               `json:"name" example:"Agent Contenu"`
	BaseURL      string               `json:"base_url" example:"http://agent-contenu:5003"`
	Endpoints    map[string]string    `json:"endpoints"`
	Capabilities []types.Capability   `json:"capabilities"`
	Timeout      string               `json:"timeout" example:"30s"`
	MaxAttempts  int                  `json:"max_attempts" example:"3"`
	Health       *AgentHealthResponse `json:"health,omitempty"`
}

func NewAgentResponse(a *agent.Agent, h *agent.Health) *AgentResponse {
	resp := &AgentResponse{
		Type:         a.Type,
		Name:         a.Name,
		BaseURL:      a.BaseURL,
		Endpoints:    a.Endpoints,
		Capabilities: a.Capabilities,
		Timeout:      a.Timeout.String(),
		MaxAttempts:  a.MaxAttempts,
	}
	if h != nil {
		resp.Health = NewAgentHealthResponse(h)
	}
	return resp
}

type ListAgentsResponse struct {
	Agents []*AgentResponse `json:"agents"`
	Total  int              `json:"total" example:"4"`
}

// RoutingCandidateResponse is one agent considered for a capability route
type RoutingCandidateResponse struct {
	Type      types.AgentType    `json:"type" example:"publicite"`
	Status    types.HealthStatus `json:"status" example:"healthy"`
	ErrorRate float64            `json:"error_rate" example:"0.05"`
	Chosen    bool               `json:"chosen"`
}

// CapabilityRoutingResponse reports the routing decision for a capability
type CapabilityRoutingResponse struct {
	Capability types.Capability           `json:"capability" example:"seo"`
	Agent      *AgentResponse             `json:"agent"`
	Candidates []RoutingCandidateResponse `json:"candidates"`
}
