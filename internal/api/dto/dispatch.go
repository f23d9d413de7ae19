package dto

import (
	"encoding/json"
	"time"

	"github.com/ekko-ai/agentgate/internal/domain/dispatch"
	"github.com/ekko-ai/agentgate/internal/types"
	"github.com/ekko-ai/agentgate/internal/validator"
)

// DispatchRequest sends a payload to a named agent
type DispatchRequest struct {
	AgentType types.AgentType `json:"agent_type" validate:"required" binding:"required" example:"contenu"`
	// Endpoint is either a raw path starting with "/" or the name of an
	// operation from the agent's endpoint map
	Endpoint string          `json:"endpoint" validate:"required" binding:"required" example:"blog"`
	Payload  json.RawMessage `json:"payload" swaggertype:"object"`
	// TimeoutMs overrides the per attempt timeout for this call
	TimeoutMs int `json:"timeout_ms,omitempty" validate:"omitempty,gte=0" example:"5000"`
	// MaxAttempts overrides the attempt budget for this call
	MaxAttempts int               `json:"max_attempts,omitempty" validate:"omitempty,gte=0,lte=10" example:"3"`
	Headers     map[string]string `json:"headers,omitempty"`
}

func (r *DispatchRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.AgentType.Validate()
}

func (r *DispatchRequest) ToOptions() *types.DispatchOptions {
	return &types.DispatchOptions{
		Timeout:     time.Duration(r.TimeoutMs) * time.Millisecond,
		MaxAttempts: r.MaxAttempts,
		Headers:     r.Headers,
	}
}

// DispatchByCapabilityRequest routes a payload to whichever healthy agent
// advertises the capability
type DispatchByCapabilityRequest struct {
	Capability  types.Capability  `json:"capability" validate:"required" binding:"required" example:"seo"`
	Endpoint    string            `json:"endpoint" validate:"required" binding:"required" example:"/api/seo/audit"`
	Payload     json.RawMessage   `json:"payload" swaggertype:"object"`
	TimeoutMs   int               `json:"timeout_ms,omitempty" validate:"omitempty,gte=0" example:"5000"`
	MaxAttempts int               `json:"max_attempts,omitempty" validate:"omitempty,gte=0,lte=10" example:"3"`
	Headers     map[string]string `json:"headers,omitempty"`
}

func (r *DispatchByCapabilityRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.Capability.Validate()
}

func (r *DispatchByCapabilityRequest) ToOptions() *types.DispatchOptions {
	return &types.DispatchOptions{
		Timeout:     time.Duration(r.TimeoutMs) * time.Millisecond,
		MaxAttempts: r.MaxAttempts,
		Headers:     r.Headers,
	}
}

// DispatchResponse is the outcome of a dispatch returned to the caller
type DispatchResponse struct {
	Success        bool            `json:"success" example:"true"`
	RequestID      string          `json:"request_id" example:"req_01HGXYZABCDEF"`
	AgentType      types.AgentType `json:"agent_type" example:"contenu"`
	StatusCode     int             `json:"status_code" example:"200"`
	Attempts       int             `json:"attempts" example:"1"`
	ResponseTimeMs int64           `json:"response_time_ms" example:"184"`
	Data           json.RawMessage `json:"data,omitempty" swaggertype:"object"`
}

func NewDispatchResponse(result *dispatch.Result) *DispatchResponse {
	return &DispatchResponse{
		Success:        result.Success,
		RequestID:      result.RequestID,
		AgentType:      result.AgentType,
		StatusCode:     result.StatusCode,
		Attempts:       result.Attempts,
		ResponseTimeMs: result.ResponseTimeMs,
		Data:           result.Data,
	}
}
