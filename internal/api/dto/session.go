package dto

import (
	"time"

	"github.com/ekko-ai/agentgate/internal/domain/dispatch"
	"github.com/ekko-ai/agentgate/internal/types"
)

// SessionResponse is the persisted record of one dispatch
type SessionResponse struct {
	ID             string               `json:"id" example:"req_01HGXYZABCDEF"`
	TenantID       string               `json:"tenant_id" example:"tenant_ekko"`
	EnvironmentID  string               `json:"environment_id,omitempty" example:"env_prod"`
	AgentType      types.AgentType      `json:"agent_type" example:"contenu"`
	Capability     types.Capability     `json:"capability,omitempty" example:"seo"`
	Endpoint       string               `json:"endpoint" example:"/api/content/blog"`
	Status         types.DispatchStatus `json:"status" example:"completed"`
	StatusCode     int                  `json:"status_code,omitempty" example:"200"`
	Attempts       int                  `json:"attempts" example:"1"`
	ResponseTimeMs int64                `json:"response_time_ms,omitempty" example:"184"`
	Error          string               `json:"error,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
	CompletedAt    *time.Time           `json:"completed_at,omitempty"`
}

func NewSessionResponse(s *dispatch.Session) *SessionResponse {
	return &SessionResponse{
		ID:             s.ID,
		TenantID:       s.TenantID,
		EnvironmentID:  s.EnvironmentID,
		AgentType:      s.AgentType,
		Capability:     s.Capability,
		Endpoint:       s.Endpoint,
		Status:         s.Status,
		StatusCode:     s.StatusCode,
		Attempts:       s.Attempts,
		ResponseTimeMs: s.ResponseTimeMs,
		Error:          s.Error,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
		CompletedAt:    s.CompletedAt,
	}
}
