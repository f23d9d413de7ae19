package dispatch

import (
	"encoding/json"
	"time"

	"github.com/ekko-ai/agentgate/internal/types"
)

// Session is the persisted record of one dispatch, keyed by its request ID.
// Sessions live in the session store for a bounded TTL so callers can poll
// the outcome of a request after the fact.
type Session struct {
	// ID is the correlation ID of the dispatch, e.g. req_0ujsswThIGTUYm2K8FjOOfXtY1K
	ID            string          `json:"id"`
	TenantID      string          `json:"tenant_id"`
	EnvironmentID string          `json:"environment_id,omitempty"`
	AgentType     types.AgentType `json:"agent_type"`
	// Capability is set when the dispatch was routed by capability rather
	// than addressed to an agent directly
	Capability types.Capability     `json:"capability,omitempty"`
	Endpoint   string               `json:"endpoint"`
	Status     types.DispatchStatus `json:"status"`
	// StatusCode is the HTTP status of the final attempt, 0 when the agent
	// was never reached
	StatusCode     int        `json:"status_code,omitempty"`
	Attempts       int        `json:"attempts"`
	ResponseTimeMs int64      `json:"response_time_ms,omitempty"`
	Error          string     `json:"error,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// NewSession creates a pending session for a dispatch about to start
func NewSession(tenantID, environmentID string, agentType types.AgentType, endpoint string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST),
		TenantID:      tenantID,
		EnvironmentID: environmentID,
		AgentType:     agentType,
		Endpoint:      endpoint,
		Status:        types.DispatchStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// MarkCompleted moves the session to its terminal success state
func (s *Session) MarkCompleted(statusCode int, attempts int, responseTimeMs int64) {
	now := time.Now().UTC()
	s.Status = types.DispatchStatusCompleted
	s.StatusCode = statusCode
	s.Attempts = attempts
	s.ResponseTimeMs = responseTimeMs
	s.Error = ""
	s.UpdatedAt = now
	s.CompletedAt = &now
}

// MarkFailed moves the session to its terminal failure state
func (s *Session) MarkFailed(statusCode int, attempts int, responseTimeMs int64, errMsg string) {
	now := time.Now().UTC()
	s.Status = types.DispatchStatusFailed
	s.StatusCode = statusCode
	s.Attempts = attempts
	s.ResponseTimeMs = responseTimeMs
	s.Error = errMsg
	s.UpdatedAt = now
	s.CompletedAt = &now
}

// Result is what a successful dispatch returns to the caller
type Result struct {
	Success        bool            `json:"success"`
	Data           json.RawMessage `json:"data,omitempty"`
	RequestID      string          `json:"request_id"`
	ResponseTimeMs int64           `json:"response_time_ms"`
	AgentType      types.AgentType `json:"agent_type"`
	StatusCode     int             `json:"status_code"`
	Attempts       int             `json:"attempts"`
}
