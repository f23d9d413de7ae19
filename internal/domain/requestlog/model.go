package requestlog

import (
	"time"

	"github.com/ekko-ai/agentgate/internal/domain/dispatch"
	ierr "github.com/ekko-ai/agentgate/internal/errors"
	"github.com/ekko-ai/agentgate/internal/types"
)

// RequestEvent is the telemetry record written for every finished dispatch.
// Events flow through Kafka into the agent_requests ClickHouse table and
// back out through the request log query API.
type RequestEvent struct {
	// Unique identifier for the event
	ID string `json:"id" ch:"id" validate:"required"`

	// RequestID is the correlation ID of the dispatch this event describes
	RequestID string `json:"request_id" ch:"request_id" validate:"required"`

	// Tenant identifier
	TenantID string `json:"tenant_id" ch:"tenant_id" validate:"required"`

	// Environment identifier
	EnvironmentID string `json:"environment_id" ch:"environment_id"`

	// AgentType is the agent that handled (or failed to handle) the request
	AgentType string `json:"agent_type" ch:"agent_type" validate:"required"`

	// Capability is set when the dispatch was capability routed
	Capability string `json:"capability" ch:"capability"`

	// Endpoint is the resolved path the dispatch was sent to
	Endpoint string `json:"endpoint" ch:"endpoint"`

	// Status is the terminal dispatch status, completed or failed
	Status string `json:"status" ch:"status" validate:"required"`

	// StatusCode is the HTTP status of the final attempt, 0 when the agent
	// was never reached
	StatusCode int32 `json:"status_code" ch:"status_code"`

	// Attempts is the number of HTTP calls made for this dispatch
	Attempts int32 `json:"attempts" ch:"attempts"`

	// ResponseTimeMs covers the whole dispatch including retries
	ResponseTimeMs int64 `json:"response_time_ms" ch:"response_time_ms"`

	// ErrorMessage holds the final error for failed dispatches
	ErrorMessage string `json:"error_message" ch:"error_message"`

	// Source of the event, e.g. agentgate
	Source string `json:"source" ch:"source"`

	// Timestamps
	Timestamp time.Time `json:"timestamp" ch:"timestamp,timezone('UTC')" validate:"required"`

	// IngestedAt is set at the clickhouse server level and is not required
	// to be set by the caller
	IngestedAt time.Time `json:"ingested_at" ch:"ingested_at,timezone('UTC')"`
}

// EventSource is the source recorded on events emitted by this service
const EventSource = "agentgate"

// NewRequestEvent builds a telemetry event from a finished dispatch session
func NewRequestEvent(session *dispatch.Session) *RequestEvent {
	return &RequestEvent{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST_EVENT),
		RequestID:      session.ID,
		TenantID:       session.TenantID,
		EnvironmentID:  session.EnvironmentID,
		AgentType:      session.AgentType.String(),
		Capability:     session.Capability.String(),
		Endpoint:       session.Endpoint,
		Status:         session.Status.String(),
		StatusCode:     int32(session.StatusCode),
		Attempts:       int32(session.Attempts),
		ResponseTimeMs: session.ResponseTimeMs,
		ErrorMessage:   session.Error,
		Source:         EventSource,
		Timestamp:      time.Now().UTC(),
	}
}

// PartitionKey keeps every event for a tenant's request on the same
// kafka partition so per-request ordering is preserved.
func (e *RequestEvent) PartitionKey() string {
	return e.TenantID + ":" + e.RequestID
}

func (e *RequestEvent) Validate() error {
	if e.ID == "" || e.RequestID == "" {
		return ierr.NewError("event id and request id are required").
			WithHint("Request event is missing identifiers").
			Mark(ierr.ErrValidation)
	}
	if e.TenantID == "" {
		return ierr.NewError("tenant id is required").
			WithHint("Request event is missing a tenant").
			WithReportableDetails(map[string]any{
				"request_id": e.RequestID,
			}).
			Mark(ierr.ErrValidation)
	}
	if e.AgentType == "" {
		return ierr.NewError("agent type is required").
			WithHint("Request event is missing the agent type").
			WithReportableDetails(map[string]any{
				"request_id": e.RequestID,
			}).
			Mark(ierr.ErrValidation)
	}
	if e.Status != types.DispatchStatusCompleted.String() && e.Status != types.DispatchStatusFailed.String() {
		return ierr.NewError("invalid event status").
			WithHintf("Status %s is not a terminal dispatch status", e.Status).
			WithReportableDetails(map[string]any{
				"request_id": e.RequestID,
				"status":     e.Status,
			}).
			Mark(ierr.ErrValidation)
	}
	if e.Timestamp.IsZero() {
		return ierr.NewError("timestamp is required").
			WithHint("Request event is missing a timestamp").
			Mark(ierr.ErrValidation)
	}
	return nil
}
