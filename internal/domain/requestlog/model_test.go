package requestlog

import (
	"strings"
	"testing"
	"time"

	"github.com/ekko-ai/agentgate/internal/domain/dispatch"
	"github.com/stretchr/testify/assert"
)

func TestNewRequestEvent(t *testing.T) {
	session := dispatch.NewSession("tenant-1", "env-1", "contenu", "/api/content/blog")
	session.Capability = "blog-writing"
	session.MarkCompleted(200, 2, 340)

	event := NewRequestEvent(session)

	assert.True(t, strings.HasPrefix(event.ID, "evt_"))
	assert.Equal(t, session.ID, event.RequestID)
	assert.Equal(t, "tenant-1", event.TenantID)
	assert.Equal(t, "env-1", event.EnvironmentID)
	assert.Equal(t, "contenu", event.AgentType)
	assert.Equal(t, "blog-writing", event.Capability)
	assert.Equal(t, "/api/content/blog", event.Endpoint)
	assert.Equal(t, "completed", event.Status)
	assert.Equal(t, int32(200), event.StatusCode)
	assert.Equal(t, int32(2), event.Attempts)
	assert.Equal(t, int64(340), event.ResponseTimeMs)
	assert.Equal(t, EventSource, event.Source)
	assert.False(t, event.Timestamp.IsZero())
	assert.NoError(t, event.Validate())
}

func TestRequestEventPartitionKey(t *testing.T) {
	event := &RequestEvent{TenantID: "tenant-1", RequestID: "req_abc"}
	assert.Equal(t, "tenant-1:req_abc", event.PartitionKey())
}

func TestRequestEventValidate(t *testing.T) {
	valid := func() *RequestEvent {
		session := dispatch.NewSession("tenant-1", "", "contenu", "/api/content/blog")
		session.MarkFailed(503, 3, 900, "service unavailable")
		return NewRequestEvent(session)
	}

	tests := []struct {
		name          string
		mutate        func(e *RequestEvent)
		expectedError bool
	}{
		{
			name:   "valid_failed_event",
			mutate: func(e *RequestEvent) {},
		},
		{
			name:          "missing_id",
			mutate:        func(e *RequestEvent) { e.ID = "" },
			expectedError: true,
		},
		{
			name:          "missing_tenant",
			mutate:        func(e *RequestEvent) { e.TenantID = "" },
			expectedError: true,
		},
		{
			name:          "missing_agent_type",
			mutate:        func(e *RequestEvent) { e.AgentType = "" },
			expectedError: true,
		},
		{
			name:          "pending_is_not_terminal",
			mutate:        func(e *RequestEvent) { e.Status = "pending" },
			expectedError: true,
		},
		{
			name:          "missing_timestamp",
			mutate:        func(e *RequestEvent) { e.Timestamp = time.Time{} },
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := valid()
			tt.mutate(event)

			err := event.Validate()
			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
