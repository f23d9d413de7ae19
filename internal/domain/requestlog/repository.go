package requestlog

import (
	"context"
	"time"
)

type Repository interface {
	InsertRequest(ctx context.Context, event *RequestEvent) error
	BulkInsertRequests(ctx context.Context, events []*RequestEvent) error
	GetRequests(ctx context.Context, params *GetRequestsParams) ([]*RequestEvent, uint64, error)
	GetRequestStats(ctx context.Context, params *RequestStatsParams) ([]*RequestStat, error)
}

// RequestIterator is a composite key for keyset pagination over the
// request log, ordered by (timestamp, id)
type RequestIterator struct {
	Timestamp time.Time
	ID        string
}

// GetRequestsParams filters the request log. Tenant and environment scoping
// always come from the context.
type GetRequestsParams struct {
	RequestID  string    // Optional filter by correlation ID
	AgentType  string    // Optional filter by agent type
	Capability string    // Optional filter by routed capability
	Status     string    // Optional filter by terminal status
	Endpoint   string    // Optional substring match on the endpoint
	StartTime  time.Time // Optional filter by start time
	EndTime    time.Time // Optional filter by end time

	IterFirst  *RequestIterator // Optional fetch newer than this key
	IterLast   *RequestIterator // Optional fetch older than this key
	PageSize   int
	Offset     int
	CountTotal bool
}

// RequestStatsParams scopes the per agent aggregation
type RequestStatsParams struct {
	StartTime time.Time
	EndTime   time.Time
	AgentType string // Optional filter to a single agent
}

// RequestStat is the aggregated view of one agent's traffic in a window
type RequestStat struct {
	AgentType         string  `json:"agent_type" ch:"agent_type"`
	TotalRequests     uint64  `json:"total_requests" ch:"total_requests"`
	FailedRequests    uint64  `json:"failed_requests" ch:"failed_requests"`
	AvgResponseTimeMs float64 `json:"avg_response_time_ms" ch:"avg_response_time_ms"`
	MaxResponseTimeMs int64   `json:"max_response_time_ms" ch:"max_response_time_ms"`
	TotalAttempts     int64   `json:"total_attempts" ch:"total_attempts"`
}
