package dto

import (
	"time"

	"github.com/ekko-ai/agentgate/internal/domain/requestlog"
	"github.com/ekko-ai/agentgate/internal/validator"
)

// GetRequestsRequest queries the request log. All filters are optional;
// tenant and environment scoping always come from the caller's context.
type GetRequestsRequest struct {
	RequestID  string `form:"request_id" json:"request_id" example:"req_01HGXYZABCDEF"`
	AgentType  string `form:"agent_type" json:"agent_type" example:"contenu"`
	Capability string `form:"capability" json:"capability" example:"seo"`
	Status     string `form:"status" json:"status" example:"failed"`
	// Endpoint matches as a substring against the resolved path
	Endpoint  string    `form:"endpoint" json:"endpoint" example:"/api/content"`
	StartTime time.Time `form:"start_time" json:"start_time" example:"2026-01-19T00:00:00Z"`
	EndTime   time.Time `form:"end_time" json:"end_time" example:"2026-01-20T00:00:00Z"`

	IterFirstTimestamp *time.Time `form:"iter_first_timestamp" json:"iter_first_timestamp,omitempty"`
	IterFirstID        string     `form:"iter_first_id" json:"iter_first_id,omitempty"`
	IterLastTimestamp  *time.Time `form:"iter_last_timestamp" json:"iter_last_timestamp,omitempty"`
	IterLastID         string     `form:"iter_last_id" json:"iter_last_id,omitempty"`

	PageSize   int  `form:"page_size" json:"page_size" validate:"omitempty,gte=0,lte=1000" example:"50"`
	Offset     int  `form:"offset" json:"offset" validate:"omitempty,gte=0" example:"0"`
	CountTotal bool `form:"count_total" json:"count_total"`
}

func (r *GetRequestsRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *GetRequestsRequest) ToParams() *requestlog.GetRequestsParams {
	params := &requestlog.GetRequestsParams{
		RequestID:  r.RequestID,
		AgentType:  r.AgentType,
		Capability: r.Capability,
		Status:     r.Status,
		Endpoint:   r.Endpoint,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		PageSize:   r.PageSize,
		Offset:     r.Offset,
		CountTotal: r.CountTotal,
	}
	if r.IterFirstTimestamp != nil && r.IterFirstID != "" {
		params.IterFirst = &requestlog.RequestIterator{
			Timestamp: *r.IterFirstTimestamp,
			ID:        r.IterFirstID,
		}
	}
	if r.IterLastTimestamp != nil && r.IterLastID != "" {
		params.IterLast = &requestlog.RequestIterator{
			Timestamp: *r.IterLastTimestamp,
			ID:        r.IterLastID,
		}
	}
	return params
}

// RequestEventResponse is one row of the request log
type RequestEventResponse struct {
	ID             string    `json:"id" example:"evt_01HGXYZABCDEF"`
	RequestID      string    `json:"request_id" example:"req_01HGXYZABCDEF"`
	TenantID       string    `json:"tenant_id" example:"tenant_ekko"`
	EnvironmentID  string    `json:"environment_id,omitempty" example:"env_prod"`
	AgentType      string    `json:"agent_type" example:"contenu"`
	Capability     string    `json:"capability,omitempty" example:"seo"`
	Endpoint       string    `json:"endpoint" example:"/api/content/blog"`
	Status         string    `json:"status" example:"completed"`
	StatusCode     int32     `json:"status_code" example:"200"`
	Attempts       int32     `json:"attempts" example:"1"`
	ResponseTimeMs int64     `json:"response_time_ms" example:"184"`
	ErrorMessage   string    `json:"error_message,omitempty"`
	Source         string    `json:"source" example:"agentgate"`
	Timestamp      time.Time `json:"timestamp"`
}

func NewRequestEventResponse(e *requestlog.RequestEvent) *RequestEventResponse {
	return &RequestEventResponse{
		ID:             e.ID,
		RequestID:      e.RequestID,
		TenantID:       e.TenantID,
		EnvironmentID:  e.EnvironmentID,
		AgentType:      e.AgentType,
		Capability:     e.Capability,
		Endpoint:       e.Endpoint,
		Status:         e.Status,
		StatusCode:     e.StatusCode,
		Attempts:       e.Attempts,
		ResponseTimeMs: e.ResponseTimeMs,
		ErrorMessage:   e.ErrorMessage,
		Source:         e.Source,
		Timestamp:      e.Timestamp,
	}
}

type GetRequestsResponse struct {
	Requests   []*RequestEventResponse `json:"requests"`
	HasMore    bool                    `json:"has_more"`
	TotalCount uint64                  `json:"total_count,omitempty"`
	Offset     int                     `json:"offset,omitempty"`
}

// GetRequestStatsRequest scopes the per agent aggregation window
type GetRequestStatsRequest struct {
	StartTime time.Time `form:"start_time" json:"start_time" example:"2026-01-19T00:00:00Z"`
	EndTime   time.Time `form:"end_time" json:"end_time" example:"2026-01-20T00:00:00Z"`
	AgentType string    `form:"agent_type" json:"agent_type" example:"contenu"`
}

func (r *GetRequestStatsRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *GetRequestStatsRequest) ToParams() *requestlog.RequestStatsParams {
	return &requestlog.RequestStatsParams{
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		AgentType: r.AgentType,
	}
}

type RequestStatResponse struct {
	AgentType         string  `json:"agent_type" example:"contenu"`
	TotalRequests     uint64  `json:"total_requests" example:"1200"`
	FailedRequests    uint64  `json:"failed_requests" example:"14"`
	AvgResponseTimeMs float64 `json:"avg_response_time_ms" example:"210.4"`
	MaxResponseTimeMs int64   `json:"max_response_time_ms" example:"1830"`
	TotalAttempts     int64   `json:"total_attempts" example:"1260"`
}

type GetRequestStatsResponse struct {
	Stats []*RequestStatResponse `json:"stats"`
}

func NewGetRequestStatsResponse(stats []*requestlog.RequestStat) *GetRequestStatsResponse {
	resp := &GetRequestStatsResponse{
		Stats: make([]*RequestStatResponse, 0, len(stats)),
	}
	for _, s := range stats {
		resp.Stats = append(resp.Stats, &RequestStatResponse{
			AgentType:         s.AgentType,
			TotalRequests:     s.TotalRequests,
			FailedRequests:    s.FailedRequests,
			AvgResponseTimeMs: s.AvgResponseTimeMs,
			MaxResponseTimeMs: s.MaxResponseTimeMs,
			TotalAttempts:     s.TotalAttempts,
		})
	}
	return resp
}
