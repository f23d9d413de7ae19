package clickhouse

import (
	"context"

	"github.com/ekko-ai/agentgate/internal/clickhouse"
	"github.com/ekko-ai/agentgate/internal/domain/requestlog"
	ierr "github.com/ekko-ai/agentgate/internal/errors"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/types"
	"github.com/samber/lo"
)

type RequestLogRepository struct {
	store  *clickhouse.ClickHouseStore
	logger *logger.Logger
}

func NewRequestLogRepository(store *clickhouse.ClickHouseStore, logger *logger.Logger) requestlog.Repository {
	return &RequestLogRepository{store: store, logger: logger}
}

func (r *RequestLogRepository) InsertRequest(ctx context.Context, event *requestlog.RequestEvent) error {
	// Start a span for this repository operation
	span := StartRepositorySpan(ctx, "requestlog", "insert", map[string]interface{}{
		"event_id":   event.ID,
		"request_id": event.RequestID,
	})
	defer FinishSpan(span)

	if err := event.Validate(); err != nil {
		SetSpanError(span, err)
		return err
	}

	query := `
		INSERT INTO agent_requests (
			id, request_id, tenant_id, environment_id, agent_type, capability,
			endpoint, status, status_code, attempts, response_time_ms,
			error_message, source, timestamp
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		)
	`

	err := r.store.GetConn().Exec(ctx, query,
		event.ID,
		event.RequestID,
		event.TenantID,
		event.EnvironmentID,
		event.AgentType,
		event.Capability,
		event.Endpoint,
		event.Status,
		event.StatusCode,
		event.Attempts,
		event.ResponseTimeMs,
		event.ErrorMessage,
		event.Source,
		event.Timestamp,
	)

	if err != nil {
		SetSpanError(span, err)
		return ierr.WithError(err).
			WithHint("Failed to insert request event").
			WithReportableDetails(map[string]interface{}{
				"event_id":   event.ID,
				"request_id": event.RequestID,
			}).
			Mark(ierr.ErrDatabase)
	}

	SetSpanSuccess(span)
	return nil
}

// BulkInsertRequests inserts multiple request events in a bulk operation for better performance
func (r *RequestLogRepository) BulkInsertRequests(ctx context.Context, events []*requestlog.RequestEvent) error {
	if len(events) == 0 {
		return nil
	}

	// Start a span for this repository operation
	span := StartRepositorySpan(ctx, "requestlog", "bulk_insert", map[string]interface{}{
		"event_count": len(events),
	})
	defer FinishSpan(span)

	// split events in batches of 100
	eventsBatches := lo.Chunk(events, 100)

	for _, eventsBatch := range eventsBatches {
		// Prepare batch statement
		batch, err := r.store.GetConn().PrepareBatch(ctx, `
		INSERT INTO agent_requests (
			id, request_id, tenant_id, environment_id, agent_type, capability,
			endpoint, status, status_code, attempts, response_time_ms,
			error_message, source, timestamp
		)
	`)
		if err != nil {
			SetSpanError(span, err)
			return ierr.WithError(err).
				WithHint("Failed to prepare batch for request events").
				Mark(ierr.ErrDatabase)
		}

		// Validate all events before inserting
		for _, event := range eventsBatch {
			if err := event.Validate(); err != nil {
				SetSpanError(span, err)
				return err
			}

			err = batch.Append(
				event.ID,
				event.RequestID,
				event.TenantID,
				event.EnvironmentID,
				event.AgentType,
				event.Capability,
				event.Endpoint,
				event.Status,
				event.StatusCode,
				event.Attempts,
				event.ResponseTimeMs,
				event.ErrorMessage,
				event.Source,
				event.Timestamp,
			)

			if err != nil {
				SetSpanError(span, err)
				return ierr.WithError(err).
					WithHint("Failed to append request event to batch").
					WithReportableDetails(map[string]interface{}{
						"event_id":   event.ID,
						"request_id": event.RequestID,
					}).
					Mark(ierr.ErrDatabase)
			}
		}

		// Execute the batch
		if err := batch.Send(); err != nil {
			SetSpanError(span, err)
			return ierr.WithError(err).
				WithHint("Failed to execute batch insert for request events").
				WithReportableDetails(map[string]interface{}{
					"event_count": len(events),
				}).
				Mark(ierr.ErrDatabase)
		}
	}

	SetSpanSuccess(span)
	return nil
}

func (r *RequestLogRepository) GetRequests(ctx context.Context, params *requestlog.GetRequestsParams) ([]*requestlog.RequestEvent, uint64, error) {
	// Start a span for this repository operation
	span := StartRepositorySpan(ctx, "requestlog", "get_requests", map[string]interface{}{
		"agent_type":  params.AgentType,
		"status":      params.Status,
		"count_total": params.CountTotal,
		"page_size":   params.PageSize,
	})
	defer FinishSpan(span)

	var totalCount uint64

	baseQuery := `
		SELECT
			id,
			request_id,
			tenant_id,
			environment_id,
			agent_type,
			capability,
			endpoint,
			status,
			status_code,
			attempts,
			response_time_ms,
			error_message,
			source,
			timestamp
		FROM agent_requests
		WHERE tenant_id = ?
	`
	args := make([]interface{}, 0)
	args = append(args, types.GetTenantID(ctx))

	// Add environment_id filter if present in context
	environmentID := types.GetEnvironmentID(ctx)
	if environmentID != "" {
		baseQuery += " AND environment_id = ?"
		args = append(args, environmentID)
	}

	// Apply filters
	if params.RequestID != "" {
		baseQuery += " AND request_id = ?"
		args = append(args, params.RequestID)
	}
	if params.AgentType != "" {
		baseQuery += " AND agent_type = ?"
		args = append(args, params.AgentType)
	}
	if params.Capability != "" {
		baseQuery += " AND capability = ?"
		args = append(args, params.Capability)
	}
	if params.Status != "" {
		baseQuery += " AND status = ?"
		args = append(args, params.Status)
	}
	if params.Endpoint != "" {
		baseQuery += " AND endpoint LIKE ?"
		args = append(args, "%"+params.Endpoint+"%")
	}
	if !params.StartTime.IsZero() {
		baseQuery += " AND timestamp >= ?"
		args = append(args, params.StartTime)
	}
	if !params.EndTime.IsZero() {
		baseQuery += " AND timestamp <= ?"
		args = append(args, params.EndTime)
	}

	// Handle pagination and real-time refresh using composite keys
	if params.IterFirst != nil {
		baseQuery += " AND (timestamp, id) > (?, ?)"
		args = append(args, params.IterFirst.Timestamp, params.IterFirst.ID)
	} else if params.IterLast != nil {
		baseQuery += " AND (timestamp, id) < (?, ?)"
		args = append(args, params.IterLast.Timestamp, params.IterLast.ID)
	}

	// Add query to span for debugging
	SetSpanData(span, "query_base", baseQuery)
	SetSpanData(span, "args_count", len(args))

	// Count total if requested
	if params.CountTotal {
		countQuery := "SELECT COUNT(*) FROM (" + baseQuery + ") AS filtered_requests"
		err := r.store.GetConn().QueryRow(ctx, countQuery, args...).Scan(&totalCount)
		if err != nil {
			SetSpanError(span, err)
			return nil, 0, ierr.WithError(err).
				WithHint("Failed to count request events").
				WithReportableDetails(map[string]interface{}{
					"agent_type": params.AgentType,
				}).
				Mark(ierr.ErrDatabase)
		}
		SetSpanData(span, "total_count", totalCount)
	}

	// Order by timestamp and ID
	baseQuery += " ORDER BY timestamp DESC, id DESC"

	// Apply limit and offset for pagination if using offset-based pagination
	if params.PageSize > 0 {
		baseQuery += " LIMIT ?"
		args = append(args, params.PageSize)

		if params.Offset > 0 {
			baseQuery += " OFFSET ?"
			args = append(args, params.Offset)
		}
	}

	r.logger.Debugw("executing get requests query",
		"query", baseQuery,
		"args", args)

	// Execute query
	rows, err := r.store.GetConn().Query(ctx, baseQuery, args...)
	if err != nil {
		SetSpanError(span, err)
		return nil, 0, ierr.WithError(err).
			WithHint("Failed to query request events").
			WithReportableDetails(map[string]interface{}{
				"agent_type": params.AgentType,
			}).
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var eventsList []*requestlog.RequestEvent
	for rows.Next() {
		var event requestlog.RequestEvent

		err := rows.Scan(
			&event.ID,
			&event.RequestID,
			&event.TenantID,
			&event.EnvironmentID,
			&event.AgentType,
			&event.Capability,
			&event.Endpoint,
			&event.Status,
			&event.StatusCode,
			&event.Attempts,
			&event.ResponseTimeMs,
			&event.ErrorMessage,
			&event.Source,
			&event.Timestamp,
		)
		if err != nil {
			SetSpanError(span, err)
			return nil, 0, ierr.WithError(err).
				WithHint("Failed to scan request event").
				WithReportableDetails(map[string]interface{}{
					"event_id": event.ID,
				}).
				Mark(ierr.ErrDatabase)
		}

		eventsList = append(eventsList, &event)
	}

	// Add result count to span
	SetSpanData(span, "result_count", len(eventsList))

	SetSpanSuccess(span)
	return eventsList, totalCount, nil
}

func (r *RequestLogRepository) GetRequestStats(ctx context.Context, params *requestlog.RequestStatsParams) ([]*requestlog.RequestStat, error) {
	// Start a span for this repository operation
	span := StartRepositorySpan(ctx, "requestlog", "get_request_stats", map[string]interface{}{
		"agent_type": params.AgentType,
	})
	defer FinishSpan(span)

	query := `
		SELECT
			agent_type,
			COUNT(*) AS total_requests,
			countIf(status = 'failed') AS failed_requests,
			avg(response_time_ms) AS avg_response_time_ms,
			max(response_time_ms) AS max_response_time_ms,
			sum(attempts) AS total_attempts
		FROM agent_requests
		WHERE tenant_id = ?
	`
	args := make([]interface{}, 0)
	args = append(args, types.GetTenantID(ctx))

	environmentID := types.GetEnvironmentID(ctx)
	if environmentID != "" {
		query += " AND environment_id = ?"
		args = append(args, environmentID)
	}

	if params.AgentType != "" {
		query += " AND agent_type = ?"
		args = append(args, params.AgentType)
	}
	if !params.StartTime.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, params.StartTime)
	}
	if !params.EndTime.IsZero() {
		query += " AND timestamp <= ?"
		args = append(args, params.EndTime)
	}

	query += " GROUP BY agent_type ORDER BY agent_type"

	var stats []*requestlog.RequestStat
	if err := r.store.GetConn().Select(ctx, &stats, query, args...); err != nil {
		SetSpanError(span, err)
		return nil, ierr.WithError(err).
			WithHint("Failed to aggregate request stats").
			WithReportableDetails(map[string]interface{}{
				"agent_type": params.AgentType,
			}).
			Mark(ierr.ErrDatabase)
	}

	// Add result count to span
	SetSpanData(span, "result_count", len(stats))

	SetSpanSuccess(span)
	return stats, nil
}
