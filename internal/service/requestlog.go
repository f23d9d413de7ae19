package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ekko-ai/agentgate/internal/api/dto"
	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/domain/requestlog"
	ierr "github.com/ekko-ai/agentgate/internal/errors"
	pubsubRouter "github.com/ekko-ai/agentgate/internal/pubsub/router"
	"github.com/ekko-ai/agentgate/internal/sentry"
)

// DefaultRequestPageSize bounds request log queries that carry no page size
const DefaultRequestPageSize = 50

// RequestLogService consumes request telemetry events into ClickHouse and
// serves the request log query API
type RequestLogService interface {
	// GetRequests queries the request log for the caller's tenant
	GetRequests(ctx context.Context, req *dto.GetRequestsRequest) (*dto.GetRequestsResponse, error)

	// GetRequestStats aggregates per agent traffic for a time window
	GetRequestStats(ctx context.Context, req *dto.GetRequestStatsRequest) (*dto.GetRequestStatsResponse, error)

	// RegisterHandler registers the telemetry consumption handler with the router
	RegisterHandler(router *pubsubRouter.Router, subscriber message.Subscriber, cfg *config.Configuration)

	// ProcessRawEvent processes a raw event payload (used for AWS Lambda and direct processing)
	ProcessRawEvent(ctx context.Context, payload []byte) error
}

type requestLogService struct {
	ServiceParams
	sentryService *sentry.Service
}

func NewRequestLogService(params ServiceParams, sentryService *sentry.Service) RequestLogService {
	return &requestLogService{
		ServiceParams: params,
		sentryService: sentryService,
	}
}

func (s *requestLogService) GetRequests(ctx context.Context, req *dto.GetRequestsRequest) (*dto.GetRequestsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	params := req.ToParams()
	if params.PageSize <= 0 {
		params.PageSize = DefaultRequestPageSize
	}

	// Fetch one row beyond the page to learn whether more pages exist
	limit := params.PageSize
	params.PageSize = limit + 1

	events, total, err := s.RequestLogRepo.GetRequests(ctx, params)
	if err != nil {
		return nil, err
	}

	hasMore := len(events) > limit
	if hasMore {
		events = events[:limit]
	}

	response := &dto.GetRequestsResponse{
		Requests:   make([]*dto.RequestEventResponse, 0, len(events)),
		HasMore:    hasMore,
		TotalCount: total,
		Offset:     req.Offset,
	}
	for _, e := range events {
		response.Requests = append(response.Requests, dto.NewRequestEventResponse(e))
	}

	return response, nil
}

func (s *requestLogService) GetRequestStats(ctx context.Context, req *dto.GetRequestStatsRequest) (*dto.GetRequestStatsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	stats, err := s.RequestLogRepo.GetRequestStats(ctx, req.ToParams())
	if err != nil {
		return nil, err
	}

	return dto.NewGetRequestStatsResponse(stats), nil
}

// RegisterHandler registers the telemetry consumption handler with the router
func (s *requestLogService) RegisterHandler(
	router *pubsubRouter.Router,
	subscriber message.Subscriber,
	cfg *config.Configuration,
) {
	router.AddNoPublishHandler(
		"request_log_handler",
		cfg.Kafka.Topic,
		subscriber,
		s.processMessage,
	)

	s.Logger.Infow("registered request log handler",
		"topic", cfg.Kafka.Topic,
		"consumer_group", cfg.Kafka.ConsumerGroup,
	)
}

// processMessage processes a single request event message from the stream
func (s *requestLogService) processMessage(msg *message.Message) error {
	ctx := context.Background()

	transaction, ctx := s.sentryService.StartTransaction(ctx, "requestlog.process")
	if transaction != nil {
		defer transaction.Finish()
	}

	kafkaSpan, ctx := s.sentryService.StartKafkaConsumerSpan(ctx, s.Config.Kafka.Topic)
	if kafkaSpan != nil {
		defer kafkaSpan.Finish()
	}

	var event requestlog.RequestEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		s.Logger.Errorw("failed to unmarshal request event",
			"error", err,
			"message_uuid", msg.UUID,
			"payload", string(msg.Payload),
		)
		s.sentryService.CaptureException(err)

		// Poison queue middleware moves non-retriable messages to the DLQ
		if !shouldRetryError(err) {
			return fmt.Errorf("non-retriable unmarshal error: %w", err)
		}
		return err
	}

	s.Logger.Debugw("processing request event",
		"event_id", event.ID,
		"request_id", event.RequestID,
		"tenant_id", event.TenantID,
		"agent_type", event.AgentType,
	)

	// Tag the transaction with consumer lag so stalls are visible
	eventSpan, ctx := s.sentryService.MonitorEventProcessing(ctx, "agent_request", event.Timestamp, map[string]interface{}{
		"event_id":   event.ID,
		"agent_type": event.AgentType,
	})
	if eventSpan != nil {
		defer eventSpan.Finish()
	}

	if err := s.insertEvent(ctx, &event); err != nil {
		return err
	}

	return nil
}

// ProcessRawEvent processes a raw event payload (used for AWS Lambda and direct processing)
func (s *requestLogService) ProcessRawEvent(ctx context.Context, payload []byte) error {
	transaction, ctx := s.sentryService.StartTransaction(ctx, "requestlog.process")
	if transaction != nil {
		defer transaction.Finish()
	}

	var event requestlog.RequestEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		s.Logger.Errorw("failed to unmarshal request event",
			"error", err,
			"payload", string(payload),
		)
		s.sentryService.CaptureException(err)
		return fmt.Errorf("failed to unmarshal request event: %w", err)
	}

	return s.insertEvent(ctx, &event)
}

func (s *requestLogService) insertEvent(ctx context.Context, event *requestlog.RequestEvent) error {
	if err := s.RequestLogRepo.InsertRequest(ctx, event); err != nil {
		s.Logger.Errorw("failed to insert request event",
			"error", err,
			"event_id", event.ID,
			"request_id", event.RequestID,
		)

		// Returned errors trigger a redelivery
		return ierr.WithError(err).
			WithHint("Request event could not be written to ClickHouse").
			Mark(ierr.ErrSystem)
	}

	s.Logger.Debugw("request event stored",
		"event_id", event.ID,
		"request_id", event.RequestID,
	)
	return nil
}

// shouldRetryError determines if an error should trigger a message retry
func shouldRetryError(err error) bool {
	// Parsing errors will not succeed on retry
	errMsg := err.Error()
	if strings.Contains(errMsg, "unmarshal") ||
		strings.Contains(errMsg, "parse") ||
		strings.Contains(errMsg, "invalid") {
		return false
	}

	// Retry everything else, database and network issues are transient
	return true
}
