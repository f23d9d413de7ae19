package sentry

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/fx"

	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/logger"
)

type Service struct {
	cfg    *config.Configuration
	logger *logger.Logger
}

func NewSentryService(cfg *config.Configuration, logger *logger.Logger) *Service {
	return &Service{
		cfg:    cfg,
		logger: logger,
	}
}

// Module wires the service and its lifecycle hooks into fx
func Module() fx.Option {
	return fx.Options(
		fx.Provide(NewSentryService),
		fx.Invoke(RegisterHooks),
	)
}

func RegisterHooks(lc fx.Lifecycle, svc *Service) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return svc.start()
		},
		OnStop: func(ctx context.Context) error {
			svc.stop()
			return nil
		},
	})
}

func (s *Service) start() error {
	if !s.cfg.Sentry.Enabled {
		s.logger.Info("Sentry disabled, skipping init")
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              s.cfg.Sentry.DSN,
		Environment:      s.cfg.Sentry.Environment,
		EnableTracing:    true,
		TracesSampleRate: s.cfg.Sentry.SampleRate,
		TracesSampler: sentry.TracesSampler(func(sc sentry.SamplingContext) float64 {
			// Health probes would drown out real traffic
			if sc.Span.Name == "GET /health" {
				return 0.0
			}
			return s.cfg.Sentry.SampleRate
		}),
	})
	if err != nil {
		s.logger.Errorw("Sentry init failed", "error", err)
		return err
	}

	s.logger.Infow("Sentry initialized",
		"environment", s.cfg.Sentry.Environment,
		"sample_rate", s.cfg.Sentry.SampleRate,
	)
	return nil
}

func (s *Service) stop() {
	if s.cfg.Sentry.Enabled {
		s.logger.Info("Flushing Sentry before shutdown")
		sentry.Flush(2 * time.Second)
	}
}

// CaptureException reports an error when Sentry is enabled
func (s *Service) CaptureException(err error) {
	if !s.cfg.Sentry.Enabled {
		return
	}
	sentry.CaptureException(err)
}

// startSpan opens a child span of the current transaction. Returns a nil
// span when Sentry is disabled.
func (s *Service) startSpan(ctx context.Context, name, op, description string, params map[string]interface{}) (*sentry.Span, context.Context) {
	if !s.cfg.Sentry.Enabled {
		return nil, ctx
	}

	span := sentry.StartSpan(ctx, name)
	if span == nil {
		return nil, ctx
	}

	span.Description = description
	span.Op = op
	for k, v := range params {
		span.SetData(k, v)
	}
	return span, span.Context()
}

// StartAgentSpan starts a span for one outbound agent call
func (s *Service) StartAgentSpan(ctx context.Context, operation string, params map[string]interface{}) (*sentry.Span, context.Context) {
	return s.startSpan(ctx, operation, "http.agent", operation, params)
}

// StartClickHouseSpan starts a span for a ClickHouse operation
func (s *Service) StartClickHouseSpan(ctx context.Context, operation string, params map[string]interface{}) (*sentry.Span, context.Context) {
	return s.startSpan(ctx, operation, "db.clickhouse", operation, params)
}

// StartKafkaConsumerSpan starts a span for consuming one message from a topic
func (s *Service) StartKafkaConsumerSpan(ctx context.Context, topic string) (*sentry.Span, context.Context) {
	return s.startSpan(ctx, "kafka.consume."+topic, "kafka.consume", "Consuming message from "+topic, map[string]interface{}{
		"topic": topic,
	})
}

// MonitorEventProcessing opens a span for one telemetry event and tags the
// enclosing transaction with consumer lag severity for alerting
func (s *Service) MonitorEventProcessing(ctx context.Context, eventName string, eventTimestamp time.Time, metadata map[string]interface{}) (*sentry.Span, context.Context) {
	span, ctx := s.startSpan(ctx, "event.process", "event.process", "Processing event", metadata)
	if span == nil {
		return nil, ctx
	}

	span.SetData("event_name", eventName)

	lag := time.Since(eventTimestamp)
	span.SetData("lag_ms", lag.Milliseconds())

	if tx := sentry.TransactionFromContext(ctx); tx != nil {
		tx.SetTag("event.lag.ms", fmt.Sprintf("%d", lag.Milliseconds()))
		tx.SetTag("event.lag.severity", lagSeverity(lag))
	}

	return span, ctx
}

func lagSeverity(lag time.Duration) string {
	switch {
	case lag >= 5*time.Minute:
		return "critical"
	case lag >= time.Minute:
		return "warning"
	default:
		return "normal"
	}
}

// StartTransaction creates a transaction, attaching a hub to the context
// when the caller's context carries none
func (s *Service) StartTransaction(ctx context.Context, name string, options ...sentry.SpanOption) (*sentry.Span, context.Context) {
	if !s.cfg.Sentry.Enabled {
		return nil, ctx
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub().Clone()
		ctx = sentry.SetHubOnContext(ctx, hub)
	}

	opts := append([]sentry.SpanOption{
		sentry.WithOpName(name),
		sentry.WithTransactionSource(sentry.SourceCustom),
	}, options...)

	tx := sentry.StartTransaction(ctx, name, opts...)
	return tx, tx.Context()
}
