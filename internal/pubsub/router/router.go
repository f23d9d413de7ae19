package router

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/pubsub"
	"github.com/ekko-ai/agentgate/internal/sentry"
	"github.com/ekko-ai/agentgate/internal/types"
)

// Router owns the consuming side of the alert stream
type Router struct {
	router *message.Router
	logger *logger.Logger
	sentry *sentry.Service
	config *config.AlertConfig
}

// NewRouter builds a watermill router carrying the gateway's standard
// middleware chain
func NewRouter(cfg *config.Configuration, logger *logger.Logger, sentryService *sentry.Service, alertPubSub types.OpsAlertPubSub) (*Router, error) {
	wmLogger := watermill.NewStdLogger(false, false)

	router, err := message.NewRouter(message.RouterConfig{}, wmLogger)
	if err != nil {
		return nil, err
	}

	// Poisoned messages only outlive a restart when the alert stream is
	// Kafka-backed, so the in-memory stream runs without a DLQ.
	if cfg.Alert.PubSub == types.KafkaPubSub {
		poisonQueue, err := middleware.PoisonQueue(
			dlqPublisher{ps: alertPubSub},
			cfg.Alert.Topic+"_dlq",
		)
		if err != nil {
			return nil, err
		}
		router.AddMiddleware(poisonQueue)
	}

	router.AddMiddleware(
		middleware.Recoverer,
		middleware.CorrelationID,
		middleware.Retry{
			MaxRetries:          cfg.Alert.MaxRetries,
			InitialInterval:     cfg.Alert.InitialInterval,
			MaxInterval:         cfg.Alert.MaxInterval,
			Multiplier:          cfg.Alert.Multiplier,
			MaxElapsedTime:      cfg.Alert.MaxElapsedTime,
			RandomizationFactor: 0.5,
			Logger:              wmLogger,
			OnRetryHook: func(retryNum int, delay time.Duration) {
				logger.Infow("retrying alert delivery",
					"retry_number", retryNum,
					"max_retries", cfg.Alert.MaxRetries,
					"delay", delay,
				)
			},
		}.Middleware,
	)

	return &Router{
		router: router,
		logger: logger,
		sentry: sentryService,
		config: &cfg.Alert,
	}, nil
}

// AddNoPublishHandler registers a consuming handler that emits no
// outgoing messages. Failures are reported to Sentry before the retry
// middleware sees them.
func (r *Router) AddNoPublishHandler(
	handlerName string,
	topicName string,
	subscriber message.Subscriber,
	handlerFunc func(msg *message.Message) error,
	middlewares ...message.HandlerMiddleware,
) {
	handler := r.router.AddNoPublisherHandler(
		handlerName,
		topicName,
		subscriber,
		func(msg *message.Message) error {
			err := handlerFunc(msg)
			if err != nil {
				r.sentry.CaptureException(err)
				r.logger.Errorw("alert handler failed",
					"error", err,
					"correlation_id", middleware.MessageCorrelationID(msg),
					"message_uuid", msg.UUID,
				)
			}
			return err
		},
	)

	for _, mw := range middlewares {
		handler.AddMiddleware(mw)
	}
}

// Run blocks until the router stops
func (r *Router) Run() error {
	r.logger.Info("alert router starting")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	return r.router.Run(ctx)
}

// Close stops the router and its subscribers
func (r *Router) Close() error {
	r.logger.Info("alert router closing")
	return r.router.Close()
}

// dlqPublisher adapts the alert pubsub to watermill's Publisher so the
// poison queue can write to a real topic. Close is a no-op because the
// pubsub is owned by the fx lifecycle.
type dlqPublisher struct {
	ps pubsub.Publisher
}

func (p dlqPublisher) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		if err := p.ps.Publish(context.Background(), topic, msg); err != nil {
			return err
		}
	}
	return nil
}

func (p dlqPublisher) Close() error {
	return nil
}
