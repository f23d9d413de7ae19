package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/domain/requestlog"
	"github.com/ekko-ai/agentgate/internal/kafka"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/pubsub"
	"github.com/ekko-ai/agentgate/internal/types"
	"go.uber.org/zap"
)

// EventPublisher handles request event publishing across the configured destination
type EventPublisher interface {
	Publish(ctx context.Context, event *requestlog.RequestEvent) error
}

type eventPublisher struct {
	kafkaPublisher  *kafka.EventPublisher
	streamPublisher pubsub.Publisher
	logger          *logger.Logger
	config          *config.EventConfig
	topic           string
	mu              sync.RWMutex
}

// NewEventPublisher creates a new publisher for dispatch telemetry.
// Destination kafka publishes through the shared producer, memory feeds
// the in-process stream used in local mode, noop drops events.
func NewEventPublisher(
	cfg *config.Configuration,
	logger *logger.Logger,
	kafkaProducer *kafka.Producer,
	stream pubsub.PubSub,
) (EventPublisher, error) {
	publisher := &eventPublisher{
		logger: logger,
		config: &cfg.Event,
		topic:  cfg.Kafka.Topic,
	}

	switch cfg.Event.PublishDestination {
	case types.PublishToKafka:
		if kafkaProducer == nil {
			return nil, fmt.Errorf("kafka producer is not initialized but it is the publish destination")
		}
		publisher.kafkaPublisher = kafka.NewEventPublisher(kafkaProducer, cfg, logger)
	case types.PublishToMemory:
		if stream == nil {
			return nil, fmt.Errorf("memory stream is not initialized but it is the publish destination")
		}
		publisher.streamPublisher = stream
	case types.PublishToNoop:
		// Events are dropped, used by scripts and tests
	default:
		return nil, fmt.Errorf("unknown publish destination: %s", cfg.Event.PublishDestination)
	}

	return publisher, nil
}

func (s *eventPublisher) Publish(ctx context.Context, event *requestlog.RequestEvent) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.logger.With(
		zap.String("event_id", event.ID),
		zap.String("request_id", event.RequestID),
		zap.String("destination", string(s.config.PublishDestination)),
	).Debug("publishing request event")

	switch s.config.PublishDestination {
	case types.PublishToKafka:
		return s.kafkaPublisher.Publish(ctx, event)
	case types.PublishToMemory:
		return s.publishToStream(ctx, event)
	case types.PublishToNoop:
		return nil
	default:
		return fmt.Errorf("unknown publish destination: %s", s.config.PublishDestination)
	}
}

func (s *eventPublisher) publishToStream(ctx context.Context, event *requestlog.RequestEvent) error {
	if event.ID == "" {
		event.ID = watermill.NewUUID()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal request event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set(kafka.PartitionKeyMetadataField, event.PartitionKey())

	return s.streamPublisher.Publish(ctx, s.topic, msg)
}
