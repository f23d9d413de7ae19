package kafka

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/domain/requestlog"
	ierr "github.com/ekko-ai/agentgate/internal/errors"
	"github.com/ekko-ai/agentgate/internal/logger"
	"go.uber.org/zap"
)

type EventPublisher struct {
	producer *Producer
	logger   *logger.Logger
	config   *config.KafkaConfig
}

func NewEventPublisher(producer *Producer, cfg *config.Configuration, logger *logger.Logger) *EventPublisher {
	return &EventPublisher{
		producer: producer,
		logger:   logger,
		config:   &cfg.Kafka,
	}
}

func (p *EventPublisher) Publish(ctx context.Context, event *requestlog.RequestEvent) error {
	// Assign the ID before marshaling so the payload carries it
	if event.ID == "" {
		event.ID = watermill.NewUUID()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to marshal request event").
			Mark(ierr.ErrValidation)
	}

	p.logger.With(
		zap.String("event_id", event.ID),
		zap.String("request_id", event.RequestID),
		zap.String("tenant_id", event.TenantID),
	).Debug("publishing request event to kafka")

	msg := message.NewMessage(event.ID, payload)

	// Events for the same request land on the same partition so the
	// request log sees them in order.
	msg.Metadata.Set(PartitionKeyMetadataField, event.PartitionKey())

	if err := p.producer.Publish(p.config.Topic, msg); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to publish request event").
			Mark(ierr.ErrSystem)
	}
	return nil
}
