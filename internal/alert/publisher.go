package alert

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/types"
)

// Publisher interface for producing ops alert events
type Publisher interface {
	PublishAlert(ctx context.Context, event *types.AlertEvent) error
	Close() error
}

type alertPublisher struct {
	pubSub types.OpsAlertPubSub
	config *config.AlertConfig
	logger *logger.Logger
}

// NewPublisher creates a new alert publisher
func NewPublisher(
	pubSub types.OpsAlertPubSub,
	cfg *config.Configuration,
	logger *logger.Logger,
) (Publisher, error) {
	return &alertPublisher{
		pubSub: pubSub,
		config: &cfg.Alert,
		logger: logger,
	}, nil
}

func (p *alertPublisher) PublishAlert(ctx context.Context, event *types.AlertEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	messageID := event.ID
	if messageID == "" {
		messageID = watermill.NewUUID()
	}

	msg := message.NewMessage(messageID, payload)
	msg.Metadata.Set("agent_type", event.AgentType.String())

	p.logger.Debugw("publishing alert event",
		"alert_id", event.ID,
		"event_name", event.EventName,
		"agent_type", event.AgentType,
		"topic", p.config.Topic,
	)

	if err := p.pubSub.Publish(ctx, p.config.Topic, msg); err != nil {
		p.logger.Errorw("failed to publish alert event",
			"error", err,
			"alert_id", event.ID,
			"event_name", event.EventName,
			"agent_type", event.AgentType,
		)
		return err
	}

	p.logger.Infow("successfully published alert event",
		"alert_id", event.ID,
		"event_name", event.EventName,
		"agent_type", event.AgentType,
	)

	return nil
}

// Close closes the publisher
func (p *alertPublisher) Close() error {
	return p.pubSub.Close()
}
