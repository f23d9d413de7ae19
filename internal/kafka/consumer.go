package kafka

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ekko-ai/agentgate/internal/config"
)

// Consumer wraps a watermill Kafka subscriber behind the small surface
// the rest of the gateway needs
type Consumer struct {
	subscriber message.Subscriber
}

// NewConsumer returns a nil consumer without error when Kafka is not
// part of the deployment, so memory-only setups can still resolve the
// dependency graph.
func NewConsumer(cfg *config.Configuration) (*Consumer, error) {
	if !Required(cfg) {
		return nil, nil
	}

	sub, err := kafka.NewSubscriber(kafka.SubscriberConfig{
		Brokers:               cfg.Kafka.Brokers,
		ConsumerGroup:         cfg.Kafka.ConsumerGroup,
		Unmarshaler:           kafka.DefaultMarshaler{},
		OverwriteSaramaConfig: GetSaramaConfig(cfg),
	}, watermill.NewStdLogger(false, false))
	if err != nil {
		return nil, err
	}

	return &Consumer{subscriber: sub}, nil
}

func (c *Consumer) Subscribe(topic string) (<-chan *message.Message, error) {
	return c.subscriber.Subscribe(context.Background(), topic)
}

func (c *Consumer) Close() error {
	return c.subscriber.Close()
}
