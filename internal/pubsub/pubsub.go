package pubsub

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Publisher pushes messages onto a topic
type Publisher interface {
	Publish(ctx context.Context, topic string, msg *message.Message) error
	Close() error
}

// Subscriber delivers messages from a topic on a channel that stays
// open until the context is cancelled or the subscriber is closed
type Subscriber interface {
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	Close() error
}

// PubSub is a Publisher and Subscriber backed by the same transport
type PubSub interface {
	Publisher
	Subscriber
}
