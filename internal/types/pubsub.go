package types

import "github.com/ekko-ai/agentgate/internal/pubsub"

// PubSubType defines the type of pubsub implementation
type PubSubType string

const (
	// MemoryPubSub uses in-memory implementation
	MemoryPubSub PubSubType = "memory"

	// KafkaPubSub uses Kafka implementation
	KafkaPubSub PubSubType = "kafka"
)

// OpsAlertPubSub is the pubsub used for agent health alerts so fx can
// distinguish it from the request event pipeline
type OpsAlertPubSub struct {
	pubsub.PubSub
}
