package kafka

import (
	"time"

	"github.com/Shopify/sarama"
	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/types"
)

// Required reports whether any configured pipeline talks to kafka.
// Memory-only deployments skip the broker connection entirely.
func Required(cfg *config.Configuration) bool {
	return cfg.Event.PublishDestination == types.PublishToKafka ||
		cfg.Alert.PubSub == types.KafkaPubSub ||
		cfg.Deployment.Mode == types.ModeConsumer
}

func GetSaramaConfig(cfg *config.Configuration) *sarama.Config {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V2_1_0_0

	saramaConfig.ClientID = cfg.Kafka.ClientID

	// Required by sarama's SyncProducer
	saramaConfig.Producer.Return.Successes = true

	// Consumers with no committed offset start from the earliest message
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest

	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = 5000 * time.Millisecond

	saramaConfig.Consumer.Offsets.Retry.Max = 3
	saramaConfig.Consumer.Return.Errors = true

	if !cfg.Kafka.UseSASL {
		return saramaConfig
	}

	// Managed brokers require SASL over TLS
	saramaConfig.Net.SASL.Enable = true
	saramaConfig.Net.TLS.Enable = true
	saramaConfig.Net.SASL.Mechanism = cfg.Kafka.SASLMechanism
	saramaConfig.Net.SASL.User = cfg.Kafka.SASLUser
	saramaConfig.Net.SASL.Password = cfg.Kafka.SASLPassword

	return saramaConfig
}
