package alert

import (
	"fmt"

	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/kafka"
	"github.com/ekko-ai/agentgate/internal/logger"
	pubsubKafka "github.com/ekko-ai/agentgate/internal/pubsub/kafka"
	"github.com/ekko-ai/agentgate/internal/pubsub/memory"
	"github.com/ekko-ai/agentgate/internal/types"
	"go.uber.org/fx"
)

// Module provides all ops alert dependencies
var Module = fx.Options(
	fx.Provide(
		// PubSub for delivering alert events
		providePubSub,

		// Publisher invoked on agent health transitions
		NewPublisher,

		// Handler delivering alerts to the ops endpoint
		NewHandler,

		// Main alert service
		NewService,
	),
)

func providePubSub(
	cfg *config.Configuration,
	logger *logger.Logger,
	producer *kafka.Producer,
	consumer *kafka.Consumer,
) (types.OpsAlertPubSub, error) {
	switch cfg.Alert.PubSub {
	case types.MemoryPubSub:
		return types.OpsAlertPubSub{PubSub: memory.NewPubSub(logger)}, nil
	case types.KafkaPubSub:
		if producer == nil || consumer == nil {
			return types.OpsAlertPubSub{}, fmt.Errorf("kafka is not initialized but it is the alert pubsub")
		}
		return types.OpsAlertPubSub{PubSub: pubsubKafka.NewPubSub(cfg, logger, producer, consumer)}, nil
	}
	return types.OpsAlertPubSub{}, fmt.Errorf("unsupported pubsub type: %s", cfg.Alert.PubSub)
}
