package cron

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/kafka"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/types"
)

// KafkaLagHandler reports consumer lag for the gateway's kafka pipelines so a
// scheduled job can watch how far the request log and alert consumers have
// fallen behind the dispatcher.
type KafkaLagHandler struct {
	logger     *logger.Logger
	config     *config.Configuration
	monitoring *kafka.MonitoringService
}

func NewKafkaLagHandler(cfg *config.Configuration, monitoring *kafka.MonitoringService, logger *logger.Logger) *KafkaLagHandler {
	return &KafkaLagHandler{
		logger:     logger,
		config:     cfg,
		monitoring: monitoring,
	}
}

// monitoredTopics lists the topics the configured deployment actually
// consumes. Pipelines running on the in-process pubsub have no broker lag.
func (h *KafkaLagHandler) monitoredTopics() []string {
	topics := make([]string, 0, 2)
	if h.config.Event.PublishDestination == types.PublishToKafka ||
		h.config.Deployment.Mode == types.ModeConsumer {
		topics = append(topics, h.config.Kafka.Topic)
	}
	if h.config.Alert.PubSub == types.KafkaPubSub {
		topics = append(topics, h.config.Alert.Topic)
	}
	return topics
}

// HandleKafkaLagMonitoring is the HTTP handler for the kafka lag cron
// endpoint. It reports lag for every topic the deployment consumes.
func (h *KafkaLagHandler) HandleKafkaLagMonitoring(c *gin.Context) {
	ctx := c.Request.Context()

	if !kafka.Required(h.config) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "skipped",
			"message": "kafka is not configured for this deployment",
		})
		return
	}

	h.logger.Infow("kafka lag monitoring job started")

	lags := make([]*kafka.ConsumerLag, 0, 2)
	for _, topic := range h.monitoredTopics() {
		lag, err := h.monitoring.GetConsumerLag(ctx, topic, h.config.Kafka.ConsumerGroup)
		if err != nil {
			h.logger.Errorw("kafka lag monitoring job failed",
				"topic", topic,
				"error", err)
			c.Error(err)
			return
		}

		h.logger.Infow("consumer lag measured",
			"topic", lag.Topic,
			"consumer_group", lag.ConsumerGroup,
			"total_lag", lag.TotalLag)
		lags = append(lags, lag)
	}

	h.logger.Infow("kafka lag monitoring job completed successfully")
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"lags":   lags,
	})
}
