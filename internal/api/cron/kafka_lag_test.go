package cron

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/kafka"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/types"
)

func newLagConfig() *config.Configuration {
	cfg := &config.Configuration{
		Deployment: config.DeploymentConfig{Mode: types.ModeLocal},
		Kafka: config.KafkaConfig{
			Brokers:       []string{"localhost:29092"},
			ConsumerGroup: "agentgate-local",
			Topic:         "agent_requests",
		},
	}
	cfg.Event.PublishDestination = types.PublishToMemory
	cfg.Alert.PubSub = types.MemoryPubSub
	cfg.Alert.Topic = "ops_alerts"
	return cfg
}

func newLagHandler(cfg *config.Configuration) *KafkaLagHandler {
	log := logger.GetLogger()
	return NewKafkaLagHandler(cfg, kafka.NewMonitoringService(cfg, log), log)
}

func TestKafkaLagSkippedWithoutKafka(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/cron/kafka-lag", newLagHandler(newLagConfig()).HandleKafkaLagMonitoring)

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodPost, "/cron/kafka-lag", nil)
	require.NoError(t, err)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"skipped"`)
}

func TestKafkaLagMonitoredTopics(t *testing.T) {
	cfg := newLagConfig()
	h := newLagHandler(cfg)
	assert.Empty(t, h.monitoredTopics())

	cfg.Event.PublishDestination = types.PublishToKafka
	assert.Equal(t, []string{"agent_requests"}, h.monitoredTopics())

	cfg.Alert.PubSub = types.KafkaPubSub
	assert.Equal(t, []string{"agent_requests", "ops_alerts"}, h.monitoredTopics())

	cfg.Event.PublishDestination = types.PublishToMemory
	cfg.Deployment.Mode = types.ModeConsumer
	assert.Equal(t, []string{"agent_requests", "ops_alerts"}, h.monitoredTopics())
}
