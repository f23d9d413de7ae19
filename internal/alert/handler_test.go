package alert

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/sentry"
	"github.com/ekko-ai/agentgate/internal/testutil"
	"github.com/ekko-ai/agentgate/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, endpoint string) (*handler, *testutil.MockHTTPClient) {
	t.Helper()

	cfg := &config.Configuration{}
	cfg.Alert.Enabled = true
	cfg.Alert.Topic = "ops_alerts"
	cfg.Alert.Endpoint = endpoint
	cfg.Alert.Headers = map[string]string{"Authorization": "Bearer ops-token"}

	log := logger.GetLogger()
	client := testutil.NewMockHTTPClient()
	h, err := NewHandler(
		types.OpsAlertPubSub{PubSub: testutil.NewInMemoryPubSub()},
		cfg,
		client,
		log,
		sentry.NewSentryService(cfg, log),
	)
	require.NoError(t, err)
	return h.(*handler), client
}

func alertMessage(t *testing.T, event *types.AlertEvent) *message.Message {
	t.Helper()

	payload, err := json.Marshal(event)
	require.NoError(t, err)
	return message.NewMessage(event.ID, payload)
}

func TestHandlerDeliversAlert(t *testing.T) {
	h, client := newTestHandler(t, "http://ops.ekko.internal/alerts")
	client.RegisterResponse("/alerts", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"ok":true}`),
	})

	event := types.NewAlertEvent("analyse", types.HealthStatusUnknown, types.HealthStatusUnhealthy, "connection refused", time.Now().UTC())
	err := h.processMessage(alertMessage(t, event))
	require.NoError(t, err)

	require.Equal(t, 1, client.CallCount("/alerts"))
	last := client.LastRequest()
	assert.Equal(t, http.MethodPost, last.Method)
	assert.Equal(t, "http://ops.ekko.internal/alerts", last.URL)
	assert.Equal(t, "Bearer ops-token", last.Headers["Authorization"])

	// The payload forwarded to ops is the alert event as published
	var delivered types.AlertEvent
	require.NoError(t, json.Unmarshal(last.Body, &delivered))
	assert.Equal(t, event.ID, delivered.ID)
	assert.Equal(t, types.AlertAgentUnhealthy, delivered.EventName)
}

func TestHandlerReturnsDeliveryErrors(t *testing.T) {
	h, client := newTestHandler(t, "http://ops.ekko.internal/alerts")
	client.RegisterResponse("/alerts", testutil.MockResponse{
		StatusCode: http.StatusServiceUnavailable,
		Body:       []byte("down"),
	})

	event := types.NewAlertEvent("pages", types.HealthStatusHealthy, types.HealthStatusUnhealthy, "boom", time.Now().UTC())

	// Delivery failures propagate so the router can retry
	err := h.processMessage(alertMessage(t, event))
	require.Error(t, err)
}

func TestHandlerLogsWhenNoEndpointConfigured(t *testing.T) {
	h, client := newTestHandler(t, "")

	event := types.NewAlertEvent("contenu", types.HealthStatusUnhealthy, types.HealthStatusHealthy, "", time.Now().UTC())
	require.NoError(t, h.processMessage(alertMessage(t, event)))

	assert.Empty(t, client.Requests())
}

func TestHandlerAcksMalformedAlerts(t *testing.T) {
	h, client := newTestHandler(t, "http://ops.ekko.internal/alerts")

	// A payload that cannot be decoded will never succeed, ack it
	require.NoError(t, h.processMessage(message.NewMessage("uuid-1", []byte("{not-json"))))
	assert.Empty(t, client.Requests())
}
