package alert

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/testutil"
	"github.com/ekko-ai/agentgate/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishAlert(t *testing.T) {
	cfg := &config.Configuration{}
	cfg.Alert.Enabled = true
	cfg.ApplyDefaults()

	ps := testutil.NewInMemoryPubSub()
	pub, err := NewPublisher(types.OpsAlertPubSub{PubSub: ps}, cfg, logger.GetLogger())
	require.NoError(t, err)

	event := types.NewAlertEvent("analyse", types.HealthStatusHealthy, types.HealthStatusUnhealthy, "timeout", time.Now().UTC())
	require.NoError(t, pub.PublishAlert(context.Background(), event))

	msgs := ps.GetMessages(cfg.Alert.Topic)
	require.Len(t, msgs, 1)
	assert.Equal(t, event.ID, msgs[0].UUID)
	assert.Equal(t, "analyse", msgs[0].Metadata.Get("agent_type"))

	var decoded types.AlertEvent
	require.NoError(t, json.Unmarshal(msgs[0].Payload, &decoded))
	assert.Equal(t, types.AlertAgentUnhealthy, decoded.EventName)
	assert.Equal(t, types.HealthStatusHealthy, decoded.From)
	assert.Equal(t, types.HealthStatusUnhealthy, decoded.To)
	assert.Equal(t, "timeout", decoded.Error)
}
