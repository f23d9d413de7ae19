package registry

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/domain/agent"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/testutil"
	"github.com/ekko-ai/agentgate/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMonitor(t *testing.T, interval time.Duration) (*Monitor, agent.Registry, *testutil.MockHTTPClient) {
	t.Helper()
	cfg := &config.Configuration{
		Logging: config.LoggingConfig{Level: types.LogLevelInfo},
		Health: config.HealthConfig{
			Interval: interval,
			Timeout:  time.Second,
		},
		Agents: config.DefaultAgents(),
	}

	reg, err := NewRegistry(cfg, logger.GetLogger())
	require.NoError(t, err)

	client := testutil.NewMockHTTPClient()
	monitor := NewMonitor(reg, client, cfg, logger.GetLogger())
	return monitor, reg, client
}

func TestMonitorCheckAgentSuccess(t *testing.T) {
	monitor, reg, client := newTestMonitor(t, time.Minute)
	ctx := context.Background()

	client.RegisterJSONResponse(":5003/health", http.StatusOK, agent.HealthPayload{
		Status:  "OK",
		Service: "Ekko Content AI Agent",
		Version: "1.0.0",
	})

	health, err := monitor.CheckAgent(ctx, "contenu")
	require.NoError(t, err)

	assert.Equal(t, types.HealthStatusHealthy, health.Status)
	assert.Equal(t, int64(1), health.SuccessCount)
	assert.Equal(t, "Ekko Content AI Agent", health.Service)
	assert.Equal(t, "1.0.0", health.Version)
	assert.False(t, health.LastCheckedAt.IsZero())

	// The ping hit the agent's health endpoint
	last := client.LastRequest()
	require.NotNil(t, last)
	assert.Equal(t, http.MethodGet, last.Method)
	assert.Equal(t, "http://localhost:5003/health", last.URL)

	// The registry carries the same state
	stored, err := reg.GetHealth(ctx, "contenu")
	require.NoError(t, err)
	assert.Equal(t, types.HealthStatusHealthy, stored.Status)
}

func TestMonitorCheckAgentNonJSONBody(t *testing.T) {
	monitor, _, client := newTestMonitor(t, time.Minute)
	ctx := context.Background()

	// A plain text body is still a passing check, only service identity
	// goes unparsed
	client.RegisterResponse(":5003/health", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       []byte("OK"),
	})

	health, err := monitor.CheckAgent(ctx, "contenu")
	require.NoError(t, err)
	assert.Equal(t, types.HealthStatusHealthy, health.Status)
	assert.Empty(t, health.Service)
	assert.Empty(t, health.Version)
}

func TestMonitorCheckAgentFailure(t *testing.T) {
	monitor, _, client := newTestMonitor(t, time.Minute)
	ctx := context.Background()

	client.RegisterResponse(":5004/health", testutil.MockResponse{
		StatusCode: http.StatusServiceUnavailable,
		Body:       []byte("down for maintenance"),
	})

	health, err := monitor.CheckAgent(ctx, "analyse")
	require.NoError(t, err)

	assert.Equal(t, types.HealthStatusUnhealthy, health.Status)
	assert.Equal(t, int64(1), health.ErrorCount)
	assert.NotEmpty(t, health.LastError)
}

func TestMonitorCheckAgentUnreachable(t *testing.T) {
	monitor, _, _ := newTestMonitor(t, time.Minute)
	ctx := context.Background()

	// No mock routes registered, the ping fails like a connection error
	health, err := monitor.CheckAgent(ctx, "pages")
	require.NoError(t, err)
	assert.Equal(t, types.HealthStatusUnhealthy, health.Status)
	assert.NotEmpty(t, health.LastError)
}

func TestMonitorCheckAgentUnknownType(t *testing.T) {
	monitor, _, _ := newTestMonitor(t, time.Minute)

	_, err := monitor.CheckAgent(context.Background(), "inconnu")
	assert.Error(t, err)
}

func TestMonitorCheckAll(t *testing.T) {
	monitor, reg, client := newTestMonitor(t, time.Minute)
	ctx := context.Background()

	healthy := agent.HealthPayload{Status: "OK", Version: "1.0.0"}
	client.RegisterJSONResponse(":5002/health", http.StatusOK, healthy)
	client.RegisterJSONResponse(":5003/health", http.StatusOK, healthy)
	client.RegisterResponse(":5004/health", testutil.MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       []byte("boom"),
	})
	// pages stays unregistered and reads as unreachable

	monitor.CheckAll(ctx)

	expected := map[types.AgentType]types.HealthStatus{
		"publicite": types.HealthStatusHealthy,
		"contenu":   types.HealthStatusHealthy,
		"analyse":   types.HealthStatusUnhealthy,
		"pages":     types.HealthStatusUnhealthy,
	}
	for agentType, want := range expected {
		health, err := reg.GetHealth(ctx, agentType)
		require.NoError(t, err)
		assert.Equal(t, want, health.Status, "agent %s", agentType)
	}
}

func TestMonitorStartStop(t *testing.T) {
	monitor, reg, client := newTestMonitor(t, 10*time.Millisecond)
	ctx := context.Background()

	healthy := agent.HealthPayload{Status: "OK"}
	client.RegisterJSONResponse(":5002/health", http.StatusOK, healthy)
	client.RegisterJSONResponse(":5003/health", http.StatusOK, healthy)
	client.RegisterJSONResponse(":5004/health", http.StatusOK, healthy)
	client.RegisterJSONResponse(":5005/health", http.StatusOK, healthy)

	require.NoError(t, monitor.Start(ctx))

	// The first sweep runs immediately, give the ticker time for more
	assert.Eventually(t, func() bool {
		health, err := reg.GetHealth(ctx, "contenu")
		if err != nil {
			return false
		}
		return health.SuccessCount >= 2
	}, time.Second, 5*time.Millisecond)

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, monitor.Stop(stopCtx))

	for _, agentType := range []types.AgentType{"contenu", "publicite", "analyse", "pages"} {
		health, err := reg.GetHealth(ctx, agentType)
		require.NoError(t, err)
		assert.Equal(t, types.HealthStatusHealthy, health.Status)
	}
}

func TestMonitorStopWithoutStart(t *testing.T) {
	monitor, _, _ := newTestMonitor(t, time.Minute)
	assert.NoError(t, monitor.Stop(context.Background()))
}
