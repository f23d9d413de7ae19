package registry

import (
	"context"
	"testing"
	"time"

	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/domain/agent"
	ierr "github.com/ekko-ai/agentgate/internal/errors"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T, agents map[string]config.AgentConfig) agent.Registry {
	t.Helper()
	cfg := &config.Configuration{
		Logging: config.LoggingConfig{Level: types.LogLevelInfo},
		Agents:  agents,
	}
	reg, err := NewRegistry(cfg, logger.GetLogger())
	require.NoError(t, err)
	return reg
}

// routingFleet is a small fleet where contenu and pages both advertise
// landing-pages, which exercises the capability selection rules
func routingFleet() map[string]config.AgentConfig {
	return map[string]config.AgentConfig{
		"contenu": {
			Name:         "Content Creator Agent",
			BaseURL:      "http://localhost:5003",
			Capabilities: []string{"content-generation", "landing-pages"},
		},
		"pages": {
			Name:         "Page Generator Agent",
			BaseURL:      "http://localhost:5005",
			Capabilities: []string{"landing-pages", "page-generation"},
		},
		"analyse": {
			Name:         "Analysis Agent",
			BaseURL:      "http://localhost:5004",
			Capabilities: []string{"website-audit"},
		},
	}
}

func recordPing(t *testing.T, reg agent.Registry, agentType types.AgentType, success bool) {
	t.Helper()
	result := agent.CheckResult{
		Success:        success,
		StatusCode:     200,
		ResponseTimeMs: 12,
		CheckedAt:      time.Now().UTC(),
	}
	if !success {
		result.StatusCode = 503
		result.Error = "connection refused"
	}
	_, err := reg.RecordHealthCheck(context.Background(), agentType, result)
	require.NoError(t, err)
}

func TestNewRegistry(t *testing.T) {
	reg := newTestRegistry(t, config.DefaultAgents())
	ctx := context.Background()

	agents := reg.List(ctx)
	assert.Len(t, agents, 4)

	// List returns agents in sorted type order
	var order []types.AgentType
	for _, a := range agents {
		order = append(order, a.Type)
	}
	assert.Equal(t, []types.AgentType{"analyse", "contenu", "pages", "publicite"}, order)
}

func TestNewRegistryRejectsInvalidAgent(t *testing.T) {
	cfg := &config.Configuration{
		Logging: config.LoggingConfig{Level: types.LogLevelInfo},
		Agents: map[string]config.AgentConfig{
			"contenu": {Name: "Content Creator Agent"}, // no base URL
		},
	}

	_, err := NewRegistry(cfg, logger.GetLogger())
	assert.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestRegistryGet(t *testing.T) {
	reg := newTestRegistry(t, config.DefaultAgents())
	ctx := context.Background()

	a, err := reg.Get(ctx, "contenu")
	require.NoError(t, err)
	assert.Equal(t, types.AgentType("contenu"), a.Type)
	assert.Equal(t, "http://localhost:5003", a.BaseURL)
	assert.Equal(t, types.StatusPublished, a.Status)

	_, err = reg.Get(ctx, "inconnu")
	assert.Error(t, err)
	assert.True(t, ierr.IsNotFound(err))
}

func TestRegistryListExcludesDisabledAgents(t *testing.T) {
	agents := config.DefaultAgents()
	disabled := agents["pages"]
	disabled.Disabled = true
	agents["pages"] = disabled

	reg := newTestRegistry(t, agents)
	ctx := context.Background()

	listed := reg.List(ctx)
	assert.Len(t, listed, 3)
	for _, a := range listed {
		assert.NotEqual(t, types.AgentType("pages"), a.Type)
	}

	// The agent still resolves directly, it is just not published
	a, err := reg.Get(ctx, "pages")
	require.NoError(t, err)
	assert.Equal(t, types.StatusArchived, a.Status)
}

func TestRegistryGetHealth(t *testing.T) {
	reg := newTestRegistry(t, config.DefaultAgents())
	ctx := context.Background()

	health, err := reg.GetHealth(ctx, "contenu")
	require.NoError(t, err)
	assert.Equal(t, types.HealthStatusUnknown, health.Status)
	assert.Zero(t, health.SuccessCount)
	assert.Zero(t, health.ErrorCount)

	// The returned health is a copy, mutating it must not leak back
	health.SuccessCount = 99
	again, err := reg.GetHealth(ctx, "contenu")
	require.NoError(t, err)
	assert.Zero(t, again.SuccessCount)

	_, err = reg.GetHealth(ctx, "inconnu")
	assert.True(t, ierr.IsNotFound(err))
}

func TestRecordHealthCheck(t *testing.T) {
	reg := newTestRegistry(t, config.DefaultAgents())
	ctx := context.Background()

	health, err := reg.RecordHealthCheck(ctx, "contenu", agent.CheckResult{
		Success:        true,
		StatusCode:     200,
		ResponseTimeMs: 45,
		Service:        "Ekko Content AI Agent",
		Version:        "1.2.0",
		CheckedAt:      time.Now().UTC(),
	})
	require.NoError(t, err)

	assert.Equal(t, types.HealthStatusHealthy, health.Status)
	assert.Equal(t, int64(1), health.SuccessCount)
	assert.Equal(t, int64(45), health.ResponseTimeMs)
	assert.Equal(t, "Ekko Content AI Agent", health.Service)
	assert.Equal(t, "1.2.0", health.Version)
	assert.Empty(t, health.LastError)
	assert.False(t, health.LastCheckedAt.IsZero())

	health, err = reg.RecordHealthCheck(ctx, "contenu", agent.CheckResult{
		Success:   false,
		Error:     "connection refused",
		CheckedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	assert.Equal(t, types.HealthStatusUnhealthy, health.Status)
	assert.Equal(t, int64(1), health.ErrorCount)
	assert.Equal(t, "connection refused", health.LastError)
	// Service identity from the last good ping is retained
	assert.Equal(t, "Ekko Content AI Agent", health.Service)

	_, err = reg.RecordHealthCheck(ctx, "inconnu", agent.CheckResult{Success: true})
	assert.True(t, ierr.IsNotFound(err))
}

func TestRecordHealthCheckTransitions(t *testing.T) {
	reg := newTestRegistry(t, config.DefaultAgents())

	type transition struct {
		agentType types.AgentType
		from      types.HealthStatus
		to        types.HealthStatus
	}
	var seen []transition
	reg.OnTransition(func(ctx context.Context, a *agent.Agent, from, to types.HealthStatus, health *agent.Health) {
		seen = append(seen, transition{a.Type, from, to})
	})

	recordPing(t, reg, "contenu", true)  // unknown -> healthy
	recordPing(t, reg, "contenu", true)  // healthy -> healthy, no transition
	recordPing(t, reg, "contenu", false) // healthy -> unhealthy
	recordPing(t, reg, "contenu", false) // unhealthy -> unhealthy, no transition
	recordPing(t, reg, "contenu", true)  // unhealthy -> healthy

	assert.Equal(t, []transition{
		{"contenu", types.HealthStatusUnknown, types.HealthStatusHealthy},
		{"contenu", types.HealthStatusHealthy, types.HealthStatusUnhealthy},
		{"contenu", types.HealthStatusUnhealthy, types.HealthStatusHealthy},
	}, seen)
}

func TestRecordSuccessAndFailure(t *testing.T) {
	reg := newTestRegistry(t, config.DefaultAgents())
	ctx := context.Background()

	reg.RecordSuccess(ctx, "analyse", 120)
	reg.RecordSuccess(ctx, "analyse", 80)
	reg.RecordFailure(ctx, "analyse", "upstream timeout")

	health, err := reg.GetHealth(ctx, "analyse")
	require.NoError(t, err)
	assert.Equal(t, int64(2), health.SuccessCount)
	assert.Equal(t, int64(1), health.ErrorCount)
	assert.Equal(t, int64(80), health.ResponseTimeMs)
	assert.Equal(t, "upstream timeout", health.LastError)

	// Dispatch outcomes never flip the health status, only pings do
	assert.Equal(t, types.HealthStatusUnknown, health.Status)

	// Unknown agents are ignored silently
	reg.RecordSuccess(ctx, "inconnu", 10)
	reg.RecordFailure(ctx, "inconnu", "boom")
}

func TestFindForCapability(t *testing.T) {
	ctx := context.Background()

	t.Run("no_healthy_agent", func(t *testing.T) {
		reg := newTestRegistry(t, routingFleet())

		_, err := reg.FindForCapability(ctx, "landing-pages")
		assert.Error(t, err)
		assert.True(t, ierr.IsAgentUnavailable(err))
	})

	t.Run("unknown_capability", func(t *testing.T) {
		reg := newTestRegistry(t, routingFleet())
		recordPing(t, reg, "contenu", true)

		_, err := reg.FindForCapability(ctx, "video-editing")
		assert.True(t, ierr.IsAgentUnavailable(err))
	})

	t.Run("empty_capability", func(t *testing.T) {
		reg := newTestRegistry(t, routingFleet())

		_, err := reg.FindForCapability(ctx, "")
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("single_healthy_candidate", func(t *testing.T) {
		reg := newTestRegistry(t, routingFleet())
		recordPing(t, reg, "pages", true)

		a, err := reg.FindForCapability(ctx, "landing-pages")
		require.NoError(t, err)
		assert.Equal(t, types.AgentType("pages"), a.Type)
	})

	t.Run("unhealthy_candidates_are_skipped", func(t *testing.T) {
		reg := newTestRegistry(t, routingFleet())
		recordPing(t, reg, "contenu", false)
		recordPing(t, reg, "pages", true)

		// contenu would win the tie break but it failed its last ping
		a, err := reg.FindForCapability(ctx, "landing-pages")
		require.NoError(t, err)
		assert.Equal(t, types.AgentType("pages"), a.Type)
	})

	t.Run("lowest_error_rate_wins", func(t *testing.T) {
		reg := newTestRegistry(t, routingFleet())
		recordPing(t, reg, "contenu", true)
		recordPing(t, reg, "pages", true)

		// contenu now carries a 50% error rate, pages stays at 0%
		reg.RecordFailure(ctx, "contenu", "boom")

		a, err := reg.FindForCapability(ctx, "landing-pages")
		require.NoError(t, err)
		assert.Equal(t, types.AgentType("pages"), a.Type)
	})

	t.Run("ties_resolve_in_sorted_type_order", func(t *testing.T) {
		reg := newTestRegistry(t, routingFleet())
		recordPing(t, reg, "contenu", true)
		recordPing(t, reg, "pages", true)

		// Both candidates sit at a 0% error rate
		a, err := reg.FindForCapability(ctx, "landing-pages")
		require.NoError(t, err)
		assert.Equal(t, types.AgentType("contenu"), a.Type)

		// Selection is stable across repeated calls
		again, err := reg.FindForCapability(ctx, "landing-pages")
		require.NoError(t, err)
		assert.Equal(t, a.Type, again.Type)
	})

	t.Run("disabled_agents_are_never_candidates", func(t *testing.T) {
		fleet := routingFleet()
		disabled := fleet["contenu"]
		disabled.Disabled = true
		fleet["contenu"] = disabled

		reg := newTestRegistry(t, fleet)
		recordPing(t, reg, "pages", true)

		a, err := reg.FindForCapability(ctx, "landing-pages")
		require.NoError(t, err)
		assert.Equal(t, types.AgentType("pages"), a.Type)

		_, err = reg.FindForCapability(ctx, "content-generation")
		assert.True(t, ierr.IsAgentUnavailable(err))
	})
}
