package service

import (
	"net/http"
	"testing"
	"time"

	"github.com/ekko-ai/agentgate/internal/domain/agent"
	ierr "github.com/ekko-ai/agentgate/internal/errors"
	"github.com/ekko-ai/agentgate/internal/registry"
	"github.com/ekko-ai/agentgate/internal/testutil"
	"github.com/ekko-ai/agentgate/internal/types"
	"github.com/stretchr/testify/suite"
)

type AgentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  AgentService
	registry agent.Registry
}

func TestAgentService(t *testing.T) {
	suite.Run(t, new(AgentServiceSuite))
}

func (s *AgentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
}

func (s *AgentServiceSuite) setupService() {
	reg, err := registry.NewRegistry(s.GetConfig(), s.GetLogger())
	s.Require().NoError(err)
	s.registry = reg

	monitor := registry.NewMonitor(reg, s.GetHTTPClient(), s.GetConfig(), s.GetLogger())

	s.service = NewAgentService(ServiceParams{
		Logger:        s.GetLogger(),
		Config:        s.GetConfig(),
		Registry:      reg,
		HealthChecker: monitor,
	})
}

func (s *AgentServiceSuite) recordPing(agentType types.AgentType, success bool) {
	result := agent.CheckResult{
		Success:        success,
		StatusCode:     200,
		ResponseTimeMs: 5,
		CheckedAt:      time.Now().UTC(),
	}
	if !success {
		result.StatusCode = 503
		result.Error = "service unavailable"
	}
	_, err := s.registry.RecordHealthCheck(s.GetContext(), agentType, result)
	s.Require().NoError(err)
}

func (s *AgentServiceSuite) TestGetAgent() {
	resp, err := s.service.GetAgent(s.GetContext(), "contenu")
	s.Require().NoError(err)

	s.Equal(types.AgentType("contenu"), resp.Type)
	s.Equal("Content Creator Agent", resp.Name)
	s.Equal("http://localhost:5003", resp.BaseURL)
	s.Equal("30s", resp.Timeout)
	s.Equal(3, resp.MaxAttempts)
	s.Equal("/api/content/blog", resp.Endpoints["blog"])
	s.Contains(resp.Capabilities, types.Capability("blog-writing"))

	// Before the first ping the health block reports unknown
	s.Require().NotNil(resp.Health)
	s.Equal(types.HealthStatusUnknown, resp.Health.Status)
	s.Zero(resp.Health.SuccessCount)
}

func (s *AgentServiceSuite) TestGetAgentNotFound() {
	resp, err := s.service.GetAgent(s.GetContext(), "inconnu")
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsNotFound(err))
}

func (s *AgentServiceSuite) TestListAgents() {
	resp, err := s.service.ListAgents(s.GetContext())
	s.Require().NoError(err)

	s.Equal(4, resp.Total)
	s.Require().Len(resp.Agents, 4)

	// Listing order is deterministic, sorted by agent type
	listed := make([]types.AgentType, 0, len(resp.Agents))
	for _, a := range resp.Agents {
		listed = append(listed, a.Type)
		s.NotNil(a.Health)
	}
	s.Equal([]types.AgentType{"analyse", "contenu", "pages", "publicite"}, listed)
}

func (s *AgentServiceSuite) TestCheckAgentHealth() {
	s.GetHTTPClient().RegisterJSONResponse(":5004/health", http.StatusOK, agent.HealthPayload{
		Status:  "OK",
		Service: "agent-analyse",
		Version: "2.1.0",
	})

	resp, err := s.service.CheckAgentHealth(s.GetContext(), "analyse")
	s.Require().NoError(err)

	s.Equal(types.HealthStatusHealthy, resp.Status)
	s.Equal("agent-analyse", resp.Service)
	s.Equal("2.1.0", resp.Version)
	s.Equal(int64(1), resp.SuccessCount)

	// The on demand check feeds the registry like a monitor sweep would
	health, err := s.registry.GetHealth(s.GetContext(), "analyse")
	s.Require().NoError(err)
	s.Equal(types.HealthStatusHealthy, health.Status)
}

func (s *AgentServiceSuite) TestCheckAgentHealthUnreachable() {
	// No mock route registered, the ping fails
	resp, err := s.service.CheckAgentHealth(s.GetContext(), "pages")
	s.Require().NoError(err)

	s.Equal(types.HealthStatusUnhealthy, resp.Status)
	s.Equal(int64(1), resp.ErrorCount)
	s.NotEmpty(resp.LastError)
}

func (s *AgentServiceSuite) TestCheckAgentHealthUnknownAgent() {
	resp, err := s.service.CheckAgentHealth(s.GetContext(), "inconnu")
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsNotFound(err))
}

func (s *AgentServiceSuite) TestResolveCapability() {
	s.recordPing("contenu", true)

	resp, err := s.service.ResolveCapability(s.GetContext(), "blog-writing")
	s.Require().NoError(err)

	s.Equal(types.Capability("blog-writing"), resp.Capability)
	s.Require().NotNil(resp.Agent)
	s.Equal(types.AgentType("contenu"), resp.Agent.Type)

	s.Require().Len(resp.Candidates, 1)
	s.Equal(types.AgentType("contenu"), resp.Candidates[0].Type)
	s.Equal(types.HealthStatusHealthy, resp.Candidates[0].Status)
	s.True(resp.Candidates[0].Chosen)
}

func (s *AgentServiceSuite) TestResolveCapabilityNoHealthyAgent() {
	resp, err := s.service.ResolveCapability(s.GetContext(), "blog-writing")
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsAgentUnavailable(err))
}

func (s *AgentServiceSuite) TestResolveCapabilityUnknown() {
	s.recordPing("contenu", true)

	resp, err := s.service.ResolveCapability(s.GetContext(), "quantum-forecasting")
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsAgentUnavailable(err))
}

func (s *AgentServiceSuite) TestResolveCapabilityEmpty() {
	resp, err := s.service.ResolveCapability(s.GetContext(), "")
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsValidation(err))
}

func (s *AgentServiceSuite) TestGatewayHealth() {
	resp := s.service.GatewayHealth(s.GetContext())

	s.Equal("OK", resp.Status)
	s.Equal(GatewayService, resp.Service)
	s.Equal(GatewayVersion, resp.Version)
	s.Equal(4, resp.Agents.Total)
	s.Equal(4, resp.Agents.Unknown)

	s.recordPing("contenu", true)
	s.recordPing("publicite", false)

	resp = s.service.GatewayHealth(s.GetContext())
	s.Equal(4, resp.Agents.Total)
	s.Equal(1, resp.Agents.Healthy)
	s.Equal(1, resp.Agents.Unhealthy)
	s.Equal(2, resp.Agents.Unknown)
}
