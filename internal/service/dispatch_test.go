package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ekko-ai/agentgate/internal/domain/agent"
	"github.com/ekko-ai/agentgate/internal/domain/dispatch"
	"github.com/ekko-ai/agentgate/internal/domain/requestlog"
	ierr "github.com/ekko-ai/agentgate/internal/errors"
	"github.com/ekko-ai/agentgate/internal/httpclient"
	"github.com/ekko-ai/agentgate/internal/registry"
	"github.com/ekko-ai/agentgate/internal/sentry"
	"github.com/ekko-ai/agentgate/internal/testutil"
	"github.com/ekko-ai/agentgate/internal/types"
	"github.com/stretchr/testify/suite"
)

type DispatchServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  DispatchService
	registry agent.Registry
}

func TestDispatchService(t *testing.T) {
	suite.Run(t, new(DispatchServiceSuite))
}

func (s *DispatchServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
}

func (s *DispatchServiceSuite) setupService() {
	reg, err := registry.NewRegistry(s.GetConfig(), s.GetLogger())
	s.Require().NoError(err)
	s.registry = reg

	s.service = NewDispatchService(s.serviceParams(), s.sentryService())
}

func (s *DispatchServiceSuite) sentryService() *sentry.Service {
	return sentry.NewSentryService(s.GetConfig(), s.GetLogger())
}

func (s *DispatchServiceSuite) serviceParams() ServiceParams {
	return ServiceParams{
		Logger:         s.GetLogger(),
		Config:         s.GetConfig(),
		Registry:       s.registry,
		SessionRepo:    s.GetStores().SessionRepo,
		RequestLogRepo: s.GetStores().RequestLogRepo,
		EventPublisher: s.GetPublisher(),
		Client:         s.GetHTTPClient(),
	}
}

func (s *DispatchServiceSuite) markHealthy(agentType types.AgentType) {
	_, err := s.registry.RecordHealthCheck(s.GetContext(), agentType, agent.CheckResult{
		Success:        true,
		StatusCode:     200,
		ResponseTimeMs: 10,
		CheckedAt:      time.Now().UTC(),
	})
	s.Require().NoError(err)
}

func (s *DispatchServiceSuite) TestDispatchSuccess() {
	body := []byte(`{"title":"Zero Downtime Deploys"}`)
	s.GetHTTPClient().RegisterResponse("/api/content/blog", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       body,
	})

	result, err := s.service.Dispatch(s.GetContext(), "contenu", "blog", json.RawMessage(`{"topic":"deploys"}`), nil)
	s.NoError(err)
	s.Require().NotNil(result)

	s.True(result.Success)
	s.Equal(types.AgentType("contenu"), result.AgentType)
	s.Equal(http.StatusOK, result.StatusCode)
	s.Equal(1, result.Attempts)
	s.Equal(string(body), string(result.Data))
	s.NotEmpty(result.RequestID)

	// Exactly one call went out, carrying the correlation header
	s.Equal(1, s.GetHTTPClient().CallCount("/api/content/blog"))
	last := s.GetHTTPClient().LastRequest()
	s.Require().NotNil(last)
	s.Equal(http.MethodPost, last.Method)
	s.Equal("http://localhost:5003/api/content/blog", last.URL)
	s.Equal(result.RequestID, last.Headers[types.HeaderRequestID])

	// The session reached its terminal state
	session, err := s.GetStores().SessionRepo.Get(s.GetContext(), result.RequestID)
	s.Require().NoError(err)
	s.Equal(types.DispatchStatusCompleted, session.Status)
	s.Equal(http.StatusOK, session.StatusCode)
	s.Equal(1, session.Attempts)
	s.Equal("/api/content/blog", session.Endpoint)
	s.NotNil(session.CompletedAt)

	// A telemetry event was published and landed in the request log
	publisher := s.GetPublisher().(*testutil.InMemoryPublisherService)
	s.True(publisher.HasEventForRequest(result.RequestID))

	events, total, err := s.GetStores().RequestLogRepo.GetRequests(s.GetContext(), &requestlog.GetRequestsParams{
		RequestID:  result.RequestID,
		PageSize:   10,
		CountTotal: true,
	})
	s.Require().NoError(err)
	s.Equal(uint64(1), total)
	s.Require().Len(events, 1)
	s.Equal("completed", events[0].Status)
	s.Equal("contenu", events[0].AgentType)

	// Dispatch outcomes feed the registry counters
	health, err := s.registry.GetHealth(s.GetContext(), "contenu")
	s.Require().NoError(err)
	s.Equal(int64(1), health.SuccessCount)
	s.Equal(int64(0), health.ErrorCount)
}

func (s *DispatchServiceSuite) TestDispatchRetriesServerErrors() {
	s.GetHTTPClient().RegisterResponse("/api/analysis/checkout", testutil.MockResponse{
		StatusCode: http.StatusServiceUnavailable,
		Body:       []byte(`{"error":"overloaded"}`),
	})

	result, err := s.service.Dispatch(s.GetContext(), "analyse", "checkout", json.RawMessage(`{"store":"ekko"}`), nil)
	s.Error(err)
	s.Nil(result)
	s.True(ierr.IsHTTPClient(err))

	// The analyse agent carries a 3 attempt budget, all of it was spent
	s.Equal(3, s.GetHTTPClient().CallCount("/api/analysis/checkout"))

	requestID := s.GetHTTPClient().LastRequest().Headers[types.HeaderRequestID]
	s.Require().NotEmpty(requestID)

	session, err := s.GetStores().SessionRepo.Get(s.GetContext(), requestID)
	s.Require().NoError(err)
	s.Equal(types.DispatchStatusFailed, session.Status)
	s.Equal(http.StatusServiceUnavailable, session.StatusCode)
	s.Equal(3, session.Attempts)
	s.NotEmpty(session.Error)

	// Failures are telemetry too
	events := s.GetPublisher().(*testutil.InMemoryPublisherService).GetEvents()
	s.Require().Len(events, 1)
	s.Equal("failed", events[0].Status)
	s.Equal(int32(3), events[0].Attempts)
	s.NotEmpty(events[0].ErrorMessage)

	health, err := s.registry.GetHealth(s.GetContext(), "analyse")
	s.Require().NoError(err)
	s.Equal(int64(3), health.ErrorCount)
}

func (s *DispatchServiceSuite) TestDispatchClientErrorShortCircuits() {
	s.GetHTTPClient().RegisterResponse("/api/content/blog", testutil.MockResponse{
		StatusCode: http.StatusBadRequest,
		Body:       []byte(`{"error":"missing topic"}`),
	})

	result, err := s.service.Dispatch(s.GetContext(), "contenu", "blog", json.RawMessage(`{}`), nil)
	s.Error(err)
	s.Nil(result)

	// A 4xx is the caller's fault, retrying cannot fix it
	s.Equal(1, s.GetHTTPClient().CallCount("/api/content/blog"))

	requestID := s.GetHTTPClient().LastRequest().Headers[types.HeaderRequestID]
	session, err := s.GetStores().SessionRepo.Get(s.GetContext(), requestID)
	s.Require().NoError(err)
	s.Equal(types.DispatchStatusFailed, session.Status)
	s.Equal(http.StatusBadRequest, session.StatusCode)
	s.Equal(1, session.Attempts)
}

func (s *DispatchServiceSuite) TestDispatchFailThenSucceed() {
	s.GetHTTPClient().RegisterSequence("/api/content/blog",
		testutil.MockResponse{StatusCode: http.StatusBadGateway, Body: []byte("bad gateway")},
		testutil.MockResponse{StatusCode: http.StatusOK, Body: []byte(`{"title":"second try"}`)},
	)

	result, err := s.service.Dispatch(s.GetContext(), "contenu", "blog", json.RawMessage(`{}`), nil)
	s.Require().NoError(err)

	s.True(result.Success)
	s.Equal(2, result.Attempts)
	s.Equal(2, s.GetHTTPClient().CallCount("/api/content/blog"))

	session, err := s.GetStores().SessionRepo.Get(s.GetContext(), result.RequestID)
	s.Require().NoError(err)
	s.Equal(types.DispatchStatusCompleted, session.Status)
	s.Equal(2, session.Attempts)

	// One recorded failure, one recorded success
	health, err := s.registry.GetHealth(s.GetContext(), "contenu")
	s.Require().NoError(err)
	s.Equal(int64(1), health.ErrorCount)
	s.Equal(int64(1), health.SuccessCount)
}

func (s *DispatchServiceSuite) TestDispatchMaxAttemptsOverride() {
	s.GetHTTPClient().RegisterResponse("/api/content/blog", testutil.MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       []byte("boom"),
	})

	_, err := s.service.Dispatch(s.GetContext(), "contenu", "blog", nil, &types.DispatchOptions{
		MaxAttempts: 1,
	})
	s.Error(err)
	s.Equal(1, s.GetHTTPClient().CallCount("/api/content/blog"))

	s.GetHTTPClient().Clear()
	s.GetHTTPClient().RegisterResponse("/api/content/blog", testutil.MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       []byte("boom"),
	})

	// A per call budget also raises the agent's own limit
	_, err = s.service.Dispatch(s.GetContext(), "contenu", "blog", nil, &types.DispatchOptions{
		MaxAttempts: 5,
	})
	s.Error(err)
	s.Equal(5, s.GetHTTPClient().CallCount("/api/content/blog"))
}

func (s *DispatchServiceSuite) TestDispatchUnknownAgent() {
	result, err := s.service.Dispatch(s.GetContext(), "inconnu", "blog", nil, nil)
	s.Error(err)
	s.Nil(result)
	s.True(ierr.IsNotFound(err))

	s.Empty(s.GetHTTPClient().Requests())
	s.Empty(s.GetPublisher().(*testutil.InMemoryPublisherService).GetEvents())
}

func (s *DispatchServiceSuite) TestDispatchUnknownEndpoint() {
	result, err := s.service.Dispatch(s.GetContext(), "contenu", "video", nil, nil)
	s.Error(err)
	s.Nil(result)
	s.True(ierr.IsValidation(err))

	// Nothing went over the wire and nothing was recorded
	s.Empty(s.GetHTTPClient().Requests())
	s.Empty(s.GetPublisher().(*testutil.InMemoryPublisherService).GetEvents())
}

func (s *DispatchServiceSuite) TestDispatchRawPathEndpoint() {
	s.GetHTTPClient().RegisterResponse("/api/content/custom", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(`{}`),
	})

	result, err := s.service.Dispatch(s.GetContext(), "contenu", "/api/content/custom", nil, nil)
	s.Require().NoError(err)

	session, err := s.GetStores().SessionRepo.Get(s.GetContext(), result.RequestID)
	s.Require().NoError(err)
	s.Equal("/api/content/custom", session.Endpoint)
}

func (s *DispatchServiceSuite) TestDispatchNilPayloadSendsEmptyObject() {
	s.GetHTTPClient().RegisterResponse("/api/content/blog", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(`{}`),
	})

	_, err := s.service.Dispatch(s.GetContext(), "contenu", "blog", nil, nil)
	s.Require().NoError(err)

	last := s.GetHTTPClient().LastRequest()
	s.Require().NotNil(last)
	s.Equal("{}", string(last.Body))
}

func (s *DispatchServiceSuite) TestDispatchForwardsCallerHeaders() {
	s.GetHTTPClient().RegisterResponse("/api/content/blog", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(`{}`),
	})

	result, err := s.service.Dispatch(s.GetContext(), "contenu", "blog", nil, &types.DispatchOptions{
		Headers: map[string]string{"X-Trace-ID": "trace-123"},
	})
	s.Require().NoError(err)

	last := s.GetHTTPClient().LastRequest()
	s.Equal("trace-123", last.Headers["X-Trace-ID"])
	s.Equal(result.RequestID, last.Headers[types.HeaderRequestID])
}

func (s *DispatchServiceSuite) TestDispatchToCapability() {
	s.markHealthy("contenu")
	s.GetHTTPClient().RegisterResponse("/api/content/blog", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"title":"routed"}`),
	})

	result, err := s.service.DispatchToCapability(s.GetContext(), "blog-writing", "blog", json.RawMessage(`{}`), nil)
	s.Require().NoError(err)

	s.Equal(types.AgentType("contenu"), result.AgentType)

	session, err := s.GetStores().SessionRepo.Get(s.GetContext(), result.RequestID)
	s.Require().NoError(err)
	s.Equal(types.Capability("blog-writing"), session.Capability)

	// The capability travels with the telemetry event
	events := s.GetPublisher().(*testutil.InMemoryPublisherService).GetEvents()
	s.Require().Len(events, 1)
	s.Equal("blog-writing", events[0].Capability)
}

func (s *DispatchServiceSuite) TestDispatchToCapabilityNoHealthyAgent() {
	// No agent was marked healthy, routing has no candidates
	result, err := s.service.DispatchToCapability(s.GetContext(), "blog-writing", "blog", nil, nil)
	s.Error(err)
	s.Nil(result)
	s.True(ierr.IsAgentUnavailable(err))
	s.Empty(s.GetHTTPClient().Requests())
}

// sessionPeekClient reads the dispatch session mid-flight so tests can
// observe the state a concurrent poller would see.
type sessionPeekClient struct {
	repo   dispatch.SessionRepository
	seen   bool
	status types.DispatchStatus
}

func (c *sessionPeekClient) Send(ctx context.Context, req *httpclient.Request) (*httpclient.Response, error) {
	if id := req.Headers[types.HeaderRequestID]; id != "" {
		if session, err := c.repo.Get(ctx, id); err == nil {
			c.seen = true
			c.status = session.Status
		}
	}
	return &httpclient.Response{StatusCode: http.StatusOK, Body: []byte(`{}`)}, nil
}

func (s *DispatchServiceSuite) TestDispatchWritesPendingSessionBeforeFirstAttempt() {
	peek := &sessionPeekClient{repo: s.GetStores().SessionRepo}

	params := s.serviceParams()
	params.Client = peek
	service := NewDispatchService(params, s.sentryService())

	result, err := service.Dispatch(s.GetContext(), "contenu", "blog", nil, nil)
	s.Require().NoError(err)

	// The session was already stored as pending while the request was in
	// flight, and is terminal afterwards
	s.True(peek.seen)
	s.Equal(types.DispatchStatusPending, peek.status)

	session, err := s.GetStores().SessionRepo.Get(s.GetContext(), result.RequestID)
	s.Require().NoError(err)
	s.Equal(types.DispatchStatusCompleted, session.Status)
}

func (s *DispatchServiceSuite) TestBackOffSchedule() {
	cfg := *s.GetConfig()
	cfg.Dispatch.InitialInterval = time.Second
	cfg.Dispatch.MaxInterval = 10 * time.Second

	svc := &dispatchService{ServiceParams: ServiceParams{Config: &cfg}}
	b := svc.newBackOff(context.Background(), 7)

	// Deterministic doubling capped at the max interval
	expected := []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		10 * time.Second,
		10 * time.Second,
	}
	for i, want := range expected {
		s.Equal(want, b.NextBackOff(), "delay after attempt %d", i+1)
	}

	// The attempt budget is spent, the schedule stops
	s.Equal(backoff.Stop, b.NextBackOff())
}

func (s *DispatchServiceSuite) TestAttemptBudgetPrecedence() {
	svc := &dispatchService{ServiceParams: ServiceParams{Config: s.GetConfig()}}

	// Gateway default applies when neither the agent nor the call set one
	a := &agent.Agent{Type: "contenu"}
	s.Equal(3, svc.attemptBudget(a, &types.DispatchOptions{}))

	// The agent's own budget beats the gateway default
	a.MaxAttempts = 2
	s.Equal(2, svc.attemptBudget(a, &types.DispatchOptions{}))

	// The per call override beats both
	s.Equal(5, svc.attemptBudget(a, &types.DispatchOptions{MaxAttempts: 5}))

	// The budget never drops below one attempt
	cfg := *s.GetConfig()
	cfg.Dispatch.MaxAttempts = 0
	floor := &dispatchService{ServiceParams: ServiceParams{Config: &cfg}}
	s.Equal(1, floor.attemptBudget(&agent.Agent{}, &types.DispatchOptions{}))
}

func (s *DispatchServiceSuite) TestAttemptTimeoutPrecedence() {
	svc := &dispatchService{ServiceParams: ServiceParams{Config: s.GetConfig()}}

	a := &agent.Agent{Type: "analyse"}
	s.Equal(s.GetConfig().Dispatch.Timeout, svc.attemptTimeout(a, &types.DispatchOptions{}))

	a.Timeout = 45 * time.Second
	s.Equal(45*time.Second, svc.attemptTimeout(a, &types.DispatchOptions{}))

	s.Equal(100*time.Millisecond, svc.attemptTimeout(a, &types.DispatchOptions{
		Timeout: 100 * time.Millisecond,
	}))
}
