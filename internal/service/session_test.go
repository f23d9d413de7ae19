package service

import (
	"testing"
	"time"

	"github.com/ekko-ai/agentgate/internal/domain/dispatch"
	ierr "github.com/ekko-ai/agentgate/internal/errors"
	"github.com/ekko-ai/agentgate/internal/testutil"
	"github.com/ekko-ai/agentgate/internal/types"
	"github.com/stretchr/testify/suite"
)

type SessionServiceSuite struct {
	testutil.BaseServiceTestSuite
	service SessionService
}

func TestSessionService(t *testing.T) {
	suite.Run(t, new(SessionServiceSuite))
}

func (s *SessionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewSessionService(ServiceParams{
		Logger:      s.GetLogger(),
		Config:      s.GetConfig(),
		SessionRepo: s.GetStores().SessionRepo,
	})
}

func (s *SessionServiceSuite) storeSession(session *dispatch.Session, ttl time.Duration) {
	err := s.GetStores().SessionRepo.Set(s.GetContext(), session, ttl)
	s.Require().NoError(err)
}

func (s *SessionServiceSuite) TestGetSession() {
	session := dispatch.NewSession(types.DefaultTenantID, "env_sandbox", "contenu", "/api/content/blog")
	session.Capability = "blog-writing"
	session.MarkCompleted(200, 2, 340)
	s.storeSession(session, time.Hour)

	resp, err := s.service.GetSession(s.GetContext(), session.ID)
	s.Require().NoError(err)

	s.Equal(session.ID, resp.ID)
	s.Equal(types.DefaultTenantID, resp.TenantID)
	s.Equal(types.AgentType("contenu"), resp.AgentType)
	s.Equal(types.Capability("blog-writing"), resp.Capability)
	s.Equal("/api/content/blog", resp.Endpoint)
	s.Equal(types.DispatchStatusCompleted, resp.Status)
	s.Equal(200, resp.StatusCode)
	s.Equal(2, resp.Attempts)
	s.Equal(int64(340), resp.ResponseTimeMs)
	s.NotNil(resp.CompletedAt)
}

func (s *SessionServiceSuite) TestGetSessionPending() {
	session := dispatch.NewSession(types.DefaultTenantID, "env_sandbox", "analyse", "/api/analysis/checkout")
	s.storeSession(session, time.Hour)

	resp, err := s.service.GetSession(s.GetContext(), session.ID)
	s.Require().NoError(err)

	// An in-flight dispatch is visible as pending
	s.Equal(types.DispatchStatusPending, resp.Status)
	s.Zero(resp.StatusCode)
	s.Nil(resp.CompletedAt)
}

func (s *SessionServiceSuite) TestGetSessionNotFound() {
	resp, err := s.service.GetSession(s.GetContext(), "req_missing")
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsNotFound(err))
}

func (s *SessionServiceSuite) TestGetSessionExpired() {
	session := dispatch.NewSession(types.DefaultTenantID, "env_sandbox", "pages", "/api/generate")
	session.MarkCompleted(200, 1, 50)
	s.storeSession(session, 10*time.Millisecond)

	// Fresh sessions read back fine
	_, err := s.service.GetSession(s.GetContext(), session.ID)
	s.Require().NoError(err)

	// Past the TTL the record is gone
	time.Sleep(30 * time.Millisecond)

	resp, err := s.service.GetSession(s.GetContext(), session.ID)
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsNotFound(err))
}
