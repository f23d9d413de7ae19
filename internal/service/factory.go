package service

import (
	"context"

	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/domain/agent"
	"github.com/ekko-ai/agentgate/internal/domain/dispatch"
	"github.com/ekko-ai/agentgate/internal/domain/requestlog"
	"github.com/ekko-ai/agentgate/internal/httpclient"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/publisher"
	"github.com/ekko-ai/agentgate/internal/types"
)

// HealthChecker runs an on-demand health check against a single agent and
// records the outcome. Satisfied by registry.Monitor.
type HealthChecker interface {
	CheckAgent(ctx context.Context, agentType types.AgentType) (*agent.Health, error)
}

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	// Registry and health monitoring
	Registry      agent.Registry
	HealthChecker HealthChecker

	// Repositories
	SessionRepo    dispatch.SessionRepository
	RequestLogRepo requestlog.Repository

	// Publishers
	EventPublisher publisher.EventPublisher

	// http client
	Client httpclient.Client
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	registry agent.Registry,
	healthChecker HealthChecker,
	sessionRepo dispatch.SessionRepository,
	requestLogRepo requestlog.Repository,
	eventPublisher publisher.EventPublisher,
	client httpclient.Client,
) ServiceParams {
	return ServiceParams{
		Logger:         logger,
		Config:         config,
		Registry:       registry,
		HealthChecker:  healthChecker,
		SessionRepo:    sessionRepo,
		RequestLogRepo: requestLogRepo,
		EventPublisher: eventPublisher,
		Client:         client,
	}
}
