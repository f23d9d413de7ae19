package alert

import (
	"context"

	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/domain/agent"
	"github.com/ekko-ai/agentgate/internal/logger"
	pubsubRouter "github.com/ekko-ai/agentgate/internal/pubsub/router"
	"github.com/ekko-ai/agentgate/internal/types"
)

// Service publishes an alert for every agent health transition and owns
// the delivery pipeline that pushes alerts to the ops endpoint
type Service struct {
	config    *config.Configuration
	publisher Publisher
	handler   Handler
	logger    *logger.Logger
}

// NewService creates a new alert service and hooks it into the registry's
// health transitions
func NewService(
	cfg *config.Configuration,
	publisher Publisher,
	h Handler,
	registry agent.Registry,
	logger *logger.Logger,
) *Service {
	s := &Service{
		config:    cfg,
		publisher: publisher,
		handler:   h,
		logger:    logger,
	}

	registry.OnTransition(s.onTransition)
	return s
}

func (s *Service) onTransition(ctx context.Context, a *agent.Agent, from, to types.HealthStatus, health *agent.Health) {
	if !s.config.Alert.Enabled {
		return
	}

	// The first successful check after startup is discovery, not recovery
	if from == types.HealthStatusUnknown && to == types.HealthStatusHealthy {
		return
	}

	event := types.NewAlertEvent(a.Type, from, to, health.LastError, health.LastCheckedAt)
	if err := s.publisher.PublishAlert(ctx, event); err != nil {
		s.logger.Errorw("failed to publish health transition alert",
			"error", err,
			"agent_type", a.Type,
			"from", from,
			"to", to,
		)
	}
}

// RegisterHandler attaches the alert delivery handler to the message router
func (s *Service) RegisterHandler(router *pubsubRouter.Router) {
	if !s.config.Alert.Enabled {
		s.logger.Info("alert service disabled")
		return
	}

	s.handler.RegisterHandler(router)
}

// Stop closes the alert publisher
func (s *Service) Stop() error {
	if err := s.publisher.Close(); err != nil {
		s.logger.Errorw("failed to close alert publisher", "error", err)
		return err
	}
	return nil
}
