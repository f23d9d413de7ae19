package alert

import (
	"encoding/json"
	"net/http"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/httpclient"
	"github.com/ekko-ai/agentgate/internal/logger"
	pubsubRouter "github.com/ekko-ai/agentgate/internal/pubsub/router"
	"github.com/ekko-ai/agentgate/internal/sentry"
	"github.com/ekko-ai/agentgate/internal/types"
)

// Handler interface for processing ops alert events
type Handler interface {
	RegisterHandler(router *pubsubRouter.Router)
}

type handler struct {
	pubSub types.OpsAlertPubSub
	config *config.AlertConfig
	client httpclient.Client
	logger *logger.Logger
	sentry *sentry.Service
}

// NewHandler creates a new alert handler
func NewHandler(
	pubSub types.OpsAlertPubSub,
	cfg *config.Configuration,
	client httpclient.Client,
	logger *logger.Logger,
	sentry *sentry.Service,
) (Handler, error) {
	return &handler{
		pubSub: pubSub,
		config: &cfg.Alert,
		client: client,
		logger: logger,
		sentry: sentry,
	}, nil
}

func (h *handler) RegisterHandler(router *pubsubRouter.Router) {
	router.AddNoPublishHandler(
		"alert_handler",
		h.config.Topic,
		h.pubSub,
		h.processMessage,
		pubsubRouter.NewRetryGate(h.logger),
	)
}

// processMessage delivers a single alert to the ops endpoint
func (h *handler) processMessage(msg *message.Message) error {
	var event types.AlertEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		h.logger.Errorw("failed to unmarshal alert event",
			"error", err,
			"message_uuid", msg.UUID,
		)
		return nil // Don't retry on unmarshal errors
	}

	// Without an endpoint the alert only surfaces in the logs
	if h.config.Endpoint == "" {
		h.logAlert(&event)
		return nil
	}

	req := &httpclient.Request{
		Method:  http.MethodPost,
		URL:     h.config.Endpoint,
		Headers: h.config.Headers,
		Body:    msg.Payload,
	}

	resp, err := h.client.Send(msg.Context(), req)
	if err != nil {
		h.logger.Errorw("failed to deliver alert",
			"error", err,
			"message_uuid", msg.UUID,
			"alert_id", event.ID,
			"event_name", event.EventName,
			"agent_type", event.AgentType,
		)
		return err
	}

	h.logger.Infow("alert delivered successfully",
		"message_uuid", msg.UUID,
		"alert_id", event.ID,
		"event_name", event.EventName,
		"agent_type", event.AgentType,
		"status_code", resp.StatusCode,
	)

	return nil
}

func (h *handler) logAlert(event *types.AlertEvent) {
	if event.EventName == types.AlertAgentUnhealthy {
		h.logger.Warnw("agent became unhealthy",
			"alert_id", event.ID,
			"reference", event.Reference,
			"agent_type", event.AgentType,
			"from", event.From,
			"to", event.To,
			"error", event.Error,
			"checked_at", event.CheckedAt,
		)
		return
	}

	h.logger.Infow("agent recovered",
		"alert_id", event.ID,
		"reference", event.Reference,
		"agent_type", event.AgentType,
		"from", event.From,
		"to", event.To,
		"checked_at", event.CheckedAt,
	)
}
