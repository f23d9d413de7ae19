package types

import "time"

// Ops alert event names
const (
	AlertAgentUnhealthy = "agent.unhealthy"
	AlertAgentRecovered = "agent.recovered"
)

// AlertEvent is published on every agent health transition and delivered
// to the configured ops endpoint by the alert router
type AlertEvent struct {
	ID        string       `json:"id"`
	Reference string       `json:"reference"`
	EventName string       `json:"event_name"`
	AgentType AgentType    `json:"agent_type"`
	From      HealthStatus `json:"from"`
	To        HealthStatus `json:"to"`
	Error     string       `json:"error,omitempty"`
	CheckedAt time.Time    `json:"checked_at"`
	CreatedAt time.Time    `json:"created_at"`
}

// NewAlertEvent builds an alert for a health transition of the given agent
func NewAlertEvent(agentType AgentType, from, to HealthStatus, lastError string, checkedAt time.Time) *AlertEvent {
	eventName := AlertAgentRecovered
	if to == HealthStatusUnhealthy {
		eventName = AlertAgentUnhealthy
	}

	return &AlertEvent{
		ID:        GenerateUUIDWithPrefix(UUID_PREFIX_ALERT),
		Reference: GenerateShortIDWithPrefix(SHORT_ID_PREFIX_ALERT),
		EventName: eventName,
		AgentType: agentType,
		From:      from,
		To:        to,
		Error:     lastError,
		CheckedAt: checkedAt,
		CreatedAt: time.Now().UTC(),
	}
}
