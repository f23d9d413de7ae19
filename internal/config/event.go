package config

import (
	"github.com/ekko-ai/agentgate/internal/types"
)

// EventConfig holds configuration for request event processing
type EventConfig struct {
	PublishDestination types.PublishDestination `mapstructure:"publish_destination" default:"kafka"`
}
