package config

import (
	"time"

	"github.com/ekko-ai/agentgate/internal/types"
)

// AlertConfig represents the configuration for the ops alert system.
// Alerts fire on agent health transitions and are delivered to the
// configured endpoint by the alert router.
type AlertConfig struct {
	Enabled    bool              `mapstructure:"enabled"`
	Topic      string            `mapstructure:"topic" default:"ops_alerts"`
	PubSub     types.PubSubType  `mapstructure:"pubsub" default:"memory"`
	Endpoint   string            `mapstructure:"endpoint"`
	Headers    map[string]string `mapstructure:"headers"`
	MaxRetries int               `mapstructure:"max_retries" default:"3"`

	// Delivery retry backoff for the alert router
	InitialInterval time.Duration `mapstructure:"initial_interval" default:"1s"`
	MaxInterval     time.Duration `mapstructure:"max_interval" default:"10s"`
	Multiplier      float64       `mapstructure:"multiplier" default:"2.0"`
	MaxElapsedTime  time.Duration `mapstructure:"max_elapsed_time" default:"2m"`
}
