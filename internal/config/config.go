package config

import (
	"crypto/tls"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/Shopify/sarama"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ekko-ai/agentgate/internal/types"
)

type Configuration struct {
	Deployment DeploymentConfig       `validate:"required"`
	Server     ServerConfig           `validate:"required"`
	Auth       AuthConfig             `validate:"required"`
	RateLimit  RateLimitConfig        `mapstructure:"ratelimit"`
	Kafka      KafkaConfig            `validate:"required"`
	ClickHouse ClickHouseConfig       `validate:"required"`
	Redis      RedisConfig            `mapstructure:"redis"`
	Logging    LoggingConfig          `validate:"required"`
	Sentry     SentryConfig           `mapstructure:"sentry"`
	Pyroscope  PyroscopeConfig        `mapstructure:"pyroscope"`
	Event      EventConfig            `mapstructure:"event"`
	Sessions   SessionConfig          `mapstructure:"sessions"`
	Health     HealthConfig           `mapstructure:"health"`
	Dispatch   DispatchConfig         `mapstructure:"dispatch"`
	Alert      AlertConfig            `mapstructure:"alert"`
	Agents     map[string]AgentConfig `mapstructure:"agents"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type AuthConfig struct {
	Secret string       `mapstructure:"secret"`
	APIKey APIKeyConfig `mapstructure:"api_key"`
}

type APIKeyConfig struct {
	Header string                   `mapstructure:"header" default:"x-api-key"`
	Keys   map[string]APIKeyDetails `mapstructure:"keys"`
}

type APIKeyDetails struct {
	TenantID string `mapstructure:"tenant_id"`
	UserID   string `mapstructure:"user_id"`
	Name     string `mapstructure:"name"`
	IsActive bool   `mapstructure:"is_active"`
}

type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps" default:"50"`
	Burst   int     `mapstructure:"burst" default:"100"`
}

type KafkaConfig struct {
	Brokers       []string             `mapstructure:"brokers"`
	ConsumerGroup string               `mapstructure:"consumer_group"`
	Topic         string               `mapstructure:"topic"`
	UseSASL       bool                 `mapstructure:"use_sasl"`
	SASLMechanism sarama.SASLMechanism `mapstructure:"sasl_mechanism"`
	SASLUser      string               `mapstructure:"sasl_user"`
	SASLPassword  string               `mapstructure:"sasl_password"`
	ClientID      string               `mapstructure:"client_id"`
}

type ClickHouseConfig struct {
	Address  string `mapstructure:"address"`
	TLS      bool   `mapstructure:"tls"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate" default:"1.0"`
}

type PyroscopeConfig struct {
	Enabled         bool     `mapstructure:"enabled"`
	ServerAddress   string   `mapstructure:"server_address"`
	ApplicationName string   `mapstructure:"application_name" default:"agentgate"`
	SampleRate      uint32   `mapstructure:"sample_rate" default:"100"`
	DisableGCRuns   bool     `mapstructure:"disable_gc_runs"`
	BasicAuthUser   string   `mapstructure:"basic_auth_user"`
	BasicAuthPass   string   `mapstructure:"basic_auth_pass"`
	ProfileTypes    []string `mapstructure:"profile_types"`
}

// SessionConfig controls where dispatch sessions are stored and for how long
type SessionConfig struct {
	Store     types.SessionStoreType `mapstructure:"store" default:"memory"`
	TTL       time.Duration          `mapstructure:"ttl" default:"1h"`
	KeyPrefix string                 `mapstructure:"key_prefix" default:"agentgate:session:"`
}

// HealthConfig controls the agent health monitor
type HealthConfig struct {
	Interval time.Duration `mapstructure:"interval" default:"30s"`
	Timeout  time.Duration `mapstructure:"timeout" default:"5s"`
}

// DispatchConfig carries gateway wide dispatch defaults. Agents and callers
// can override the timeout and attempt budget per agent or per call.
type DispatchConfig struct {
	Timeout         time.Duration `mapstructure:"timeout" default:"30s"`
	MaxAttempts     int           `mapstructure:"max_attempts" default:"3"`
	InitialInterval time.Duration `mapstructure:"initial_interval" default:"1s"`
	MaxInterval     time.Duration `mapstructure:"max_interval" default:"10s"`
}

// AgentConfig defines one remote agent in the registry. The map key in
// Configuration.Agents is the agent type.
type AgentConfig struct {
	Name           string            `mapstructure:"name"`
	BaseURL        string            `mapstructure:"base_url"`
	HealthEndpoint string            `mapstructure:"health_endpoint" default:"/health"`
	Endpoints      map[string]string `mapstructure:"endpoints"`
	Timeout        time.Duration     `mapstructure:"timeout"`
	MaxAttempts    int               `mapstructure:"max_attempts"`
	Capabilities   []string          `mapstructure:"capabilities"`
	Disabled       bool              `mapstructure:"disabled"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	// Load .env file if present before reading env overrides
	_ = godotenv.Load()

	// Modify config paths to ensure config.yaml is found
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/agentgate")

	// Set up environment variables support
	v.SetEnvPrefix("AGENTGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.ApplyDefaults()

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// ApplyDefaults fills zero values with the gateway defaults so partial
// config files and env-only deployments behave predictably
func (c *Configuration) ApplyDefaults() {
	if c.Auth.APIKey.Header == "" {
		c.Auth.APIKey.Header = "x-api-key"
	}
	if c.Sessions.Store == "" {
		c.Sessions.Store = types.SessionStoreMemory
	}
	if c.Sessions.TTL <= 0 {
		c.Sessions.TTL = time.Hour
	}
	if c.Sessions.KeyPrefix == "" {
		c.Sessions.KeyPrefix = "agentgate:session:"
	}
	if c.Health.Interval <= 0 {
		c.Health.Interval = 30 * time.Second
	}
	if c.Health.Timeout <= 0 {
		c.Health.Timeout = 5 * time.Second
	}
	if c.Dispatch.Timeout <= 0 {
		c.Dispatch.Timeout = 30 * time.Second
	}
	if c.Dispatch.MaxAttempts <= 0 {
		c.Dispatch.MaxAttempts = 3
	}
	if c.Dispatch.InitialInterval <= 0 {
		c.Dispatch.InitialInterval = time.Second
	}
	if c.Dispatch.MaxInterval <= 0 {
		c.Dispatch.MaxInterval = 10 * time.Second
	}
	if c.Event.PublishDestination == "" {
		c.Event.PublishDestination = types.PublishToKafka
	}
	if c.Alert.Topic == "" {
		c.Alert.Topic = "ops_alerts"
	}
	if c.Alert.PubSub == "" {
		c.Alert.PubSub = types.MemoryPubSub
	}
	if c.Alert.MaxRetries <= 0 {
		c.Alert.MaxRetries = 3
	}
	if c.Alert.InitialInterval <= 0 {
		c.Alert.InitialInterval = time.Second
	}
	if c.Alert.MaxInterval <= 0 {
		c.Alert.MaxInterval = 10 * time.Second
	}
	if c.Alert.Multiplier <= 0 {
		c.Alert.Multiplier = 2.0
	}
	if c.Alert.MaxElapsedTime <= 0 {
		c.Alert.MaxElapsedTime = 2 * time.Minute
	}
	if c.RateLimit.RPS <= 0 {
		c.RateLimit.RPS = 50
	}
	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = 100
	}
	if c.Pyroscope.ApplicationName == "" {
		c.Pyroscope.ApplicationName = "agentgate"
	}
	if c.Pyroscope.SampleRate == 0 {
		c.Pyroscope.SampleRate = 100
	}
}

func (c ClickHouseConfig) GetClientOptions() *clickhouse.Options {
	options := &clickhouse.Options{
		Addr: []string{c.Address},
		Auth: clickhouse.Auth{
			Database: c.Database,
			Username: c.Username,
			Password: c.Password,
		},
		ConnOpenStrategy: clickhouse.ConnOpenInOrder,
	}
	if c.TLS {
		options.TLS = &tls.Config{}
	}
	return options
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or other non-web applications
func GetDefaultConfig() *Configuration {
	cfg := &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Kafka: KafkaConfig{
			Brokers:       []string{"localhost:29092"},
			ConsumerGroup: "agentgate-local",
			Topic:         "agent_requests",
		},
		ClickHouse: ClickHouseConfig{
			Address:  "localhost:9000",
			Username: "agentgate",
			Password: "agentgate",
			Database: "agentgate",
		},
		Event: EventConfig{PublishDestination: types.PublishToKafka},
		Agents: DefaultAgents(),
	}
	cfg.ApplyDefaults()
	return cfg
}

// DefaultAgents returns the stock Ekko agent fleet used for local
// development and tests
func DefaultAgents() map[string]AgentConfig {
	return map[string]AgentConfig{
		"contenu": {
			Name:           "Content Creator Agent",
			BaseURL:        "http://localhost:5003",
			HealthEndpoint: "/health",
			Endpoints: map[string]string{
				"blog":    "/api/content/blog",
				"product": "/api/content/product",
				"social":  "/api/content/social",
				"email":   "/api/content/email",
			},
			Timeout:     30 * time.Second,
			MaxAttempts: 3,
			Capabilities: []string{
				"content-generation", "blog-writing", "product-descriptions",
				"social-media", "email-marketing",
			},
		},
		"publicite": {
			Name:           "Advertising Manager Agent",
			BaseURL:        "http://localhost:5002",
			HealthEndpoint: "/health",
			Endpoints: map[string]string{
				"campaigns":   "/api/advertising/campaigns",
				"performance": "/api/advertising/campaigns/performance",
				"optimize":    "/api/advertising/optimize",
				"ab-test":     "/api/advertising/ab-test",
			},
			Timeout:     30 * time.Second,
			MaxAttempts: 3,
			Capabilities: []string{
				"campaign-management", "ad-optimization", "ab-testing",
				"audience-targeting",
			},
		},
		"analyse": {
			Name:           "Analysis Agent",
			BaseURL:        "http://localhost:5004",
			HealthEndpoint: "/health",
			Endpoints: map[string]string{
				"product":  "/api/analysis/product",
				"checkout": "/api/analysis/checkout",
				"website":  "/api/analysis/website",
			},
			Timeout:     45 * time.Second,
			MaxAttempts: 3,
			Capabilities: []string{
				"product-analysis", "checkout-analysis", "website-audit",
			},
		},
		"pages": {
			Name:           "Page Generator Agent",
			BaseURL:        "http://localhost:5005",
			HealthEndpoint: "/health",
			Endpoints: map[string]string{
				"templates": "/api/templates",
				"generate":  "/api/generate",
			},
			Timeout:     60 * time.Second,
			MaxAttempts: 2,
			Capabilities: []string{
				"template-rendering", "page-generation", "landing-pages",
			},
		},
	}
}
