package testutil

import (
	"context"
	"time"

	"github.com/ekko-ai/agentgate/internal/cache"
	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/domain/dispatch"
	"github.com/ekko-ai/agentgate/internal/domain/requestlog"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/publisher"
	cacherepo "github.com/ekko-ai/agentgate/internal/repository/cache"
	"github.com/ekko-ai/agentgate/internal/types"
	"github.com/ekko-ai/agentgate/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores bundles the repository fakes handed to services under test
type Stores struct {
	SessionRepo    dispatch.SessionRepository
	RequestLogRepo requestlog.Repository
}

// BaseServiceTestSuite provides common functionality for all service test
// suites: a scoped context, in-memory stores, a mock agent HTTP client and a
// config carrying the stock agent fleet with millisecond retry intervals so
// retry paths run fast.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	stores     Stores
	publisher  publisher.EventPublisher
	httpClient *MockHTTPClient
	cache      cache.Cache
	logger     *logger.Logger
	config     *config.Configuration
	now        time.Time
}

// SetupSuite runs once before the suite starts
func (s *BaseServiceTestSuite) SetupSuite() {
	// Initialize validator
	validator.NewValidator()

	cfg := &config.Configuration{
		Deployment: config.DeploymentConfig{Mode: types.ModeLocal},
		Server:     config.ServerConfig{Address: ":8080"},
		Logging: config.LoggingConfig{
			Level: types.LogLevelInfo,
		},
		Dispatch: config.DispatchConfig{
			Timeout:     5 * time.Second,
			MaxAttempts: 3,
			// Millisecond backoff keeps retry tests fast
			InitialInterval: time.Millisecond,
			MaxInterval:     5 * time.Millisecond,
		},
		Health: config.HealthConfig{
			Interval: 30 * time.Second,
			Timeout:  2 * time.Second,
		},
		Sessions: config.SessionConfig{
			Store: types.SessionStoreMemory,
			TTL:   time.Hour,
		},
		Agents: config.DefaultAgents(),
	}
	cfg.ApplyDefaults()

	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}

	// Initialize cache
	cache.Initialize(s.logger)
}

// SetupTest runs before every test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest runs after every test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

// setupContext builds a context carrying the caller identity the auth
// middleware would normally set
func (s *BaseServiceTestSuite) setupContext() {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxTenantID, types.DefaultTenantID)
	ctx = context.WithValue(ctx, types.CtxUserID, types.DefaultUserID)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	ctx = context.WithValue(ctx, types.CtxEnvironmentID, "env_sandbox")
	s.ctx = ctx
}

func (s *BaseServiceTestSuite) setupStores() {
	s.cache = cache.NewInMemoryCache()
	s.stores = Stores{
		SessionRepo:    cacherepo.NewSessionRepository(s.cache, s.logger),
		RequestLogRepo: NewInMemoryRequestLogStore(),
	}

	requestLogStore := s.stores.RequestLogRepo.(*InMemoryRequestLogStore)
	s.publisher = NewInMemoryEventPublisher(requestLogStore)
	s.httpClient = NewMockHTTPClient()
}

func (s *BaseServiceTestSuite) clearStores() {
	s.cache.Flush(context.Background())
	s.stores.RequestLogRepo.(*InMemoryRequestLogStore).Clear()
	s.publisher.(*InMemoryPublisherService).Clear()
	s.httpClient.Clear()
}

// GetContext returns the per test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig exposes the suite configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns the repository fakes
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetPublisher returns the capturing event publisher
func (s *BaseServiceTestSuite) GetPublisher() publisher.EventPublisher {
	return s.publisher
}

// GetHTTPClient returns the mock agent HTTP client
func (s *BaseServiceTestSuite) GetHTTPClient() *MockHTTPClient {
	return s.httpClient
}

// GetLogger returns the suite logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the suite clock, always in UTC
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now.UTC()
}

// GetUUID returns a fresh identifier
func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}
