package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/ekko-ai/agentgate/internal/alert"
	"github.com/ekko-ai/agentgate/internal/api"
	"github.com/ekko-ai/agentgate/internal/api/cron"
	v1 "github.com/ekko-ai/agentgate/internal/api/v1"
	"github.com/ekko-ai/agentgate/internal/cache"
	"github.com/ekko-ai/agentgate/internal/clickhouse"
	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/httpclient"
	"github.com/ekko-ai/agentgate/internal/kafka"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/publisher"
	"github.com/ekko-ai/agentgate/internal/pubsub"
	pubsubKafka "github.com/ekko-ai/agentgate/internal/pubsub/kafka"
	pubsubMemory "github.com/ekko-ai/agentgate/internal/pubsub/memory"
	pubsubRouter "github.com/ekko-ai/agentgate/internal/pubsub/router"
	"github.com/ekko-ai/agentgate/internal/pyroscope"
	"github.com/ekko-ai/agentgate/internal/redis"
	"github.com/ekko-ai/agentgate/internal/registry"
	"github.com/ekko-ai/agentgate/internal/repository"
	"github.com/ekko-ai/agentgate/internal/sentry"
	"github.com/ekko-ai/agentgate/internal/service"
	"github.com/ekko-ai/agentgate/internal/types"
	"github.com/ekko-ai/agentgate/internal/validator"
	"go.uber.org/fx"

	lambdaEvents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	_ "github.com/ekko-ai/agentgate/docs/swagger"
	"github.com/gin-gonic/gin"
)

// @title Ekko Agent Gateway API
// @version 1.0
// @description Gateway for dispatching work to Ekko platform agents
// @BasePath /v1
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description Enter your API key in the format *x-api-key &lt;api-key&gt;**

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	// Initialize Fx application
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Monitoring
			sentry.NewSentryService,

			// Cache
			cache.Initialize,

			// Clickhouse
			clickhouse.NewClickHouseStore,

			// Optional session store backend
			redis.NewClient,

			// Producers and Consumers
			kafka.NewProducer,
			kafka.NewConsumer,
			kafka.NewMonitoringService,

			// Request event stream
			provideEventPubSub,

			// Event Publisher
			publisher.NewEventPublisher,

			// HTTP Client
			httpclient.NewDefaultClient,

			// Repositories
			repository.NewRequestLogRepository,
			repository.NewSessionRepository,

			// Agent registry and health monitor
			registry.NewRegistry,
			registry.NewMonitor,
			provideHealthChecker,

			// PubSub
			pubsubRouter.NewRouter,
		),
	)

	// Alert module (must be initialised before services)
	opts = append(opts, alert.Module)

	// Continuous profiling
	opts = append(opts, pyroscope.Module())

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewAgentService,
			service.NewDispatchService,
			service.NewSessionService,
			service.NewRequestLogService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			sentry.RegisterHooks,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

// provideEventPubSub wires the stream that carries request events from the
// dispatcher to the request log consumer. Kafka deployments share the broker
// connection, everything else runs on an in-process channel.
func provideEventPubSub(
	cfg *config.Configuration,
	logger *logger.Logger,
	producer *kafka.Producer,
	consumer *kafka.Consumer,
) (pubsub.PubSub, error) {
	if cfg.Event.PublishDestination == types.PublishToKafka || cfg.Deployment.Mode == types.ModeConsumer {
		if producer == nil || consumer == nil {
			return nil, fmt.Errorf("kafka is not initialized but the event stream requires it")
		}
		return pubsubKafka.NewPubSub(cfg, logger, producer, consumer), nil
	}
	return pubsubMemory.NewPubSub(logger), nil
}

func provideHealthChecker(monitor *registry.Monitor) service.HealthChecker {
	return monitor
}

func provideHandlers(
	cfg *config.Configuration,
	logger *logger.Logger,
	agentService service.AgentService,
	dispatchService service.DispatchService,
	sessionService service.SessionService,
	requestLogService service.RequestLogService,
	kafkaMonitoring *kafka.MonitoringService,
) api.Handlers {
	return api.Handlers{
		Health:     v1.NewHealthHandler(agentService, logger),
		Agent:      v1.NewAgentHandler(agentService, logger),
		Dispatch:   v1.NewDispatchHandler(dispatchService, logger),
		Session:    v1.NewSessionHandler(sessionService, logger),
		RequestLog: v1.NewRequestLogHandler(requestLogService, logger),

		CronKafkaLag: cron.NewKafkaLagHandler(cfg, kafkaMonitoring, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	monitor *registry.Monitor,
	alertService *alert.Service,
	requestLogService service.RequestLogService,
	eventStream pubsub.PubSub,
	router *pubsubRouter.Router,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	// Register handlers before starting the router. The request log handler
	// only runs in modes that consume the event stream so API instances do
	// not compete with dedicated consumers for the same messages.
	switch mode {
	case types.ModeLocal:
		alertService.RegisterHandler(router)
		requestLogService.RegisterHandler(router, eventStream, cfg)
		startAPIServer(lc, r, cfg, log)
		startMonitor(lc, monitor, alertService, log)
		startMessageRouter(lc, router, log)
	case types.ModeAPI:
		alertService.RegisterHandler(router)
		startAPIServer(lc, r, cfg, log)
		startMonitor(lc, monitor, alertService, log)
		startMessageRouter(lc, router, log)
	case types.ModeConsumer:
		requestLogService.RegisterHandler(router, eventStream, cfg)
		startMessageRouter(lc, router, log)
	case types.ModeAWSLambdaAPI:
		// Lambda has no background loop, prime agent health once at cold
		// start so capability routing has state to work with
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Health.Timeout+time.Second)
		monitor.CheckAll(ctx)
		cancel()
		startAWSLambdaAPI(r)
	case types.ModeAWSLambdaConsumer:
		startAWSLambdaConsumer(requestLogService, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting API server...")
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}

func startMonitor(
	lc fx.Lifecycle,
	monitor *registry.Monitor,
	alertService *alert.Service,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: monitor.Start,
		OnStop: func(ctx context.Context) error {
			if err := monitor.Stop(ctx); err != nil {
				return err
			}
			// The monitor is the only alert producer, close the pipeline
			// behind it
			if err := alertService.Stop(); err != nil {
				log.Errorw("failed to stop alert service", "error", err)
			}
			return nil
		},
	})
}

func startAWSLambdaAPI(r *gin.Engine) {
	ginLambda := ginadapter.New(r)
	lambda.Start(ginLambda.ProxyWithContext)
}

func startAWSLambdaConsumer(requestLogService service.RequestLogService, log *logger.Logger) {
	handler := func(ctx context.Context, kafkaEvent lambdaEvents.KafkaEvent) error {
		log.Debugf("Received Kafka event: %+v", kafkaEvent)

		for _, records := range kafkaEvent.Records {
			for _, r := range records {
				log.Debugf("Processing record: topic=%s, partition=%d, offset=%d",
					r.Topic, r.Partition, r.Offset)

				// Kafka event source payloads arrive base64 encoded
				decodedPayload, err := base64.StdEncoding.DecodeString(string(r.Value))
				if err != nil {
					log.Errorf("Failed to decode base64 payload: %v", err)
					continue
				}

				if err := requestLogService.ProcessRawEvent(ctx, decodedPayload); err != nil {
					log.Errorf("Failed to process request event: %v, payload: %s", err, string(decodedPayload))
					continue
				}

				log.Infof("Successfully processed request event: topic=%s, partition=%d, offset=%d",
					r.Topic, r.Partition, r.Offset)
			}
		}
		return nil
	}

	lambda.Start(handler)
}

func startMessageRouter(
	lc fx.Lifecycle,
	router *pubsubRouter.Router,
	logger *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("starting message router")
			go func() {
				if err := router.Run(); err != nil {
					logger.Errorw("message router failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping message router")
			return router.Close()
		},
	})
}
