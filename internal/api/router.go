package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/ekko-ai/agentgate/internal/api/cron"
	v1 "github.com/ekko-ai/agentgate/internal/api/v1"
	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/rest/middleware"
)

type Handlers struct {
	Health     *v1.HealthHandler
	Agent      *v1.AgentHandler
	Dispatch   *v1.DispatchHandler
	Session    *v1.SessionHandler
	RequestLog *v1.RequestLogHandler

	CronKafkaLag *cron.KafkaLagHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	router := gin.New()

	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.SentryMiddleware(cfg),
		middleware.PyroscopeMiddleware(cfg),
		middleware.MetricsMiddleware,
		middleware.RateLimitMiddleware(cfg, logger),
		middleware.ErrorHandler(cfg, logger),
	)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	// Public routes
	router.GET("/health", handlers.Health.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// v1 routes require authentication. Sentry enrichment runs after auth so
	// the caller identity is already on the context.
	v1Group := router.Group("/v1",
		middleware.AuthenticateMiddleware(cfg, logger),
		middleware.SentryEnrichmentMiddleware,
	)
	registerV1Routes(v1Group, handlers)

	// Cron routes are hit by the scheduler, not end users, but still need a key
	cronGroup := router.Group("/cron", middleware.AuthenticateMiddleware(cfg, logger))
	cronGroup.POST("/kafka-lag", handlers.CronKafkaLag.HandleKafkaLagMonitoring)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	// Dispatch routes
	dispatch := router.Group("/dispatch")
	{
		dispatch.POST("", handlers.Dispatch.Dispatch)
		dispatch.POST("/capability", handlers.Dispatch.DispatchToCapability)
	}

	// Agent routes
	agents := router.Group("/agents")
	{
		agents.GET("", handlers.Agent.ListAgents)
		agents.GET("/capability/:capability", handlers.Agent.ResolveCapability)
		agents.GET("/:type", handlers.Agent.GetAgent)
		agents.POST("/:type/health", handlers.Agent.CheckAgentHealth)
	}

	// Session routes
	sessions := router.Group("/sessions")
	{
		sessions.GET("/:id", handlers.Session.GetSession)
	}

	// Request log routes
	requests := router.Group("/requests")
	{
		requests.GET("", handlers.RequestLog.GetRequests)
		requests.POST("/query", handlers.RequestLog.QueryRequests)
		requests.GET("/stats", handlers.RequestLog.GetRequestStats)
	}
}
