package middleware

import (
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/types"
)

// SentryMiddleware returns a middleware that captures errors and performance data
func SentryMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	if !cfg.Sentry.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// SentryEnrichmentMiddleware tags the current scope with the caller identity
// so gateway errors can be traced back to a request and tenant
func SentryEnrichmentMiddleware(c *gin.Context) {
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		ctx := c.Request.Context()
		if requestID := types.GetRequestID(ctx); requestID != "" {
			hub.Scope().SetTag("request_id", requestID)
		}
		if tenantID := types.GetTenantID(ctx); tenantID != "" {
			hub.Scope().SetTag("tenant_id", tenantID)
		}
	}
	c.Next()
}
