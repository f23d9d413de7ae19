package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ekko-ai/agentgate/internal/auth"
	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/types"
)

// AuthenticateMiddleware accepts either an API key in the configured
// header or a bearer token in the Authorization header, and stores the
// resolved tenant and user on the request context for downstream
// handlers.
func AuthenticateMiddleware(cfg *config.Configuration, logger *logger.Logger) gin.HandlerFunc {
	validator := auth.NewTokenValidator(cfg)

	return func(c *gin.Context) {
		// API keys win over bearer tokens when both are present
		if apiKey := c.GetHeader(cfg.Auth.APIKey.Header); apiKey != "" {
			details, valid := auth.ValidateAPIKey(cfg, apiKey)
			if !valid || details.TenantID == "" || details.UserID == "" {
				logger.Debugw("invalid api key")
				abortUnauthorized(c, "Invalid API key")
				return
			}

			c.Request = c.Request.WithContext(
				withCallerContext(c.Request.Context(), c, details.TenantID, details.UserID))
			c.Next()
			return
		}

		authHeader := c.GetHeader(types.HeaderAuthorization)
		if authHeader == "" {
			abortUnauthorized(c, "Unauthorized")
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := validator.ValidateToken(c.Request.Context(), strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			logger.Errorw("bearer token rejected", "error", err)
			abortUnauthorized(c, "Invalid token")
			return
		}
		if claims == nil || claims.UserID == "" || claims.TenantID == "" {
			abortUnauthorized(c, "Invalid token claims")
			return
		}

		c.Request = c.Request.WithContext(
			withCallerContext(c.Request.Context(), c, claims.TenantID, claims.UserID))
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
	c.Abort()
}

// withCallerContext sets the authenticated identity and the requested
// environment on the request context
func withCallerContext(ctx context.Context, c *gin.Context, tenantID, userID string) context.Context {
	ctx = context.WithValue(ctx, types.CtxTenantID, tenantID)
	ctx = context.WithValue(ctx, types.CtxUserID, userID)

	if environmentID := c.GetHeader(types.HeaderEnvironment); environmentID != "" {
		ctx = context.WithValue(ctx, types.CtxEnvironmentID, environmentID)
	}
	return ctx
}
