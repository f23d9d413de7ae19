package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ekko-ai/agentgate/internal/auth"
	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedIdentity struct {
	called        bool
	tenantID      string
	userID        string
	environmentID string
}

func newAuthConfig() *config.Configuration {
	cfg := &config.Configuration{}
	cfg.Auth.Secret = "gateway-secret"
	cfg.Auth.APIKey.Header = "x-api-key"
	cfg.Auth.APIKey.Keys = map[string]config.APIKeyDetails{
		auth.HashAPIKey("valid-key"): {
			TenantID: "tenant_ekko",
			UserID:   "user_ops",
			Name:     "ops",
			IsActive: true,
		},
		auth.HashAPIKey("revoked-key"): {
			TenantID: "tenant_ekko",
			UserID:   "user_old",
			Name:     "decommissioned",
			IsActive: false,
		},
	}
	return cfg
}

func newAuthRouter(cfg *config.Configuration) (*gin.Engine, *capturedIdentity) {
	gin.SetMode(gin.TestMode)

	captured := &capturedIdentity{}
	router := gin.New()
	router.Use(AuthenticateMiddleware(cfg, logger.GetLogger()))
	router.GET("/probe", func(c *gin.Context) {
		ctx := c.Request.Context()
		captured.called = true
		captured.tenantID = types.GetTenantID(ctx)
		captured.userID = types.GetUserID(ctx)
		captured.environmentID = types.GetEnvironmentID(ctx)
		c.Status(http.StatusOK)
	})
	return router, captured
}

func TestAuthenticateWithAPIKey(t *testing.T) {
	router, captured := newAuthRouter(newAuthConfig())

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("x-api-key", "valid-key")
	req.Header.Set(types.HeaderEnvironment, "env_prod")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, captured.called)
	assert.Equal(t, "tenant_ekko", captured.tenantID)
	assert.Equal(t, "user_ops", captured.userID)
	assert.Equal(t, "env_prod", captured.environmentID)
}

func TestAuthenticateRejectsUnknownAPIKey(t *testing.T) {
	router, captured := newAuthRouter(newAuthConfig())

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("x-api-key", "never-issued")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, captured.called)
}

func TestAuthenticateRejectsRevokedAPIKey(t *testing.T) {
	router, captured := newAuthRouter(newAuthConfig())

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("x-api-key", "revoked-key")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, captured.called)
}

func TestAuthenticateWithBearerToken(t *testing.T) {
	cfg := newAuthConfig()
	router, captured := newAuthRouter(cfg)

	token, err := auth.NewTokenValidator(cfg).GenerateToken("user_jwt", "tenant_jwt")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(types.HeaderAuthorization, "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tenant_jwt", captured.tenantID)
	assert.Equal(t, "user_jwt", captured.userID)
}

func TestAuthenticateRejectsBadBearerToken(t *testing.T) {
	router, captured := newAuthRouter(newAuthConfig())

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(types.HeaderAuthorization, "Bearer not-a-token")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, captured.called)
}

func TestAuthenticateRejectsMalformedAuthorizationHeader(t *testing.T) {
	router, captured := newAuthRouter(newAuthConfig())

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(types.HeaderAuthorization, "Basic dXNlcjpwYXNz")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, captured.called)
}

func TestAuthenticateRejectsAnonymousRequests(t *testing.T) {
	router, captured := newAuthRouter(newAuthConfig())

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, captured.called)
}
