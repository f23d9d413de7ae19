package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/ekko-ai/agentgate/internal/config"
	ierr "github.com/ekko-ai/agentgate/internal/errors"
	"github.com/ekko-ai/agentgate/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(secret string) *TokenValidator {
	cfg := &config.Configuration{}
	cfg.Auth.Secret = secret
	return NewTokenValidator(cfg)
}

func TestTokenRoundTrip(t *testing.T) {
	v := newTestValidator("gateway-secret")

	token, err := v.GenerateToken("user_ops", "tenant_ekko")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := v.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user_ops", claims.UserID)
	assert.Equal(t, "tenant_ekko", claims.TenantID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := newTestValidator("gateway-secret").GenerateToken("user_ops", "tenant_ekko")
	require.NoError(t, err)

	claims, err := newTestValidator("another-secret").ValidateToken(context.Background(), token)
	require.Error(t, err)
	assert.Nil(t, claims)
	assert.True(t, ierr.IsPermissionDenied(err))
}

func TestValidateTokenGarbage(t *testing.T) {
	claims, err := newTestValidator("gateway-secret").ValidateToken(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateTokenExpired(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":   "user_ops",
		"tenant_id": "tenant_ekko",
		"exp":       time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte("gateway-secret"))
	require.NoError(t, err)

	claims, err := newTestValidator("gateway-secret").ValidateToken(context.Background(), signed)
	require.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateTokenMissingTenantFallsBack(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user_ops",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("gateway-secret"))
	require.NoError(t, err)

	claims, err := newTestValidator("gateway-secret").ValidateToken(context.Background(), signed)
	require.NoError(t, err)
	assert.Equal(t, "user_ops", claims.UserID)
	assert.Equal(t, types.DefaultTenantID, claims.TenantID)
}

func TestValidateTokenMissingUser(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"tenant_id": "tenant_ekko",
		"exp":       time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("gateway-secret"))
	require.NoError(t, err)

	claims, err := newTestValidator("gateway-secret").ValidateToken(context.Background(), signed)
	require.Error(t, err)
	assert.Nil(t, claims)
}
