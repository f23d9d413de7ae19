package auth

import (
	"testing"

	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAPIKey(t *testing.T) {
	hash := HashAPIKey("my-secret-key")

	// SHA-256 hex digest
	assert.Len(t, hash, 64)
	assert.Equal(t, hash, HashAPIKey("my-secret-key"))
	assert.NotEqual(t, hash, HashAPIKey("another-key"))
}

func TestGenerateAPIKey(t *testing.T) {
	first := GenerateAPIKey()
	second := GenerateAPIKey()

	assert.Len(t, first, 64)
	assert.NotEqual(t, first, second)
}

func TestValidateAPIKey(t *testing.T) {
	cfg := &config.Configuration{}
	cfg.Auth.APIKey.Keys = map[string]config.APIKeyDetails{
		HashAPIKey("valid-key"): {
			TenantID: "tenant_ekko",
			UserID:   "user_ops",
			Name:     "ops",
			IsActive: true,
		},
		HashAPIKey("revoked-key"): {
			TenantID: "tenant_ekko",
			UserID:   "user_old",
			Name:     "decommissioned",
			IsActive: false,
		},
	}

	t.Run("valid key resolves identity", func(t *testing.T) {
		details, valid := ValidateAPIKey(cfg, "valid-key")
		require.True(t, valid)
		assert.Equal(t, "tenant_ekko", details.TenantID)
		assert.Equal(t, "user_ops", details.UserID)
		assert.Equal(t, "ops", details.Name)
	})

	t.Run("revoked key is rejected", func(t *testing.T) {
		_, valid := ValidateAPIKey(cfg, "revoked-key")
		assert.False(t, valid)
	})

	t.Run("unknown key is rejected", func(t *testing.T) {
		_, valid := ValidateAPIKey(cfg, "never-issued")
		assert.False(t, valid)
	})
}
