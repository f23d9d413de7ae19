package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"github.com/ekko-ai/agentgate/internal/config"
)

// HashAPIKey creates a SHA-256 hash of the API key. Only hashes are stored
// in configuration.
func HashAPIKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// GenerateAPIKey generates a new API key in its raw form. Hash it before
// storing it in config.
func GenerateAPIKey() string {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic(err)
	}
	return hex.EncodeToString(key)
}

// ValidateAPIKey looks the key up in the configuration by its hash. The
// returned details carry the tenant and user the key was issued to.
func ValidateAPIKey(cfg *config.Configuration, key string) (config.APIKeyDetails, bool) {
	details, exists := cfg.Auth.APIKey.Keys[HashAPIKey(key)]
	if !exists || !details.IsActive {
		return config.APIKeyDetails{}, false
	}
	return details, true
}
