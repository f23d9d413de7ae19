package internal

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ekko-ai/agentgate/internal/auth"
	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/types"
)

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// GenerateNewAPIKey mints a raw API key and prints the hashed entry to add
// under auth.api_key.keys. The raw key is shown once and never stored.
func GenerateNewAPIKey() error {
	rawKey := auth.GenerateAPIKey()
	hashedKey := auth.HashAPIKey(rawKey)

	details := config.APIKeyDetails{
		TenantID: envOr("TENANT_ID", types.DefaultTenantID),
		UserID:   envOr("USER_ID", types.DefaultUserID),
		Name:     "Local Dev Key",
		IsActive: true,
	}

	jsonBytes, err := json.Marshal(map[string]config.APIKeyDetails{hashedKey: details})
	if err != nil {
		return err
	}

	fmt.Println("\nNew API key generated.")
	fmt.Printf("Raw key (send it in the x-api-key header): %s\n", rawKey)
	fmt.Println("\nAdd this under auth.api_key.keys in config.yaml:")
	fmt.Printf(`%s:
  tenant_id: %s
  user_id: %s
  name: %s
  is_active: %v
`, hashedKey, details.TenantID, details.UserID, details.Name, details.IsActive)
	fmt.Println("\nOr set the environment variable:")
	fmt.Printf("AGENTGATE_AUTH_API_KEY_KEYS='%s'\n", jsonBytes)

	return nil
}
