package main

import (
	"fmt"

	"github.com/ekko-ai/agentgate/internal/auth"
)

func main() {
	// Generate an API key and the hash that goes into the gateway config.
	key := auth.GenerateAPIKey()
	fmt.Println("Generated API key:", key)
	fmt.Println("Config hash (auth.api_key.keys):", auth.HashAPIKey(key))
}
