package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ekko-ai/agentgate/scripts/internal"
)

// Command is one runnable maintenance script
type Command struct {
	Name        string
	Description string
	Run         func() error
}

var commands = []Command{
	{
		Name:        "seed-requests",
		Description: "Seed request events into Clickhouse",
		Run:         internal.SeedRequestsClickhouse,
	},
	{
		Name:        "load-test",
		Description: "Load test the dispatch endpoint of a running gateway",
		Run:         internal.LoadTestDispatch,
	},
	{
		Name:        "generate-apikey",
		Description: "Generate a new API key",
		Run:         internal.GenerateNewAPIKey,
	},
	{
		Name:        "kafka-test",
		Description: "Test connectivity to the configured kafka brokers",
		Run:         internal.TestKafkaConnection,
	},
}

func main() {
	// Define command line flags
	var (
		listCommands bool
		cmdName      string
		tenantID     string
		userID       string
		gatewayURL   string
		apiKey       string
	)

	flag.BoolVar(&listCommands, "list", false, "List the available commands")
	flag.StringVar(&cmdName, "cmd", "", "Name of the command to run")
	flag.StringVar(&tenantID, "tenant-id", "", "Tenant to attribute generated keys to")
	flag.StringVar(&userID, "user-id", "", "User to attribute generated keys to")
	flag.StringVar(&gatewayURL, "gateway-url", "", "Base URL of the gateway for load tests")
	flag.StringVar(&apiKey, "api-key", "", "API key for load tests")

	flag.Parse()

	if listCommands {
		fmt.Println("Commands:")
		for _, cmd := range commands {
			fmt.Printf("  %-20s %s\n", cmd.Name, cmd.Description)
		}
		return
	}

	if cmdName == "" {
		log.Fatal("no command given, pass one with -cmd or use -list to see what is available")
	}

	// Flags become env vars so every command keeps the same func() error shape
	for env, value := range map[string]string{
		"TENANT_ID":   tenantID,
		"USER_ID":     userID,
		"GATEWAY_URL": gatewayURL,
		"API_KEY":     apiKey,
	} {
		if value != "" {
			os.Setenv(env, value)
		}
	}

	var selected *Command
	for i := range commands {
		if commands[i].Name == cmdName {
			selected = &commands[i]
			break
		}
	}
	if selected == nil {
		log.Fatalf("unknown command %q, use -list to see what is available", cmdName)
	}

	if err := selected.Run(); err != nil {
		log.Fatalf("command %s failed: %v", cmdName, err)
	}
}
