package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/ekko-ai/agentgate/internal/clickhouse"
	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/sentry"
)

// migrations run in order and every statement is idempotent so the command
// can run on every deploy.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS agent_requests (
		id               String,
		request_id       String,
		tenant_id        String,
		environment_id   String DEFAULT '',
		agent_type       LowCardinality(String),
		capability       LowCardinality(String) DEFAULT '',
		endpoint         String,
		status           LowCardinality(String),
		status_code      Int32 DEFAULT 0,
		attempts         Int32 DEFAULT 0,
		response_time_ms Int64 DEFAULT 0,
		error_message    String DEFAULT '',
		source           LowCardinality(String) DEFAULT '',
		timestamp        DateTime64(3, 'UTC'),
		ingested_at      DateTime64(3, 'UTC') DEFAULT now64(3)
	) ENGINE = MergeTree()
	PARTITION BY toYYYYMM(timestamp)
	ORDER BY (tenant_id, timestamp, id)
	TTL toDateTime(timestamp) + INTERVAL 90 DAY`,
}

func main() {
	// Parse command line flags
	dryRun := flag.Bool("dry-run", false, "Print migration SQL without executing it")
	flag.Parse()

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	logger.Infow("Connecting to clickhouse", "address", cfg.ClickHouse.Address)

	sentryService := sentry.NewSentryService(cfg, logger)

	store, err := clickhouse.NewClickHouseStore(cfg, sentryService)
	if err != nil {
		logger.Fatalw("Failed to connect to clickhouse", "error", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Run auto migration
	logger.Info("Running database migrations...")

	// Check if we're in dry-run mode
	if *dryRun {
		logger.Info("Dry run mode - printing migration SQL without executing")
		for _, stmt := range migrations {
			fmt.Println(stmt + ";")
		}
	} else {
		for _, stmt := range migrations {
			if err := store.GetConn().Exec(ctx, stmt); err != nil {
				logger.Fatalw("Failed to apply migration", "error", err)
			}
		}
		logger.Info("Migration completed successfully")
	}

	fmt.Println("Migration process completed")
}
