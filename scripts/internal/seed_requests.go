package internal

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/ekko-ai/agentgate/internal/clickhouse"
	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/domain/requestlog"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/repository"
	"github.com/ekko-ai/agentgate/internal/sentry"
	"github.com/ekko-ai/agentgate/internal/types"
	"golang.org/x/time/rate"
)

const (
	NUM_REQUESTS    = 10000
	SEED_BATCH_SIZE = 100
	BATCHES_PER_SEC = 5 // Rate limit: bulk inserts per second
)

// seedRoute pairs an agent with one of its endpoints so the generated
// events look like real gateway traffic
type seedRoute struct {
	AgentType  string
	Capability string
	Endpoint   string
}

var seedRoutes = []seedRoute{
	{AgentType: "contenu", Capability: "blog-writing", Endpoint: "/api/content/blog"},
	{AgentType: "contenu", Capability: "product-descriptions", Endpoint: "/api/content/product"},
	{AgentType: "publicite", Capability: "campaign-management", Endpoint: "/api/advertising/campaigns"},
	{AgentType: "publicite", Capability: "ad-optimization", Endpoint: "/api/advertising/optimize"},
	{AgentType: "analyse", Capability: "checkout-analysis", Endpoint: "/api/analysis/checkout"},
	{AgentType: "analyse", Capability: "website-audit", Endpoint: "/api/analysis/website"},
	{AgentType: "pages", Capability: "landing-pages", Endpoint: "/api/generate"},
}

// generateRequestEvent creates a random terminal request event
func generateRequestEvent(tenantID string, index int) *requestlog.RequestEvent {
	route := seedRoutes[index%len(seedRoutes)]

	status := types.DispatchStatusCompleted
	statusCode := int32(200)
	attempts := int32(1)
	errorMessage := ""

	// Roughly one in twenty dispatches fails after exhausting its retries
	if rand.Intn(20) == 0 {
		status = types.DispatchStatusFailed
		statusCode = 503
		attempts = 3
		errorMessage = "agent returned status 503"
	} else if rand.Intn(10) == 0 {
		// Occasional dispatch that needed one retry before succeeding
		attempts = 2
	}

	// Generate timestamp within last 72 hours
	timestamp := time.Now().UTC().Add(-time.Duration(randInt64(0, 72)) * time.Hour)

	return &requestlog.RequestEvent{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST_EVENT),
		RequestID:      types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST),
		TenantID:       tenantID,
		AgentType:      route.AgentType,
		Capability:     route.Capability,
		Endpoint:       route.Endpoint,
		Status:         status.String(),
		StatusCode:     statusCode,
		Attempts:       attempts,
		ResponseTimeMs: randInt64(20, 1500) * int64(attempts),
		ErrorMessage:   errorMessage,
		Source:         requestlog.EventSource,
		Timestamp:      timestamp,
	}
}

// randInt64 generates a random int64 between min and max
func randInt64(min, max int64) int64 {
	return min + rand.Int63n(max-min+1)
}

// SeedRequestsClickhouse seeds synthetic request events into Clickhouse
func SeedRequestsClickhouse() error {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Error creating config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}

	sentryService := sentry.NewSentryService(cfg, logger)

	store, err := clickhouse.NewClickHouseStore(cfg, sentryService)
	if err != nil {
		log.Fatalf("Error connecting to clickhouse: %v", err)
	}
	defer store.Close()

	repo := repository.NewRequestLogRepository(store, logger)

	tenantID := os.Getenv("TENANT_ID")
	if tenantID == "" {
		tenantID = types.DefaultTenantID
	}

	logger.Info("Starting request seeding...")
	logger.Infof("Inserting %d request events in batches of %d with rate limit of %d batches/s",
		NUM_REQUESTS, SEED_BATCH_SIZE, BATCHES_PER_SEC)

	// Create rate limiter
	limiter := rate.NewLimiter(rate.Limit(BATCHES_PER_SEC), 1)

	ctx := context.Background()
	start := time.Now()
	inserted := 0

	// Process in batches
	for i := 0; i < NUM_REQUESTS; i += SEED_BATCH_SIZE {
		if err := limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %v", err)
		}

		batchSize := SEED_BATCH_SIZE
		if i+SEED_BATCH_SIZE > NUM_REQUESTS {
			batchSize = NUM_REQUESTS - i
		}

		events := make([]*requestlog.RequestEvent, 0, batchSize)
		for j := 0; j < batchSize; j++ {
			events = append(events, generateRequestEvent(tenantID, i+j))
		}

		if err := repo.BulkInsertRequests(ctx, events); err != nil {
			return fmt.Errorf("failed to insert batch %d: %v", i/SEED_BATCH_SIZE+1, err)
		}

		inserted += batchSize
		logger.Infof("Inserted batch %d: %d/%d events", i/SEED_BATCH_SIZE+1, inserted, NUM_REQUESTS)
	}

	logger.Info("Request seeding completed!")
	logger.Infof("Total Time: %v", time.Since(start))
	logger.Infof("Inserted Events: %d", inserted)
	logger.Infof("Tenant: %s", tenantID)

	return nil
}
