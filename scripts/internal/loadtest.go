package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/ekko-ai/agentgate/internal/api/dto"
	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/types"
	"golang.org/x/time/rate"
)

const (
	NUM_DISPATCHES   = 1000
	BATCH_SIZE       = 50
	REQUESTS_PER_SEC = 25 // upper bound on the outbound rate
	MAX_RETRIES      = 1  // retries per failed dispatch
	INITIAL_BACKOFF  = 100 * time.Millisecond
	REQUEST_TIMEOUT  = 15 * time.Second
)

type latencyStats struct {
	count int
	total time.Duration
	min   time.Duration
	max   time.Duration
}

func (ls *latencyStats) observe(d time.Duration) {
	if ls.count == 0 || d < ls.min {
		ls.min = d
	}
	if d > ls.max {
		ls.max = d
	}
	ls.count++
	ls.total += d
}

func (ls *latencyStats) mean() time.Duration {
	if ls.count == 0 {
		return 0
	}
	return ls.total / time.Duration(ls.count)
}

// generateDispatch creates a random dispatch request across the seed routes
func generateDispatch(index int) dto.DispatchRequest {
	route := seedRoutes[index%len(seedRoutes)]

	payload, _ := json.Marshal(map[string]interface{}{
		"topic":     fmt.Sprintf("load-test-%d", index),
		"requested": time.Now().UTC().Format(time.RFC3339),
	})

	return dto.DispatchRequest{
		AgentType: types.AgentType(route.AgentType),
		Endpoint:  route.Endpoint,
		Payload:   payload,
	}
}

func sendDispatch(gatewayURL, apiKey string, req dto.DispatchRequest, limiter *rate.Limiter, wg *sync.WaitGroup, results chan<- time.Duration, failures chan<- error) {
	defer wg.Done()

	if err := limiter.Wait(context.Background()); err != nil {
		failures <- fmt.Errorf("rate limiter wait: %w", err)
		return
	}

	body, err := json.Marshal(req)
	if err != nil {
		failures <- fmt.Errorf("marshal dispatch: %w", err)
		return
	}

	client := &http.Client{Timeout: REQUEST_TIMEOUT}
	start := time.Now()

	var lastErr error
	for attempt := 0; attempt <= MAX_RETRIES; attempt++ {
		if attempt > 0 {
			time.Sleep(INITIAL_BACKOFF * time.Duration(attempt))
		}

		if lastErr = postDispatch(client, gatewayURL, apiKey, body); lastErr == nil {
			results <- time.Since(start)
			return
		}
	}

	failures <- lastErr
}

func postDispatch(client *http.Client, gatewayURL, apiKey string, body []byte) error {
	httpReq, err := http.NewRequest(http.MethodPost, gatewayURL+"/v1/dispatch", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("x-api-key", apiKey)

	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}
	return nil
}

// LoadTestDispatch fires dispatch requests at a running gateway and reports
// latency and error metrics
func LoadTestDispatch() error {
	logger, err := logger.NewLogger(config.GetDefaultConfig())
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}

	gatewayURL := envOr("GATEWAY_URL", "http://localhost:8080")
	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		return fmt.Errorf("API_KEY is required, pass it with -api-key")
	}

	logger.Infow("load test starting",
		"gateway", gatewayURL,
		"dispatches", NUM_DISPATCHES,
		"batch_size", BATCH_SIZE,
		"rate_limit", REQUESTS_PER_SEC,
	)

	limiter := rate.NewLimiter(rate.Limit(REQUESTS_PER_SEC), 1)

	var wg sync.WaitGroup
	results := make(chan time.Duration, NUM_DISPATCHES)
	failures := make(chan error, NUM_DISPATCHES)

	start := time.Now()

	for offset := 0; offset < NUM_DISPATCHES; offset += BATCH_SIZE {
		batchStart := time.Now()

		size := BATCH_SIZE
		if offset+size > NUM_DISPATCHES {
			size = NUM_DISPATCHES - offset
		}

		for j := 0; j < size; j++ {
			req := generateDispatch(offset + j + rand.Intn(len(seedRoutes)))
			wg.Add(1)
			go sendDispatch(gatewayURL, apiKey, req, limiter, &wg, results, failures)
		}
		wg.Wait()

		logger.Infow("batch finished",
			"batch", offset/BATCH_SIZE+1,
			"sent", offset+size,
			"of", NUM_DISPATCHES,
			"took", time.Since(batchStart),
		)
	}

	close(results)
	close(failures)

	var stats latencyStats
	for d := range results {
		stats.observe(d)
	}

	failed := 0
	for err := range failures {
		failed++
		logger.Errorw("dispatch failed", "error", err)
	}

	elapsed := time.Since(start)
	logger.Infow("load test finished",
		"total_time", elapsed,
		"succeeded", stats.count,
		"failed", failed,
		"avg", stats.mean(),
		"min", stats.min,
		"max", stats.max,
		"req_per_sec", fmt.Sprintf("%.2f", float64(stats.count)/elapsed.Seconds()),
	)

	return nil
}
