package cache

import (
	"context"
	"sync"
	"time"

	"github.com/ekko-ai/agentgate/internal/logger"
	goCache "github.com/patrickmn/go-cache"
)

// Entries older than DefaultExpiration are evicted by the background
// janitor, which runs every DefaultCleanupInterval.
const (
	DefaultExpiration      = 1 * time.Hour
	DefaultCleanupInterval = 10 * time.Minute
)

// InMemoryCache backs the Cache interface with patrickmn/go-cache. The
// memory session store keeps dispatch sessions here, so the process
// always carries exactly one instance.
type InMemoryCache struct {
	cache *goCache.Cache
}

var (
	globalCache *InMemoryCache
	cacheOnce   sync.Once
)

// Initialize sets up the process wide cache and returns it for the fx
// graph
func Initialize(log *logger.Logger) *InMemoryCache {
	log.Info("Initializing cache system")
	return getGlobal()
}

// NewInMemoryCache returns the process wide cache behind the Cache
// interface
func NewInMemoryCache() Cache {
	return getGlobal()
}

func getGlobal() *InMemoryCache {
	cacheOnce.Do(func() {
		globalCache = &InMemoryCache{
			cache: goCache.New(DefaultExpiration, DefaultCleanupInterval),
		}
	})
	return globalCache
}

func (c *InMemoryCache) Get(_ context.Context, key string) (interface{}, bool) {
	return c.cache.Get(key)
}

func (c *InMemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) {
	c.cache.Set(key, value, expiration)
}

func (c *InMemoryCache) Delete(_ context.Context, key string) {
	c.cache.Delete(key)
}

func (c *InMemoryCache) Flush(_ context.Context) {
	c.cache.Flush()
}
