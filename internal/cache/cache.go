package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Cache is the interface shared by the TTL stores
type Cache interface {
	// Get returns the value stored under key and whether it was present
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set stores value under key for the given TTL. A zero expiration
	// keeps the entry until the store evicts it.
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration)

	// Delete removes key from the cache
	Delete(ctx context.Context, key string)

	// Flush drops every entry
	Flush(ctx context.Context)
}

// Key prefixes are versioned so the entry layout can change without
// serving stale reads
const (
	PrefixSession = "session:v1:"
)

// GenerateKey builds a cache key from the prefix and params, with params
// separated by colons
func GenerateKey(prefix string, params ...interface{}) string {
	var sb strings.Builder
	sb.WriteString(prefix)
	for i, param := range params {
		if i > 0 {
			sb.WriteByte(':')
		}
		sb.WriteString(fmt.Sprint(param))
	}
	return sb.String()
}
