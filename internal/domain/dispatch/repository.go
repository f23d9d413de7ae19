package dispatch

import (
	"context"
	"time"
)

// SessionRepository persists dispatch sessions with a bounded TTL.
// Implementations exist for the in-process cache and for Redis.
type SessionRepository interface {
	// Set writes the session and refreshes its TTL
	Set(ctx context.Context, session *Session, ttl time.Duration) error

	// Get returns the session for the request ID or a not found error once
	// the TTL has expired
	Get(ctx context.Context, requestID string) (*Session, error)

	// Delete removes the session
	Delete(ctx context.Context, requestID string) error
}
