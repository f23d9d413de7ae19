package cache

import (
	"context"
	"time"

	"github.com/ekko-ai/agentgate/internal/cache"
	"github.com/ekko-ai/agentgate/internal/domain/dispatch"
	ierr "github.com/ekko-ai/agentgate/internal/errors"
	"github.com/ekko-ai/agentgate/internal/logger"
)

// SessionRepository keeps dispatch sessions in the in-process TTL cache.
// Sessions do not survive a restart and are not shared across replicas,
// which is fine for local and single instance deployments.
type SessionRepository struct {
	cache  cache.Cache
	logger *logger.Logger
}

func NewSessionRepository(c cache.Cache, logger *logger.Logger) dispatch.SessionRepository {
	return &SessionRepository{cache: c, logger: logger}
}

func (r *SessionRepository) Set(ctx context.Context, session *dispatch.Session, ttl time.Duration) error {
	if session == nil || session.ID == "" {
		return ierr.NewError("session id is required").
			WithHint("Cannot store a session without an ID").
			Mark(ierr.ErrValidation)
	}

	span := cache.StartCacheSpan(ctx, "session", "set", map[string]interface{}{
		"request_id": session.ID,
	})
	defer cache.FinishSpan(span)

	// Store a copy so later mutations of the caller's session don't leak
	// into the cache
	stored := *session
	r.cache.Set(ctx, sessionKey(session.ID), &stored, ttl)

	r.logger.Debugw("stored dispatch session",
		"request_id", session.ID,
		"status", session.Status,
		"ttl", ttl,
	)
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, requestID string) (*dispatch.Session, error) {
	span := cache.StartCacheSpan(ctx, "session", "get", map[string]interface{}{
		"request_id": requestID,
	})
	defer cache.FinishSpan(span)

	value, found := r.cache.Get(ctx, sessionKey(requestID))
	if !found {
		return nil, ierr.NewError("session not found").
			WithHintf("No session found for request %s", requestID).
			WithReportableDetails(map[string]any{
				"request_id": requestID,
			}).
			Mark(ierr.ErrNotFound)
	}

	session, ok := value.(*dispatch.Session)
	if !ok {
		return nil, ierr.NewError("invalid session entry").
			WithHint("Cached value is not a dispatch session").
			WithReportableDetails(map[string]any{
				"request_id": requestID,
			}).
			Mark(ierr.ErrSystem)
	}

	// Return a copy for the same reason Set stores one
	result := *session
	return &result, nil
}

func (r *SessionRepository) Delete(ctx context.Context, requestID string) error {
	span := cache.StartCacheSpan(ctx, "session", "delete", map[string]interface{}{
		"request_id": requestID,
	})
	defer cache.FinishSpan(span)

	r.cache.Delete(ctx, sessionKey(requestID))
	return nil
}

func sessionKey(requestID string) string {
	return cache.GenerateKey(cache.PrefixSession, requestID)
}
