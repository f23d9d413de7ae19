package redis

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/domain/dispatch"
	ierr "github.com/ekko-ai/agentgate/internal/errors"
	"github.com/ekko-ai/agentgate/internal/logger"
	"github.com/ekko-ai/agentgate/internal/redis"
)

// SessionRepository keeps dispatch sessions in redis so they survive
// restarts and are visible to every gateway replica. Keys carry the
// configured prefix and expire with the session TTL.
type SessionRepository struct {
	client *redis.Client
	prefix string
	logger *logger.Logger
}

func NewSessionRepository(client *redis.Client, cfg *config.Configuration, logger *logger.Logger) dispatch.SessionRepository {
	return &SessionRepository{
		client: client,
		prefix: cfg.Sessions.KeyPrefix,
		logger: logger,
	}
}

func (r *SessionRepository) Set(ctx context.Context, session *dispatch.Session, ttl time.Duration) error {
	if session == nil || session.ID == "" {
		return ierr.NewError("session id is required").
			WithHint("Cannot store a session without an ID").
			Mark(ierr.ErrValidation)
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to marshal dispatch session").
			WithReportableDetails(map[string]any{
				"request_id": session.ID,
			}).
			Mark(ierr.ErrValidation)
	}

	// SET with expiry refreshes the TTL on every write
	if err := r.client.DB().Set(ctx, r.key(session.ID), payload, ttl).Err(); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to store dispatch session").
			WithReportableDetails(map[string]any{
				"request_id": session.ID,
			}).
			Mark(ierr.ErrDatabase)
	}

	r.logger.Debugw("stored dispatch session",
		"request_id", session.ID,
		"status", session.Status,
		"ttl", ttl,
	)
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, requestID string) (*dispatch.Session, error) {
	payload, err := r.client.DB().Get(ctx, r.key(requestID)).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, ierr.NewError("session not found").
				WithHintf("No session found for request %s", requestID).
				WithReportableDetails(map[string]any{
					"request_id": requestID,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to read dispatch session").
			WithReportableDetails(map[string]any{
				"request_id": requestID,
			}).
			Mark(ierr.ErrDatabase)
	}

	var session dispatch.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to unmarshal dispatch session").
			WithReportableDetails(map[string]any{
				"request_id": requestID,
			}).
			Mark(ierr.ErrSystem)
	}

	return &session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, requestID string) error {
	if err := r.client.DB().Del(ctx, r.key(requestID)).Err(); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete dispatch session").
			WithReportableDetails(map[string]any{
				"request_id": requestID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *SessionRepository) key(requestID string) string {
	return r.prefix + requestID
}
