package service

import (
	"context"

	"github.com/ekko-ai/agentgate/internal/api/dto"
)

// SessionService exposes dispatch sessions by request ID
type SessionService interface {
	// GetSession returns the session for a request ID. Sessions expire
	// with the configured TTL, an expired session reads as not found.
	GetSession(ctx context.Context, requestID string) (*dto.SessionResponse, error)
}

type sessionService struct {
	ServiceParams
}

func NewSessionService(params ServiceParams) SessionService {
	return &sessionService{
		ServiceParams: params,
	}
}

func (s *sessionService) GetSession(ctx context.Context, requestID string) (*dto.SessionResponse, error) {
	session, err := s.SessionRepo.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return dto.NewSessionResponse(session), nil
}
