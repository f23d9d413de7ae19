package service

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/ekko-ai/agentgate/internal/domain/agent"
	"github.com/ekko-ai/agentgate/internal/domain/dispatch"
	"github.com/ekko-ai/agentgate/internal/domain/requestlog"
	ierr "github.com/ekko-ai/agentgate/internal/errors"
	"github.com/ekko-ai/agentgate/internal/httpclient"
	"github.com/ekko-ai/agentgate/internal/metrics"
	"github.com/ekko-ai/agentgate/internal/sentry"
	"github.com/ekko-ai/agentgate/internal/types"
)

// DispatchService forwards tenant requests to agents with retries. Every
// dispatch is tracked as a session in the session store and emits a request
// telemetry event once it reaches a terminal state.
type DispatchService interface {
	// Dispatch sends the payload to the named agent
	Dispatch(ctx context.Context, agentType types.AgentType, endpoint string, payload json.RawMessage, opts *types.DispatchOptions) (*dispatch.Result, error)

	// DispatchToCapability routes the payload to the healthy agent with
	// the lowest error rate among those advertising the capability
	DispatchToCapability(ctx context.Context, capability types.Capability, endpoint string, payload json.RawMessage, opts *types.DispatchOptions) (*dispatch.Result, error)
}

type dispatchService struct {
	ServiceParams
	sentry *sentry.Service
}

func NewDispatchService(params ServiceParams, sentryService *sentry.Service) DispatchService {
	return &dispatchService{
		ServiceParams: params,
		sentry:        sentryService,
	}
}

func (s *dispatchService) Dispatch(ctx context.Context, agentType types.AgentType, endpoint string, payload json.RawMessage, opts *types.DispatchOptions) (*dispatch.Result, error) {
	a, err := s.Registry.Get(ctx, agentType)
	if err != nil {
		return nil, err
	}
	return s.dispatch(ctx, a, "", endpoint, payload, opts)
}

func (s *dispatchService) DispatchToCapability(ctx context.Context, capability types.Capability, endpoint string, payload json.RawMessage, opts *types.DispatchOptions) (*dispatch.Result, error) {
	a, err := s.Registry.FindForCapability(ctx, capability)
	if err != nil {
		return nil, err
	}
	return s.dispatch(ctx, a, capability, endpoint, payload, opts)
}

func (s *dispatchService) dispatch(
	ctx context.Context,
	a *agent.Agent,
	capability types.Capability,
	endpoint string,
	payload json.RawMessage,
	opts *types.DispatchOptions,
) (*dispatch.Result, error) {
	path, err := a.ResolvePath(endpoint)
	if err != nil {
		return nil, err
	}
	url := a.URL(path)

	if opts == nil {
		opts = &types.DispatchOptions{}
	}
	timeout := s.attemptTimeout(a, opts)
	maxAttempts := s.attemptBudget(a, opts)

	if payload == nil {
		payload = json.RawMessage("{}")
	}

	session := dispatch.NewSession(types.GetTenantID(ctx), types.GetEnvironmentID(ctx), a.Type, path)
	session.Capability = capability

	// The pending session is written before the first network byte so
	// callers can poll an in-flight dispatch by its request ID
	if err := s.SessionRepo.Set(ctx, session, s.Config.Sessions.TTL); err != nil {
		return nil, err
	}

	s.Logger.Debugw("dispatching agent request",
		"request_id", session.ID,
		"agent_type", a.Type,
		"endpoint", path,
		"max_attempts", maxAttempts,
		"timeout", timeout,
	)

	var (
		attempts   int
		resp       *httpclient.Response
		lastStatus int
		lastErrMsg string
	)

	start := time.Now()

	operation := func() error {
		attempts++
		attemptStart := time.Now()

		span, sendCtx := s.sentry.StartAgentSpan(ctx, "agent.request", map[string]interface{}{
			"agent_type": string(a.Type),
			"endpoint":   path,
			"attempt":    attempts,
		})
		r, sendErr := s.Client.Send(sendCtx, &httpclient.Request{
			Method:  http.MethodPost,
			URL:     url,
			Headers: s.requestHeaders(session.ID, opts),
			Body:    payload,
			Timeout: timeout,
		})
		if span != nil {
			span.Finish()
		}
		if sendErr != nil {
			lastErrMsg = sendErr.Error()
			lastStatus = 0
			if httpErr, ok := httpclient.IsHTTPError(sendErr); ok {
				lastStatus = httpErr.StatusCode
			}

			s.Registry.RecordFailure(ctx, a.Type, lastErrMsg)
			s.Logger.Warnw("agent request attempt failed",
				"request_id", session.ID,
				"agent_type", a.Type,
				"attempt", attempts,
				"max_attempts", maxAttempts,
				"status_code", lastStatus,
				"error", sendErr,
			)

			// A 4xx means the request itself is wrong, retrying cannot fix it
			if httpclient.IsClientError(sendErr) {
				return backoff.Permanent(sendErr)
			}
			return sendErr
		}

		s.Registry.RecordSuccess(ctx, a.Type, time.Since(attemptStart).Milliseconds())
		resp = r
		return nil
	}

	err = backoff.Retry(operation, s.newBackOff(ctx, maxAttempts))
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		session.MarkFailed(lastStatus, attempts, elapsed, lastErrMsg)
		s.saveSession(ctx, session)
		s.publishEvent(ctx, session)
		metrics.RecordDispatch(a.Type, session.Status, attempts)

		s.Logger.Errorw("agent request failed",
			"request_id", session.ID,
			"agent_type", a.Type,
			"attempts", attempts,
			"status_code", lastStatus,
			"error", err,
		)

		return nil, ierr.WithError(err).
			WithMessagef("agent %s request failed", a.Type).
			WithHintf("Agent %s did not accept the request", a.Type).
			WithReportableDetails(map[string]any{
				"agent_type": a.Type,
				"request_id": session.ID,
				"attempts":   attempts,
			}).
			Mark(ierr.ErrHTTPClient)
	}

	session.MarkCompleted(resp.StatusCode, attempts, elapsed)
	s.saveSession(ctx, session)
	s.publishEvent(ctx, session)
	metrics.RecordDispatch(a.Type, session.Status, attempts)

	s.Logger.Infow("agent request completed",
		"request_id", session.ID,
		"agent_type", a.Type,
		"attempts", attempts,
		"status_code", resp.StatusCode,
		"response_time_ms", elapsed,
	)

	return &dispatch.Result{
		Success:        true,
		Data:           resp.Body,
		RequestID:      session.ID,
		ResponseTimeMs: elapsed,
		AgentType:      a.Type,
		StatusCode:     resp.StatusCode,
		Attempts:       attempts,
	}, nil
}

// newBackOff builds the retry schedule: 1s, 2s, 4s, 8s then capped at 10s,
// with no jitter so the schedule is deterministic. The budget is attempt
// based, not time based, hence no MaxElapsedTime.
func (s *dispatchService) newBackOff(ctx context.Context, maxAttempts int) backoff.BackOff {
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = s.Config.Dispatch.InitialInterval
	expo.MaxInterval = s.Config.Dispatch.MaxInterval
	expo.Multiplier = 2
	expo.RandomizationFactor = 0
	expo.MaxElapsedTime = 0
	expo.Reset()

	return backoff.WithContext(backoff.WithMaxRetries(expo, uint64(maxAttempts-1)), ctx)
}

func (s *dispatchService) attemptTimeout(a *agent.Agent, opts *types.DispatchOptions) time.Duration {
	if opts.Timeout > 0 {
		return opts.Timeout
	}
	if a.Timeout > 0 {
		return a.Timeout
	}
	return s.Config.Dispatch.Timeout
}

func (s *dispatchService) attemptBudget(a *agent.Agent, opts *types.DispatchOptions) int {
	budget := s.Config.Dispatch.MaxAttempts
	if a.MaxAttempts > 0 {
		budget = a.MaxAttempts
	}
	if opts.MaxAttempts > 0 {
		budget = opts.MaxAttempts
	}
	if budget < 1 {
		budget = 1
	}
	return budget
}

func (s *dispatchService) requestHeaders(requestID string, opts *types.DispatchOptions) map[string]string {
	headers := map[string]string{
		types.HeaderRequestID: requestID,
	}
	for k, v := range opts.Headers {
		headers[k] = v
	}
	return headers
}

// saveSession refreshes the stored session, extending its TTL. A failed
// write is logged and swallowed, the dispatch outcome stands either way.
func (s *dispatchService) saveSession(ctx context.Context, session *dispatch.Session) {
	if err := s.SessionRepo.Set(ctx, session, s.Config.Sessions.TTL); err != nil {
		s.Logger.Errorw("dispatch session could not be saved",
			"request_id", session.ID,
			"status", session.Status,
			"error", err,
		)
	}
}

// publishEvent emits the request telemetry event for a finished dispatch.
// Publishing is best effort and never fails the dispatch.
func (s *dispatchService) publishEvent(ctx context.Context, session *dispatch.Session) {
	event := requestlog.NewRequestEvent(session)
	if err := s.EventPublisher.Publish(ctx, event); err != nil {
		s.Logger.Errorw("request event could not be published",
			"request_id", session.ID,
			"event_id", event.ID,
			"error", err,
		)
	}
}
