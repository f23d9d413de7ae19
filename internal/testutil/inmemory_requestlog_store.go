package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ekko-ai/agentgate/internal/domain/requestlog"
	ierr "github.com/ekko-ai/agentgate/internal/errors"
	"github.com/ekko-ai/agentgate/internal/types"
)

// InMemoryRequestLogStore implements requestlog.Repository with the same
// filter and ordering semantics as the ClickHouse repository.
type InMemoryRequestLogStore struct {
	mu     sync.RWMutex
	events map[string]*requestlog.RequestEvent
}

func NewInMemoryRequestLogStore() *InMemoryRequestLogStore {
	return &InMemoryRequestLogStore{
		events: make(map[string]*requestlog.RequestEvent),
	}
}

func (s *InMemoryRequestLogStore) InsertRequest(ctx context.Context, event *requestlog.RequestEvent) error {
	if event == nil {
		return ierr.NewError("event cannot be nil").
			WithHint("Event cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if err := event.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *event
	s.events[event.ID] = &stored
	return nil
}

func (s *InMemoryRequestLogStore) BulkInsertRequests(ctx context.Context, events []*requestlog.RequestEvent) error {
	for _, event := range events {
		if err := s.InsertRequest(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

func (s *InMemoryRequestLogStore) GetRequests(ctx context.Context, params *requestlog.GetRequestsParams) ([]*requestlog.RequestEvent, uint64, error) {
	if params == nil {
		return nil, 0, ierr.NewError("params cannot be nil").
			WithHint("Params cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*requestlog.RequestEvent
	for _, event := range s.events {
		if !s.matchesScope(ctx, event) {
			continue
		}
		if params.RequestID != "" && event.RequestID != params.RequestID {
			continue
		}
		if params.AgentType != "" && event.AgentType != params.AgentType {
			continue
		}
		if params.Capability != "" && event.Capability != params.Capability {
			continue
		}
		if params.Status != "" && event.Status != params.Status {
			continue
		}
		if params.Endpoint != "" && !strings.Contains(event.Endpoint, params.Endpoint) {
			continue
		}
		if !params.StartTime.IsZero() && event.Timestamp.Before(params.StartTime) {
			continue
		}
		if !params.EndTime.IsZero() && event.Timestamp.After(params.EndTime) {
			continue
		}

		// Keyset filters on the (timestamp, id) composite key
		if params.IterFirst != nil {
			if event.Timestamp.Equal(params.IterFirst.Timestamp) {
				if event.ID <= params.IterFirst.ID {
					continue
				}
			} else if !event.Timestamp.After(params.IterFirst.Timestamp) {
				continue
			}
		} else if params.IterLast != nil {
			if event.Timestamp.Equal(params.IterLast.Timestamp) {
				if event.ID >= params.IterLast.ID {
					continue
				}
			} else if !event.Timestamp.Before(params.IterLast.Timestamp) {
				continue
			}
		}

		matched = append(matched, event)
	}

	var totalCount uint64
	if params.CountTotal {
		totalCount = uint64(len(matched))
	}

	// Order by timestamp DESC, id DESC
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Timestamp.Equal(matched[j].Timestamp) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	if params.Offset > 0 {
		if params.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[params.Offset:]
		}
	}
	if params.PageSize > 0 && params.PageSize < len(matched) {
		matched = matched[:params.PageSize]
	}

	results := make([]*requestlog.RequestEvent, 0, len(matched))
	for _, event := range matched {
		copied := *event
		results = append(results, &copied)
	}
	return results, totalCount, nil
}

func (s *InMemoryRequestLogStore) GetRequestStats(ctx context.Context, params *requestlog.RequestStatsParams) ([]*requestlog.RequestStat, error) {
	if params == nil {
		return nil, ierr.NewError("params cannot be nil").
			WithHint("Params cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	type bucket struct {
		total      uint64
		failed     uint64
		responseMs int64
		maxMs      int64
		attempts   int64
	}
	buckets := make(map[string]*bucket)

	for _, event := range s.events {
		if !s.matchesScope(ctx, event) {
			continue
		}
		if params.AgentType != "" && event.AgentType != params.AgentType {
			continue
		}
		if !params.StartTime.IsZero() && event.Timestamp.Before(params.StartTime) {
			continue
		}
		if !params.EndTime.IsZero() && event.Timestamp.After(params.EndTime) {
			continue
		}

		b, ok := buckets[event.AgentType]
		if !ok {
			b = &bucket{}
			buckets[event.AgentType] = b
		}
		b.total++
		if event.Status == types.DispatchStatusFailed.String() {
			b.failed++
		}
		b.responseMs += event.ResponseTimeMs
		if event.ResponseTimeMs > b.maxMs {
			b.maxMs = event.ResponseTimeMs
		}
		b.attempts += int64(event.Attempts)
	}

	agentTypes := make([]string, 0, len(buckets))
	for agentType := range buckets {
		agentTypes = append(agentTypes, agentType)
	}
	sort.Strings(agentTypes)

	stats := make([]*requestlog.RequestStat, 0, len(agentTypes))
	for _, agentType := range agentTypes {
		b := buckets[agentType]
		stat := &requestlog.RequestStat{
			AgentType:         agentType,
			TotalRequests:     b.total,
			FailedRequests:    b.failed,
			MaxResponseTimeMs: b.maxMs,
			TotalAttempts:     b.attempts,
		}
		if b.total > 0 {
			stat.AvgResponseTimeMs = float64(b.responseMs) / float64(b.total)
		}
		stats = append(stats, stat)
	}
	return stats, nil
}

// matchesScope applies the tenant and environment scoping that the
// ClickHouse repository derives from the request context.
func (s *InMemoryRequestLogStore) matchesScope(ctx context.Context, event *requestlog.RequestEvent) bool {
	if event.TenantID != types.GetTenantID(ctx) {
		return false
	}
	environmentID := types.GetEnvironmentID(ctx)
	if environmentID != "" && event.EnvironmentID != environmentID {
		return false
	}
	return true
}

func (s *InMemoryRequestLogStore) HasEvent(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.events[id]
	return exists
}

func (s *InMemoryRequestLogStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

func (s *InMemoryRequestLogStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[string]*requestlog.RequestEvent)
}
