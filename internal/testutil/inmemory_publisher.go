package testutil

import (
	"context"
	"sync"

	"github.com/ekko-ai/agentgate/internal/domain/requestlog"
	"github.com/ekko-ai/agentgate/internal/publisher"
)

// InMemoryPublisherService provides an in-memory implementation of
// publisher.EventPublisher for testing. Published events are inserted into
// the backing request log store synchronously so tests can assert on them
// immediately, without the kafka consumer in between.
type InMemoryPublisherService struct {
	mu     sync.RWMutex
	events []*requestlog.RequestEvent
	// Request log store standing in for the consumer pipeline
	eventStore *InMemoryRequestLogStore
}

var _ publisher.EventPublisher = (*InMemoryPublisherService)(nil)

// NewInMemoryEventPublisher creates a new instance of InMemoryPublisherService
func NewInMemoryEventPublisher(eventStore *InMemoryRequestLogStore) publisher.EventPublisher {
	return &InMemoryPublisherService{
		events:     make([]*requestlog.RequestEvent, 0),
		eventStore: eventStore,
	}
}

// Publish implements the publisher.EventPublisher interface
func (p *InMemoryPublisherService) Publish(ctx context.Context, event *requestlog.RequestEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)

	// Stand in for the consumer: write straight through to the store
	if p.eventStore != nil {
		_ = p.eventStore.InsertRequest(ctx, event)
	}

	return nil
}

// GetEvents returns all published events
func (p *InMemoryPublisherService) GetEvents() []*requestlog.RequestEvent {
	p.mu.RLock()
	defer p.mu.RUnlock()
	events := make([]*requestlog.RequestEvent, len(p.events))
	copy(events, p.events)
	return events
}

// HasEventForRequest checks whether any published event carries the given
// dispatch correlation ID
func (p *InMemoryPublisherService) HasEventForRequest(requestID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, evt := range p.events {
		if evt.RequestID == requestID {
			return true
		}
	}
	return false
}

// Clear removes all published events
func (p *InMemoryPublisherService) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = p.events[:0]
}
