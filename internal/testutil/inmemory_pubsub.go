package testutil

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
)

// InMemoryPubSub is a pubsub.PubSub for tests. Messages are retained per
// topic so assertions can run after the fact, and new subscribers replay the
// topic history the way a fresh consumer group would.
type InMemoryPubSub struct {
	mu     sync.RWMutex
	topics map[string]*topicState
	closed bool
}

type topicState struct {
	history []*message.Message
	subs    []chan *message.Message
}

func NewInMemoryPubSub() *InMemoryPubSub {
	return &InMemoryPubSub{
		topics: make(map[string]*topicState),
	}
}

// topic returns the state for a topic, creating it on first use. Callers
// must hold the lock.
func (ps *InMemoryPubSub) topic(name string) *topicState {
	if ts, ok := ps.topics[name]; ok {
		return ts
	}
	ts := &topicState{}
	ps.topics[name] = ts
	return ts
}

// Publish records the message and fans it out to current subscribers
func (ps *InMemoryPubSub) Publish(_ context.Context, topic string, msg *message.Message) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ts := ps.topic(topic)
	ts.history = append(ts.history, msg)
	for _, ch := range ts.subs {
		select {
		case ch <- msg:
		default:
			// Slow subscribers drop messages rather than block the test
		}
	}
	return nil
}

// Subscribe returns a channel fed by future publishes, primed with the
// topic's history
func (ps *InMemoryPubSub) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ts := ps.topic(topic)
	ch := make(chan *message.Message, 100)
	ts.subs = append(ts.subs, ch)

	history := append([]*message.Message(nil), ts.history...)
	go func() {
		for _, msg := range history {
			select {
			case ch <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}

func (ps *InMemoryPubSub) Close() error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.closed {
		return nil
	}
	ps.closed = true

	for _, ts := range ps.topics {
		for _, ch := range ts.subs {
			close(ch)
		}
	}
	ps.topics = make(map[string]*topicState)
	return nil
}

// GetMessages returns every message published to the topic so far
func (ps *InMemoryPubSub) GetMessages(topic string) []*message.Message {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	ts, ok := ps.topics[topic]
	if !ok {
		return nil
	}
	return append([]*message.Message(nil), ts.history...)
}

// ClearMessages drops the retained history but leaves subscribers attached
func (ps *InMemoryPubSub) ClearMessages() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	for _, ts := range ps.topics {
		ts.history = nil
	}
}
