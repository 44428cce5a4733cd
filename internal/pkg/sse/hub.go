// Package sse fans domain events out to server-sent event subscribers.
package sse

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/biztime-backend-go/internal/pkg/events"
)

// AllEntities subscribes to every entity's events.
const AllEntities = ""

const subscriberBuffer = 16

// Hub manages SSE subscribers and event broadcasting
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan events.Event]struct{}
	closed      bool
}

// NewHub creates a new SSE Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan events.Event]struct{}),
	}
}

// Subscribe registers a subscriber for one entity ("company", "invoice") or
// AllEntities, and returns the event channel and its cleanup function.
func (h *Hub) Subscribe(entity string) (<-chan events.Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan events.Event, subscriberBuffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	if h.subscribers[entity] == nil {
		h.subscribers[entity] = make(map[chan events.Event]struct{})
	}
	h.subscribers[entity][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subscribers[entity][ch]; !ok {
			return
		}
		delete(h.subscribers[entity], ch)
		close(ch)
		if len(h.subscribers[entity]) == 0 {
			delete(h.subscribers, entity)
		}
	}

	return ch, cleanup
}

// Publish implements events.Publisher. Slow subscribers miss events rather
// than block the caller.
func (h *Hub) Publish(_ context.Context, event events.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	h.deliver(event.Entity, event)
	if event.Entity != AllEntities {
		h.deliver(AllEntities, event)
	}
}

func (h *Hub) deliver(entity string, event events.Event) {
	for ch := range h.subscribers[entity] {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscribers for an entity
func (h *Hub) SubscriberCount(entity string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers[entity])
}

// TotalSubscribers returns the total number of active subscribers
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}

// Close ends every open stream. Later subscribers get an already closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for entity, subs := range h.subscribers {
		for ch := range subs {
			close(ch)
		}
		delete(h.subscribers, entity)
	}
}
