// Package event carries message lifecycle events between the store and
// in-process subscribers such as the enrichment pipeline.
package event

import (
	"encoding/json"
	"sync"
)

// EventTypeMessageCreated is published once per newly created message.
const EventTypeMessageCreated = "message.created"

// Event is one message lifecycle event. Data holds the full message body
// so subscribers do not need a read-back.
type Event struct {
	Type   string          `json:"type"`
	ChatID string          `json:"chat_id"`
	Data   json.RawMessage `json:"data"`
}

// Publisher publishes events to whoever is listening. Publishing is
// fire-and-forget: a slow subscriber drops events rather than blocking
// the writer.
type Publisher interface {
	Publish(e Event)
}

// Hub is an in-process fan-out publisher. Delivery is best-effort
// at-least-once per subscriber under normal operation; subscribers must
// tolerate duplicates and misses.
type Hub struct {
	mu   sync.RWMutex
	subs map[int]chan Event
	next int
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan Event)}
}

// Subscribe registers a subscriber channel. The returned cancel func
// unregisters and closes it.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan Event, 64)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish fans the event out to all subscribers without blocking.
func (h *Hub) Publish(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
