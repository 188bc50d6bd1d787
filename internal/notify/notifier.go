// Package notify carries restore notifications to whoever is listening
// (live preview, editor buffer). The versioning core publishes and does not
// know or care who subscribes.
package notify

import (
	"log/slog"
	"sync"
)

// RestoreEvent announces that a document's head was rewritten by a restore
type RestoreEvent struct {
	DocumentID string `json:"document_id"`
	Content    string `json:"content"`
	Title      string `json:"title"`
}

// Notifier publishes restore events to subscribers
type Notifier interface {
	PublishRestore(event RestoreEvent)
}

// Bus is a channel fan-out Notifier. Publishing never blocks: a subscriber
// whose buffer is full misses the event and a warning is logged.
type Bus struct {
	logger *slog.Logger

	mu          sync.Mutex
	subscribers map[int]chan RestoreEvent
	nextID      int
}

var _ Notifier = (*Bus)(nil)

// NewBus creates an event bus with no subscribers
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		logger:      logger,
		subscribers: make(map[int]chan RestoreEvent),
	}
}

// Subscribe registers a listener. The returned cancel func unregisters it
// and closes the channel.
func (b *Bus) Subscribe(buffer int) (<-chan RestoreEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan RestoreEvent, buffer)
	b.subscribers[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subscribers[id]; ok {
			delete(b.subscribers, id)
			close(sub)
		}
	}
	return ch, cancel
}

// PublishRestore delivers the event to every subscriber with buffer room
func (b *Bus) PublishRestore(event RestoreEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			b.logger.Warn("restore event dropped, subscriber buffer full",
				"subscriber", id,
				"document_id", event.DocumentID,
			)
		}
	}
}
