package tui

import (
	"sync"

	"character-browser/internal/events"
	"character-browser/internal/listing"
)

// ScrollTracker publishes the viewport's scroll state to the listing.
// It implements listing.ViewportSignal.
type ScrollTracker struct {
	broker *events.Broker

	mu  sync.RWMutex
	pos listing.Position
}

// NewScrollTracker creates a tracker that notifies through broker.
func NewScrollTracker(broker *events.Broker) *ScrollTracker {
	return &ScrollTracker{broker: broker}
}

// Subscribe implements listing.ViewportSignal.
func (t *ScrollTracker) Subscribe() (<-chan events.Event, func()) {
	return t.broker.Subscribe(events.TopicScroll)
}

// Position implements listing.ViewportSignal.
func (t *ScrollTracker) Position() listing.Position {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pos
}

func (t *ScrollTracker) update(p listing.Position) {
	t.mu.Lock()
	t.pos = p
	t.mu.Unlock()
}

func (t *ScrollTracker) notify() {
	t.broker.Publish(events.TopicScroll, nil)
}
