package events

import "sync"

// Event topics
const (
	// TopicView carries listing.View snapshots after every state change.
	TopicView = "listing:view"
	// TopicScroll carries payload-free notifications that the viewport moved.
	TopicScroll = "viewport:scroll"
)

// Event represents a message passed through the broker.
type Event struct {
	Topic string
	Data  any
}

// Broker implements a simple in-memory pub/sub system.
// Subscribers only ever see the most recent undelivered event of a topic.
type Broker struct {
	mu          sync.RWMutex
	subscribers map[string][]chan Event
}

// NewBroker creates a new event broker.
func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[string][]chan Event),
	}
}

// Subscribe creates a new subscription to a topic.
// It returns a read-only channel where events for that topic will be sent
// and a function that ends the subscription and closes the channel.
func (b *Broker) Subscribe(topic string) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, 1) // Buffered channel to prevent blocking publishers
	b.subscribers[topic] = append(b.subscribers[topic], ch)

	var once sync.Once
	return ch, func() {
		once.Do(func() { b.unsubscribe(topic, ch) })
	}
}

func (b *Broker) unsubscribe(topic string, ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subscribers[topic]
	for i, sub := range subs {
		if sub == ch {
			b.subscribers[topic] = append(subs[:i:i], subs[i+1:]...)
			close(ch)
			break
		}
	}
	if len(b.subscribers[topic]) == 0 {
		delete(b.subscribers, topic)
	}
}

// Publish sends an event to all subscribers of a topic.
// A subscriber that has not consumed the previous event gets it replaced.
func (b *Broker) Publish(topic string, data any) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	event := Event{Topic: topic, Data: data}
	for _, ch := range b.subscribers[topic] {
		for delivered := false; !delivered; {
			select {
			case ch <- event:
				delivered = true
			default:
				// Drop the stale event and try again.
				select {
				case <-ch:
				default:
				}
			}
		}
	}
}

// Subscribers returns the number of live subscriptions to topic.
func (b *Broker) Subscribers(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[topic])
}
