package bus

import (
	"log/slog"
	"sync"
)

// Handler receives events for a single topic.
type Handler func(Event)

// Bus is a synchronous topic-based publish/subscribe fan-out.
//
// Delivery order is subscription order per topic. Publish runs every
// handler inline on the publisher's goroutine; the single-writer core
// relies on this for its ordering guarantee (a view that receives an
// event observes a store that already reflects it).
//
// Thread-safety: Subscribe, Unsubscribe and Publish may be called from
// any goroutine. Handlers registered during a Publish do not receive
// the event being published.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[Topic][]subscription
}

type subscription struct {
	id      int
	handler Handler
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{subs: make(map[Topic][]subscription)}
}

// Subscribe registers a handler for a topic and returns an unsubscribe
// function. Unsubscribing twice is harmless.
func (b *Bus) Subscribe(topic Topic, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, handler: h})

	return func() { b.unsubscribe(topic, id) }
}

func (b *Bus) unsubscribe(topic Topic, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[topic]
	for i, sub := range subs {
		if sub.id == id {
			b.subs[topic] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish delivers an event to every current subscriber of its topic,
// synchronously, in subscription order. A panicking handler is logged
// and skipped; it does not block delivery to the rest.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	// Snapshot so handlers may subscribe/unsubscribe without deadlock.
	subs := make([]subscription, len(b.subs[ev.Topic()]))
	copy(subs, b.subs[ev.Topic()])
	b.mu.Unlock()

	for _, sub := range subs {
		deliver(sub.handler, ev)
	}
}

// SubscriberCount returns the number of handlers on a topic.
// Useful for monitoring and testing.
func (b *Bus) SubscriberCount(topic Topic) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[topic])
}

func deliver(h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("subscriber panicked",
				"topic", ev.Topic(),
				"panic", r,
			)
		}
	}()
	h(ev)
}
