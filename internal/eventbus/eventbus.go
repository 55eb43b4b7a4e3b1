// ABOUTME: Typed signal bus used for scroll and resize notifications
// ABOUTME: Delivers in subscription order; unsubscribe is idempotent

package eventbus

import "sync"

// Handler is a callback function for events.
type Handler[T any] func(T)

type entry[T any] struct {
	id int
	h  Handler[T]
}

// Bus is a typed event bus that delivers events to registered handlers.
type Bus[T any] struct {
	mu      sync.RWMutex
	entries []entry[T]
	nextID  int
}

// New creates a new event bus.
func New[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Subscribe registers a handler and returns an unsubscribe function.
// Calling the returned function more than once is a no-op.
func (b *Bus[T]) Subscribe(handler Handler[T]) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.entries = append(b.entries, entry[T]{id: id, h: handler})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, e := range b.entries {
				if e.id == id {
					b.entries = append(b.entries[:i:i], b.entries[i+1:]...)
					return
				}
			}
		})
	}
}

// Publish sends an event to all registered handlers in the order they
// subscribed. Handlers may unsubscribe during delivery.
func (b *Bus[T]) Publish(event T) {
	b.mu.RLock()
	snapshot := make([]Handler[T], len(b.entries))
	for i, e := range b.entries {
		snapshot[i] = e.h
	}
	b.mu.RUnlock()

	for _, h := range snapshot {
		h(event)
	}
}

// Count returns the number of registered handlers.
func (b *Bus[T]) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}
