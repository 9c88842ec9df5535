// Package event carries change notifications from the repositories to
// read-model subscribers. Delivery is synchronous and happens after the
// originating transaction has committed, so handlers always observe a
// consistent post-commit snapshot.
package event

import "sync"

// Scope identifies which record type changed.
type Scope string

const (
	ScopePlans    Scope = "plans"
	ScopeWorkouts Scope = "workouts"
	ScopeProfile  Scope = "profile"
)

// Change is a single post-commit notification.
type Change struct {
	Scope Scope
}

// Bus is a single-process publish/subscribe change feed.
type Bus struct {
	mu   sync.RWMutex
	next int
	subs map[int]func(Change)
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(Change))}
}

// Subscribe registers fn for every published change and returns the
// function that removes the subscription. Subscribers must unsubscribe
// when disposed to avoid leaks.
func (b *Bus) Subscribe(fn func(Change)) (unsubscribe func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers c to every current subscriber on the caller's
// goroutine. Handlers run outside the bus lock so they may subscribe,
// unsubscribe, or publish again.
func (b *Bus) Publish(c Change) {
	b.mu.RLock()
	handlers := make([]func(Change), 0, len(b.subs))
	for _, fn := range b.subs {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(c)
	}
}
