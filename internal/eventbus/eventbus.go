// Package eventbus implements a small typed publish/subscribe bus used
// by the dock manager to announce mutations. Handlers
// may subscribe and unsubscribe during dispatch (reentrant-safe); each
// Emit dispatches against a snapshot of the subscriber list taken at
// call time, so a handler added mid-emit never runs in that same Emit.
package eventbus

import "sync"

// Token unsubscribes a previously registered handler.
type Token struct {
	bus  *Bus
	name string
	id   uint64
}

// Unsubscribe removes the handler associated with this token. Safe to
// call more than once; the second call is a no-op.
func (t Token) Unsubscribe() {
	t.bus.unsubscribe(t.name, t.id)
}

type subscriber struct {
	id      uint64
	handler func(payload any)
}

// Bus is a typed event bus keyed by event name. It is safe for
// concurrent use, though the managers that own one are themselves
// single-threaded.
type Bus struct {
	mu     sync.Mutex
	subs   map[string][]subscriber
	nextID uint64
}

// New returns an empty Bus.
func New() *Bus {
	return &Bus{subs: make(map[string][]subscriber)}
}

// Subscribe registers handler for name and returns a Token that
// unsubscribes it.
func (b *Bus) Subscribe(name string, handler func(payload any)) Token {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[name] = append(b.subs[name], subscriber{id: id, handler: handler})
	return Token{bus: b, name: name, id: id}
}

func (b *Bus) unsubscribe(name string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.subs[name]
	for i, s := range list {
		if s.id == id {
			b.subs[name] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Emit dispatches payload to every handler currently subscribed to
// name, in subscription order. Subscribers are snapshotted before
// dispatch so a handler that subscribes or unsubscribes during Emit
// does not affect the current dispatch.
func (b *Bus) Emit(name string, payload any) {
	b.mu.Lock()
	list := append([]subscriber(nil), b.subs[name]...)
	b.mu.Unlock()

	for _, s := range list {
		s.handler(payload)
	}
}
