// Package event provides an in-process event dispatcher. Order lifecycle
// hooks (order.placed, order.paid, order.status_changed) flow through it so
// side effects like confirmation mail and the admin feed stay out of the
// services that fire them.
package event

import (
	"sync"
)

// Handler is a function that receives an event payload.
type Handler func(payload interface{})

// Bus is an isolated dispatcher. The package-level functions operate on a
// default bus; tests construct their own to avoid cross-test listeners.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewBus returns an empty dispatcher.
func NewBus() *Bus {
	return &Bus{handlers: map[string][]Handler{}}
}

// Listen registers a handler for the given event name.
func (b *Bus) Listen(event string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], handler)
}

// Fire dispatches an event synchronously to all registered listeners.
func (b *Bus) Fire(event string, payload interface{}) {
	for _, h := range b.snapshot(event) {
		h(payload)
	}
}

// FireAsync dispatches the event to all listeners concurrently.
// It returns immediately without waiting for handlers to complete.
func (b *Bus) FireAsync(event string, payload interface{}) {
	for _, h := range b.snapshot(event) {
		go h(payload)
	}
}

// Flush removes all listeners (useful in tests).
func (b *Bus) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = map[string][]Handler{}
}

func (b *Bus) snapshot(event string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	hs := make([]Handler, len(b.handlers[event]))
	copy(hs, b.handlers[event])
	return hs
}

var defaultBus = NewBus()

// Listen registers a handler on the default bus.
func Listen(event string, handler Handler) { defaultBus.Listen(event, handler) }

// Fire dispatches on the default bus synchronously.
func Fire(event string, payload interface{}) { defaultBus.Fire(event, payload) }

// FireAsync dispatches on the default bus without waiting.
func FireAsync(event string, payload interface{}) { defaultBus.FireAsync(event, payload) }

// Flush clears the default bus.
func Flush() { defaultBus.Flush() }
