// Package events provides the in-process fan-out of journal events. Trade and
// account mutations dispatch events here; the SSE broker, the WebSocket hub,
// the webhook manager and the stats cache register as sinks.
package events

import (
	"log"
	"sync"
	"time"
)

// Event types emitted by the journal
const (
	TradeCreated   = "trade.created"
	TradeUpdated   = "trade.updated"
	TradeDeleted   = "trade.deleted"
	AccountUpdated = "account.updated"
)

// Event is one journal change notification. UserID scopes delivery: push
// channels only forward an event to clients of the same user.
type Event struct {
	Type       string      `json:"type"`
	UserID     string      `json:"user_id"`
	AccountID  string      `json:"account_id,omitempty"`
	Payload    interface{} `json:"payload,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// Handler consumes dispatched events. Handle must not block; slow sinks run
// their own goroutines.
type Handler interface {
	Name() string
	Handle(event Event)
}

// Dispatcher fans events out to registered handlers
type Dispatcher struct {
	handlers map[string]Handler
	mu       sync.RWMutex
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]Handler),
	}
}

// Register adds a handler under its name, replacing any previous handler of
// the same name.
func (d *Dispatcher) Register(handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers[handler.Name()] = handler
	log.Printf("📦 Registered event handler: %s", handler.Name())
}

// Unregister removes a handler by name
func (d *Dispatcher) Unregister(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.handlers, name)
}

// Dispatch delivers the event to every registered handler. Delivery is
// best-effort and synchronous; handlers hand off to goroutines when they do
// network work.
func (d *Dispatcher) Dispatch(event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, handler := range d.handlers {
		handler.Handle(event)
	}
}

// Handlers returns the names of all registered handlers
func (d *Dispatcher) Handlers() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	return names
}
