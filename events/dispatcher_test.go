package events

import (
	"sync"
	"testing"
)

// recordingHandler captures dispatched events for assertions
type recordingHandler struct {
	name string
	mu   sync.Mutex
	seen []Event
}

func (h *recordingHandler) Name() string { return h.name }

func (h *recordingHandler) Handle(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seen = append(h.seen, event)
}

func (h *recordingHandler) events() []Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Event, len(h.seen))
	copy(out, h.seen)
	return out
}

func TestDispatchFansOutToAllHandlers(t *testing.T) {
	d := NewDispatcher()
	first := &recordingHandler{name: "first"}
	second := &recordingHandler{name: "second"}
	d.Register(first)
	d.Register(second)

	d.Dispatch(Event{Type: TradeCreated, UserID: "u1", AccountID: "a1"})

	for _, h := range []*recordingHandler{first, second} {
		seen := h.events()
		if len(seen) != 1 {
			t.Fatalf("handler %s expected 1 event, got %d", h.name, len(seen))
		}
		if seen[0].Type != TradeCreated || seen[0].UserID != "u1" {
			t.Errorf("handler %s got wrong event: %+v", h.name, seen[0])
		}
	}
}

func TestDispatchStampsOccurredAt(t *testing.T) {
	d := NewDispatcher()
	h := &recordingHandler{name: "h"}
	d.Register(h)

	d.Dispatch(Event{Type: AccountUpdated, UserID: "u1"})

	seen := h.events()
	if len(seen) != 1 {
		t.Fatalf("expected 1 event, got %d", len(seen))
	}
	if seen[0].OccurredAt.IsZero() {
		t.Error("expected OccurredAt to be stamped on dispatch")
	}
}

func TestUnregisterStopsDelivery(t *testing.T) {
	d := NewDispatcher()
	h := &recordingHandler{name: "h"}
	d.Register(h)

	d.Dispatch(Event{Type: TradeDeleted, UserID: "u1"})
	d.Unregister("h")
	d.Dispatch(Event{Type: TradeDeleted, UserID: "u1"})

	if got := len(h.events()); got != 1 {
		t.Errorf("expected 1 event after unregister, got %d", got)
	}
}

func TestRegisterReplacesHandlerWithSameName(t *testing.T) {
	d := NewDispatcher()
	old := &recordingHandler{name: "sink"}
	replacement := &recordingHandler{name: "sink"}
	d.Register(old)
	d.Register(replacement)

	d.Dispatch(Event{Type: TradeUpdated, UserID: "u1"})

	if len(old.events()) != 0 {
		t.Error("expected replaced handler to receive nothing")
	}
	if len(replacement.events()) != 1 {
		t.Error("expected replacement handler to receive the event")
	}

	if names := d.Handlers(); len(names) != 1 {
		t.Errorf("expected 1 registered handler, got %d", len(names))
	}
}
