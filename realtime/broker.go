package realtime

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"trade-journal/events"
)

// client is one connected SSE stream, pinned to a tenant
type client struct {
	ch     chan []byte
	userID string
}

// Broker pushes journal events to connected SSE clients. Each client is bound
// to the authenticated user of its request; events are only forwarded to
// clients of the same user.
type Broker struct {
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan events.Event
	mu         sync.RWMutex
}

// NewBroker creates a new SSE broker
func NewBroker() *Broker {
	return &Broker{
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan events.Event, 256),
	}
}

// Run starts the broker loop
func (b *Broker) Run() {
	for {
		select {
		case c := <-b.register:
			b.mu.Lock()
			b.clients[c] = true
			b.mu.Unlock()
			log.Printf("SSE client connected. Total: %d", len(b.clients))

		case c := <-b.unregister:
			b.mu.Lock()
			if _, ok := b.clients[c]; ok {
				delete(b.clients, c)
				close(c.ch)
				log.Printf("SSE client disconnected. Total: %d", len(b.clients))
			}
			b.mu.Unlock()

		case event := <-b.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			b.mu.RLock()
			for c := range b.clients {
				if c.userID != event.UserID {
					continue
				}
				select {
				case c.ch <- data:
				default:
					// Skip if client buffer is full to prevent blocking
				}
			}
			b.mu.RUnlock()
		}
	}
}

// ServeSSE streams events for the given user until the request context ends.
// The caller resolves userID through the auth middleware before handing the
// request over.
func (b *Broker) ServeSSE(w http.ResponseWriter, r *http.Request, userID string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	c := &client{ch: make(chan []byte, 10), userID: userID}
	b.register <- c

	notify := r.Context().Done()

	for {
		select {
		case <-notify:
			b.unregister <- c
			return
		case msg, open := <-c.ch:
			if !open {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// Name implements events.Handler
func (b *Broker) Name() string {
	return "sse-broker"
}

// Handle implements events.Handler
func (b *Broker) Handle(event events.Event) {
	select {
	case b.broadcast <- event:
	default:
		// Drop rather than block the dispatcher
	}
}
