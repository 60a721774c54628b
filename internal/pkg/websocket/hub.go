// Package websocket implements the /ws event channel. Clients send named
// update events which are logged; nothing is pushed back.
package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/unischedule/internal/pkg/metrics"
)

// Event names understood by the channel.
const (
	EventSessionUpdate   = "sessionUpdate"
	EventTimetableUpdate = "timetableUpdate"
	EventResourceUpdate  = "resourceUpdate"
)

// Event is one inbound frame.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`

	// Set by the server, never read from the wire.
	ClientID   string    `json:"-"`
	ReceivedAt time.Time `json:"-"`
}

// EventHandler consumes inbound events on the hub goroutine.
type EventHandler interface {
	HandleEvent(event *Event)
}

// Hub maintains the set of active clients and hands their events to a handler
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Events read from clients
	inbound chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	// Guards clients for ClientCount
	mu sync.RWMutex

	handler EventHandler
	logger  zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(handler EventHandler, logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		inbound:    make(chan *Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		handler:    handler,
		logger:     logger,
	}
}

// Run processes registrations and events until ctx is cancelled, then
// closes every remaining client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.inbound:
			h.handler.HandleEvent(event)

		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
				metrics.WebsocketClients.Dec()
			}
			h.mu.Unlock()
			return
		}
	}
}

// registerClient registers a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()

	metrics.WebsocketClients.Inc()
	h.logger.Info().
		Str("clientID", client.id).
		Str("addr", client.remoteAddr).
		Msg("New client connected")
}

// unregisterClient unregisters a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)

	metrics.WebsocketClients.Dec()
	h.logger.Info().
		Str("clientID", client.id).
		Str("addr", client.remoteAddr).
		Msg("Client disconnected")
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
