// Package websocket pushes dataset lifecycle events to connected
// dashboards so an open page refreshes when a new file is uploaded.
package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// Event types broadcast to clients.
const (
	TypeConnection  = "connection"
	TypeDataUpdate  = "data_update"
	TypeDataCleared = "data_cleared"
)

// Message is one event sent to every connected client.
type Message struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// Hub maintains the set of active clients and broadcasts messages to
// them. Slow clients are dropped rather than allowed to block the hub.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
	logger  *slog.Logger

	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	quit       chan struct{}
	running    bool
}

// NewHub creates a new hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("component", "websocket.hub")),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		quit:       make(chan struct{}),
	}
}

// Run processes register/unregister/broadcast events until Stop is
// called. Intended to run on its own goroutine.
func (h *Hub) Run() {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return
	}
	h.running = true
	h.mu.Unlock()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("client registered",
				slog.String("client_id", client.id),
				slog.Int("clients", count))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("client unregistered",
				slog.String("client_id", client.id),
				slog.Int("clients", count))

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.mu.Unlock()

		case <-h.quit:
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.running = false
			h.mu.Unlock()
			return
		}
	}
}

// Stop shuts the hub down and disconnects all clients.
func (h *Hub) Stop() {
	h.mu.RLock()
	running := h.running
	h.mu.RUnlock()
	if running {
		close(h.quit)
	}
}

// Broadcast sends an event to every connected client.
func (h *Hub) Broadcast(msgType string, payload interface{}) {
	msg := Message{
		Type:      msgType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("failed to marshal broadcast message",
			slog.String("type", msgType),
			slog.String("error", err.Error()))
		return
	}

	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("broadcast channel full, dropping message",
			slog.String("type", msgType))
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
