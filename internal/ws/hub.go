package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/battleship/internal/model"
	"github.com/mcoot/battleship/internal/services/registry"
)

// Hub fans registry events out to every connected client
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	users   map[model.UserID]int // open connections per user
	closed  bool
	logger  *slog.Logger
}

// Ensure Hub implements the registry sink
var _ registry.Sink = (*Hub)(nil)

// NewHub creates an empty Hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		users:   make(map[model.UserID]int),
		logger:  logger.With(slog.String("component", "ws")),
	}
}

// Register adds a client to the hub
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		c.close()
		return
	}
	h.clients[c] = struct{}{}
	h.users[c.user.ID]++
	clientCount := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("ws client registered",
		slog.String("user_id", string(c.user.ID)),
		slog.Int("total_clients", clientCount))
}

// Unregister removes a client from the hub
// Returns true if it was the user's last open connection
func (h *Hub) Unregister(c *Client) bool {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return false
	}
	delete(h.clients, c)
	h.users[c.user.ID]--
	remaining := h.users[c.user.ID]
	if remaining == 0 {
		delete(h.users, c.user.ID)
	}
	clientCount := len(h.clients)
	h.mu.Unlock()

	c.close()
	h.logger.Info("ws client unregistered",
		slog.String("user_id", string(c.user.ID)),
		slog.Duration("connection_duration", time.Since(c.connectedAt)),
		slog.Int("total_clients", clientCount))
	return remaining == 0
}

// Publish encodes an event once and queues it on every client
func (h *Hub) Publish(event model.Event) {
	frame, err := EncodeEvent(event)
	if err != nil {
		h.logger.Error("ws failed to encode event",
			slog.String("event", string(event.Type)),
			slog.Any("error", err))
		return
	}
	h.Broadcast(frame)
}

// Broadcast queues a frame on every client
func (h *Hub) Broadcast(frame []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		c.Send(frame)
	}
}

// Close disconnects every client and refuses new ones
func (h *Hub) Close() {
	h.mu.Lock()
	clientCount := len(h.clients)
	for c := range h.clients {
		c.close()
		delete(h.clients, c)
	}
	h.users = make(map[model.UserID]int)
	h.closed = true
	h.mu.Unlock()

	h.logger.Info("ws hub stopped", slog.Int("disconnected_clients", clientCount))
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
