package notifications

import (
	"context"
	"errors"
	"log"
	"sync"

	"aurasocial/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const (
	// Max connections per address
	maxConnsPerAddress = 8
	// Max total connections
	maxTotalConns = 10000
)

// ErrConnectionLimit is returned when a Register call would exceed a limit.
var ErrConnectionLimit = errors.New("connection limit reached")

// Hub maps a wallet address to its live notification streams.
type Hub struct {
	mu         sync.RWMutex
	conns      map[string]map[*Client]struct{}
	totalConns int
	closed     bool
}

// NewHub creates a new Hub instance.
func NewHub() *Hub {
	return &Hub{conns: make(map[string]map[*Client]struct{})}
}

// Register a connection for an address.
func (h *Hub) Register(address string, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed || h.totalConns >= maxTotalConns {
		return nil, ErrConnectionLimit
	}

	m, ok := h.conns[address]
	if !ok {
		m = make(map[*Client]struct{})
		h.conns[address] = m
	}
	if len(m) >= maxConnsPerAddress {
		return nil, ErrConnectionLimit
	}

	client := newClient(h, conn, address)
	m[client] = struct{}{}
	h.totalConns++
	observability.WebSocketConnectionsTotal.Inc()
	return client, nil
}

// UnregisterClient removes client and closes its send buffer. Safe to call twice.
func (h *Hub) UnregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	m, ok := h.conns[client.Address]
	if !ok {
		return
	}
	if _, exists := m[client]; !exists {
		return
	}
	delete(m, client)
	close(client.Send)
	h.totalConns--
	observability.WebSocketConnectionsTotal.Dec()
	if len(m) == 0 {
		delete(h.conns, client.Address)
	}
}

// Broadcast sends message to all connections for address and returns how many accepted it.
func (h *Hub) Broadcast(address string, message string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	data := []byte(message)
	for c := range h.conns[address] {
		if c.TrySend(data) {
			delivered++
		}
	}
	return delivered
}

// ConnectionCount returns the number of live streams for address.
func (h *Hub) ConnectionCount(address string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[address])
}

// StartWiring subscribes the hub to the Notifier's user channels so that a
// notification published by any instance reaches local connections.
func (h *Hub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartPatternSubscriber(ctx, func(channel, payload string) {
		address, ok := AddressFromChannel(channel)
		if !ok {
			log.Printf("invalid notification channel: %s", channel)
			return
		}
		h.Broadcast(address, payload)
	})
}

// Shutdown refuses new connections and closes every client's Send buffer.
// Each WritePump then writes the close frame and closes its own connection.
func (h *Hub) Shutdown(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for _, clients := range h.conns {
		for client := range clients {
			close(client.Send)
			observability.WebSocketConnectionsTotal.Dec()
		}
	}
	h.conns = make(map[string]map[*Client]struct{})
	h.totalConns = 0
	return nil
}
