package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/marksheet/internal/pkg/events"
)

// Hub maintains the set of connected dashboard clients. Each client owns its
// own bus subscription; the hub only tracks them for counting and shutdown.
type Hub struct {
	bus *events.Bus

	// Registered clients
	clients map[*Client]bool

	// Register requests from the handler
	register chan *Client

	// Unregister requests from the pumps
	unregister chan *Client

	// Closed when shutdown begins; pumps stop handing clients to Run
	stopping chan struct{}

	// Closed once Run has returned
	done chan struct{}

	mu sync.RWMutex

	// Per-client subscription buffer
	bufferSize int

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(bus *events.Bus, bufferSize int, logger zerolog.Logger) *Hub {
	if bufferSize <= 0 {
		bufferSize = events.DefaultBufferSize
	}
	return &Hub{
		bus:        bus,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stopping:   make(chan struct{}),
		done:       make(chan struct{}),
		bufferSize: bufferSize,
		logger:     logger,
	}
}

// shutdownGrace bounds how long shutdown waits for writers to send their close frame
const shutdownGrace = 2 * time.Second

// Run handles registrations until ctx is cancelled, then disconnects every client
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-ctx.Done():
			h.shutdown()
			return
		}
	}
}

// shutdown ends every subscription so each writePump sends its going-away
// close frame, waits for the writers, then closes the connections.
func (h *Hub) shutdown() {
	close(h.stopping)

	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
		delete(h.clients, client)
	}
	h.mu.Unlock()

	for _, client := range clients {
		client.sub.Close()
	}

	deadline := time.NewTimer(shutdownGrace)
	defer deadline.Stop()
	for _, client := range clients {
		select {
		case <-client.writerDone:
		case <-deadline.C:
		}
		client.stop()
	}

	h.logger.Info().Int("clients", len(clients)).Msg("Event hub stopped")
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Info().
		Str("clientID", client.id).
		Str("subject", client.session.SubjectID()).
		Str("addr", client.conn.RemoteAddr().String()).
		Int("clients", count).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
	}
	count := len(h.clients)
	h.mu.Unlock()

	if !ok {
		return
	}
	client.stop()

	h.logger.Info().
		Str("clientID", client.id).
		Str("subject", client.session.SubjectID()).
		Uint64("dropped", client.sub.Dropped()).
		Int("clients", count).
		Msg("Client unregistered")
}

// enqueue hands a client to Run; false once the hub is shutting down
func (h *Hub) enqueue(ch chan *Client, client *Client) bool {
	select {
	case ch <- client:
		return true
	case <-h.stopping:
		return false
	case <-h.done:
		return false
	}
}

// Clients returns the number of connected clients
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Done is closed once Run has returned and every client was stopped
func (h *Hub) Done() <-chan struct{} {
	return h.done
}
