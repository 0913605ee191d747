package hub

import (
	"context"
	"log"
	"sync"

	"github.com/Echoviax/emmolb/internal/client"
	"github.com/Echoviax/emmolb/pkg/models"
)

// Hub maintains the set of active spectator connections and fans game state
// projections out to the ones watching each game.
type Hub struct {
	clients   map[*client.Client]bool
	clientsMu sync.RWMutex

	broadcast  chan models.Snapshot
	register   chan *client.Client
	unregister chan *client.Client
}

// NewHub creates a new Hub instance.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client.Client]bool),
		broadcast:  make(chan models.Snapshot, 256),
		register:   make(chan *client.Client),
		unregister: make(chan *client.Client),
	}
}

// Run starts the hub's main loop.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case c := <-h.register:
			h.registerClient(c)

		case c := <-h.unregister:
			h.unregisterClient(c)

		case snap := <-h.broadcast:
			h.broadcastSnapshot(snap)
		}
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *client.Client) {
	h.register <- c
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(c *client.Client) {
	h.unregister <- c
}

// Broadcast queues a projection for fan-out without blocking the feed loop.
func (h *Hub) Broadcast(snap models.Snapshot) {
	select {
	case h.broadcast <- snap:
	default:
		log.Printf("[%s] broadcast buffer full, dropping snapshot %d", snap.GameID, snap.LastIndex)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(c *client.Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	h.clients[c] = true
	log.Printf("client %s connected (total: %d)", c.ID, len(h.clients))
}

func (h *Hub) unregisterClient(c *client.Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.Send)
		log.Printf("client %s disconnected (total: %d)", c.ID, len(h.clients))
	}
}

func (h *Hub) broadcastSnapshot(snap models.Snapshot) {
	h.clientsMu.RLock()
	clients := make([]*client.Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clientsMu.RUnlock()

	for _, c := range clients {
		if !c.Watching(snap.GameID) {
			continue
		}
		if !c.TrySend(snap) {
			log.Printf("client %s send buffer full, dropping snapshot", c.ID)
		}
	}
}

func (h *Hub) shutdown() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	for c := range h.clients {
		close(c.Send)
		delete(h.clients, c)
	}
	log.Println("hub stopped")
}
