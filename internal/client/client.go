package client

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Echoviax/emmolb/pkg/models"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512

	// Buffer size for outbound snapshots
	sendBufferSize = 64
)

// subscribeMessage is the only inbound message type: pick which game to
// watch. An empty game id watches everything.
type subscribeMessage struct {
	GameID string `json:"game_id"`
}

// Hub defines the interface for the broadcast hub.
type Hub interface {
	Unregister(client *Client)
}

// Client represents one spectator WebSocket connection.
type Client struct {
	ID   string
	Send chan models.Snapshot // Exported for hub access

	conn *websocket.Conn
	hub  Hub

	gameID   string
	gameIDMu sync.RWMutex
}

// NewClient creates a new client instance.
func NewClient(id string, conn *websocket.Conn, hub Hub, gameID string) *Client {
	return &Client{
		ID:     id,
		Send:   make(chan models.Snapshot, sendBufferSize),
		conn:   conn,
		hub:    hub,
		gameID: gameID,
	}
}

// Watching reports whether this client wants updates for gameID.
func (c *Client) Watching(gameID string) bool {
	c.gameIDMu.RLock()
	defer c.gameIDMu.RUnlock()
	return c.gameID == "" || c.gameID == gameID
}

// TrySend queues a snapshot without blocking. Returns false when the client
// is too slow and its buffer is full.
func (c *Client) TrySend(snap models.Snapshot) bool {
	select {
	case c.Send <- snap:
		return true
	default:
		return false
	}
}

// ReadPump consumes subscription changes from the connection until it drops.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
			var msg subscribeMessage
			if err := c.conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("client %s unexpected close: %v", c.ID, err)
				}
				return
			}

			c.gameIDMu.Lock()
			c.gameID = msg.GameID
			c.gameIDMu.Unlock()
			log.Printf("client %s now watching %q", c.ID, msg.GameID)
		}
	}
}

// WritePump pumps snapshots from the hub to the connection.
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case snap, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(snap); err != nil {
				log.Printf("client %s write error: %v", c.ID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
