package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Echoviax/emmolb/internal/cache"
	"github.com/Echoviax/emmolb/internal/client"
	"github.com/Echoviax/emmolb/internal/hub"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler manages HTTP endpoints.
type Handler struct {
	hub   *hub.Hub
	cache *cache.RedisWriter
	ctx   context.Context
}

// NewHandler creates a new handler instance.
func NewHandler(h *hub.Hub, cacheReader *cache.RedisWriter, ctx context.Context) *Handler {
	return &Handler{
		hub:   h,
		cache: cacheReader,
		ctx:   ctx,
	}
}

// HandleWebSocket upgrades HTTP connections to WebSocket. An optional
// game_id query parameter pre-selects which game to watch.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	clientID := uuid.New().String()
	c := client.NewClient(clientID, conn, h.hub, r.URL.Query().Get("game_id"))

	h.hub.Register(c)

	// Use handler context, not request context: pumps outlive the upgrade.
	go c.WritePump(h.ctx)
	go c.ReadPump(h.ctx)
}

// HandleHealth returns service health.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":         "healthy",
		"service":        "emmolb-spectator",
		"active_clients": h.hub.ClientCount(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}

// HandleBoxScore serves the cached box score for one game.
func (h *Handler) HandleBoxScore(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	box, err := h.cache.ReadBoxScore(r.Context(), gameID)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			http.Error(w, "box score not found", http.StatusNotFound)
			return
		}
		log.Printf("[%s] boxscore read error: %v", gameID, err)
		http.Error(w, "couldn't load box score", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(box)
}

// HandleSnapshot serves the latest cached projection for one game.
func (h *Handler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	snap, err := h.cache.ReadSnapshot(r.Context(), gameID)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			http.Error(w, "snapshot not found", http.StatusNotFound)
			return
		}
		log.Printf("[%s] snapshot read error: %v", gameID, err)
		http.Error(w, "couldn't load snapshot", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}
