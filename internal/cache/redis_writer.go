package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Echoviax/emmolb/internal/feed"
	"github.com/Echoviax/emmolb/pkg/models"
	"github.com/redis/go-redis/v9"
)

// TTL constants
const (
	LiveSnapshotTTL  = 2 * time.Hour
	FinalSnapshotTTL = 6 * time.Hour
	BoxScoreTTL      = 6 * time.Hour
	CursorTTL        = 24 * time.Hour
)

// RedisWriter handles writing game projections to Redis. The cache is
// advisory: the projection is always rebuildable by replaying the feed.
type RedisWriter struct {
	client *redis.Client
}

// NewRedisWriter creates a new Redis writer.
func NewRedisWriter(client *redis.Client) *RedisWriter {
	return &RedisWriter{
		client: client,
	}
}

// WriteSnapshot stores the latest game state projection.
func (w *RedisWriter) WriteSnapshot(ctx context.Context, snap models.Snapshot) error {
	key := fmt.Sprintf("game:%s:snapshot", snap.GameID)

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	ttl := LiveSnapshotTTL
	if snap.Complete {
		ttl = FinalSnapshotTTL
	}
	return w.client.Set(ctx, key, data, ttl).Err()
}

// WriteBoxScore stores the box score separately for direct reads.
func (w *RedisWriter) WriteBoxScore(ctx context.Context, gameID string, box *models.BoxScore) error {
	key := fmt.Sprintf("game:%s:boxscore", gameID)

	data, err := json.Marshal(box)
	if err != nil {
		return fmt.Errorf("marshaling boxscore: %w", err)
	}

	return w.client.Set(ctx, key, data, BoxScoreTTL).Err()
}

// WriteCursor stores the sync watermark so restarted followers can resume
// from upstream instead of replaying nothing.
func (w *RedisWriter) WriteCursor(ctx context.Context, gameID string, cursor feed.Cursor) error {
	key := fmt.Sprintf("game:%s:cursor", gameID)

	data, err := json.Marshal(cursor)
	if err != nil {
		return fmt.Errorf("marshaling cursor: %w", err)
	}

	return w.client.Set(ctx, key, data, CursorTTL).Err()
}

// ReadSnapshot retrieves the latest projection for a game.
func (w *RedisWriter) ReadSnapshot(ctx context.Context, gameID string) (*models.Snapshot, error) {
	key := fmt.Sprintf("game:%s:snapshot", gameID)

	data, err := w.client.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	var snap models.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("unmarshaling snapshot: %w", err)
	}

	return &snap, nil
}

// ReadBoxScore retrieves the cached box score for a game.
func (w *RedisWriter) ReadBoxScore(ctx context.Context, gameID string) (*models.BoxScore, error) {
	key := fmt.Sprintf("game:%s:boxscore", gameID)

	data, err := w.client.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	var box models.BoxScore
	if err := json.Unmarshal([]byte(data), &box); err != nil {
		return nil, fmt.Errorf("unmarshaling boxscore: %w", err)
	}

	return &box, nil
}
