package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Echoviax/emmolb/pkg/models"
	"github.com/redis/go-redis/v9"
)

// StreamKey is the live-game projection stream.
const StreamKey = "games.live.baseball_mmolb"

// StreamPublisher publishes game state projections to a Redis stream.
type StreamPublisher struct {
	client *redis.Client
}

// NewStreamPublisher creates a new stream publisher.
func NewStreamPublisher(client *redis.Client) *StreamPublisher {
	return &StreamPublisher{
		client: client,
	}
}

// PublishSnapshot publishes a projection update for one processed event.
func (p *StreamPublisher) PublishSnapshot(ctx context.Context, snap models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey,
		Values: map[string]interface{}{
			"data":       string(data),
			"game_id":    snap.GameID,
			"last_index": strconv.Itoa(snap.LastIndex),
			"complete":   strconv.FormatBool(snap.Complete),
		},
	}).Err()
}
