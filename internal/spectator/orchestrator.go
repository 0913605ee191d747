package spectator

import (
	"context"
	"log"
	"sync"

	"github.com/Echoviax/emmolb/internal/cache"
	"github.com/Echoviax/emmolb/internal/config"
	"github.com/Echoviax/emmolb/internal/feed"
	"github.com/Echoviax/emmolb/internal/game"
	"github.com/Echoviax/emmolb/internal/hub"
	"github.com/Echoviax/emmolb/internal/publisher"
	"github.com/Echoviax/emmolb/internal/roster"
	"github.com/Echoviax/emmolb/pkg/models"
)

// Orchestrator runs one feed watcher and projection per followed game and
// fans every snapshot into the cache, the stream and the websocket hub.
type Orchestrator struct {
	feedClient *feed.Client
	rosters    roster.Source
	cache      *cache.RedisWriter
	publisher  *publisher.StreamPublisher
	hub        *hub.Hub
	cfg        config.FeedConfig
}

// NewOrchestrator creates a new game orchestrator.
func NewOrchestrator(
	feedClient *feed.Client,
	rosters roster.Source,
	cacheWriter *cache.RedisWriter,
	streamPublisher *publisher.StreamPublisher,
	h *hub.Hub,
	cfg config.FeedConfig,
) *Orchestrator {
	return &Orchestrator{
		feedClient: feedClient,
		rosters:    rosters,
		cache:      cacheWriter,
		publisher:  streamPublisher,
		hub:        h,
		cfg:        cfg,
	}
}

// Start launches a follower per configured game and blocks until all stop.
func (o *Orchestrator) Start(ctx context.Context) {
	var wg sync.WaitGroup

	log.Printf("starting followers for %d games", len(o.cfg.GameIDs))

	for _, gameID := range o.cfg.GameIDs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			o.follow(ctx, id)
		}(gameID)
	}

	wg.Wait()
	log.Println("all followers stopped")
}

// follow replays one game from the beginning and keeps it synchronized
// until the terminal event or cancellation.
func (o *Orchestrator) follow(ctx context.Context, gameID string) {
	rosters, err := o.rosters.GameRosters(ctx, gameID)
	if err != nil {
		// Rosters only sharpen inning-start seeding; a missing roster
		// degrades those runners to Unknown rather than blocking the game.
		log.Printf("[%s] roster lookup failed: %v", gameID, err)
		rosters = models.Rosters{}
	}

	// A single followed game polls at the live cadence; following several at
	// once drops to the slower tile cadence.
	interval := o.cfg.PollInterval
	if len(o.cfg.GameIDs) > 1 {
		interval = o.cfg.TilePollInterval
	}

	processor := game.NewProcessor(gameID, rosters)
	watcher := feed.NewWatcher(o.feedClient, gameID, feed.WatcherConfig{
		Interval:  interval,
		Staleness: o.cfg.Staleness,
		Limit:     o.cfg.FetchLimit,
	})

	watcher.Run(ctx, func(entries []models.PlayEvent) {
		for _, ev := range entries {
			snap := processor.Apply(ev)
			o.deliver(ctx, snap, watcher.Cursor())
		}
	})
}

// deliver fans one snapshot out to every sink. Sink failures are logged and
// tolerated: the projection itself is authoritative and replayable.
func (o *Orchestrator) deliver(ctx context.Context, snap models.Snapshot, cursor feed.Cursor) {
	if o.cache != nil {
		if err := o.cache.WriteSnapshot(ctx, snap); err != nil {
			log.Printf("[%s] error caching snapshot: %v", snap.GameID, err)
		}
		if err := o.cache.WriteBoxScore(ctx, snap.GameID, snap.BoxScore); err != nil {
			log.Printf("[%s] error caching box score: %v", snap.GameID, err)
		}
		if err := o.cache.WriteCursor(ctx, snap.GameID, cursor); err != nil {
			log.Printf("[%s] error caching cursor: %v", snap.GameID, err)
		}
	}
	if o.publisher != nil {
		if err := o.publisher.PublishSnapshot(ctx, snap); err != nil {
			log.Printf("[%s] error publishing snapshot: %v", snap.GameID, err)
		}
	}
	if o.hub != nil {
		o.hub.Broadcast(snap)
	}
}
