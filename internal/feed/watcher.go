package feed

import (
	"context"
	"log"
	"time"

	"github.com/Echoviax/emmolb/pkg/models"
)

const (
	// DefaultInterval is the live single-game polling cadence.
	DefaultInterval = 6 * time.Second

	// TileInterval is the slower cadence used for compact multi-game views.
	TileInterval = 15 * time.Second

	// DefaultStaleness bounds how soon an empty cursor is re-requested.
	DefaultStaleness = 5 * time.Second
)

// Fetcher is the slice of the feed client the watcher needs.
type Fetcher interface {
	FetchEvents(ctx context.Context, gameID string, after, limit int) ([]models.PlayEvent, error)
}

// Cursor is the synchronization watermark for one game. Next only ever
// grows; Complete is sticky.
type Cursor struct {
	Next     int  `json:"next"`
	Complete bool `json:"complete"`
}

// WatcherConfig tunes one watcher instance.
type WatcherConfig struct {
	Interval   time.Duration // polling cadence; DefaultInterval if zero
	Staleness  time.Duration // empty-cursor suppression window; DefaultStaleness if zero
	StartAfter int           // initial cursor, 0 = from the beginning
	Limit      int           // per-fetch cap, 0 = unbounded
}

// Watcher keeps a local, ordered, append-only copy of one game's event feed
// in sync with upstream via cursor-based polling. It is single-consumer: all
// methods must be called from one goroutine (Run owns the state while it is
// active).
type Watcher struct {
	fetcher Fetcher
	gameID  string
	cfg     WatcherConfig

	next     int
	complete bool
	entries  []models.PlayEvent

	// empty-result memo: last cursor that yielded nothing, and when.
	emptyCursor int
	emptyAt     time.Time

	inFlight bool
}

// NewWatcher creates a watcher for one game id.
func NewWatcher(fetcher Fetcher, gameID string, cfg WatcherConfig) *Watcher {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Staleness <= 0 {
		cfg.Staleness = DefaultStaleness
	}
	return &Watcher{
		fetcher:     fetcher,
		gameID:      gameID,
		cfg:         cfg,
		next:        cfg.StartAfter,
		emptyCursor: -1,
	}
}

// Cursor returns the current watermark.
func (w *Watcher) Cursor() Cursor {
	return Cursor{Next: w.next, Complete: w.complete}
}

// Complete reports whether the terminal event has been merged.
func (w *Watcher) Complete() bool {
	return w.complete
}

// Entries returns the merged event log so far.
func (w *Watcher) Entries() []models.PlayEvent {
	return w.entries
}

// PollOnce performs one fetch-and-merge cycle and returns the newly merged
// events. It returns (nil, nil) when the feed is complete, when a fetch is
// already outstanding, or when the empty-cursor memo suppresses the request.
// A fetch error leaves the cursor untouched; retrying on a later tick is
// always safe because fetches are idempotent for a given cursor.
func (w *Watcher) PollOnce(ctx context.Context) ([]models.PlayEvent, error) {
	if w.complete || w.inFlight {
		return nil, nil
	}
	if w.emptyCursor == w.next && time.Since(w.emptyAt) < w.cfg.Staleness {
		return nil, nil
	}

	w.inFlight = true
	entries, err := w.fetcher.FetchEvents(ctx, w.gameID, w.next, w.cfg.Limit)
	w.inFlight = false

	// Results arriving after detach are discarded, never merged.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		w.emptyCursor = w.next
		w.emptyAt = time.Now()
		return nil, nil
	}

	w.entries = append(w.entries, entries...)
	w.next = entries[len(entries)-1].Index + 1
	w.emptyCursor = -1

	for _, e := range entries {
		if e.IsTerminal() {
			w.complete = true
			break
		}
	}

	return entries, nil
}

// Run polls until the feed completes or ctx is cancelled, handing each batch
// of new events to handler in index order. At most one fetch is in flight; a
// tick that fires while a fetch is outstanding is skipped, not overlapped.
func (w *Watcher) Run(ctx context.Context, handler func([]models.PlayEvent)) {
	log.Printf("[%s] starting feed watcher", w.gameID)

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	// Initial poll before the first tick.
	w.tick(ctx, handler)

	for {
		if w.complete {
			log.Printf("[%s] feed complete, stopping watcher", w.gameID)
			return
		}
		select {
		case <-ctx.Done():
			log.Printf("[%s] stopping feed watcher", w.gameID)
			return
		case <-ticker.C:
			w.tick(ctx, handler)
		}
	}
}

func (w *Watcher) tick(ctx context.Context, handler func([]models.PlayEvent)) {
	entries, err := w.PollOnce(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("[%s] fetch error: %v", w.gameID, err)
		}
		return
	}
	if len(entries) > 0 && handler != nil {
		handler(entries)
	}
}
