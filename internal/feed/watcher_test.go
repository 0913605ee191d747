package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Echoviax/emmolb/pkg/models"
)

// scriptedFetcher returns canned pages keyed by cursor and records calls.
type scriptedFetcher struct {
	pages map[int][]models.PlayEvent
	calls []int
	err   error

	// onFetch, when set, runs before returning (used to cancel mid-flight).
	onFetch func()
}

func (f *scriptedFetcher) FetchEvents(ctx context.Context, gameID string, after, limit int) ([]models.PlayEvent, error) {
	f.calls = append(f.calls, after)
	if f.onFetch != nil {
		f.onFetch()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.pages[after], nil
}

func events(indices ...int) []models.PlayEvent {
	out := make([]models.PlayEvent, 0, len(indices))
	for _, i := range indices {
		out = append(out, models.PlayEvent{Index: i, Inning: 1})
	}
	return out
}

func TestPollOnceMergesAndAdvances(t *testing.T) {
	fetcher := &scriptedFetcher{pages: map[int][]models.PlayEvent{
		0: events(0, 1, 2),
		3: events(3),
	}}
	w := NewWatcher(fetcher, "g1", WatcherConfig{})

	got, err := w.PollOnce(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
	if c := w.Cursor(); c.Next != 3 || c.Complete {
		t.Errorf("cursor = %+v, want Next=3 Complete=false", c)
	}

	if _, err := w.PollOnce(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c := w.Cursor(); c.Next != 4 {
		t.Errorf("cursor = %+v, want Next=4", c)
	}
	if len(w.Entries()) != 4 {
		t.Errorf("log length = %d, want 4", len(w.Entries()))
	}
}

func TestPollOnceEmptyResultKeepsCursor(t *testing.T) {
	fetcher := &scriptedFetcher{pages: map[int][]models.PlayEvent{}}
	w := NewWatcher(fetcher, "g1", WatcherConfig{StartAfter: 50})

	got, err := w.PollOnce(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("got %v, want nil for empty page", got)
	}
	if c := w.Cursor(); c.Next != 50 || c.Complete {
		t.Errorf("cursor = %+v, want Next=50 Complete=false", c)
	}
}

func TestPollOnceEmptyCursorSuppressedUntilStale(t *testing.T) {
	fetcher := &scriptedFetcher{pages: map[int][]models.PlayEvent{}}
	w := NewWatcher(fetcher, "g1", WatcherConfig{Staleness: 20 * time.Millisecond})

	w.PollOnce(context.Background())
	w.PollOnce(context.Background())
	if len(fetcher.calls) != 1 {
		t.Fatalf("got %d fetches inside staleness window, want 1", len(fetcher.calls))
	}

	time.Sleep(30 * time.Millisecond)
	w.PollOnce(context.Background())
	if len(fetcher.calls) != 2 {
		t.Errorf("got %d fetches after staleness elapsed, want 2", len(fetcher.calls))
	}
}

func TestCompletionIsSticky(t *testing.T) {
	terminal := models.PlayEvent{Index: 5, Kind: models.KindRecordkeeping, Inning: 9}
	fetcher := &scriptedFetcher{pages: map[int][]models.PlayEvent{
		0: {{Index: 4, Inning: 9}, terminal},
	}}
	w := NewWatcher(fetcher, "g1", WatcherConfig{})

	if _, err := w.PollOnce(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !w.Complete() {
		t.Fatal("watcher should be complete after terminal event")
	}

	// No further fetches once complete.
	for i := 0; i < 3; i++ {
		w.PollOnce(context.Background())
	}
	if len(fetcher.calls) != 1 {
		t.Errorf("got %d fetches after completion, want 1", len(fetcher.calls))
	}
	if c := w.Cursor(); !c.Complete || c.Next != 6 {
		t.Errorf("cursor = %+v, want Next=6 Complete=true", c)
	}
}

func TestFetchErrorLeavesCursorForRetry(t *testing.T) {
	fetcher := &scriptedFetcher{err: errors.New("connection refused")}
	w := NewWatcher(fetcher, "g1", WatcherConfig{StartAfter: 7})

	if _, err := w.PollOnce(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}
	if c := w.Cursor(); c.Next != 7 {
		t.Errorf("cursor = %+v, want untouched Next=7", c)
	}

	// Retry hits the same cursor: fetch is idempotent for a given after.
	fetcher.err = nil
	fetcher.pages = map[int][]models.PlayEvent{7: events(7)}
	if _, err := w.PollOnce(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetcher.calls[0] != 7 || fetcher.calls[1] != 7 {
		t.Errorf("calls = %v, want [7 7]", fetcher.calls)
	}
	if c := w.Cursor(); c.Next != 8 {
		t.Errorf("cursor = %+v, want Next=8", c)
	}
}

func TestDetachDiscardsInFlightResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fetcher := &scriptedFetcher{
		pages:   map[int][]models.PlayEvent{0: events(0, 1)},
		onFetch: cancel,
	}
	w := NewWatcher(fetcher, "g1", WatcherConfig{})

	_, err := w.PollOnce(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(w.Entries()) != 0 {
		t.Errorf("late result was merged after detach: %v", w.Entries())
	}
	if c := w.Cursor(); c.Next != 0 {
		t.Errorf("cursor = %+v, want untouched Next=0", c)
	}
}

func TestCursorIsMonotonic(t *testing.T) {
	fetcher := &scriptedFetcher{pages: map[int][]models.PlayEvent{
		0: events(0, 1),
		2: nil,
		5: events(5),
	}}
	w := NewWatcher(fetcher, "g1", WatcherConfig{Staleness: time.Nanosecond})

	prev := 0
	for i := 0; i < 5; i++ {
		w.PollOnce(context.Background())
		if c := w.Cursor(); c.Next < prev {
			t.Fatalf("cursor went backwards: %d -> %d", prev, c.Next)
		} else {
			prev = c.Next
		}
	}
}
