package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alexanderramin/rotina/internal/domain"
)

// watchThrottle coalesces rapid filesystem notifications so a burst of
// writes produces one event per touched collection instead of one per
// syscall.
type watchThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[domain.Collection]struct{}
	delay   time.Duration
}

func newWatchThrottle(delay time.Duration) *watchThrottle {
	return &watchThrottle{
		delay:   delay,
		pending: make(map[domain.Collection]struct{}),
	}
}

func (t *watchThrottle) Enqueue(c domain.Collection, send func(Event)) {
	t.mu.Lock()
	t.pending[c] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *watchThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[domain.Collection]struct{})
	t.timer = nil
	t.mu.Unlock()

	for c := range pending {
		send(Event{Collection: c})
	}
}

func (t *watchThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}

// watchDir wires fsnotify on a single directory and feeds classified events
// through a throttle until ctx is done. classify maps a changed path to a
// collection; returning ok=false drops the event.
func watchDir(ctx context.Context, dir string, classify func(path string) (domain.Collection, bool)) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", dir, err)
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer watcher.Close()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Drop when the consumer lags; the consumer re-reads the
				// store on every event so a dropped duplicate costs nothing.
			}
		}

		throttle := newWatchThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Cannot classify; re-check everything.
				throttle.Enqueue(domain.Collection(""), send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Remove) && !evt.Has(fsnotify.Rename) {
					continue
				}
				if c, ok := classify(evt.Name); ok {
					throttle.Enqueue(c, send)
				}
			}
		}
	}()

	return events, nil
}

// Watch streams collection changes by watching the diskv base directory.
// Every collection is one flat file named after it, so the changed path
// identifies the collection directly. Meta writes are ignored: every Set
// also touches the lastModified file, and forwarding that write would turn
// each change into two events.
func (s *diskvStore) Watch(ctx context.Context) (<-chan Event, error) {
	return watchDir(ctx, s.basePath, func(path string) (domain.Collection, bool) {
		name := filepath.Base(path)
		if strings.HasPrefix(name, "meta.") {
			return "", false
		}
		c := domain.Collection(name)
		if !c.Valid() {
			return "", false
		}
		return c, true
	})
}

// Watch streams change events by watching the database file and its WAL
// sibling. SQLite cannot attribute a write to a collection from the
// outside, so events carry a zero Collection and consumers re-check all.
func (s *sqliteStore) Watch(ctx context.Context) (<-chan Event, error) {
	if s.path == ":memory:" {
		return nil, fmt.Errorf("store: cannot watch an in-memory database")
	}
	base := filepath.Base(s.path)
	return watchDir(ctx, filepath.Dir(s.path), func(path string) (domain.Collection, bool) {
		name := filepath.Base(path)
		if name != base && name != base+"-wal" {
			return "", false
		}
		return "", true
	})
}
