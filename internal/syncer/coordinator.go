// Package syncer keeps the local store and the cloud backend converged.
// It owns the connection lifecycle, the initial load and conflict check,
// debounced per-collection pushes, and the realtime subscription stream.
package syncer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/rotina/internal/domain"
	"github.com/alexanderramin/rotina/internal/notify"
	"github.com/alexanderramin/rotina/internal/remote"
	"github.com/alexanderramin/rotina/internal/store"
)

// State is the coordinator's connection state.
type State int

const (
	// Disconnected means no cloud session; the app is purely local.
	Disconnected State = iota
	// Loading means login succeeded and the initial cloud load is running.
	// Local changes are not pushed yet.
	Loading
	// Syncing means steady state: local changes push up, remote frames
	// apply down.
	Syncing
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Loading:
		return "loading"
	case Syncing:
		return "syncing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// DefaultDebounce is how long a collection's push waits for further
// mutations before flushing.
const DefaultDebounce = 2 * time.Second

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithDebounce overrides the push debounce window.
func WithDebounce(d time.Duration) Option {
	return func(c *Coordinator) { c.debounce = d }
}

// WithNotifier routes user-facing sync messages to n.
func WithNotifier(n notify.Notifier) Option {
	return func(c *Coordinator) { c.notifier = n }
}

// WithResolver installs the conflict decision hook. Without one, the
// cloud copy wins.
func WithResolver(r Resolver) Option {
	return func(c *Coordinator) { c.resolver = r }
}

// WithLogger attaches a structured logger for sync internals.
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) { c.log = l }
}

// Coordinator is the sync state machine. All exported methods are safe
// for concurrent use.
type Coordinator struct {
	store    store.Store
	client   remote.Client
	notifier notify.Notifier
	resolver Resolver
	log      *slog.Logger
	debounce time.Duration

	mu       sync.Mutex
	state    State
	online   bool
	identity remote.Identity
	timers   map[domain.Collection]*time.Timer
	dirty    map[domain.Collection]struct{}
	// lastSent holds, per collection, the payload the cloud is known to
	// have (pushed, loaded, or applied from a realtime frame). A local
	// payload equal to it needs no push; a remote frame equal to it is an
	// echo and is not written back.
	lastSent map[domain.Collection][]byte
	stops    []remote.StopFunc
	cancel   context.CancelFunc
}

// New creates a disconnected Coordinator over a local store and a cloud
// client.
func New(s store.Store, client remote.Client, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:    s,
		client:   client,
		notifier: notify.Discard,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		debounce: DefaultDebounce,
		online:   true,
		timers:   make(map[domain.Collection]*time.Timer),
		dirty:    make(map[domain.Collection]struct{}),
		lastSent: make(map[domain.Collection][]byte),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current connection state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Identity returns the logged-in identity, zero when disconnected.
func (c *Coordinator) Identity() remote.Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.identity
}

// Connect logs in, runs the initial load and conflict check, and moves to
// Syncing. It blocks until steady state is reached or fails, leaving the
// coordinator Disconnected on any error.
func (c *Coordinator) Connect(ctx context.Context, email, password string) error {
	c.mu.Lock()
	if c.state != Disconnected {
		c.mu.Unlock()
		return fmt.Errorf("syncer: already connected")
	}
	c.state = Loading
	c.mu.Unlock()

	err := c.connect(ctx, email, password)
	if err != nil {
		c.mu.Lock()
		c.state = Disconnected
		c.identity = remote.Identity{}
		c.mu.Unlock()
		return err
	}
	return nil
}

func (c *Coordinator) connect(ctx context.Context, email, password string) error {
	id, err := c.client.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, remote.ErrInvalidCredentials) {
			c.notifier.Notify(notify.New(notify.Error, "Invalid email or password"))
		} else {
			c.notifier.Notify(notify.New(notify.Error, "Could not reach the cloud"))
		}
		return fmt.Errorf("syncer: login: %w", err)
	}
	c.log.Info("logged in", "user", id.Email)

	if err := c.store.SetMeta(store.MetaUserID, id.UserID); err != nil {
		return err
	}
	if err := c.store.SetMeta(store.MetaUserEmail, id.Email); err != nil {
		return err
	}

	cloud, loadErrs := c.loadAll(ctx)
	if len(loadErrs) == len(domain.AllCollections) {
		c.notifier.Notify(notify.New(notify.Error, "Could not load any data from the cloud"))
		return fmt.Errorf("syncer: initial load failed: %w", loadErrs[domain.Tasks])
	}
	for col, err := range loadErrs {
		c.notifier.Notify(notify.New(notify.Error, fmt.Sprintf("Failed to load %s from the cloud", col)))
		c.log.Warn("initial load failed", "collection", string(col), "error", err)
	}

	local, err := store.Snapshot(c.store)
	if err != nil {
		return fmt.Errorf("syncer: reading local data: %w", err)
	}

	// A collection that failed to load must survive an adopt-cloud pass
	// untouched, so it carries its local payload through reconciliation.
	for col := range loadErrs {
		cloud.Data[col] = local.Data[col]
	}

	if err := c.reconcile(ctx, local, cloud, loadErrs); err != nil {
		return err
	}

	// Remember what the cloud now holds so steady-state pushes and echo
	// checks have a baseline.
	c.mu.Lock()
	for _, col := range domain.AllCollections {
		data, err := c.store.Get(col)
		if err == nil && data != nil {
			c.lastSent[col] = data
		} else {
			c.lastSent[col] = []byte("[]")
		}
	}
	c.mu.Unlock()

	if err := c.subscribeAll(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	c.state = Syncing
	c.identity = id
	c.mu.Unlock()

	if err := c.store.SetMeta(store.MetaLastSyncedAt, time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return err
	}
	c.notifier.Notify(notify.New(notify.Success, "Cloud sync activated"))
	c.log.Info("sync active", "user", id.Email)
	return nil
}

// loadAll fetches every collection concurrently. Collections that fail to
// load are reported in the error map and left out of the snapshot.
func (c *Coordinator) loadAll(ctx context.Context) (domain.Snapshot, map[domain.Collection]error) {
	snap := domain.NewSnapshot()
	errs := make(map[domain.Collection]error)

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, col := range domain.AllCollections {
		wg.Add(1)
		go func(col domain.Collection) {
			defer wg.Done()
			data, err := c.client.Load(ctx, col)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs[col] = err
				return
			}
			snap.Data[col] = data
		}(col)
	}
	wg.Wait()
	return snap, errs
}

// reconcile decides what the first connect means for the data: merge the
// two sides collection by collection, or ask the resolver when both sides
// hold records and local has unsynced edits.
func (c *Coordinator) reconcile(ctx context.Context, local, cloud domain.Snapshot, loadErrs map[domain.Collection]error) error {
	if !cloud.Empty() && c.hasLocalDivergence(local) {
		conflict := Conflict{Local: local, Cloud: cloud}
		resolution := UseCloud
		if c.resolver != nil {
			resolution = c.resolver(conflict)
		}
		c.log.Info("conflict resolved", "resolution", resolution.String())
		switch resolution {
		case UseLocal:
			if err := applyLocal(ctx, c.client, local); err != nil {
				c.notifier.Notify(notify.New(notify.Error, "Failed to upload your local data"))
				return err
			}
		default:
			if err := applyCloud(c.store, cloud); err != nil {
				return err
			}
		}
		return nil
	}

	// No conflict. A collection the cloud holds records for replaces the
	// local copy; one the cloud returned empty keeps its local contents
	// (seed defaults included), and any local records in it are pushed up
	// so both sides converge. Wholesale replacement happens only through
	// an explicit resolution above.
	for _, col := range domain.AllCollections {
		if _, failed := loadErrs[col]; failed {
			continue
		}
		if data := cloud.Data[col]; domain.CountRecords(data) > 0 {
			if err := c.store.Set(col, data); err != nil {
				return fmt.Errorf("syncer: adopting cloud %s: %w", col, err)
			}
			continue
		}
		if data := local.Data[col]; domain.CountRecords(data) > 0 {
			if err := c.client.Save(ctx, col, data); err != nil {
				return fmt.Errorf("syncer: seeding cloud %s: %w", col, err)
			}
			c.log.Info("seeded cloud", "collection", string(col), "records", domain.CountRecords(data))
		}
	}
	return nil
}

// hasLocalDivergence reports whether local data could be lost by adopting
// the cloud: some local records exist and were modified after the last
// successful sync (or no sync ever happened).
func (c *Coordinator) hasLocalDivergence(local domain.Snapshot) bool {
	if local.Empty() {
		return false
	}
	syncedAt, ok, err := store.LastSyncedAt(c.store)
	if err != nil || !ok {
		return true
	}
	return local.LastModified.After(syncedAt)
}

func (c *Coordinator) subscribeAll(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	var stops []remote.StopFunc
	for _, col := range domain.AllCollections {
		col := col
		stop, err := c.client.Subscribe(ctx, col, func(data []byte) {
			c.applyRemote(col, data)
		})
		if err != nil {
			for _, s := range stops {
				s()
			}
			cancel()
			return fmt.Errorf("syncer: subscribing to %s: %w", col, err)
		}
		stops = append(stops, stop)
	}
	c.mu.Lock()
	c.stops = stops
	c.cancel = cancel
	c.mu.Unlock()
	return nil
}

// applyRemote handles one realtime frame. Frames that match what we last
// sent or applied are our own writes echoed back and are dropped without
// touching the store, so lastModified stays honest.
func (c *Coordinator) applyRemote(col domain.Collection, data []byte) {
	c.mu.Lock()
	if c.state != Syncing {
		c.mu.Unlock()
		return
	}
	if bytes.Equal(data, c.lastSent[col]) {
		c.mu.Unlock()
		return
	}
	c.lastSent[col] = append([]byte(nil), data...)
	c.mu.Unlock()

	if err := c.store.Set(col, data); err != nil {
		c.log.Error("applying remote change", "collection", string(col), "error", err)
		return
	}
	c.log.Info("applied remote change", "collection", string(col), "records", domain.CountRecords(data))
}

// LocalChanged tells the coordinator a collection was mutated locally.
// The push is debounced: repeated calls within the window coalesce into
// one save of whatever the store holds when the timer fires. Calls before
// the initial load completes, or while disconnected, are dropped; the
// whole-collection model means the next successful push carries them
// anyway.
func (c *Coordinator) LocalChanged(col domain.Collection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Syncing {
		return
	}
	c.dirty[col] = struct{}{}
	if !c.online {
		return
	}
	c.scheduleLocked(col)
}

// HandleStoreEvent routes a store watch event. Events that cannot name a
// collection mark everything dirty; the byte-level comparison at flush
// time keeps unchanged collections from being pushed.
func (c *Coordinator) HandleStoreEvent(ev store.Event) {
	if ev.Collection != "" {
		c.LocalChanged(ev.Collection)
		return
	}
	for _, col := range domain.AllCollections {
		c.LocalChanged(col)
	}
}

// scheduleLocked restarts the debounce timer for col. Callers hold c.mu.
func (c *Coordinator) scheduleLocked(col domain.Collection) {
	if t, ok := c.timers[col]; ok {
		t.Stop()
	}
	c.timers[col] = time.AfterFunc(c.debounce, func() {
		c.flush(col)
	})
}

// flush pushes the current store payload for col, unless it already
// matches what the cloud holds.
func (c *Coordinator) flush(col domain.Collection) {
	c.mu.Lock()
	delete(c.timers, col)
	if c.state != Syncing || !c.online {
		c.mu.Unlock()
		return
	}
	last := c.lastSent[col]
	c.mu.Unlock()

	data, err := c.store.Get(col)
	if err != nil {
		c.log.Error("reading for push", "collection", string(col), "error", err)
		return
	}
	if data == nil {
		data = []byte("[]")
	}
	if bytes.Equal(data, last) {
		c.mu.Lock()
		delete(c.dirty, col)
		c.mu.Unlock()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := c.client.Save(ctx, col, data); err != nil {
		c.log.Warn("push failed", "collection", string(col), "error", err)
		if remote.IsRetryable(err) {
			// No retry queue: the collection stays dirty and the next
			// local edit schedules a fresh push.
			c.notifier.Notify(notify.New(notify.Warning, fmt.Sprintf("Could not reach the cloud; %s changes will sync with the next edit", col)))
			return
		}
		c.notifier.Notify(notify.New(notify.Error, fmt.Sprintf("Failed to save %s to the cloud", col)))
		return
	}

	c.mu.Lock()
	c.lastSent[col] = append([]byte(nil), data...)
	delete(c.dirty, col)
	c.mu.Unlock()

	if err := c.store.SetMeta(store.MetaLastSyncedAt, time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		c.log.Error("recording sync time", "error", err)
	}
	c.log.Info("pushed", "collection", string(col), "records", domain.CountRecords(data))
}

// SetOnline gates pushes for callers that observe network status. Going
// offline freezes outbound saves; coming back online re-schedules every
// collection dirtied in the meantime. Push failures themselves never flip
// this switch; they rely on the next edit instead.
func (c *Coordinator) SetOnline(online bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.online == online {
		return
	}
	c.online = online
	if !online {
		for col, t := range c.timers {
			t.Stop()
			delete(c.timers, col)
		}
		return
	}
	for col := range c.dirty {
		c.scheduleLocked(col)
	}
}

// Close tears down subscriptions and timers and returns to Disconnected
// without forgetting the stored identity. Used when a process exits but
// the user stays connected.
func (c *Coordinator) Close() {
	c.teardown()
}

// Disconnect tears down subscriptions and timers, clears the stored
// identity, and returns to Disconnected. Local data is untouched.
func (c *Coordinator) Disconnect() error {
	if c.State() == Disconnected {
		return nil
	}
	c.teardown()

	if err := c.store.DeleteMeta(store.MetaUserID); err != nil {
		return err
	}
	if err := c.store.DeleteMeta(store.MetaUserEmail); err != nil {
		return err
	}
	c.notifier.Notify(notify.New(notify.Info, "Cloud sync deactivated"))
	return nil
}

func (c *Coordinator) teardown() {
	c.mu.Lock()
	if c.state == Disconnected {
		c.mu.Unlock()
		return
	}
	for col, t := range c.timers {
		t.Stop()
		delete(c.timers, col)
	}
	stops := c.stops
	cancel := c.cancel
	c.stops = nil
	c.cancel = nil
	c.dirty = make(map[domain.Collection]struct{})
	c.lastSent = make(map[domain.Collection][]byte)
	c.identity = remote.Identity{}
	c.state = Disconnected
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	for _, stop := range stops {
		stop()
	}
}
