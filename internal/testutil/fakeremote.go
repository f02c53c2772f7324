package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/rotina/internal/domain"
	"github.com/alexanderramin/rotina/internal/remote"
)

// SaveCall records one Save seen by the fake.
type SaveCall struct {
	Collection domain.Collection
	Data       []byte
}

// FakeRemote is an in-memory remote.Client for sync tests. Cloud contents
// can be seeded up front, errors injected per operation, and subscription
// frames pushed by hand.
type FakeRemote struct {
	mu sync.Mutex

	// Cloud holds the remote copy of each collection.
	Cloud map[domain.Collection][]byte

	// Scripted failures. A nil entry means success.
	LoginErr error
	SaveErr  map[domain.Collection]error
	LoadErr  map[domain.Collection]error

	// ID returned by Login.
	Identity remote.Identity

	saves       []SaveCall
	subscribers map[domain.Collection][]remote.SubscribeFunc
}

// NewFakeRemote returns an empty fake with a default identity.
func NewFakeRemote() *FakeRemote {
	return &FakeRemote{
		Cloud:       make(map[domain.Collection][]byte),
		SaveErr:     make(map[domain.Collection]error),
		LoadErr:     make(map[domain.Collection]error),
		Identity:    remote.Identity{UserID: "user-1", Email: "me@example.com", Token: "fake-token"},
		subscribers: make(map[domain.Collection][]remote.SubscribeFunc),
	}
}

// Seed sets the cloud payload for a collection.
func (f *FakeRemote) Seed(c domain.Collection, data []byte) {
	f.mu.Lock()
	f.Cloud[c] = data
	f.mu.Unlock()
}

// ScriptSaveErr sets, or clears when err is nil, the scripted Save failure
// for a collection. Safe to call while a session is running.
func (f *FakeRemote) ScriptSaveErr(c domain.Collection, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.SaveErr, c)
		return
	}
	f.SaveErr[c] = err
}

func (f *FakeRemote) Login(ctx context.Context, email, password string) (remote.Identity, error) {
	if f.LoginErr != nil {
		return remote.Identity{}, f.LoginErr
	}
	id := f.Identity
	id.Email = email
	return id, nil
}

func (f *FakeRemote) Save(ctx context.Context, c domain.Collection, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.SaveErr[c]; err != nil {
		return err
	}
	cp := append([]byte(nil), data...)
	f.Cloud[c] = cp
	f.saves = append(f.saves, SaveCall{Collection: c, Data: cp})
	return nil
}

func (f *FakeRemote) Load(ctx context.Context, c domain.Collection) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.LoadErr[c]; err != nil {
		return nil, err
	}
	data, ok := f.Cloud[c]
	if !ok {
		return []byte("[]"), nil
	}
	return append([]byte(nil), data...), nil
}

func (f *FakeRemote) Delete(ctx context.Context, c domain.Collection, id int64) error {
	return nil
}

func (f *FakeRemote) Subscribe(ctx context.Context, c domain.Collection, fn remote.SubscribeFunc) (remote.StopFunc, error) {
	f.mu.Lock()
	f.subscribers[c] = append(f.subscribers[c], fn)
	f.mu.Unlock()
	return func() {}, nil
}

// Push delivers a realtime frame to every subscriber of a collection, the
// way the backend would after any client writes.
func (f *FakeRemote) Push(c domain.Collection, data []byte) {
	f.mu.Lock()
	f.Cloud[c] = append([]byte(nil), data...)
	subs := append([]remote.SubscribeFunc(nil), f.subscribers[c]...)
	f.mu.Unlock()
	for _, fn := range subs {
		fn(data)
	}
}

// Saves returns every Save recorded, in order.
func (f *FakeRemote) Saves() []SaveCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]SaveCall(nil), f.saves...)
}

// SavesFor returns the Saves recorded for one collection.
func (f *FakeRemote) SavesFor(c domain.Collection) []SaveCall {
	var out []SaveCall
	for _, call := range f.Saves() {
		if call.Collection == c {
			out = append(out, call)
		}
	}
	return out
}

// SubscriberCount reports how many subscriptions are active for c.
func (f *FakeRemote) SubscriberCount(c domain.Collection) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subscribers[c])
}

var _ remote.Client = (*FakeRemote)(nil)
