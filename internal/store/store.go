// Package store is the local persistence layer: seven whole-collection JSON
// payloads plus a handful of metadata keys, durable on every write. Two
// backends implement the same contract, a diskv file-per-key store and a
// single-table SQLite store.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/rotina/internal/domain"
)

// Meta keys persisted alongside the collections.
const (
	MetaLastModified = "lastModified"
	MetaLastSyncedAt = "lastSyncedAt"
	MetaUserID       = "userId"
	MetaUserEmail    = "userEmail"
	MetaDarkMode     = "darkMode"
)

// metaTimeLayout is the wire format for timestamp-valued meta keys.
const metaTimeLayout = time.RFC3339Nano

// Event is emitted by Watch when the underlying storage changes. A zero
// Collection means the change could not be attributed and callers should
// re-check every collection.
type Event struct {
	Collection domain.Collection
}

// Store is the local store contract. Callers guarantee payload shape; the
// store performs no validation. Every Set on a collection also bumps the
// lastModified meta timestamp, which is the single clock used to decide
// which side wins a sync conflict.
type Store interface {
	// Get returns the stored JSON array for a collection, or nil if the
	// collection has never been written.
	Get(c domain.Collection) ([]byte, error)

	// Set durably replaces a collection's payload and bumps lastModified.
	Set(c domain.Collection, data []byte) error

	// GetMeta returns a meta value, or "" if unset.
	GetMeta(key string) (string, error)
	SetMeta(key, value string) error
	DeleteMeta(key string) error

	// Watch streams change events until ctx is cancelled. Used by a sync
	// session to observe writes made by other processes. The channel is
	// closed when ctx is done.
	Watch(ctx context.Context) (<-chan Event, error)

	Close() error
}

// Backend names for Open.
const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
)

// Open creates a Store of the requested backend rooted at path.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendDiskv, "":
		return OpenDiskv(path)
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("store: unknown backend %q", backend)
	}
}

// LastModified returns the lastModified meta timestamp. ok is false when
// the store has never been written to.
func LastModified(s Store) (t time.Time, ok bool, err error) {
	return metaTime(s, MetaLastModified)
}

// LastSyncedAt returns the timestamp of the last successful sync, if any.
func LastSyncedAt(s Store) (t time.Time, ok bool, err error) {
	return metaTime(s, MetaLastSyncedAt)
}

func metaTime(s Store, key string) (time.Time, bool, error) {
	v, err := s.GetMeta(key)
	if err != nil || v == "" {
		return time.Time{}, false, err
	}
	t, err := time.Parse(metaTimeLayout, v)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("store: parse %s: %w", key, err)
	}
	return t, true, nil
}

// Snapshot reads all seven collections and the lastModified timestamp.
func Snapshot(s Store) (domain.Snapshot, error) {
	snap := domain.NewSnapshot()
	for _, c := range domain.AllCollections {
		data, err := s.Get(c)
		if err != nil {
			return snap, err
		}
		if data != nil {
			snap.Data[c] = data
		}
	}
	if t, ok, err := LastModified(s); err != nil {
		return snap, err
	} else if ok {
		snap.LastModified = t
	}
	return snap, nil
}

// Records decodes a collection into typed records. A never-written
// collection decodes as an empty slice.
func Records[T any](s Store, c domain.Collection) ([]T, error) {
	data, err := s.Get(c)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", c, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// SaveRecords encodes typed records and replaces the collection. A nil
// slice is stored as an empty JSON array, never as null.
func SaveRecords[T any](s Store, c domain.Collection, recs []T) error {
	if recs == nil {
		recs = []T{}
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", c, err)
	}
	return s.Set(c, data)
}

func nowMeta() string {
	return time.Now().UTC().Format(metaTimeLayout)
}
