// Package remote talks to the cloud backend: credentialed login, per-user
// whole-collection reads and writes, and a realtime subscription stream.
// All payloads are opaque JSON arrays; the remote never inspects records.
package remote

import (
	"context"

	"github.com/alexanderramin/rotina/internal/domain"
)

// Identity is the authenticated session returned by Login.
type Identity struct {
	UserID string
	Email  string
	Token  string
}

// SubscribeFunc receives the full payload of a collection each time the
// backend reports a change, including echoes of this client's own writes.
type SubscribeFunc func(data []byte)

// StopFunc tears down one subscription.
type StopFunc func()

// Client is the cloud backend contract. Every method can fail with one of
// the sentinel errors in errors.go; anything wrapping ErrUnavailable is
// safe to retry once connectivity returns.
type Client interface {
	// Login authenticates and primes the client with a session token.
	Login(ctx context.Context, email, password string) (Identity, error)

	// Save replaces the remote copy of a collection wholesale.
	Save(ctx context.Context, c domain.Collection, data []byte) error

	// Load returns the remote copy of a collection. A collection the user
	// has never saved loads as an empty array, not an error.
	Load(ctx context.Context, c domain.Collection) ([]byte, error)

	// Delete removes a single record by ID from a collection.
	Delete(ctx context.Context, c domain.Collection, id int64) error

	// Subscribe streams collection changes until the returned stop
	// function is called or ctx is cancelled.
	Subscribe(ctx context.Context, c domain.Collection, fn SubscribeFunc) (StopFunc, error)
}
