// Package testutil provides shared helpers for store, sync and service
// tests: temp-dir stores for both backends and a scriptable cloud fake.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/rotina/internal/store"
)

// NewTestStore creates a diskv-backed store in a temp dir, cleaned up with
// the test.
func NewTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := store.OpenDiskv(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// NewTestSQLiteStore creates a sqlite-backed store in a temp dir.
func NewTestSQLiteStore(t *testing.T) store.Store {
	t.Helper()
	s, err := store.OpenSQLite(filepath.Join(t.TempDir(), "rotina.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}
