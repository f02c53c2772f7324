package notify

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFillsIDAndTimestamp(t *testing.T) {
	n := New(Success, "cloud sync activated")
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.At.IsZero())
	assert.Equal(t, Success, n.Severity)

	other := New(Success, "cloud sync activated")
	assert.NotEqual(t, n.ID, other.ID)
}

func TestMemoryRecordsConcurrently(t *testing.T) {
	var m Memory
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Notify(New(Info, "loading"))
		}()
	}
	wg.Wait()
	assert.Len(t, m.All(), 20)
}

func TestMemoryBySeverity(t *testing.T) {
	var m Memory
	m.Notify(New(Error, "failed to load tasks"))
	m.Notify(New(Info, "syncing"))
	m.Notify(New(Error, "failed to load jobs"))

	assert.Len(t, m.BySeverity(Error), 2)
	assert.Len(t, m.BySeverity(Warning), 0)
}
