package domain

import (
	"sync/atomic"
	"time"
)

var lastID atomic.Int64

// NewID returns a locally generated record ID derived from the wall clock
// in milliseconds. IDs are strictly increasing within a process, so
// records created in the same millisecond still get distinct IDs.
func NewID() int64 {
	return NewIDRange(1)
}

// NewIDRange reserves n consecutive IDs and returns the first. Batch
// creation (installment expansion) uses it so sibling IDs derived from the
// base cannot collide with whatever NewID hands out next.
func NewIDRange(n int) int64 {
	if n < 1 {
		n = 1
	}
	for {
		last := lastID.Load()
		base := time.Now().UnixMilli()
		if base <= last {
			base = last + 1
		}
		if lastID.CompareAndSwap(last, base+int64(n)-1) {
			return base
		}
	}
}
