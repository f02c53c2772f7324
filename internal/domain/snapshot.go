package domain

import (
	"encoding/json"
	"time"
)

// Snapshot is a full read of all seven collections at a point in time,
// kept as raw JSON arrays. It is what the conflict dialog compares and
// what a wholesale overwrite (either direction) replays.
type Snapshot struct {
	Data         map[Collection][]byte
	LastModified time.Time
}

// NewSnapshot returns an empty snapshot with the map allocated.
func NewSnapshot() Snapshot {
	return Snapshot{Data: make(map[Collection][]byte, len(AllCollections))}
}

// Count returns the number of records held for one collection.
func (s Snapshot) Count(c Collection) int {
	return CountRecords(s.Data[c])
}

// Counts returns record counts for every collection in AllCollections order.
func (s Snapshot) Counts() map[Collection]int {
	counts := make(map[Collection]int, len(AllCollections))
	for _, c := range AllCollections {
		counts[c] = s.Count(c)
	}
	return counts
}

// Empty reports whether no collection holds any record.
func (s Snapshot) Empty() bool {
	for _, c := range AllCollections {
		if s.Count(c) > 0 {
			return false
		}
	}
	return true
}

// CountRecords counts the elements of a JSON array payload without
// decoding the records themselves. Nil, empty and malformed payloads
// count as zero.
func CountRecords(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0
	}
	return len(raw)
}
