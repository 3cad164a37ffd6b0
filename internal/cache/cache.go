// Package cache holds the client-side duplicate of backend state used for
// fast, offline-first rendering. It is an explicitly constructed object
// with an init/clear session lifecycle, passed by reference through the
// call graph; divergence from the backend is resolved by last-writer-wins
// replacement of the whole snapshot, never a field-level merge.
package cache

import (
	"sync"

	"github.com/seldt/wellspring/internal/store"
)

// Snapshot caches one owner's full record set.
type Snapshot struct {
	mu      sync.RWMutex
	records []store.Record
	primed  bool
}

// NewSnapshot creates an empty, unprimed snapshot for session start.
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// Replace overwrites the entire snapshot. Last writer wins.
func (s *Snapshot) Replace(records []store.Record) {
	cp := make([]store.Record, len(records))
	copy(cp, records)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = cp
	s.primed = true
}

// Records returns a copy of the cached snapshot and whether the cache has
// ever been primed. An unprimed cache serves nothing.
func (s *Snapshot) Records() ([]store.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.primed {
		return nil, false
	}
	cp := make([]store.Record, len(s.records))
	copy(cp, s.records)
	return cp, true
}

// Clear empties the snapshot at session end.
func (s *Snapshot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.primed = false
}
