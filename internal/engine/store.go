package engine

import (
	"sync/atomic"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// Store holds the last fetched snapshot of alarm definitions.
// Snapshots are swapped atomically, never merged.
type Store struct {
	snapshot atomic.Pointer[alarm.Snapshot]
}

// NewStore creates an empty store.
func NewStore() *Store {
	return new(Store)
}

// Snapshot returns the current snapshot or nil when nothing was fetched yet.
func (s *Store) Snapshot() *alarm.Snapshot {
	return s.snapshot.Load()
}

// Replace swaps in a new snapshot.
func (s *Store) Replace(snapshot *alarm.Snapshot) {
	s.snapshot.Store(snapshot)
}

// Lookup finds an alarm by id in the current snapshot.
func (s *Store) Lookup(id string) (alarm.Alarm, bool) {
	return s.Snapshot().Get(id)
}
