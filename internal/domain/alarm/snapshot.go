package alarm

import (
	"sort"
	"time"
)

// Snapshot is an immutable copy of the alarm list at a point in time.
// It is replaced wholesale on every refresh and never mutated in place.
type Snapshot struct {
	takenAt time.Time
	byID    map[string]Alarm
	order   []string
}

// NewSnapshot builds a snapshot from a list, keeping the first entry for a
// duplicated id. Entries are ordered by time of day, then id.
func NewSnapshot(alarms []Alarm, takenAt time.Time) *Snapshot {
	s := &Snapshot{
		takenAt: takenAt,
		byID:    make(map[string]Alarm, len(alarms)),
		order:   make([]string, 0, len(alarms)),
	}

	for _, a := range alarms {
		if _, found := s.byID[a.ID]; found {
			continue
		}

		s.byID[a.ID] = a
		s.order = append(s.order, a.ID)
	}

	sort.SliceStable(s.order, func(i, j int) bool {
		left, right := s.byID[s.order[i]], s.byID[s.order[j]]
		if left.Hour != right.Hour {
			return left.Hour < right.Hour
		}

		if left.Minute != right.Minute {
			return left.Minute < right.Minute
		}

		return left.ID < right.ID
	})

	return s
}

// TakenAt returns when the snapshot was fetched.
func (s *Snapshot) TakenAt() time.Time {
	if s == nil {
		return time.Time{}
	}

	return s.takenAt
}

// Len returns the number of alarms in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}

	return len(s.order)
}

// Get looks up an alarm by id.
func (s *Snapshot) Get(id string) (Alarm, bool) {
	if s == nil {
		return Alarm{}, false
	}

	a, found := s.byID[id]

	return a, found
}

// Alarms returns a copy of the alarms in display order.
func (s *Snapshot) Alarms() []Alarm {
	if s == nil {
		return nil
	}

	result := make([]Alarm, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.byID[id])
	}

	return result
}
