package engine

import (
	"time"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// DecisionKind enumerates what the engine should do after an evaluation.
type DecisionKind int

const (
	// NoChange keeps the current ringing state.
	NoChange DecisionKind = iota
	// StartRinging starts an alert for the decision's alarm.
	StartRinging
	// StopRinging stops the current alert.
	StopRinging
)

// String returns a readable name for logs.
func (k DecisionKind) String() string {
	switch k {
	case StartRinging:
		return "start"
	case StopRinging:
		return "stop"
	default:
		return "no-change"
	}
}

// Decision is the outcome of one evaluation.
type Decision struct {
	Kind    DecisionKind
	AlarmID string
	Label   string
	Vibrate bool
}

// firedKey identifies one scheduled occurrence of an alarm within a day.
type firedKey struct {
	id     string
	hour   int
	minute int
}

// RingingState is the engine's belief about the current alert together with
// the set of alarms already fired during the current minute.
type RingingState struct {
	// Active reports whether an alert is in progress.
	Active bool
	// AlarmID is the alarm causing the alert, empty when unknown.
	AlarmID string
	// Label is the text shown while ringing.
	Label string
	// Since is when the alert started.
	Since time.Time

	fired       map[firedKey]struct{}
	firedMinute time.Time
}

// Fired reports whether the alarm was already fired in the minute of now.
func (s *RingingState) Fired(a *alarm.Alarm, now time.Time) bool {
	if !s.firedMinute.Equal(minuteOf(now)) {
		return false
	}

	_, found := s.fired[firedKey{id: a.ID, hour: a.Hour, minute: a.Minute}]

	return found
}

// advance drops all markers when the clock has moved to another minute.
func (s *RingingState) advance(now time.Time) {
	minute := minuteOf(now)
	if s.fired != nil && s.firedMinute.Equal(minute) {
		return
	}

	s.fired = make(map[firedKey]struct{})
	s.firedMinute = minute
}

// markFired records that the alarm fired in the current minute.
func (s *RingingState) markFired(a *alarm.Alarm) {
	s.fired[firedKey{id: a.ID, hour: a.Hour, minute: a.Minute}] = struct{}{}
}

// release forgets the marker of an alarm so it may fire again this minute.
func (s *RingingState) release(id string) {
	for key := range s.fired {
		if key.id == id {
			delete(s.fired, key)
		}
	}
}

// begin records a started alert.
func (s *RingingState) begin(d Decision, now time.Time) {
	s.Active = true
	s.AlarmID = d.AlarmID
	s.Label = d.Label
	s.Since = now
}

// clear forgets the current alert but keeps the fired markers.
func (s *RingingState) clear() {
	s.Active = false
	s.AlarmID = ""
	s.Label = ""
	s.Since = time.Time{}
}

// EvaluateLocal returns a StartRinging decision for every enabled alarm
// scheduled for the minute of now that has not fired in that minute yet, and
// marks those alarms as fired. Malformed entries are skipped. An empty result
// means NoChange.
func EvaluateLocal(snapshot *alarm.Snapshot, now time.Time, state *RingingState) []Decision {
	state.advance(now)

	if snapshot.Len() == 0 {
		return nil
	}

	var decisions []Decision

	for _, a := range snapshot.Alarms() {
		if !a.Valid() || !a.Enabled || !a.Matches(now) {
			continue
		}

		if state.Fired(&a, now) {
			continue
		}

		state.markFired(&a)

		decisions = append(decisions, Decision{
			Kind:    StartRinging,
			AlarmID: a.ID,
			Label:   a.DisplayLabel(),
			Vibrate: a.Vibrate,
		})
	}

	return decisions
}

// EvaluateRemote mirrors the authoritative status: it is edge-triggered on the
// difference between the reported flag and the engine's belief.
func EvaluateRemote(status *alarm.RemoteStatus, state *RingingState) Decision {
	switch {
	case status == nil:
		return Decision{Kind: NoChange}
	case status.Ringing && !state.Active:
		return Decision{
			Kind:    StartRinging,
			AlarmID: status.AlarmID,
			Label:   status.DisplayLabel(),
		}
	case !status.Ringing && state.Active:
		return Decision{Kind: StopRinging}
	default:
		return Decision{Kind: NoChange}
	}
}
