package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
)

func at(day, hour, minute, second int) time.Time {
	return time.Date(2026, time.March, day, hour, minute, second, 0, time.Local)
}

// TestEvaluateLocal_FiresOncePerMinute checks de-duplication within a minute and re-arming on the next day.
func TestEvaluateLocal_FiresOncePerMinute(t *testing.T) {
	t.Parallel()

	snapshot := alarm.NewSnapshot([]alarm.Alarm{
		{ID: "1", Hour: 7, Minute: 30, Label: "Wake", Enabled: true, Vibrate: true},
	}, at(1, 0, 0, 0))

	var state RingingState

	decisions := EvaluateLocal(snapshot, at(1, 7, 30, 0), &state)
	require.Equal(t, []Decision{{Kind: StartRinging, AlarmID: "1", Label: "Wake", Vibrate: true}}, decisions)

	for _, second := range []int{5, 10, 30, 59} {
		require.Empty(t, EvaluateLocal(snapshot, at(1, 7, 30, second), &state))
	}

	require.Empty(t, EvaluateLocal(snapshot, at(1, 7, 31, 0), &state))

	// Next scheduled occurrence.
	decisions = EvaluateLocal(snapshot, at(2, 7, 30, 3), &state)
	require.Len(t, decisions, 1)
	require.Equal(t, "1", decisions[0].AlarmID)
}

// TestEvaluateLocal_DisabledNeverFires ensures disabled alarms are ignored even on an exact match.
func TestEvaluateLocal_DisabledNeverFires(t *testing.T) {
	t.Parallel()

	snapshot := alarm.NewSnapshot([]alarm.Alarm{
		{ID: "1", Hour: 7, Minute: 30, Enabled: false},
	}, at(1, 0, 0, 0))

	var state RingingState

	for second := 0; second < 60; second += 5 {
		require.Empty(t, EvaluateLocal(snapshot, at(1, 7, 30, second), &state))
	}
}

// TestEvaluateLocal_MultipleMatches yields one decision per matching alarm and skips malformed entries.
func TestEvaluateLocal_MultipleMatches(t *testing.T) {
	t.Parallel()

	snapshot := alarm.NewSnapshot([]alarm.Alarm{
		{ID: "b", Hour: 6, Minute: 0, Enabled: true},
		{ID: "a", Hour: 6, Minute: 0, Enabled: true, Label: "First"},
		{ID: "", Hour: 6, Minute: 0, Enabled: true},
		{ID: "bad", Hour: 30, Minute: 0, Enabled: true},
		{ID: "c", Hour: 6, Minute: 1, Enabled: true},
	}, at(1, 0, 0, 0))

	var state RingingState

	decisions := EvaluateLocal(snapshot, at(1, 6, 0, 0), &state)
	require.Equal(t, []Decision{
		{Kind: StartRinging, AlarmID: "a", Label: "First"},
		{Kind: StartRinging, AlarmID: "b", Label: alarm.DefaultLabel},
	}, decisions)
}

// TestEvaluateLocal_EmptyStore yields nothing when no snapshot arrived.
func TestEvaluateLocal_EmptyStore(t *testing.T) {
	t.Parallel()

	var state RingingState

	require.Empty(t, EvaluateLocal(nil, at(1, 7, 30, 0), &state))
	require.Empty(t, EvaluateLocal(alarm.NewSnapshot(nil, at(1, 0, 0, 0)), at(1, 7, 30, 0), &state))
}

// TestEvaluateLocal_Release lets a deferred alarm fire again within the same minute.
func TestEvaluateLocal_Release(t *testing.T) {
	t.Parallel()

	snapshot := alarm.NewSnapshot([]alarm.Alarm{
		{ID: "1", Hour: 7, Minute: 30, Enabled: true},
	}, at(1, 0, 0, 0))

	var state RingingState

	require.Len(t, EvaluateLocal(snapshot, at(1, 7, 30, 0), &state), 1)
	state.release("1")
	require.Len(t, EvaluateLocal(snapshot, at(1, 7, 30, 5), &state), 1)
	require.Empty(t, EvaluateLocal(snapshot, at(1, 7, 30, 10), &state))
}

// TestEvaluateRemote_EdgeTriggered verifies the status sequence maps to edge decisions.
func TestEvaluateRemote_EdgeTriggered(t *testing.T) {
	t.Parallel()

	var state RingingState

	statuses := []bool{false, false, true, true, false}
	want := []DecisionKind{NoChange, NoChange, StartRinging, NoChange, StopRinging}

	got := make([]DecisionKind, 0, len(statuses))

	for _, ringing := range statuses {
		decision := EvaluateRemote(&alarm.RemoteStatus{Ringing: ringing, Label: "Wake"}, &state)
		got = append(got, decision.Kind)

		switch decision.Kind {
		case StartRinging:
			state.begin(decision, at(1, 7, 30, 0))
		case StopRinging:
			state.clear()
		case NoChange:
		}
	}

	require.Equal(t, want, got)
}

// TestEvaluateRemote_DefaultLabel uses the placeholder label when the server omits it.
func TestEvaluateRemote_DefaultLabel(t *testing.T) {
	t.Parallel()

	var state RingingState

	decision := EvaluateRemote(&alarm.RemoteStatus{Ringing: true, AlarmID: "7"}, &state)
	require.Equal(t, Decision{Kind: StartRinging, AlarmID: "7", Label: alarm.DefaultLabel}, decision)

	require.Equal(t, NoChange, EvaluateRemote(nil, &state).Kind)
	require.Equal(t, "start", StartRinging.String())
	require.Equal(t, "stop", StopRinging.String())
	require.Equal(t, "no-change", NoChange.String())
}
