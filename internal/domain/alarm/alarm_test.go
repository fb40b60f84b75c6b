package alarm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestActorClone verifies that Clone returns a deep copy and handles nil safely.
func TestActorClone(t *testing.T) {
	t.Parallel()
	require.Nil(t, (*Actor)(nil).Clone())

	a := &Actor{
		Hostname: "phone",
		Username: "u0_a123",
	}

	b := a.Clone()

	require.Equal(t, a, b)
	require.NotSame(t, a, b)
	require.Equal(t, "u0_a123@phone", a.String())
	require.Equal(t, "<unknown>", (*Actor)(nil).String())
}

// TestDraftNormalize checks range validation and the default label.
func TestDraftNormalize(t *testing.T) {
	t.Parallel()

	draft := &Draft{Hour: 7, Minute: 0, Label: "  "}
	require.NoError(t, draft.Normalize())
	require.Equal(t, DefaultLabel, draft.Label)

	for _, bad := range []Draft{
		{Hour: 24, Minute: 0},
		{Hour: -1, Minute: 0},
		{Hour: 7, Minute: 60},
		{Hour: 7, Minute: -5},
	} {
		require.ErrorIs(t, bad.Normalize(), ErrInvalidInput)
	}
}

// TestParseDraft rejects non-numeric inputs before anything else happens.
func TestParseDraft(t *testing.T) {
	t.Parallel()

	draft, err := ParseDraft(" 7", "30 ", "Wake", true)
	require.NoError(t, err)
	require.Equal(t, &Draft{Hour: 7, Minute: 30, Label: "Wake", Vibrate: true}, draft)

	_, err = ParseDraft("seven", "30", "", false)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParseDraft("7", "", "", false)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParseDraft("25", "0", "", false)
	require.ErrorIs(t, err, ErrInvalidInput)
}

// TestAlarmHelpers covers validity, matching and label fallbacks.
func TestAlarmHelpers(t *testing.T) {
	t.Parallel()

	a := Alarm{ID: "1", Hour: 7, Minute: 30}
	require.True(t, a.Valid())
	require.Equal(t, "07:30", a.Clock())
	require.Equal(t, DefaultLabel, a.DisplayLabel())
	require.True(t, a.Matches(time.Date(2026, 1, 2, 7, 30, 59, 0, time.Local)))
	require.False(t, a.Matches(time.Date(2026, 1, 2, 7, 31, 0, 0, time.Local)))

	require.False(t, (&Alarm{ID: "", Hour: 7}).Valid())
	require.False(t, (&Alarm{ID: "x", Hour: 99}).Valid())

	status := RemoteStatus{Ringing: true}
	require.Equal(t, DefaultLabel, status.DisplayLabel())
}

// TestSnapshot verifies ordering, duplicate handling and nil safety.
func TestSnapshot(t *testing.T) {
	t.Parallel()

	taken := time.Unix(100, 0)
	s := NewSnapshot([]Alarm{
		{ID: "b", Hour: 9},
		{ID: "a", Hour: 7, Minute: 30},
		{ID: "b", Hour: 1, Label: "duplicate"},
		{ID: "c", Hour: 7, Minute: 0},
	}, taken)

	require.Equal(t, 3, s.Len())
	require.Equal(t, taken, s.TakenAt())

	ids := make([]string, 0, s.Len())
	for _, a := range s.Alarms() {
		ids = append(ids, a.ID)
	}

	require.Equal(t, []string{"c", "a", "b"}, ids)

	b, found := s.Get("b")
	require.True(t, found)
	require.Equal(t, 9, b.Hour)

	var empty *Snapshot
	require.Zero(t, empty.Len())
	require.Nil(t, empty.Alarms())

	_, found = empty.Get("a")
	require.False(t, found)
}
