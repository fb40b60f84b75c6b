package device

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"
)

var errTestRun = errors.New("test run error")

// recorder captures the commands a helper runs.
type recorder struct {
	mu       sync.Mutex
	commands []string
	err      error
}

func (r *recorder) run(_ context.Context, name string, args ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.commands = append(r.commands, strings.Join(append([]string{name}, args...), " "))

	return r.err
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.commands...)
}

// TestVibrator_Pattern issues one command per vibration segment and honours pauses.
func TestVibrator_Pattern(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		rec := new(recorder)
		v := NewVibrator(WithRunner(rec.run))

		start := time.Now()
		pattern := []time.Duration{
			500 * time.Millisecond,
			200 * time.Millisecond,
			500 * time.Millisecond,
			200 * time.Millisecond,
			500 * time.Millisecond,
		}

		require.NoError(t, v.Vibrate(t.Context(), pattern))
		require.Equal(t, []string{
			"termux-vibrate -d 500",
			"termux-vibrate -d 500",
			"termux-vibrate -d 500",
		}, rec.all())
		require.Equal(t, 1900*time.Millisecond, time.Since(start))
	})
}

// TestVibrator_Cancel stops between segments.
func TestVibrator_Cancel(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		rec := new(recorder)
		v := NewVibrator(WithRunner(rec.run))

		ctx, cancel := context.WithTimeout(t.Context(), 600*time.Millisecond)
		defer cancel()

		require.NoError(t, v.Vibrate(ctx, []time.Duration{time.Second, time.Second, time.Second}))
		require.Len(t, rec.all(), 1)
	})
}

// TestVibrator_Failure reports the command error.
func TestVibrator_Failure(t *testing.T) {
	t.Parallel()

	v := NewVibrator(WithRunner((&recorder{err: errTestRun}).run))

	require.ErrorIs(t, v.Vibrate(context.Background(), []time.Duration{time.Millisecond}), errTestRun)
}

// TestWakeLock_AcquireRelease is idempotent in both directions.
func TestWakeLock_AcquireRelease(t *testing.T) {
	t.Parallel()

	rec := new(recorder)
	w := NewWakeLock(WithRunner(rec.run))

	require.NoError(t, w.Release(context.Background()))
	require.NoError(t, w.Acquire(context.Background()))
	require.NoError(t, w.Acquire(context.Background()))
	require.True(t, w.Held())
	require.NoError(t, w.Release(context.Background()))
	require.False(t, w.Held())

	require.Equal(t, []string{"termux-wake-lock", "termux-wake-unlock"}, rec.all())
}

// TestWakeLock_Unavailable leaves the lock released on failure.
func TestWakeLock_Unavailable(t *testing.T) {
	t.Parallel()

	w := NewWakeLock(WithRunner((&recorder{err: ErrUnavailable}).run))

	require.ErrorIs(t, w.Acquire(context.Background()), ErrUnavailable)
	require.False(t, w.Held())
}
