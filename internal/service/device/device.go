package device

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/oshokin/alarm-clock/internal/logger"
)

const (
	vibrateCommand    = "termux-vibrate"
	wakeLockCommand   = "termux-wake-lock"
	wakeUnlockCommand = "termux-wake-unlock"
)

// ErrUnavailable indicates the termux-api tool is not installed.
var ErrUnavailable = errors.New("termux-api tool is not available")

// Runner executes an external command and waits for it to finish.
type Runner func(ctx context.Context, name string, args ...string) error

// Option configures the device helpers.
type Option func(*options)

type options struct {
	run Runner
}

// WithRunner replaces the command runner.
func WithRunner(run Runner) Option {
	return func(o *options) {
		if run != nil {
			o.run = run
		}
	}
}

func newOptions(opts []Option) options {
	o := options{run: execRun}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Available reports whether the termux-api tools are on PATH.
func Available() bool {
	_, err := exec.LookPath(vibrateCommand)

	return err == nil
}

// Vibrator plays vibration patterns with termux-vibrate.
type Vibrator struct {
	run Runner
}

// NewVibrator creates a termux vibrator.
func NewVibrator(opts ...Option) *Vibrator {
	o := newOptions(opts)

	return &Vibrator{run: o.run}
}

// Vibrate plays the pattern: even entries vibrate, odd entries pause.
// It returns early when ctx is canceled.
func (v *Vibrator) Vibrate(ctx context.Context, pattern []time.Duration) error {
	for i, segment := range pattern {
		if i%2 == 0 {
			millis := strconv.FormatInt(segment.Milliseconds(), 10)
			if err := v.run(ctx, vibrateCommand, "-d", millis); err != nil {
				return fmt.Errorf("vibrate: %w", err)
			}
		}

		if err := sleep(ctx, segment); err != nil {
			return nil //nolint:nilerr // Cancellation ends the pattern early.
		}
	}

	return nil
}

// WakeLock keeps the CPU awake while the server runs.
type WakeLock struct {
	run Runner

	mu       sync.Mutex
	acquired bool
}

// NewWakeLock creates a termux wake lock.
func NewWakeLock(opts ...Option) *WakeLock {
	o := newOptions(opts)

	return &WakeLock{run: o.run}
}

// Acquire takes the wake lock. Acquiring twice is a no-op.
func (w *WakeLock) Acquire(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.acquired {
		return nil
	}

	if err := w.run(ctx, wakeLockCommand); err != nil {
		return fmt.Errorf("acquire wake lock: %w", err)
	}

	w.acquired = true
	logger.Info(ctx, "Wake lock acquired")

	return nil
}

// Release drops the wake lock if it is held.
func (w *WakeLock) Release(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.acquired {
		return nil
	}

	w.acquired = false

	if err := w.run(ctx, wakeUnlockCommand); err != nil {
		return fmt.Errorf("release wake lock: %w", err)
	}

	logger.Info(ctx, "Wake lock released")

	return nil
}

// Held reports whether the wake lock is held.
func (w *WakeLock) Held() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.acquired
}

// execRun runs a command, mapping a missing binary to ErrUnavailable.
func execRun(ctx context.Context, name string, args ...string) error {
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, name)
	}

	if err := exec.CommandContext(ctx, name, args...).Run(); err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}

	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
