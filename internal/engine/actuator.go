package engine

import (
	"context"
	"sync"
	"time"

	"github.com/oshokin/alarm-clock/internal/logger"
)

const (
	// DefaultTonePeriod is the delay between two tone bursts.
	DefaultTonePeriod = time.Second
)

// DefaultVibrationPattern alternates 500ms of vibration with 200ms pauses.
//
//nolint:gochecknoglobals // Read-only pattern shared by all actuators.
var DefaultVibrationPattern = []time.Duration{
	500 * time.Millisecond,
	200 * time.Millisecond,
	500 * time.Millisecond,
	200 * time.Millisecond,
	500 * time.Millisecond,
}

// Tone emits one short audible burst.
type Tone interface {
	Beep(ctx context.Context) error
}

// Vibrator issues a vibration pattern of alternating on/off durations.
type Vibrator interface {
	Vibrate(ctx context.Context, pattern []time.Duration) error
}

// Actuator owns the audible and vibration side effects of an alert.
// Start and Stop are idempotent.
type Actuator struct {
	tone     Tone
	vibrator Vibrator
	period   time.Duration
	pattern  []time.Duration

	mu     sync.Mutex
	label  string
	cancel context.CancelFunc
	done   chan struct{}
}

// ActuatorOption configures an Actuator.
type ActuatorOption func(*Actuator)

// WithTonePeriod sets the delay between tone bursts.
func WithTonePeriod(period time.Duration) ActuatorOption {
	return func(a *Actuator) {
		if period > 0 {
			a.period = period
		}
	}
}

// WithVibrationPattern overrides the vibration pattern.
func WithVibrationPattern(pattern []time.Duration) ActuatorOption {
	return func(a *Actuator) {
		if len(pattern) > 0 {
			a.pattern = pattern
		}
	}
}

// NewActuator creates an actuator. Either side effect may be nil.
func NewActuator(tone Tone, vibrator Vibrator, opts ...ActuatorOption) *Actuator {
	a := &Actuator{
		tone:     tone,
		vibrator: vibrator,
		period:   DefaultTonePeriod,
		pattern:  DefaultVibrationPattern,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start begins the alert: one tone burst right away, then one per period
// until Stop, plus a single vibration pattern when requested. Calling Start
// while active only updates the label.
func (a *Actuator) Start(ctx context.Context, label string, vibrate bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.label = label

	if a.cancel != nil {
		return
	}

	cycleCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	a.cancel = cancel
	a.done = done

	var wg sync.WaitGroup

	if vibrate && a.vibrator != nil {
		wg.Go(func() {
			if err := a.vibrator.Vibrate(cycleCtx, a.pattern); err != nil {
				logger.DebugKV(cycleCtx, "Vibration failed", "error", err)
			}
		})
	}

	wg.Go(func() {
		a.repeat(cycleCtx)
	})

	go func() {
		wg.Wait()
		close(done)
	}()
}

// Stop cancels the alert and waits for its side effects to finish.
// It is safe to call when the actuator was never started.
func (a *Actuator) Stop() {
	a.mu.Lock()

	if a.cancel == nil {
		a.mu.Unlock()
		return
	}

	cancel, done := a.cancel, a.done
	a.cancel, a.done = nil, nil
	a.label = ""

	a.mu.Unlock()

	cancel()
	<-done
}

// IsActive reports whether an alert cycle is running.
func (a *Actuator) IsActive() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.cancel != nil
}

// Label returns the label of the running alert.
func (a *Actuator) Label() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.label
}

// repeat emits tone bursts until ctx is canceled.
func (a *Actuator) repeat(ctx context.Context) {
	if a.tone == nil {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(a.period)
	defer ticker.Stop()

	a.beep(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.beep(ctx)
		}
	}
}

func (a *Actuator) beep(ctx context.Context) {
	if err := a.tone.Beep(ctx); err != nil && ctx.Err() == nil {
		logger.DebugKV(ctx, "Tone burst failed", "error", err)
	}
}
