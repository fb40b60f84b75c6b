package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
)

// Mode selects how the engine decides whether an alarm rings.
type Mode string

const (
	// ModeLocal compares the local clock with the cached alarm list.
	ModeLocal Mode = "local"
	// ModeRemote mirrors the ringing status polled from the authority.
	ModeRemote Mode = "remote"
)

const (
	// DefaultLocalPollInterval is the local evaluation period.
	DefaultLocalPollInterval = 5 * time.Second
	// DefaultRemotePollInterval is the remote status period.
	DefaultRemotePollInterval = 2 * time.Second
	// DefaultCallTimeout bounds every collaborator call.
	DefaultCallTimeout = 5 * time.Second
)

// Catalog is the collaborator owning the alarm definitions.
type Catalog interface {
	ListAlarms(ctx context.Context) ([]alarm.Alarm, error)
	CreateAlarm(ctx context.Context, draft *alarm.Draft) (string, error)
	ToggleAlarm(ctx context.Context, id string) error
	DeleteAlarm(ctx context.Context, id string) error
}

// Authority is the collaborator owning the authoritative ringing status.
type Authority interface {
	StopRinging(ctx context.Context) error
	RingingStatus(ctx context.Context) (*alarm.RemoteStatus, error)
}

// AlertActuator produces the observable side effects of an alert.
type AlertActuator interface {
	Start(ctx context.Context, label string, vibrate bool)
	Stop()
	IsActive() bool
}

// Options tunes the engine.
type Options struct {
	// Mode defaults to ModeLocal.
	Mode Mode
	// PollInterval defaults to 5s in local mode and 2s in remote mode.
	PollInterval time.Duration
	// RefreshInterval reloads the alarm list periodically when positive.
	RefreshInterval time.Duration
	// RingTimeout silences a local alert after this duration when positive.
	RingTimeout time.Duration
	// CallTimeout bounds every collaborator call.
	CallTimeout time.Duration
}

// Dependencies are the collaborators wired into the engine.
type Dependencies struct {
	// Clock defaults to the system clock.
	Clock Clock
	// Catalog is required.
	Catalog Catalog
	// Authority is required in remote mode. When set, dismissals are
	// forwarded to it so other clients converge.
	Authority Authority
	// Actuator is required.
	Actuator AlertActuator
	// Presenter defaults to a LogPresenter.
	Presenter Presenter
}

var (
	// ErrClosed is returned when a result arrives after the engine was closed.
	ErrClosed = errors.New("engine is closed")

	errCatalogRequired   = errors.New("alarm catalog is required")
	errActuatorRequired  = errors.New("alert actuator is required")
	errAuthorityRequired = errors.New("remote mode requires a ringing status source")
	errUnknownMode       = errors.New("unknown evaluation mode")
)

// Engine is the alarm orchestrator. It is the only component the
// presentation layer and the transports talk to.
type Engine struct {
	opts      Options
	clock     Clock
	store     *Store
	catalog   Catalog
	authority Authority
	actuator  AlertActuator
	presenter Presenter

	scheduler   *Scheduler
	refreshTask *Task
	pollTask    *Task

	// refreshMu serializes list fetches.
	refreshMu sync.Mutex

	mu      sync.Mutex
	state   RingingState
	epoch   uint64
	// stopping counts dismissals still waiting on the authority.
	stopping int
	runCtx  context.Context //nolint:containedctx // Lifetime of alert cycles.
	started bool
	closed  bool
}

// New validates the options and wires the engine.
func New(opts Options, deps Dependencies) (*Engine, error) {
	if deps.Catalog == nil {
		return nil, errCatalogRequired
	}

	if deps.Actuator == nil {
		return nil, errActuatorRequired
	}

	switch opts.Mode {
	case "":
		opts.Mode = ModeLocal
	case ModeLocal:
	case ModeRemote:
		if deps.Authority == nil {
			return nil, errAuthorityRequired
		}
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownMode, opts.Mode)
	}

	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultLocalPollInterval
		if opts.Mode == ModeRemote {
			opts.PollInterval = DefaultRemotePollInterval
		}
	}

	if opts.CallTimeout <= 0 {
		opts.CallTimeout = DefaultCallTimeout
	}

	if deps.Clock == nil {
		deps.Clock = SystemClock{}
	}

	if deps.Presenter == nil {
		deps.Presenter = NewLogPresenter(context.Background())
	}

	e := &Engine{
		opts:      opts,
		clock:     deps.Clock,
		store:     NewStore(),
		catalog:   deps.Catalog,
		authority: deps.Authority,
		actuator:  deps.Actuator,
		presenter: deps.Presenter,
		scheduler: NewScheduler(),
		runCtx:    context.Background(),
	}

	e.refreshTask = e.scheduler.Add("refresh", opts.RefreshInterval, e.refreshTick)
	e.pollTask = e.scheduler.Add("poll", opts.PollInterval, e.pollTick)

	return e, nil
}

// Mode returns the evaluation mode.
func (e *Engine) Mode() Mode {
	return e.opts.Mode
}

// Start launches the refresh and poll tasks and loads the alarm list.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()

	if e.started || e.closed {
		e.mu.Unlock()
		return
	}

	e.started = true
	e.runCtx = ctx

	e.mu.Unlock()

	e.scheduler.Start(ctx)
	e.refreshTask.Trigger()

	logger.InfoKV(ctx, "Alarm engine started", "mode", e.opts.Mode, "poll_interval", e.opts.PollInterval.String())
}

// Run starts the engine and blocks until ctx is canceled.
func (e *Engine) Run(ctx context.Context) error {
	e.Start(ctx)

	<-ctx.Done()

	e.Close()
	logger.Info(ctx, "Alarm engine stopped")

	return nil
}

// Close stops all tasks and any running alert. Results arriving later are ignored.
func (e *Engine) Close() {
	e.mu.Lock()

	if e.closed {
		e.mu.Unlock()
		return
	}

	e.closed = true

	e.mu.Unlock()

	e.scheduler.Stop()

	e.mu.Lock()
	if e.state.Active {
		e.silenceLocked()
	}
	e.mu.Unlock()
}

// State returns a copy of the ringing state.
func (e *Engine) State() RingingView {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.viewLocked()
}

// Snapshot returns the last fetched alarm list, nil before the first refresh.
func (e *Engine) Snapshot() *alarm.Snapshot {
	return e.store.Snapshot()
}

// Refresh reloads the alarm list and replaces the stored snapshot.
func (e *Engine) Refresh(ctx context.Context) error {
	e.refreshMu.Lock()
	defer e.refreshMu.Unlock()

	callCtx, cancel := e.callContext(ctx)
	defer cancel()

	alarms, err := e.catalog.ListAlarms(callCtx)
	if err != nil {
		return fmt.Errorf("list alarms: %w", transient(err))
	}

	snapshot := alarm.NewSnapshot(alarms, e.clock.Now())

	e.mu.Lock()

	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}

	e.store.Replace(snapshot)

	e.mu.Unlock()

	e.presenter.RenderAlarms(snapshot)

	return nil
}

// CreateAlarm validates the draft, creates the alarm and reloads the list.
// Invalid input is rejected before any collaborator call.
func (e *Engine) CreateAlarm(ctx context.Context, draft *alarm.Draft) (string, error) {
	if draft == nil {
		e.presenter.Notify(LevelError, "Please enter a valid time")
		return "", fmt.Errorf("%w: empty draft", alarm.ErrInvalidInput)
	}

	if err := draft.Normalize(); err != nil {
		e.presenter.Notify(LevelError, "Please enter a valid time")
		return "", err
	}

	callCtx, cancel := e.callContext(ctx)
	defer cancel()

	id, err := e.catalog.CreateAlarm(callCtx, draft)
	if err != nil {
		e.presenter.Notify(LevelError, "Unable to create alarm")
		return "", fmt.Errorf("create alarm: %w", err)
	}

	logger.InfoKV(ctx, "Alarm created", "alarm_id", id, "time", alarm.FormatClock(draft.Hour, draft.Minute))
	e.afterMutation(ctx, "Alarm created")

	return id, nil
}

// ToggleAlarm flips the enabled flag of an alarm and reloads the list.
func (e *Engine) ToggleAlarm(ctx context.Context, id string) error {
	callCtx, cancel := e.callContext(ctx)
	defer cancel()

	if err := e.catalog.ToggleAlarm(callCtx, id); err != nil {
		e.notifyMutationError(err, "Unable to update alarm")
		return fmt.Errorf("toggle alarm %s: %w", id, err)
	}

	logger.InfoKV(ctx, "Alarm toggled", "alarm_id", id)
	e.afterMutation(ctx, "Alarm updated")

	return nil
}

// DeleteAlarm removes an alarm and reloads the list.
func (e *Engine) DeleteAlarm(ctx context.Context, id string) error {
	callCtx, cancel := e.callContext(ctx)
	defer cancel()

	if err := e.catalog.DeleteAlarm(callCtx, id); err != nil {
		e.notifyMutationError(err, "Unable to delete alarm")
		return fmt.Errorf("delete alarm %s: %w", id, err)
	}

	logger.InfoKV(ctx, "Alarm deleted", "alarm_id", id)
	e.afterMutation(ctx, "Alarm deleted")

	return nil
}

// Stop dismisses the current alert and asks the authority, when present, to
// clear its ringing status so other clients converge.
func (e *Engine) Stop(ctx context.Context) error {
	e.mu.Lock()

	wasActive := e.state.Active
	if wasActive {
		e.silenceLocked()
	} else {
		// Drop status responses that are already in flight.
		e.epoch++
	}

	view := e.viewLocked()
	started := e.started

	e.mu.Unlock()

	if wasActive {
		e.presenter.RenderRinging(view)
	}

	logger.InfoKV(ctx, "Alarm dismissed", "was_ringing", wasActive)

	if e.authority != nil {
		if err := e.stopAuthority(ctx); err != nil {
			e.presenter.Notify(LevelError, "Unable to stop the alarm")
			return fmt.Errorf("stop ringing: %w", err)
		}
	}

	e.presenter.Notify(LevelSuccess, "Alarm stopped")

	if started {
		e.refreshTask.Trigger()
	} else {
		e.refreshTick(ctx)
	}

	return nil
}

// stopAuthority clears the authority status. Polls that overlap the call
// still see the old status and are discarded.
func (e *Engine) stopAuthority(ctx context.Context) error {
	e.mu.Lock()
	e.stopping++
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.stopping--
		e.epoch++
		e.mu.Unlock()
	}()

	callCtx, cancel := e.callContext(ctx)
	defer cancel()

	return e.authority.StopRinging(callCtx)
}

// refreshTick is the body of the refresh task. Failures are logged and retried later.
func (e *Engine) refreshTick(ctx context.Context) {
	err := e.Refresh(ctx)
	if err == nil || errors.Is(err, ErrClosed) || ctx.Err() != nil {
		return
	}

	logger.WarnKV(ctx, "Alarm list refresh failed", "error", err)
}

// pollTick is the body of the poll task.
func (e *Engine) pollTick(ctx context.Context) {
	if e.opts.Mode == ModeRemote {
		e.pollRemote(ctx)
	} else {
		e.pollLocal(ctx)
	}

	if renderer, ok := e.presenter.(ClockRenderer); ok {
		renderer.RenderClock(e.clock.Now())
	}
}

// pollLocal evaluates the cached list against the clock.
func (e *Engine) pollLocal(ctx context.Context) {
	now := e.clock.Now()

	e.mu.Lock()

	if e.closed {
		e.mu.Unlock()
		return
	}

	changed := false

	for _, decision := range EvaluateLocal(e.store.Snapshot(), now, &e.state) {
		if e.applyLocked(ctx, decision, now) {
			changed = true
		}
	}

	if e.expiredLocked(now) {
		logger.WarnKV(ctx, "Alarm auto-stopped", "alarm_id", e.state.AlarmID, "ring_timeout", e.opts.RingTimeout.String())
		e.silenceLocked()

		changed = true
	}

	view := e.viewLocked()

	e.mu.Unlock()

	if changed {
		e.presenter.RenderRinging(view)
	}
}

// pollRemote mirrors the authoritative status. Responses captured before a
// dismissal are dropped.
func (e *Engine) pollRemote(ctx context.Context) {
	e.mu.Lock()

	if e.closed {
		e.mu.Unlock()
		return
	}

	epoch := e.epoch

	e.mu.Unlock()

	callCtx, cancel := e.callContext(ctx)
	defer cancel()

	status, err := e.authority.RingingStatus(callCtx)
	if err != nil {
		if ctx.Err() == nil {
			logger.WarnKV(ctx, "Ringing status poll failed", "error", transient(err))
		}

		return
	}

	now := e.clock.Now()

	e.mu.Lock()

	if e.closed || e.stopping > 0 || e.epoch != epoch {
		e.mu.Unlock()
		logger.Debug(ctx, "Dropping stale ringing status")

		return
	}

	decision := EvaluateRemote(status, &e.state)
	if decision.Kind == StartRinging {
		if a, found := e.store.Lookup(decision.AlarmID); found {
			decision.Vibrate = a.Vibrate
		}
	}

	changed := e.applyLocked(ctx, decision, now)
	view := e.viewLocked()

	e.mu.Unlock()

	if changed {
		e.presenter.RenderRinging(view)
	}
}

// applyLocked performs one state machine transition and reports whether the
// ringing state changed. A start for another alarm while ringing is deferred.
func (e *Engine) applyLocked(ctx context.Context, decision Decision, now time.Time) bool {
	switch decision.Kind {
	case StartRinging:
		if !e.state.Active {
			e.state.begin(decision, now)
			e.actuator.Start(e.runCtx, decision.Label, decision.Vibrate)
			logger.InfoKV(ctx, "Alarm ringing", "alarm_id", decision.AlarmID, "label", decision.Label)

			return true
		}

		if e.state.AlarmID != decision.AlarmID {
			e.state.release(decision.AlarmID)
			logger.DebugKV(ctx, "Alarm deferred", "alarm_id", decision.AlarmID, "ringing_alarm_id", e.state.AlarmID)
		}

		return false
	case StopRinging:
		if !e.state.Active {
			return false
		}

		e.silenceLocked()
		logger.Info(ctx, "Alarm stopped by authoritative status")

		return true
	default:
		return false
	}
}

// silenceLocked stops the actuator and clears the alert.
func (e *Engine) silenceLocked() {
	e.actuator.Stop()
	e.state.clear()
	e.epoch++
}

// expiredLocked reports whether a local alert outlived the ring timeout.
func (e *Engine) expiredLocked(now time.Time) bool {
	return e.opts.Mode == ModeLocal &&
		e.opts.RingTimeout > 0 &&
		e.state.Active &&
		now.Sub(e.state.Since) >= e.opts.RingTimeout
}

func (e *Engine) viewLocked() RingingView {
	return RingingView{
		Ringing: e.state.Active,
		AlarmID: e.state.AlarmID,
		Label:   e.state.Label,
		Since:   e.state.Since,
	}
}

// afterMutation reloads the list after a confirmed mutation and notifies the user.
func (e *Engine) afterMutation(ctx context.Context, message string) {
	if err := e.Refresh(ctx); err != nil && !errors.Is(err, ErrClosed) {
		logger.WarnKV(ctx, "Alarm list refresh after change failed", "error", err)
	}

	e.presenter.Notify(LevelSuccess, message)
}

func (e *Engine) notifyMutationError(err error, message string) {
	if errors.Is(err, alarm.ErrNotFound) {
		message = "Alarm not found"
	}

	e.presenter.Notify(LevelError, message)
}

// callContext returns a context bounded by the call timeout.
func (e *Engine) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, e.opts.CallTimeout)
}

// transient marks err as a transient collaborator failure unless it already is one.
func transient(err error) error {
	if errors.Is(err, alarm.ErrTransient) {
		return err
	}

	return fmt.Errorf("%w: %w", alarm.ErrTransient, err)
}
