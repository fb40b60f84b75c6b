package engine

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// manualClock is a clock moved by the test.
type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock(now time.Time) *manualClock {
	return &manualClock{now: now}
}

// Now returns the configured time.
func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *manualClock) set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = now
}

// fakeCatalog keeps alarms in memory.
type fakeCatalog struct {
	mu          sync.Mutex
	alarms      []alarm.Alarm
	nextID      int
	listErr     error
	createErr   error
	listCalls   int
	createCalls int
}

// ListAlarms returns a copy of the stored alarms.
func (c *fakeCatalog) ListAlarms(context.Context) ([]alarm.Alarm, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.listCalls++
	if c.listErr != nil {
		return nil, c.listErr
	}

	return slices.Clone(c.alarms), nil
}

// CreateAlarm appends an enabled alarm.
func (c *fakeCatalog) CreateAlarm(_ context.Context, draft *alarm.Draft) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.createCalls++
	if c.createErr != nil {
		return "", c.createErr
	}

	c.nextID++
	id := fmt.Sprintf("alarm_%d", c.nextID)

	c.alarms = append(c.alarms, alarm.Alarm{
		ID:      id,
		Hour:    draft.Hour,
		Minute:  draft.Minute,
		Label:   draft.Label,
		Enabled: true,
		Vibrate: draft.Vibrate,
	})

	return id, nil
}

// ToggleAlarm flips the enabled flag.
func (c *fakeCatalog) ToggleAlarm(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.alarms {
		if c.alarms[i].ID == id {
			c.alarms[i].Enabled = !c.alarms[i].Enabled
			return nil
		}
	}

	return alarm.ErrNotFound
}

// DeleteAlarm removes an alarm.
func (c *fakeCatalog) DeleteAlarm(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.alarms {
		if c.alarms[i].ID == id {
			c.alarms = slices.Delete(c.alarms, i, i+1)
			return nil
		}
	}

	return alarm.ErrNotFound
}

func (c *fakeCatalog) setListErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.listErr = err
}

func (c *fakeCatalog) creates() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.createCalls
}

// fakeAuthority replays scripted statuses, repeating the last one.
type fakeAuthority struct {
	mu        sync.Mutex
	statuses  []alarm.RemoteStatus
	err       error
	stopCalls int
	beforeRet func()
	// onStop runs once while StopRinging is in flight, before the status changes.
	onStop func()
}

// StopRinging counts the call and reports silence from now on.
func (a *fakeAuthority) StopRinging(context.Context) error {
	a.mu.Lock()
	hook := a.onStop
	a.onStop = nil
	a.mu.Unlock()

	if hook != nil {
		hook()
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopCalls++
	a.statuses = []alarm.RemoteStatus{{Ringing: false}}

	return nil
}

// RingingStatus pops the next scripted status.
func (a *fakeAuthority) RingingStatus(context.Context) (*alarm.RemoteStatus, error) {
	a.mu.Lock()

	hook := a.beforeRet
	a.beforeRet = nil

	if a.err != nil {
		err := a.err
		a.mu.Unlock()

		return nil, err
	}

	status := alarm.RemoteStatus{}
	if len(a.statuses) > 0 {
		status = a.statuses[0]
		if len(a.statuses) > 1 {
			a.statuses = a.statuses[1:]
		}
	}

	a.mu.Unlock()

	if hook != nil {
		hook()
	}

	return &status, nil
}

func (a *fakeAuthority) stops() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.stopCalls
}

func (a *fakeAuthority) setErr(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.err = err
}

// fakeActuator records actuator calls without side effects.
type fakeActuator struct {
	mu       sync.Mutex
	active   bool
	starts   int
	stops    int
	label    string
	vibrated bool
}

// Start records the call.
func (a *fakeActuator) Start(_ context.Context, label string, vibrate bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.starts++
	a.active = true
	a.label = label
	a.vibrated = vibrate
}

// Stop records the call.
func (a *fakeActuator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stops++
	a.active = false
}

// IsActive reports the recorded state.
func (a *fakeActuator) IsActive() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.active
}

func (a *fakeActuator) counts() (int, int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.starts, a.stops
}

// notification is one recorded Notify call.
type notification struct {
	level   Level
	message string
}

// recordingPresenter records every engine event.
type recordingPresenter struct {
	mu        sync.Mutex
	snapshots []*alarm.Snapshot
	views     []RingingView
	notes     []notification
	clocks    int
}

// RenderAlarms records the snapshot.
func (p *recordingPresenter) RenderAlarms(snapshot *alarm.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.snapshots = append(p.snapshots, snapshot)
}

// RenderRinging records the view.
func (p *recordingPresenter) RenderRinging(view RingingView) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.views = append(p.views, view)
}

// Notify records the notification.
func (p *recordingPresenter) Notify(level Level, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.notes = append(p.notes, notification{level: level, message: message})
}

// RenderClock counts clock renders.
func (p *recordingPresenter) RenderClock(time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.clocks++
}

func (p *recordingPresenter) lastNote() notification {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.notes) == 0 {
		return notification{}
	}

	return p.notes[len(p.notes)-1]
}
