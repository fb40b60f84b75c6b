package client

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/engine"
)

// memoryClient is an in-memory alarm server connection.
type memoryClient struct {
	mu      sync.Mutex
	alarms  []domain.Alarm
	status  domain.RemoteStatus
	stops   int
	closed  bool
	counter int
}

func (c *memoryClient) ListAlarms(context.Context) ([]domain.Alarm, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]domain.Alarm(nil), c.alarms...), nil
}

func (c *memoryClient) CreateAlarm(_ context.Context, draft *domain.Draft) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counter++
	id := fmt.Sprintf("alarm_%08d", c.counter)
	c.alarms = append(c.alarms, domain.Alarm{
		ID:      id,
		Hour:    draft.Hour,
		Minute:  draft.Minute,
		Label:   draft.Label,
		Enabled: true,
		Vibrate: draft.Vibrate,
	})

	return id, nil
}

func (c *memoryClient) ToggleAlarm(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.alarms {
		if c.alarms[i].ID == id {
			c.alarms[i].Enabled = !c.alarms[i].Enabled
			return nil
		}
	}

	return domain.ErrNotFound
}

func (c *memoryClient) DeleteAlarm(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.alarms {
		if c.alarms[i].ID == id {
			c.alarms = append(c.alarms[:i], c.alarms[i+1:]...)
			return nil
		}
	}

	return domain.ErrNotFound
}

func (c *memoryClient) StopRinging(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stops++
	c.status = domain.RemoteStatus{}

	return nil
}

func (c *memoryClient) RingingStatus(context.Context) (*domain.RemoteStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := c.status

	return &status, nil
}

func (c *memoryClient) Close() error {
	c.closed = true
	return nil
}

// TestSession_CatalogCommands drives the one-shot commands through the engine.
func TestSession_CatalogCommands(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := new(memoryClient)

	var out bytes.Buffer

	s, err := newSession(client, time.Second, &out)
	require.NoError(t, err)

	id, err := s.engine.CreateAlarm(ctx, &domain.Draft{Hour: 7, Minute: 5, Label: "Gym", Vibrate: true})
	require.NoError(t, err)
	require.Contains(t, out.String(), "07:05")
	require.Contains(t, out.String(), "Gym")
	require.Contains(t, out.String(), "Alarm created")

	out.Reset()
	require.NoError(t, s.engine.ToggleAlarm(ctx, id))
	require.Contains(t, out.String(), "off")

	out.Reset()
	require.ErrorIs(t, s.engine.DeleteAlarm(ctx, "missing"), domain.ErrNotFound)
	require.Contains(t, out.String(), "Alarm not found")

	out.Reset()
	require.NoError(t, s.engine.DeleteAlarm(ctx, id))
	require.Contains(t, out.String(), "No alarms set")

	s.Close()
	require.True(t, client.closed)
}

// TestSession_StopAndStatus forwards the dismissal and prints the status.
func TestSession_StopAndStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := &memoryClient{status: domain.RemoteStatus{Ringing: true, Label: "Wake"}}

	var out bytes.Buffer

	s, err := newSession(client, time.Second, &out)
	require.NoError(t, err)

	defer s.Close()

	require.NoError(t, s.status(ctx))
	require.Contains(t, out.String(), "RINGING")
	require.Contains(t, out.String(), "Wake")

	out.Reset()
	require.NoError(t, s.engine.Stop(ctx))
	require.Equal(t, 1, client.stops)
	require.Contains(t, out.String(), "Alarm stopped")
	require.Contains(t, out.String(), "No alarms set")

	out.Reset()
	require.NoError(t, s.status(ctx))
	require.Contains(t, out.String(), "Not ringing")
}

// TestSession_Export writes a calendar with one event per enabled alarm.
func TestSession_Export(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := &memoryClient{alarms: []domain.Alarm{
		{ID: "alarm_00000001", Hour: 7, Minute: 0, Label: "Wake", Enabled: true},
		{ID: "alarm_00000002", Hour: 8, Minute: 0, Label: "Late", Enabled: false},
	}}

	var out bytes.Buffer

	s, err := newSession(client, time.Second, &out)
	require.NoError(t, err)

	defer s.Close()

	now := time.Date(2026, time.March, 1, 6, 0, 0, 0, time.Local)
	require.NoError(t, s.export(ctx, now, false))
	require.Contains(t, out.String(), "BEGIN:VCALENDAR")
	require.Equal(t, 1, strings.Count(out.String(), "BEGIN:VEVENT"))
}

// scriptedController records interactive commands.
type scriptedController struct {
	stops     int
	refreshes int
}

func (c *scriptedController) Stop(context.Context) error {
	c.stops++
	return nil
}

func (c *scriptedController) Refresh(context.Context) error {
	c.refreshes++
	return nil
}

// TestReadCommands dispatches the interactive commands until quit.
func TestReadCommands(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctrl := new(scriptedController)
	input := strings.NewReader("s\n\nL\nbogus\nstop\nq\ns\n")

	readCommands(ctx, input, ctrl, cancel)

	require.Equal(t, 2, ctrl.stops)
	require.Equal(t, 1, ctrl.refreshes)
	require.Error(t, ctx.Err())
}

// TestTerminalPresenter_ClockLine terminates the clock line before other output.
func TestTerminalPresenter_ClockLine(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	p := NewTerminalPresenter(&out)
	p.RenderClock(time.Date(2026, time.March, 1, 7, 30, 15, 0, time.Local))
	p.RenderRinging(engine.RingingView{
		Ringing: true,
		Label:   "",
		Since:   time.Date(2026, time.March, 1, 7, 30, 0, 0, time.Local),
	})

	lines := strings.Split(out.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	require.Contains(t, lines[0], "07:30:15")
	require.Contains(t, lines[1], "ALARM 07:30")
	require.Contains(t, lines[1], domain.DefaultLabel)

	out.Reset()
	p.RenderRinging(engine.RingingView{})
	require.Equal(t, "Alarm stopped\n", stripANSI(out.String()))
}

// TestAutostartApp builds the watcher command line.
func TestAutostartApp(t *testing.T) {
	t.Parallel()

	app, err := autostartApp("settings.yaml")
	require.NoError(t, err)
	require.Equal(t, autostartName, app.Name)
	require.Len(t, app.Exec, 4)
	require.Equal(t, "watch", app.Exec[1])
	require.Equal(t, "--config", app.Exec[2])
	require.True(t, filepath.IsAbs(app.Exec[3]))

	app, err = autostartApp("")
	require.NoError(t, err)
	require.Len(t, app.Exec, 2)
}

// stripANSI drops color escape sequences.
func stripANSI(s string) string {
	var b strings.Builder

	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}

			continue
		}

		b.WriteByte(s[i])
	}

	return b.String()
}
