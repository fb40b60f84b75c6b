package client

import (
	"context"
	"fmt"
	"io"
	"time"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/engine"
	"github.com/oshokin/alarm-clock/internal/service/common"
	"github.com/oshokin/alarm-clock/internal/service/export"
)

// session is a short-lived connection used by the one-shot commands.
type session struct {
	client common.AlarmClient
	engine *engine.Engine
	out    io.Writer
}

// openSession connects and wires an engine that is never started: catalog
// changes go through it so the refreshed list is printed after each change.
func openSession(ctx context.Context, opts *Options, out io.Writer) (context.Context, *session, error) {
	ctx, cfg, err := loadSettings(ctx, opts, true)
	if err != nil {
		return ctx, nil, err
	}

	actor, err := common.DetectActor()
	if err != nil {
		return ctx, nil, fmt.Errorf("detect actor: %w", err)
	}

	client, err := common.Connect(ctx, cfg, common.WithActor(actor))
	if err != nil {
		return ctx, nil, fmt.Errorf("connect: %w", err)
	}

	s, err := newSession(client, cfg.Timeout, out)

	return ctx, s, err
}

func newSession(client common.AlarmClient, timeout time.Duration, out io.Writer) (*session, error) {
	alarmEngine, err := engine.New(engine.Options{
		Mode:        engine.ModeRemote,
		CallTimeout: timeout,
	}, engine.Dependencies{
		Catalog:   client,
		Authority: client,
		Actuator:  engine.NewActuator(nil, nil),
		Presenter: NewTerminalPresenter(out),
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("initialise engine: %w", err)
	}

	return &session{
		client: client,
		engine: alarmEngine,
		out:    out,
	}, nil
}

// Close releases the connection.
func (s *session) Close() {
	s.engine.Close()
	_ = s.client.Close()
}

// withSession runs fn against a fresh session with the session logger in ctx.
func withSession(ctx context.Context, opts *Options, out io.Writer, fn func(ctx context.Context, s *session) error) error {
	ctx, s, err := openSession(ctx, opts, out)
	if err != nil {
		return err
	}

	defer s.Close()

	return fn(ctx, s)
}

// List prints every alarm.
func List(ctx context.Context, opts *Options, out io.Writer) error {
	return withSession(ctx, opts, out, func(ctx context.Context, s *session) error {
		return s.engine.Refresh(ctx)
	})
}

// Create adds an alarm from textual hour and minute values.
func Create(ctx context.Context, opts *Options, out io.Writer, hour, minute, label string, vibrate bool) error {
	draft, err := domain.ParseDraft(hour, minute, label, vibrate)
	if err != nil {
		return err
	}

	return withSession(ctx, opts, out, func(ctx context.Context, s *session) error {
		_, err := s.engine.CreateAlarm(ctx, draft)
		return err
	})
}

// Toggle enables or disables an alarm.
func Toggle(ctx context.Context, opts *Options, out io.Writer, id string) error {
	return withSession(ctx, opts, out, func(ctx context.Context, s *session) error {
		return s.engine.ToggleAlarm(ctx, id)
	})
}

// Delete removes an alarm.
func Delete(ctx context.Context, opts *Options, out io.Writer, id string) error {
	return withSession(ctx, opts, out, func(ctx context.Context, s *session) error {
		return s.engine.DeleteAlarm(ctx, id)
	})
}

// Stop dismisses the server alert.
func Stop(ctx context.Context, opts *Options, out io.Writer) error {
	return withSession(ctx, opts, out, func(ctx context.Context, s *session) error {
		return s.engine.Stop(ctx)
	})
}

// Status prints the authoritative ringing status.
func Status(ctx context.Context, opts *Options, out io.Writer) error {
	return withSession(ctx, opts, out, func(ctx context.Context, s *session) error {
		return s.status(ctx)
	})
}

// Export writes the alarms as an iCalendar document.
func Export(ctx context.Context, opts *Options, out io.Writer, includeDisabled bool) error {
	return withSession(ctx, opts, out, func(ctx context.Context, s *session) error {
		return s.export(ctx, time.Now(), includeDisabled)
	})
}

func (s *session) status(ctx context.Context) error {
	status, err := s.client.RingingStatus(ctx)
	if err != nil {
		return fmt.Errorf("ringing status: %w", err)
	}

	_, err = fmt.Fprintln(s.out, FormatStatus(status))

	return err
}

func (s *session) export(ctx context.Context, now time.Time, includeDisabled bool) error {
	alarms, err := s.client.ListAlarms(ctx)
	if err != nil {
		return fmt.Errorf("list alarms: %w", err)
	}

	return export.Write(s.out, alarms, now, export.Options{IncludeDisabled: includeDisabled})
}
