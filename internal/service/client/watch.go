package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oshokin/alarm-clock/internal/engine"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/common"
)

// WatchOptions configures the long-running watcher.
type WatchOptions struct {
	Options
	// PIDFile overrides the single instance marker path.
	PIDFile string
	// Input receives interactive commands. Nil disables them.
	Input io.Reader
	// Output receives the rendered alarm list and alerts.
	Output io.Writer
}

// controller is the part of the engine driven by interactive commands.
type controller interface {
	Stop(ctx context.Context) error
	Refresh(ctx context.Context) error
}

// Watch connects to the server and runs the alarm engine until ctx is canceled.
// In local mode alarms ring against this machine's clock, in remote mode the
// server ringing status is mirrored.
func Watch(ctx context.Context, opts *WatchOptions) error {
	ctx, cfg, err := loadSettings(ctx, &opts.Options, false)
	if err != nil {
		return err
	}

	lock := newInstanceLock(opts.PIDFile)
	if err = lock.Acquire(); err != nil {
		return err
	}

	defer func() {
		if err := lock.Release(); err != nil {
			logger.WarnKV(ctx, "Could not remove pid marker", "error", err)
		}
	}()

	actor, err := common.DetectActor()
	if err != nil {
		return fmt.Errorf("detect actor: %w", err)
	}

	client, err := common.Connect(ctx, cfg, common.WithActor(actor))
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	defer func() {
		_ = client.Close()
	}()

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	actuator, err := common.NewAlertActuator(ctx, cfg, output)
	if err != nil {
		return err
	}

	alarmEngine, err := engine.New(engine.Options{
		Mode:            engine.Mode(cfg.Mode),
		PollInterval:    cfg.PollInterval(),
		RefreshInterval: cfg.RefreshInterval,
		RingTimeout:     cfg.RingTimeout,
		CallTimeout:     cfg.Timeout,
	}, engine.Dependencies{
		Catalog:   client,
		Authority: client,
		Actuator:  actuator,
		Presenter: NewTerminalPresenter(output),
	})
	if err != nil {
		return fmt.Errorf("initialise engine: %w", err)
	}

	logger.InfoKV(ctx, "Watching alarms",
		"server_address", common.Address(cfg),
		"transport", cfg.Transport,
		"mode", cfg.Mode,
		"actor", actor.String())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if opts.Input != nil {
		go readCommands(ctx, opts.Input, alarmEngine, cancel)
	}

	return alarmEngine.Run(ctx)
}

// readCommands handles the interactive commands typed while watching:
// "s" stops the alert, "l" reloads the list and "q" quits.
func readCommands(ctx context.Context, input io.Reader, ctrl controller, quit context.CancelFunc) {
	scanner := bufio.NewScanner(input)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "":
		case "s", "stop":
			if err := ctrl.Stop(ctx); err != nil {
				logger.WarnKV(ctx, "Stop failed", "error", err)
			}
		case "l", "list":
			if err := ctrl.Refresh(ctx); err != nil && !errors.Is(err, engine.ErrClosed) {
				logger.WarnKV(ctx, "Alarm list refresh failed", "error", err)
			}
		case "q", "quit":
			quit()
			return
		default:
			logger.Warnf(ctx, "Unknown command %q, use s, l or q", scanner.Text())
		}
	}
}
