package client

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/emersion/go-autostart"

	"github.com/oshokin/alarm-clock/internal/logger"
)

// autostartName identifies the login entry.
const autostartName = "alarm-clock"

// autostartApp builds the login entry that starts the watcher with the given config.
func autostartApp(configPath string) (*autostart.App, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}

	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, fmt.Errorf("resolve executable: %w", err)
	}

	command := []string{execPath, "watch"}

	if configPath != "" {
		configPath, err = filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("resolve config path: %w", err)
		}

		command = append(command, "--config", configPath)
	}

	return &autostart.App{
		Name:        autostartName,
		DisplayName: "Alarm clock",
		Exec:        command,
	}, nil
}

// SetAutostart registers or removes the watcher from the login session.
func SetAutostart(ctx context.Context, configPath string, enable bool) error {
	ctx = logger.WithName(ctx, "alarm-client")

	app, err := autostartApp(configPath)
	if err != nil {
		return err
	}

	switch {
	case enable && !app.IsEnabled():
		if err = app.Enable(); err != nil {
			return fmt.Errorf("enable autostart: %w", err)
		}

		logger.Info(ctx, "Autostart enabled")
	case !enable && app.IsEnabled():
		if err = app.Disable(); err != nil {
			return fmt.Errorf("disable autostart: %w", err)
		}

		logger.Info(ctx, "Autostart disabled")
	default:
		logger.InfoKV(ctx, "Autostart unchanged", "enabled", enable)
	}

	return nil
}
