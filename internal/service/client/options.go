package client

import (
	"context"
	"fmt"

	"go.uber.org/zap/zapcore"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/logger"
)

// Options configures the connection shared by every client command.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string
	// ServerAddress overrides the address of the selected transport.
	ServerAddress string
	// Transport overrides the configured transport.
	Transport string
	// Mode overrides the configured evaluation mode.
	Mode string
	// LogLevel overrides the configured log level.
	LogLevel string
}

// loadSettings reads the configuration, applies the command line overrides and
// installs the logger. The returned context carries the client logger. When
// quiet is set and no log level is configured, it only logs warnings and errors.
func loadSettings(ctx context.Context, opts *Options, quiet bool) (context.Context, *config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return ctx, nil, fmt.Errorf("load settings: %w", err)
	}

	if opts.Transport != "" {
		cfg.Transport = opts.Transport
	}

	if opts.Mode != "" {
		cfg.Mode = opts.Mode
	}

	if opts.ServerAddress != "" {
		if cfg.Transport == config.TransportGRPC {
			cfg.ServerAddress = opts.ServerAddress
		} else {
			cfg.HTTPAddress = opts.ServerAddress
		}
	}

	if err = config.Validate(cfg); err != nil {
		return ctx, nil, err
	}

	levelName := cfg.LogLevel
	if opts.LogLevel != "" {
		levelName = opts.LogLevel
	}

	known := true
	if levelName != "" || cfg.LogFile != "" {
		known = logger.Configure(levelName, cfg.LogFile)
	}

	// Derived after Configure so the named logger writes to the new sink.
	ctx = logger.WithName(ctx, "alarm-client")

	if levelName == "" && quiet {
		ctx = logger.WithMinLevel(ctx, zapcore.WarnLevel)
	}

	if levelName != "" && !known {
		logger.Warnf(ctx, "Unknown log level %q, keeping the default", levelName)
	}

	return ctx, cfg, nil
}
