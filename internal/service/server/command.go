package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"google.golang.org/grpc"

	api "github.com/oshokin/alarm-clock/internal/api/grpc/alarm"
	rest "github.com/oshokin/alarm-clock/internal/api/rest/alarm"
	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/engine"
	"github.com/oshokin/alarm-clock/internal/logger"
	pb "github.com/oshokin/alarm-clock/internal/pb/v1"
	repository "github.com/oshokin/alarm-clock/internal/repository/alarms"
	"github.com/oshokin/alarm-clock/internal/service/common"
	"github.com/oshokin/alarm-clock/internal/service/device"
	"github.com/oshokin/alarm-clock/internal/version"
)

// Options controls the alarm-server process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the gRPC server.
	ListenAddress string
	// HTTPListenAddress provides an optional listen address override for the REST server.
	HTTPListenAddress string
	// AlarmsFile specifies the path to the alarm catalog JSON.
	AlarmsFile string
	// LogLevel overrides the configured log level.
	LogLevel string
	// NoWakeLock skips the termux wake lock.
	NoWakeLock bool
}

const (
	// shutdownTimeout bounds the graceful stop of the listeners.
	shutdownTimeout = 5 * time.Second
	// readHeaderTimeout bounds slow REST clients.
	readHeaderTimeout = 5 * time.Second
)

// ErrNoServerAddress indicates missing server configuration.
var ErrNoServerAddress = errors.New("no server address configured")

// Run starts the alarm engine with the REST and gRPC servers and blocks until
// ctx is canceled or a server fails.
func Run(ctx context.Context, opts *Options) error {
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	ctx = configureLogging(ctx, settings, opts.LogLevel)

	alarmsFile := settings.AlarmsFile
	if opts.AlarmsFile != "" {
		alarmsFile = opts.AlarmsFile
	}

	grpcAddress, err := resolveOptionalAddress(settings.ServerAddress, opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("resolve gRPC listen address: %w", err)
	}

	httpAddress, err := resolveOptionalAddress(settings.HTTPAddress, opts.HTTPListenAddress)
	if err != nil {
		return fmt.Errorf("resolve REST listen address: %w", err)
	}

	if grpcAddress == "" && httpAddress == "" {
		return ErrNoServerAddress
	}

	if !opts.NoWakeLock && device.Available() {
		lock := device.NewWakeLock()
		if err = lock.Acquire(ctx); err != nil {
			logger.WarnKV(ctx, "Could not acquire wake lock", "error", err)
		}

		defer func() {
			if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
				logger.WarnKV(ctx, "Could not release wake lock", "error", err)
			}
		}()
	}

	repo := repository.NewFileRepository(alarmsFile)

	actuator, err := common.NewAlertActuator(ctx, settings, os.Stdout)
	if err != nil {
		return fmt.Errorf("initialise alert: %w", err)
	}

	ringTimeout := settings.RingTimeout
	if ringTimeout <= 0 {
		ringTimeout = config.DefaultServerRingTimeout
	}

	alarmEngine, err := engine.New(engine.Options{
		Mode:         engine.ModeLocal,
		PollInterval: settings.ServerEvalInterval,
		RingTimeout:  ringTimeout,
		CallTimeout:  settings.Timeout,
	}, engine.Dependencies{
		Catalog:   repo,
		Actuator:  actuator,
		Presenter: engine.NewLogPresenter(ctx),
	})
	if err != nil {
		return fmt.Errorf("initialise engine: %w", err)
	}

	svc := newService(repo, alarmEngine)

	alarmEngine.Start(ctx)
	defer alarmEngine.Close()

	logger.InfoKV(ctx, "Alarm server starting", append(version.Fields(),
		"grpc_address", grpcAddress,
		"http_address", httpAddress,
		"alarms_file", alarmsFile,
		"ring_timeout", ringTimeout.String())...)

	return serve(ctx, svc, grpcAddress, httpAddress)
}

// configureLogging installs the configured level and log file, then names the
// process logger on top of the new global logger.
func configureLogging(ctx context.Context, settings *config.Config, levelOverride string) context.Context {
	levelName := settings.LogLevel
	if levelOverride != "" {
		levelName = levelOverride
	}

	known := true
	if levelName != "" || settings.LogFile != "" {
		known = logger.Configure(levelName, settings.LogFile)
	}

	ctx = logger.WithName(ctx, "alarm-server")

	if levelName != "" && !known {
		logger.Warnf(ctx, "Unknown log level %q, keeping the default", levelName)
	}

	return ctx
}

// serve runs the configured listeners until ctx is canceled or one of them fails.
func serve(ctx context.Context, svc *service, grpcAddress, httpAddress string) error {
	var (
		lc        net.ListenConfig
		errCh     = make(chan error, 2)
		shutdowns []func(ctx context.Context)
	)

	if grpcAddress != "" {
		lis, err := lc.Listen(ctx, "tcp", grpcAddress)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", grpcAddress, err)
		}

		grpcServer := grpc.NewServer()
		pb.RegisterAlarmServiceServer(grpcServer, api.NewServer(svc))

		go func() {
			if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				errCh <- fmt.Errorf("serve gRPC: %w", err)
			}
		}()

		shutdowns = append(shutdowns, func(context.Context) {
			grpcServer.GracefulStop()
			logger.Info(ctx, "GRPC server stopped")
		})

		logger.InfoKV(ctx, "GRPC server listening", "listen_address", lis.Addr().String())
	}

	if httpAddress != "" {
		lis, err := lc.Listen(ctx, "tcp", httpAddress)
		if err != nil {
			stopServers(ctx, shutdowns)
			return fmt.Errorf("listen on %s: %w", httpAddress, err)
		}

		httpServer := &http.Server{
			Handler:           rest.NewHandler(svc).Routes(),
			ReadHeaderTimeout: readHeaderTimeout,
		}

		go func() {
			if err := httpServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("serve REST: %w", err)
			}
		}()

		shutdowns = append(shutdowns, func(shutdownCtx context.Context) {
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.WarnKV(ctx, "REST server shutdown failed", "error", err)
			}

			logger.Info(ctx, "REST server stopped")
		})

		logger.InfoKV(ctx, "REST server listening", "listen_address", lis.Addr().String())
	}

	var serveErr error

	select {
	case <-ctx.Done():
		logger.Info(ctx, "Shutting down alarm server")
	case serveErr = <-errCh:
		logger.ErrorKV(ctx, "Alarm server failed", "error", serveErr)
	}

	stopServers(ctx, shutdowns)

	return serveErr
}

// stopServers runs the shutdowns within shutdownTimeout.
func stopServers(ctx context.Context, shutdowns []func(ctx context.Context)) {
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	for _, shutdown := range shutdowns {
		shutdown(shutdownCtx)
	}
}

// resolveOptionalAddress is resolveListenAddress for a listener that may be disabled.
func resolveOptionalAddress(configAddr, override string) (string, error) {
	address, err := resolveListenAddress(configAddr, override)
	if errors.Is(err, ErrNoServerAddress) {
		return "", nil
	}

	return address, err
}

// resolveListenAddress determines the listen address for a server.
// If override is provided, uses it directly. Otherwise extracts port from configAddr.
// Returns appropriate listen address (e.g., ":8080" for port-only binding).
func resolveListenAddress(configAddr, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if configAddr == "" {
		return "", ErrNoServerAddress
	}

	_, port, err := net.SplitHostPort(configAddr)
	if err != nil {
		return "", fmt.Errorf("invalid server address format %q: %w", configAddr, err)
	}

	// Bind on all interfaces.
	return ":" + port, nil
}
