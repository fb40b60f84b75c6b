package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/service/server"
	"github.com/oshokin/alarm-clock/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// alarmsFile path where the alarm catalog is persisted.
	alarmsFile string
	// httpListenAddress overrides the REST listen address.
	httpListenAddress string
	// logLevel overrides the configured log level.
	logLevel string
	// noWakeLock skips the termux wake lock.
	noWakeLock bool

	// rootCmd represents the base command for running the alarm server.
	rootCmd = &cobra.Command{
		Use:   "alarm-server [grpc-listen-address]",
		Short: "Run the alarm server that owns the alarm catalog and rings on schedule.",
		Long: `Starts the alarm server that stores alarms and rings them at their time of day.

The catalog is served over REST (http_addr) and gRPC (server_addr). Only the port
of each configured address is used for listening (e.g., :8080). The gRPC listen
address can be provided as argument, the REST one with --http.

Every enabled alarm rings once per matching minute until a client stops it or
the ring timeout elapses. The catalog is persisted to a JSON file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			options := &server.Options{
				ConfigPath:        configPath,
				ListenAddress:     listenAddress,
				HTTPListenAddress: httpListenAddress,
				AlarmsFile:        alarmsFile,
				LogLevel:          logLevel,
				NoWakeLock:        noWakeLock,
			}

			return server.Run(ctx, options)
		},
	}
)

// Execute runs the alarm-server CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.StringVarP(&alarmsFile, "alarms-file", "a", "", "path to the alarm catalog, overrides alarms_file")
	flags.StringVar(&httpListenAddress, "http", "", "REST listen address, overrides the port of http_addr")
	flags.StringVarP(&logLevel, "log-level", "l", "", "log level: debug, info, warn or error")
	flags.BoolVar(&noWakeLock, "no-wake-lock", false, "do not hold the termux wake lock")
}
