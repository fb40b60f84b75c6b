package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/service/client"
	"github.com/oshokin/alarm-clock/internal/version"
)

// clientOptions is filled from the persistent flags.
var clientOptions client.Options

// rootCmd represents the base command of the alarm client.
var rootCmd = &cobra.Command{
	Use:   "alarm-client",
	Short: "Manage alarms on the alarm server and ring alongside it.",
	Long: `Client of the alarm server.

Run "alarm-client watch" to keep a live alarm list and ring on this machine,
or use the one-shot commands to list, create, toggle and delete alarms, stop
a ringing alarm and export the alarms as an iCalendar file.

The server address and transport are read from the configuration file and
can be overridden with --server and --transport.`,
	SilenceUsage: true,
}

// Execute runs the alarm-client CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// signalContext is canceled on SIGINT and SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&clientOptions.ConfigPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.StringVarP(&clientOptions.ServerAddress, "server", "s", "", "server address of the selected transport")
	flags.StringVarP(&clientOptions.Transport, "transport", "t", "", "transport: rest or grpc")
	flags.StringVarP(&clientOptions.LogLevel, "log-level", "l", "", "log level: debug, info, warn or error")
}
