package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/service/client"
)

var (
	// pidFile overrides the single instance marker.
	pidFile string
	// interactive reads commands from stdin.
	interactive bool

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Show the alarm list and ring when an alarm fires.",
		Long: `Connects to the server and keeps running until interrupted.

In local mode this machine's clock is compared with the alarm list, in remote
mode the ringing status of the server is mirrored. While running, type "s" and
Enter to stop a ringing alarm, "l" to reload the list or "q" to quit.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signalContext()
			defer stop()

			opts := &client.WatchOptions{
				Options: clientOptions,
				PIDFile: pidFile,
				Output:  os.Stdout,
			}

			if interactive {
				opts.Input = os.Stdin
			}

			return client.Watch(ctx, opts)
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := watchCmd.Flags()
	flags.StringVarP(&clientOptions.Mode, "mode", "m", "", "evaluation mode: local or remote")
	flags.StringVar(&pidFile, "pid-file", "", "single instance marker path")
	flags.BoolVarP(&interactive, "interactive", "i", true, "read s, l and q commands from stdin")

	rootCmd.AddCommand(watchCmd)
}
