package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/service/client"
)

var autostartCmd = &cobra.Command{
	Use:       "autostart on|off",
	Short:     "Start the watcher when the user logs in.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(_ *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		return client.SetAutostart(ctx, clientOptions.ConfigPath, args[0] == "on")
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	autostartCmd.Args = cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs)

	rootCmd.AddCommand(autostartCmd)
}
