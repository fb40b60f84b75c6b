package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/service/client"
)

var (
	// label of the alarm being created.
	label string
	// noVibrate disables vibration for the alarm being created.
	noVibrate bool
	// includeDisabled exports disabled alarms as cancelled events.
	includeDisabled bool

	listCmd = &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List alarms.",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signalContext()
			defer stop()

			return client.List(ctx, &clientOptions, os.Stdout)
		},
	}

	createCmd = &cobra.Command{
		Use:   "create HOUR MINUTE",
		Short: "Create an enabled alarm at HOUR:MINUTE.",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			return client.Create(ctx, &clientOptions, os.Stdout, args[0], args[1], label, !noVibrate)
		},
	}

	toggleCmd = &cobra.Command{
		Use:   "toggle ID",
		Short: "Enable or disable an alarm.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			return client.Toggle(ctx, &clientOptions, os.Stdout, args[0])
		},
	}

	deleteCmd = &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete an alarm.",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			return client.Delete(ctx, &clientOptions, os.Stdout, args[0])
		},
	}

	stopCmd = &cobra.Command{
		Use:   "stop",
		Short: "Stop the ringing alarm on the server.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signalContext()
			defer stop()

			return client.Stop(ctx, &clientOptions, os.Stdout)
		},
	}

	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show whether the server is ringing.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signalContext()
			defer stop()

			return client.Status(ctx, &clientOptions, os.Stdout)
		},
	}

	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Write the alarms as an iCalendar document to stdout.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signalContext()
			defer stop()

			return client.Export(ctx, &clientOptions, os.Stdout, includeDisabled)
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	createCmd.Flags().StringVar(&label, "label", "", "text shown while the alarm rings")
	createCmd.Flags().BoolVar(&noVibrate, "no-vibrate", false, "do not vibrate when the alarm rings")
	exportCmd.Flags().BoolVar(&includeDisabled, "include-disabled", false, "export disabled alarms as cancelled events")

	rootCmd.AddCommand(listCmd, createCmd, toggleCmd, deleteCmd, stopCmd, statusCmd, exportCmd)
}
