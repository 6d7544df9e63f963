package main

import (
	"fmt"

	"tracker/internal/clock"
	"tracker/internal/filters"
	"tracker/internal/logging"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the tracker command tree
func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "tracker",
		Short: "Render shop order templates with the tracker filters",
		Long: `tracker renders HTML templates against work orders using the same
display filters as the order dashboards and the daily order report.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(logging.VerbosityLevel(verbosity), cmd.ErrOrStderr(), true)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newFiltersCmd())

	return rootCmd
}

func newFiltersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "List the template functions available to templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range filters.New(clock.NewSystem(nil)).Names() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
