package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/spinlab/internal/app"
)

func newDashboardCmd() *cobra.Command {
	var noSplash bool
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive terminal dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, !noSplash)
		},
	}
	cmd.Flags().BoolVar(&noSplash, "no-splash", false, "skip the intro animation")
	return cmd
}

// runDashboard builds dependencies and launches the TUI.
func runDashboard(cmd *cobra.Command, splash bool) error {
	env, err := setup(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	env.log.Info("starting dashboard")
	return app.Run(cmd.Context(), app.Options{
		Manager: env.manager,
		UserID:  env.user,
		Splash:  splash,
	})
}
