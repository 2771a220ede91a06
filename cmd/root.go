package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// Execute builds the command tree and runs it until ctx is cancelled.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "spinlab",
		Short:        "Yo-yo trick progress tracker",
		Long:         "spinlab tracks yo-yo trick progress, XP, day streaks and badges for each learner.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, true)
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides SPINLAB_DB and the config file)")
	pf.String("config", "", "Path to config.yaml (default $XDG_CONFIG_HOME/spinlab/config.yaml)")
	pf.StringP("user", "u", "", "Learner ID (overrides SPINLAB_USER and the config file)")
	pf.Bool("json", false, "Print results as JSON")

	cmd.AddCommand(newProgressCmd())
	cmd.AddCommand(newXPCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newTricksCmd())
	cmd.AddCommand(newPathsCmd())
	cmd.AddCommand(newBadgesCmd())
	cmd.AddCommand(newOnboardCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newDashboardCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newUsersCmd())
	cmd.AddCommand(newResetCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}
