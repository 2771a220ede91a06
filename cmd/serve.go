package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/spinlab/internal/api"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the progress engine over HTTP",
		Long:  "Serve every learner's progress, XP, streak, badge and onboarding operations as a JSON API.",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, env *env, args []string) error {
			if addr == "" {
				addr = env.cfg.HTTP.Addr
			}
			return api.Start(cmd.Context(), api.StartOpts{
				Manager: env.manager,
				Addr:    addr,
				Logger:  env.log,
				Out:     cmd.ErrOrStderr(),
			})
		}),
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")
	return cmd
}
