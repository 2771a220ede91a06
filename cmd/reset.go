package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all progress of a learner",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, env *env, args []string) error {
			if !force {
				fmt.Fprintf(env.out, "Delete all progress, XP and badges of %q? [y/N] ", env.user)
				in := bufio.NewScanner(cmd.InOrStdin())
				in.Scan()
				if ans := strings.ToLower(strings.TrimSpace(in.Text())); ans != "y" && ans != "yes" {
					fmt.Fprintln(env.out, "Aborted.")
					return nil
				}
			}
			if err := env.manager.Reset(cmd.Context(), env.user); err != nil {
				return err
			}
			env.log.Info("learner reset")
			fmt.Fprintf(env.out, "Reset %s.\n", env.user)
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "do not ask for confirmation")
	return cmd
}
