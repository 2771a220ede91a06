package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List or create learners",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, env *env, args []string) error {
			users, err := env.manager.Users(cmd.Context())
			if err != nil {
				return err
			}
			if ok, err := env.emit(users); ok {
				return err
			}
			if len(users) == 0 {
				fmt.Fprintln(env.out, "No learners yet.")
			}
			for _, u := range users {
				marker := " "
				if u == env.user {
					marker = "*"
				}
				fmt.Fprintf(env.out, "%s %s\n", marker, u)
			}
			return nil
		}),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Create a learner with a fresh ID",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, env *env, args []string) error {
			id, err := env.manager.Create(cmd.Context())
			if err != nil {
				return err
			}
			if ok, err := env.emit(map[string]string{"id": id}); ok {
				return err
			}
			fmt.Fprintln(env.out, id)
			return nil
		}),
	})
	return cmd
}
