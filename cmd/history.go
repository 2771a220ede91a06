package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/spinlab/internal/profiles"
	"github.com/abhisek/spinlab/internal/screens/history"
)

func newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent progress, XP and badge events",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, env *env, args []string) error {
			acts, err := env.manager.History(cmd.Context(), env.user, limit)
			if err != nil {
				return err
			}
			if ok, err := env.emit(acts); ok {
				return err
			}
			if len(acts) == 0 {
				fmt.Fprintln(env.out, "No activity yet.")
				return nil
			}
			w := tabwriter.NewWriter(env.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SEQ\tWHEN\tKIND\tWHAT")
			for _, a := range acts {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
					a.Sequence, a.Timestamp.Local().Format("2006-01-02 15:04"), a.Kind, history.Summary(a))
			}
			return w.Flush()
		}),
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", profiles.DefaultHistoryLimit, "maximum number of events")
	return cmd
}
