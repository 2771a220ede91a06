package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/spinlab/internal/achievements"
	"github.com/abhisek/spinlab/internal/engine"
)

func newBadgesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "badges",
		Short: "Earned badges, progress toward the next ones and notifications",
	}
	cmd.AddCommand(newBadgesListCmd())
	cmd.AddCommand(newBadgesNextCmd())
	cmd.AddCommand(newBadgesAckCmd())
	return cmd
}

func newBadgesListCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List earned badges",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, env *env, args []string) error {
			var (
				earned  []achievements.Badge
				defs    []achievements.Definition
				pending = map[string]bool{}
			)
			if err := env.view(cmd, func(e *engine.Engine) error {
				earned = e.Badges()
				defs = e.BadgeDefinitions()
				for _, b := range e.PendingBadges() {
					pending[b.ID] = true
				}
				return nil
			}); err != nil {
				return err
			}

			if all {
				if ok, err := env.emit(defs); ok {
					return err
				}
				have := map[string]bool{}
				for _, b := range earned {
					have[b.ID] = true
				}
				w := tabwriter.NewWriter(env.out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tRARITY\tXP\tEARNED")
				for _, d := range defs {
					mark := "-"
					if have[d.ID] {
						mark = "yes"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", d.ID, d.Name, d.Rarity.DisplayName(), d.XPReward, mark)
				}
				return w.Flush()
			}

			if ok, err := env.emit(earned); ok {
				return err
			}
			if len(earned) == 0 {
				fmt.Fprintln(env.out, "No badges yet. Master your first trick to earn one!")
				return nil
			}
			w := tabwriter.NewWriter(env.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tRARITY\tEARNED\t")
			for _, b := range earned {
				tag := ""
				if pending[b.ID] {
					tag = "NEW"
				}
				fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\t%s\n",
					b.ID, b.Rarity.Icon(), b.Name, b.Rarity.DisplayName(), b.EarnedAt.Local().Format("2006-01-02"), tag)
			}
			return w.Flush()
		}),
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "list every badge definition, earned or not")
	return cmd
}

func newBadgesNextCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the badges closest to being earned",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, env *env, args []string) error {
			var next []achievements.Candidate
			if err := env.view(cmd, func(e *engine.Engine) error {
				next = e.NextBadges(limit)
				return nil
			}); err != nil {
				return err
			}
			if ok, err := env.emit(next); ok {
				return err
			}
			if len(next) == 0 {
				fmt.Fprintln(env.out, "Every badge is earned.")
				return nil
			}
			w := tabwriter.NewWriter(env.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tRARITY\tPROGRESS")
			for _, c := range next {
				d := c.Definition
				fmt.Fprintf(w, "%s\t%s\t%s\t%s %d%%\n", d.ID, d.Name, d.Rarity.DisplayName(), bar(c.Percent(), 20), c.Percent())
			}
			return w.Flush()
		}),
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 3, "maximum number of badges (0 for all)")
	return cmd
}

func newBadgesAckCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "ack [badge]",
		Short: "Acknowledge new badge notifications",
		Args:  cobra.MaximumNArgs(1),
		RunE: withEnv(func(cmd *cobra.Command, env *env, args []string) error {
			if all == (len(args) == 1) {
				return errors.New("pass exactly one of a badge ID or --all")
			}
			var acked []achievements.Badge
			err := env.do(cmd, func(e *engine.Engine) error {
				if !all {
					if err := e.AcknowledgeBadge(args[0]); err != nil {
						return err
					}
					acked = append(acked, achievements.Badge{ID: args[0]})
					return nil
				}
				for _, b := range e.PendingBadges() {
					if err := e.AcknowledgeBadge(b.ID); err != nil {
						return err
					}
					acked = append(acked, b)
				}
				return nil
			})
			if err != nil {
				return err
			}
			if ok, err := env.emit(acked); ok {
				return err
			}
			fmt.Fprintf(env.out, "Acknowledged %d badge(s).\n", len(acked))
			return nil
		}),
	}
	cmd.Flags().BoolVar(&all, "all", false, "acknowledge every pending badge")
	return cmd
}
