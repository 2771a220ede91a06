package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/spinlab/internal/catalog"
	"github.com/abhisek/spinlab/internal/engine"
)

func newTricksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tricks",
		Short: "Browse tricks and their state",
	}
	cmd.AddCommand(newTricksListCmd())
	cmd.AddCommand(newTricksShowCmd())
	cmd.AddCommand(newTricksNextCmd())
	return cmd
}

func newTricksListCmd() *cobra.Command {
	var pathID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tricks with their current state",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, env *env, args []string) error {
			var views []engine.ItemView
			if err := env.view(cmd, func(e *engine.Engine) error {
				var err error
				views, err = e.ItemStates(pathID)
				return err
			}); err != nil {
				return err
			}
			if ok, err := env.emit(views); ok {
				return err
			}

			w := tabwriter.NewWriter(env.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTIER\tSTATE\tXP")
			for _, v := range views {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s %s\t%d\n",
					v.Item.ID, v.Item.Name, v.Item.Tier.Label(), v.State.Icon(), v.State.Label(), v.Item.XPReward)
			}
			return w.Flush()
		}),
	}
	cmd.Flags().StringVarP(&pathID, "path", "p", "", "only list tricks of this learning path")
	return cmd
}

func newTricksShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <item>",
		Short: "Show one trick in detail",
		Args:  cobra.ExactArgs(1),
		RunE: withEnv(func(cmd *cobra.Command, env *env, args []string) error {
			var v engine.ItemView
			if err := env.view(cmd, func(e *engine.Engine) error {
				var err error
				v, err = e.ItemState(args[0])
				return err
			}); err != nil {
				return err
			}
			if ok, err := env.emit(v); ok {
				return err
			}

			it := v.Item
			out := env.out
			fmt.Fprintf(out, "%s (%s)\n", it.Name, it.ID)
			if it.Description != "" {
				fmt.Fprintf(out, "  %s\n", it.Description)
			}
			fmt.Fprintf(out, "  Style:    %s\n", it.Genre.DisplayName())
			fmt.Fprintf(out, "  Tier:     %s\n", it.Tier.Label())
			fmt.Fprintf(out, "  XP:       %d\n", it.XPReward)
			fmt.Fprintf(out, "  State:    %s %s\n", v.State.Icon(), v.State.Label())
			fmt.Fprintf(out, "  Watched:  %ds\n", v.Record.WatchTimeSeconds)
			if len(it.Prerequisites) > 0 {
				fmt.Fprintf(out, "  Requires: %s\n", strings.Join(it.Prerequisites, ", "))
			}
			if len(v.Missing) > 0 {
				fmt.Fprintf(out, "  Missing:  %s\n", strings.Join(v.Missing, ", "))
			}
			return nil
		}),
	}
}

func newTricksNextCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Recommend tricks to learn next",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, env *env, args []string) error {
			var items []catalog.SkillItem
			if err := env.view(cmd, func(e *engine.Engine) error {
				items = e.Recommended(limit)
				return nil
			}); err != nil {
				return err
			}
			if ok, err := env.emit(items); ok {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(env.out, "Nothing left to learn. Every trick is mastered!")
				return nil
			}
			w := tabwriter.NewWriter(env.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTIER\tXP")
			for _, it := range items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", it.ID, it.Name, it.Tier.Label(), it.XPReward)
			}
			return w.Flush()
		}),
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "maximum number of tricks")
	return cmd
}

func newPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "List learning paths with completion",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, env *env, args []string) error {
			var paths []engine.PathSummary
			if err := env.view(cmd, func(e *engine.Engine) error {
				for _, p := range e.Catalog().Paths() {
					comp, err := e.PathCompletion(p.ID)
					if err != nil {
						return err
					}
					paths = append(paths, engine.PathSummary{Path: p, Completion: comp})
				}
				return nil
			}); err != nil {
				return err
			}
			if ok, err := env.emit(paths); ok {
				return err
			}
			w := tabwriter.NewWriter(env.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tLEVEL\tDONE")
			for _, p := range paths {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d (%d%%)\n",
					p.Path.ID, p.Path.Name, p.Path.Level.Label(),
					p.Completion.Completed, p.Completion.Total, p.Completion.Percentage)
			}
			return w.Flush()
		}),
	}
}
