package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/spinlab/internal/engine"
	"github.com/abhisek/spinlab/internal/errs"
)

func newXPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xp",
		Short: "Show or grant XP",
		RunE: withEnv(func(cmd *cobra.Command, env *env, args []string) error {
			var lv engine.LevelView
			if err := env.view(cmd, func(e *engine.Engine) error {
				lv = e.Level()
				return nil
			}); err != nil {
				return err
			}
			if ok, err := env.emit(lv); ok {
				return err
			}
			printLevel(env, lv)
			return nil
		}),
	}

	bonus := outcomeCmd("bonus <amount> [reason...]", "Grant bonus XP",
		func(e *engine.Engine, args []string) (engine.Outcome, error) {
			amount, err := strconv.Atoi(args[0])
			if err != nil {
				return engine.Outcome{}, errs.Invalid("amount", "must be an integer, got %q", args[0])
			}
			return e.AddBonusXP(amount, strings.Join(args[1:], " "))
		})
	bonus.Args = cobra.MinimumNArgs(1)
	cmd.AddCommand(bonus)

	return cmd
}

func printLevel(env *env, lv engine.LevelView) {
	if lv.IsMaxLevel {
		fmt.Fprintf(env.out, "Level %d (max)  ·  %d XP lifetime\n", lv.Level.Level, lv.LifetimeXP)
	} else {
		fmt.Fprintf(env.out, "Level %d  ·  %d/%d XP (%d%%)  ·  %d XP lifetime\n",
			lv.Level.Level, lv.Current, lv.Required, lv.PercentNow, lv.LifetimeXP)
	}
	sources := make([]string, 0, len(lv.BySource))
	for s := range lv.BySource {
		sources = append(sources, s)
	}
	sort.Strings(sources)
	for _, s := range sources {
		fmt.Fprintf(env.out, "  %-10s %d\n", s, lv.BySource[s])
	}
}
