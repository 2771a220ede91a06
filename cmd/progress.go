package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/spinlab/internal/engine"
	"github.com/abhisek/spinlab/internal/errs"
)

func newProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Record progress on a trick",
		Long:  "Record watching, practicing and mastering tricks. Mastery requires every prerequisite to be mastered first.",
	}

	cmd.AddCommand(outcomeCmd("watch <item>", "Start watching a trick tutorial",
		func(e *engine.Engine, args []string) (engine.Outcome, error) {
			return e.StartWatching(args[0])
		}))
	cmd.AddCommand(outcomeCmd("practice <item>", "Start practicing a trick",
		func(e *engine.Engine, args []string) (engine.Outcome, error) {
			return e.StartPracticing(args[0])
		}))
	cmd.AddCommand(outcomeCmd("master <item>", "Mark a trick as mastered",
		func(e *engine.Engine, args []string) (engine.Outcome, error) {
			return e.MarkMastered(args[0])
		}))
	cmd.AddCommand(outcomeCmd("activity <item> <start_watching|start_practicing>", "Record a learning activity by kind",
		func(e *engine.Engine, args []string) (engine.Outcome, error) {
			return e.RecordActivity(args[0], args[1])
		}))

	watchTime := outcomeCmd("watch-time <item> <seconds>", "Add tutorial watch time to a trick",
		func(e *engine.Engine, args []string) (engine.Outcome, error) {
			secs, err := strconv.Atoi(args[1])
			if err != nil {
				return engine.Outcome{}, errs.Invalid("seconds", "must be an integer, got %q", args[1])
			}
			return e.AddWatchTime(args[0], secs)
		})
	cmd.AddCommand(watchTime)

	return cmd
}

// outcomeCmd builds a leaf command that runs fn as a persisted command and
// prints its outcome. The number of positional args is taken from use.
func outcomeCmd(use, short string, fn func(*engine.Engine, []string) (engine.Outcome, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(countArgs(use)),
		RunE: withEnv(func(cmd *cobra.Command, env *env, args []string) error {
			var out engine.Outcome
			err := env.do(cmd, func(e *engine.Engine) error {
				var err error
				out, err = fn(e, args)
				return err
			})
			if err != nil {
				return explain(err)
			}
			env.log.Info("command applied", "command", cmd.Name(), "args", args, "xp", out.XPAwarded)
			if ok, err := env.emit(out); ok {
				return err
			}
			printOutcome(env.out, out)
			return nil
		}),
	}
}

func countArgs(use string) int {
	n := 0
	for _, r := range use {
		if r == '<' {
			n++
		}
	}
	return n
}

// explain rewrites errors the user can act on.
func explain(err error) error {
	var pre *errs.PrerequisiteNotMetError
	if errors.As(err, &pre) && len(pre.Missing) > 0 {
		return fmt.Errorf("locked: master %s first", strings.Join(pre.Missing, ", "))
	}
	return err
}

func printOutcome(w io.Writer, out engine.Outcome) {
	changed := false
	if t := out.Transition; t != nil {
		fmt.Fprintf(w, "%s: %s → %s\n", t.ItemName, t.From, t.To)
		changed = true
	}
	if out.XPAwarded > 0 {
		fmt.Fprintf(w, "+%d XP\n", out.XPAwarded)
		changed = true
	}
	for _, b := range out.NewBadges {
		fmt.Fprintf(w, "%s Badge earned: %s (%s, +%d XP)\n", b.Rarity.Icon(), b.Name, b.Rarity.DisplayName(), b.XPAwarded)
		changed = true
	}
	if lu := out.LevelUp; lu != nil {
		fmt.Fprintf(w, "Level up! %d → %d\n", lu.From, lu.To)
		changed = true
	}
	if !changed {
		fmt.Fprintln(w, "Nothing changed.")
	}
}
