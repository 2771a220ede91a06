package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/spinlab/internal/engine"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show level, streak, completion and what to learn next",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, env *env, args []string) error {
			var d engine.Dashboard
			if err := env.view(cmd, func(e *engine.Engine) error {
				d = e.Dashboard()
				return nil
			}); err != nil {
				return err
			}
			if ok, err := env.emit(d); ok {
				return err
			}
			printDashboard(env, d)
			return nil
		}),
	}
}

func printDashboard(env *env, d engine.Dashboard) {
	out := env.out
	fmt.Fprintf(out, "Learner %s\n\n", env.user)
	printLevel(env, d.Level)

	s := d.Streak
	today := ""
	if s.Current > 0 && !s.ActiveToday {
		today = "  (practice today to keep it)"
	}
	fmt.Fprintf(out, "Streak: %d day(s), longest %d, next milestone %d%s\n", s.Current, s.Longest, s.NextMilestone, today)
	fmt.Fprintf(out, "Mastered: %d/%d tricks (%d%%)\n\n", d.Overall.Completed, d.Overall.Total, d.Overall.Percentage)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tLEVEL\tDONE\tPROGRESS")
	for _, p := range d.Paths {
		fmt.Fprintf(w, "%s\t%s\t%d/%d\t%s %d%%\n",
			p.Path.Name, p.Path.Level.Label(), p.Completion.Completed, p.Completion.Total,
			bar(p.Completion.Percentage, 20), p.Completion.Percentage)
	}
	w.Flush()

	if len(d.Continue) > 0 {
		fmt.Fprintln(out, "\nUp next:")
		for _, it := range d.Continue {
			fmt.Fprintf(out, "  %-20s %s\n", it.ID, it.Name)
		}
	}
	if len(d.Pending) > 0 {
		names := make([]string, len(d.Pending))
		for i, b := range d.Pending {
			names[i] = b.Name
		}
		fmt.Fprintf(out, "\nNew badges: %s (run `spinlab badges ack --all`)\n", strings.Join(names, ", "))
	}
	if !d.Onboarding.Completed {
		fmt.Fprintln(out, "\nOnboarding is not finished. Run `spinlab onboard wizard` to set up your path.")
	}
}

// bar renders an ASCII progress bar of width cells for pct in [0, 100].
func bar(pct, width int) string {
	filled := pct * width / 100
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
