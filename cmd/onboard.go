package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/spinlab/internal/engine"
	"github.com/abhisek/spinlab/internal/errs"
	"github.com/abhisek/spinlab/internal/onboarding"
)

func newOnboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Step through the onboarding wizard",
		Long: "Step through the onboarding wizard: pick a skill level (or take the quiz), " +
			"goals and preferred styles, then get a recommended learning path.",
		Args: cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, env *env, args []string) error {
			return showOnboarding(cmd, env)
		}),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the wizard state",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, env *env, args []string) error {
			return showOnboarding(cmd, env)
		}),
	})
	cmd.AddCommand(wizardCmd("next", "Advance to the next step", cobra.NoArgs,
		func(e *engine.Engine, args []string) (engine.OnboardingView, error) {
			return e.OnboardingNext()
		}))
	cmd.AddCommand(wizardCmd("back", "Go back one step", cobra.NoArgs,
		func(e *engine.Engine, args []string) (engine.OnboardingView, error) {
			return e.OnboardingBack()
		}))
	cmd.AddCommand(wizardCmd("skip", "Skip onboarding", cobra.NoArgs,
		func(e *engine.Engine, args []string) (engine.OnboardingView, error) {
			return e.SkipOnboarding()
		}))
	cmd.AddCommand(wizardCmd("level <beginner|intermediate|advanced|expert>", "Set the skill level", cobra.ExactArgs(1),
		func(e *engine.Engine, args []string) (engine.OnboardingView, error) {
			return e.SetOnboardingAnswers(engine.AnswerUpdate{SkillLevel: &args[0]})
		}))
	cmd.AddCommand(wizardCmd("goal <goal>...", "Toggle one or more goals", cobra.MinimumNArgs(1),
		func(e *engine.Engine, args []string) (engine.OnboardingView, error) {
			var v engine.OnboardingView
			for _, g := range args {
				var err error
				if v, err = e.ToggleGoal(g); err != nil {
					return v, err
				}
			}
			return v, nil
		}))
	cmd.AddCommand(wizardCmd("style <style>...", "Toggle one or more preferred styles", cobra.MinimumNArgs(1),
		func(e *engine.Engine, args []string) (engine.OnboardingView, error) {
			var v engine.OnboardingView
			for _, s := range args {
				var err error
				if v, err = e.ToggleStyle(s); err != nil {
					return v, err
				}
			}
			return v, nil
		}))
	cmd.AddCommand(newQuizCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "wizard",
		Short: "Run the wizard in the terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, false)
		},
	})
	return cmd
}

func showOnboarding(cmd *cobra.Command, env *env) error {
	var v engine.OnboardingView
	if err := env.view(cmd, func(e *engine.Engine) error {
		v = e.Onboarding()
		return nil
	}); err != nil {
		return err
	}
	if ok, err := env.emit(v); ok {
		return err
	}
	printOnboarding(env, v)
	return nil
}

func wizardCmd(use, short string, args cobra.PositionalArgs, fn func(*engine.Engine, []string) (engine.OnboardingView, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: withEnv(func(cmd *cobra.Command, env *env, args []string) error {
			var v engine.OnboardingView
			if err := env.do(cmd, func(e *engine.Engine) error {
				var err error
				v, err = fn(e, args)
				return err
			}); err != nil {
				return err
			}
			if ok, err := env.emit(v); ok {
				return err
			}
			printOnboarding(env, v)
			return nil
		}),
	}
}

func newQuizCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quiz [yes|no]",
		Short: "Take the skill quiz",
		Long: "Take the skill quiz. Without an argument the questions are asked interactively; " +
			"with yes or no the current question is answered, starting the quiz if needed.",
		Args: cobra.MaximumNArgs(1),
		RunE: withEnv(func(cmd *cobra.Command, env *env, args []string) error {
			if len(args) == 1 {
				yes, err := parseYesNo(args[0])
				if err != nil {
					return err
				}
				var v engine.OnboardingView
				if err := env.do(cmd, func(e *engine.Engine) error {
					if q := e.Onboarding().Quiz; q == nil || q.Done {
						if _, err := e.StartQuiz(); err != nil {
							return err
						}
					}
					v, err = e.AnswerQuiz(yes)
					return err
				}); err != nil {
					return err
				}
				if ok, err := env.emit(v); ok {
					return err
				}
				printQuiz(env, v)
				return nil
			}
			return runQuiz(cmd, env)
		}),
	}
}

// runQuiz asks every question on stdin. Each answer is persisted as it is
// given, so an interrupted quiz resumes where it stopped.
func runQuiz(cmd *cobra.Command, env *env) error {
	var v engine.OnboardingView
	if err := env.do(cmd, func(e *engine.Engine) error {
		v = e.Onboarding()
		if v.Quiz != nil && !v.Quiz.Done {
			return nil
		}
		var err error
		v, err = e.StartQuiz()
		return err
	}); err != nil {
		return err
	}

	in := bufio.NewScanner(cmd.InOrStdin())
	for v.Quiz != nil && !v.Quiz.Done {
		q := v.Quiz
		fmt.Fprintf(env.out, "Question %d of %d: %s [y/n] ", q.Position, q.Total, q.Question.Prompt)
		if !in.Scan() {
			fmt.Fprintln(env.out)
			return in.Err()
		}
		yes, err := parseYesNo(in.Text())
		if err != nil {
			fmt.Fprintln(env.out, "Please answer y or n.")
			continue
		}
		if err := env.do(cmd, func(e *engine.Engine) error {
			v, err = e.AnswerQuiz(yes)
			return err
		}); err != nil {
			return err
		}
	}
	printQuiz(env, v)
	return nil
}

func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, errs.Invalid("answer", "want yes or no, got %q", s)
	}
}

func printQuiz(env *env, v engine.OnboardingView) {
	q := v.Quiz
	switch {
	case q == nil:
		printOnboarding(env, v)
	case q.Done:
		level := onboarding.SkillLevel(q.Result)
		fmt.Fprintf(env.out, "Quiz complete. Your skill level: %s\n", level.Label())
	default:
		fmt.Fprintf(env.out, "Question %d of %d: %s\n", q.Position, q.Total, q.Question.Prompt)
	}
}

func printOnboarding(env *env, v engine.OnboardingView) {
	out := env.out
	if v.Completed {
		how := "finished"
		if v.Completion != nil && v.Completion.By == onboarding.CompletedSkipped {
			how = "skipped"
		}
		fmt.Fprintf(out, "Onboarding %s.\n", how)
		if v.Recommended != nil {
			fmt.Fprintf(out, "Recommended path: %s (%s)\n", v.Recommended.Name, v.Recommended.ID)
		}
		return
	}

	fmt.Fprintf(out, "Step %d of %d: %s\n", v.StepIndex+1, v.StepCount, v.Step.Title())
	a := v.Answers
	fmt.Fprintf(out, "  Skill level: %s\n", a.SkillLevel.Label())
	goals := make([]string, len(a.Goals))
	for i, g := range a.Goals {
		goals[i] = string(g)
	}
	fmt.Fprintf(out, "  Goals:       %s\n", orNone(goals))
	styles := make([]string, len(a.Styles))
	for i, s := range a.Styles {
		styles[i] = string(s)
	}
	fmt.Fprintf(out, "  Styles:      %s\n", orNone(styles))
	if v.Quiz != nil && !v.Quiz.Done {
		fmt.Fprintf(out, "  Quiz:        question %d of %d in progress\n", v.Quiz.Position, v.Quiz.Total)
	}
	if !v.CanAdvance {
		fmt.Fprintln(out, "Make a selection to continue.")
	}
}

func orNone(s []string) string {
	if len(s) == 0 {
		return "(none)"
	}
	return strings.Join(s, ", ")
}
