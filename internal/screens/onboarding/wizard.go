// Package onboarding is the first-run wizard: skill level, goals, preferred
// styles and a recommended learning path.
package onboarding

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spinlab/internal/catalog"
	"github.com/abhisek/spinlab/internal/engine"
	ob "github.com/abhisek/spinlab/internal/onboarding"
	"github.com/abhisek/spinlab/internal/router"
	"github.com/abhisek/spinlab/internal/screen"
	"github.com/abhisek/spinlab/internal/screens/splash"
	"github.com/abhisek/spinlab/internal/ui/components"
	"github.com/abhisek/spinlab/internal/ui/layout"
	"github.com/abhisek/spinlab/internal/ui/theme"
)

// Wizard walks the learner through onboarding one step at a time.
type Wizard struct {
	backend screen.Backend
	onDone  func() screen.Screen

	view    engine.OnboardingView
	levels  components.MultiChoice
	goals   components.MultiChoice
	styles  components.MultiChoice
	message string
	err     error
}

var _ screen.Screen = (*Wizard)(nil)
var _ screen.KeyHintProvider = (*Wizard)(nil)

// NewWizard creates the wizard. When the learner finishes, the wizard
// replaces itself with onDone(), or pops if onDone is nil.
func NewWizard(backend screen.Backend, onDone func() screen.Screen) *Wizard {
	w := &Wizard{
		backend: backend,
		onDone:  onDone,
		levels:  components.NewMultiChoice(levelOptions(), false),
		goals:   components.NewMultiChoice(goalOptions(), true),
		styles:  components.NewMultiChoice(styleOptions(), true),
	}
	w.reload()
	return w
}

func levelOptions() []components.Option {
	var opts []components.Option
	for _, l := range ob.AllSkillLevels() {
		opts = append(opts, components.Option{Value: string(l), Label: l.Label()})
	}
	return opts
}

func goalOptions() []components.Option {
	var opts []components.Option
	for _, g := range ob.AllGoals() {
		opts = append(opts, components.Option{Value: string(g), Label: g.Label()})
	}
	return opts
}

func styleOptions() []components.Option {
	var opts []components.Option
	for _, g := range catalog.AllGenres() {
		opts = append(opts, components.Option{Value: string(g), Label: g.DisplayName()})
	}
	return opts
}

func (w *Wizard) reload() {
	w.err = w.backend.View(func(e *engine.Engine) error {
		w.view = e.Onboarding()
		return nil
	})
}

// apply runs an onboarding command and refreshes the view from its result.
func (w *Wizard) apply(fn func(e *engine.Engine) (engine.OnboardingView, error)) {
	err := w.backend.Do(func(e *engine.Engine) error {
		v, err := fn(e)
		if err == nil {
			w.view = v
		}
		return err
	})
	w.message = ""
	if err != nil {
		w.message = err.Error()
	}
}

func (w *Wizard) quizActive() bool {
	return w.view.Quiz != nil && !w.view.Quiz.Done
}

func (w *Wizard) Init() tea.Cmd {
	return nil
}

func (w *Wizard) Title() string {
	return "Getting Started"
}

func (w *Wizard) KeyHints() []layout.KeyHint {
	switch {
	case w.view.Completed:
		return []layout.KeyHint{{Key: "Enter", Description: "Let's go"}}
	case w.quizActive():
		return []layout.KeyHint{
			{Key: "y", Description: "Yes"},
			{Key: "n", Description: "No"},
		}
	}
	hints := []layout.KeyHint{{Key: "Enter", Description: "Next"}}
	switch w.view.Step {
	case ob.StepSkillLevel:
		hints = append(hints,
			layout.KeyHint{Key: "Space", Description: "Select"},
			layout.KeyHint{Key: "t", Description: "Take quiz"})
	case ob.StepGoals, ob.StepPreferredStyles:
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Toggle"})
	}
	if w.view.StepIndex > 0 {
		hints = append(hints, layout.KeyHint{Key: "b", Description: "Back"})
	}
	return append(hints, layout.KeyHint{Key: "s", Description: "Skip"})
}

func (w *Wizard) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.RefreshMsg:
		w.reload()
		return w, nil
	case components.ToggleMsg:
		w.toggle(msg.Value)
		return w, nil
	case tea.KeyPressMsg:
		return w, w.handleKey(msg)
	}
	return w, nil
}

func (w *Wizard) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()

	if w.view.Completed {
		if key == "enter" {
			return w.finish()
		}
		return nil
	}

	if w.quizActive() {
		switch key {
		case "y", "n":
			yes := key == "y"
			w.apply(func(e *engine.Engine) (engine.OnboardingView, error) { return e.AnswerQuiz(yes) })
		}
		return nil
	}

	switch key {
	case "enter":
		if !w.view.CanAdvance {
			w.message = "Make a selection to continue"
			return nil
		}
		w.apply((*engine.Engine).OnboardingNext)
	case "b", "backspace":
		w.apply((*engine.Engine).OnboardingBack)
	case "s":
		w.apply((*engine.Engine).SkipOnboarding)
	case "t":
		if w.view.Step == ob.StepSkillLevel {
			w.apply((*engine.Engine).StartQuiz)
		}
	default:
		return w.updateChoice(msg)
	}
	return nil
}

// updateChoice forwards navigation keys to the current step's choice list.
func (w *Wizard) updateChoice(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch w.view.Step {
	case ob.StepSkillLevel:
		w.levels, cmd = w.levels.Update(msg)
	case ob.StepGoals:
		w.goals, cmd = w.goals.Update(msg)
	case ob.StepPreferredStyles:
		w.styles, cmd = w.styles.Update(msg)
	}
	return cmd
}

func (w *Wizard) toggle(value string) {
	switch w.view.Step {
	case ob.StepSkillLevel:
		w.apply(func(e *engine.Engine) (engine.OnboardingView, error) {
			return e.SetOnboardingAnswers(engine.AnswerUpdate{SkillLevel: &value})
		})
	case ob.StepGoals:
		w.apply(func(e *engine.Engine) (engine.OnboardingView, error) { return e.ToggleGoal(value) })
	case ob.StepPreferredStyles:
		w.apply(func(e *engine.Engine) (engine.OnboardingView, error) { return e.ToggleStyle(value) })
	}
}

func (w *Wizard) finish() tea.Cmd {
	if w.onDone == nil {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	next := w.onDone()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (w *Wizard) View(width, height int) string {
	if w.err != nil {
		return theme.Hint.Render("  " + w.err.Error())
	}
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, w.renderSteps())
	sections = append(sections, components.Card(w.view.Step.Title(), w.renderBody(cw-4), cw))
	if w.message != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(w.message))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n\n"))
}

// renderSteps draws the step indicator, one dot per step.
func (w *Wizard) renderSteps() string {
	var dots []string
	for i := range ob.StepOrder {
		switch {
		case i < w.view.StepIndex:
			dots = append(dots, theme.Mastered.Render("●"))
		case i == w.view.StepIndex:
			dots = append(dots, theme.Selected.Render("◉"))
		default:
			dots = append(dots, theme.Locked.Render("○"))
		}
	}
	return strings.Join(dots, " ")
}

func (w *Wizard) renderBody(cw int) string {
	a := w.view.Answers
	body := lipgloss.NewStyle().Width(cw).Foreground(theme.Text)

	switch w.view.Step {
	case ob.StepWelcome:
		return splash.RenderBanner(cw) + "\n\n" + body.Render(
			"Let's find the right tricks for you. A few quick questions and you'll have a learning path.")

	case ob.StepSkillLevel:
		if w.quizActive() {
			return w.renderQuiz(body)
		}
		out := body.Render("How would you rate yourself?") + "\n\n" + w.levels.View([]string{string(a.SkillLevel)})
		if q := w.view.Quiz; q != nil && q.Done {
			out += "\n" + theme.Hint.Render("Quiz result: "+ob.SkillLevel(q.Result).Label())
		} else {
			out += "\n" + theme.Hint.Render("Not sure? Press t for a quick quiz.")
		}
		return out

	case ob.StepGoals:
		return body.Render("What do you want out of your practice?") + "\n\n" + w.goals.View(stringsOf(a.Goals))

	case ob.StepPreferredStyles:
		return body.Render("Which styles interest you?") + "\n\n" + w.styles.View(stringsOf(a.Styles))

	case ob.StepRecommendedPath:
		if w.view.Recommended == nil {
			return body.Render("Browse the trick list and pick anything that looks fun.")
		}
		p := w.view.Recommended
		return theme.Selected.Render(p.Name) + "\n\n" + body.Render(p.Description)

	case ob.StepComplete:
		return w.renderSummary(body)
	}
	return ""
}

func (w *Wizard) renderQuiz(body lipgloss.Style) string {
	q := w.view.Quiz
	if q.Question == nil {
		return ""
	}
	return theme.Hint.Render(fmt.Sprintf("Question %d of %d", q.Position, q.Total)) +
		"\n\n" + body.Render(q.Question.Prompt) +
		"\n\n" + theme.Selected.Render("[y] yes    [n] no")
}

func (w *Wizard) renderSummary(body lipgloss.Style) string {
	if c := w.view.Completion; c != nil && c.By == ob.CompletedSkipped {
		return body.Render("Skipped for now. You can revisit onboarding from the dashboard.")
	}
	a := w.view.Answers
	lines := []string{
		"Skill level: " + a.SkillLevel.Label(),
		fmt.Sprintf("Goals: %d selected", len(a.Goals)),
		fmt.Sprintf("Styles: %d selected", len(a.Styles)),
	}
	if p := w.view.Recommended; p != nil {
		lines = append(lines, "Start with: "+p.Name)
	}
	return body.Render(strings.Join(lines, "\n"))
}

func stringsOf[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

