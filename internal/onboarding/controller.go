package onboarding

import (
	"errors"
	"time"

	"github.com/abhisek/spinlab/internal/catalog"
)

// ErrCompleted is returned by every mutation once onboarding has finished
// or been skipped. Re-running the flow needs an external reset.
var ErrCompleted = errors.New("onboarding already completed")

// ErrNoQuiz is returned when answering without a started quiz.
var ErrNoQuiz = errors.New("no quiz in progress")

// CompletionKind records how onboarding ended.
type CompletionKind string

const (
	CompletedFinished CompletionKind = "finished"
	CompletedSkipped  CompletionKind = "skipped"
)

// Completion describes the end of onboarding.
type Completion struct {
	By CompletionKind `json:"by"`
	At time.Time      `json:"at"`
}

// Controller drives the onboarding wizard for one learner.
type Controller struct {
	catalog     *catalog.Catalog
	step        Step
	answers     Answers
	completion  *Completion
	recommended string
	quiz        *Quiz
}

// NewController creates a controller at the welcome step.
func NewController(cat *catalog.Catalog) *Controller {
	return &Controller{catalog: cat, step: StepWelcome}
}

// Step returns the current step.
func (c *Controller) Step() Step { return c.step }

// Answers returns a copy of the selections so far.
func (c *Controller) Answers() Answers { return c.answers.clone() }

// Completed reports whether onboarding has ended.
func (c *Controller) Completed() bool { return c.completion != nil }

// Completion returns how and when onboarding ended.
func (c *Controller) Completion() (Completion, bool) {
	if c.completion == nil {
		return Completion{}, false
	}
	return *c.completion, true
}

// CanAdvance reports whether Next would move forward.
func (c *Controller) CanAdvance() bool {
	return !c.Completed() && CanAdvance(c.step, c.answers)
}

// Recommended returns the path picked when the learner reached the
// recommendation step, or the live recommendation before that.
func (c *Controller) Recommended() (catalog.Path, bool) {
	if c.recommended != "" {
		if p, err := c.catalog.Path(c.recommended); err == nil {
			return p, true
		}
	}
	return Recommend(c.answers, c.catalog)
}

func (c *Controller) apply(a Action) (Step, bool) {
	to, ok := transitions[c.step][a]
	return to, ok
}

// Next advances one step. It returns false without error when the current
// step's gate is not satisfied.
func (c *Controller) Next(now time.Time) (bool, error) {
	if c.Completed() {
		return false, ErrCompleted
	}
	if !CanAdvance(c.step, c.answers) {
		return false, nil
	}
	to, ok := c.apply(ActionNext)
	if !ok {
		return false, nil
	}
	c.step = to
	switch to {
	case StepRecommendedPath:
		if p, ok := Recommend(c.answers, c.catalog); ok {
			c.recommended = p.ID
		}
	case StepComplete:
		c.finish(CompletedFinished, now)
	}
	return true, nil
}

// Prev moves back one step. It is a no-op at the first step.
func (c *Controller) Prev() (bool, error) {
	if c.Completed() {
		return false, ErrCompleted
	}
	to, ok := c.apply(ActionBack)
	if !ok {
		return false, nil
	}
	c.step = to
	return true, nil
}

// Skip jumps straight to complete, ignoring gates.
func (c *Controller) Skip(now time.Time) error {
	if c.Completed() {
		return ErrCompleted
	}
	to, ok := c.apply(ActionSkip)
	if !ok {
		return nil
	}
	c.step = to
	c.finish(CompletedSkipped, now)
	return nil
}

func (c *Controller) finish(by CompletionKind, now time.Time) {
	c.completion = &Completion{By: by, At: now}
	c.quiz = nil
}

// SelectSkillLevel records the learner's skill level.
func (c *Controller) SelectSkillLevel(level string) error {
	if c.Completed() {
		return ErrCompleted
	}
	l, err := ParseSkillLevel(level)
	if err != nil {
		return err
	}
	c.answers.SkillLevel = l
	return nil
}

// ToggleGoal adds or removes a goal.
func (c *Controller) ToggleGoal(goal string) error {
	if c.Completed() {
		return ErrCompleted
	}
	g, err := ParseGoal(goal)
	if err != nil {
		return err
	}
	c.answers.Goals = toggle(c.answers.Goals, g)
	return nil
}

// ToggleStyle adds or removes a preferred style.
func (c *Controller) ToggleStyle(style string) error {
	if c.Completed() {
		return ErrCompleted
	}
	s, err := ParseStyle(style)
	if err != nil {
		return err
	}
	c.answers.Styles = toggle(c.answers.Styles, s)
	return nil
}

// SetGoals replaces the goal selection. Nothing changes if any goal is
// unknown.
func (c *Controller) SetGoals(goals []string) error {
	if c.Completed() {
		return ErrCompleted
	}
	parsed := make([]Goal, 0, len(goals))
	for _, raw := range goals {
		g, err := ParseGoal(raw)
		if err != nil {
			return err
		}
		parsed = append(parsed, g)
	}
	c.answers.Goals = dedupe(parsed)
	return nil
}

// SetStyles replaces the style selection. Nothing changes if any style is
// unknown.
func (c *Controller) SetStyles(styles []string) error {
	if c.Completed() {
		return ErrCompleted
	}
	parsed := make([]catalog.Genre, 0, len(styles))
	for _, raw := range styles {
		s, err := ParseStyle(raw)
		if err != nil {
			return err
		}
		parsed = append(parsed, s)
	}
	c.answers.Styles = dedupe(parsed)
	return nil
}

// StartQuiz begins (or restarts) the skill quiz.
func (c *Controller) StartQuiz() (Question, error) {
	if c.Completed() {
		return Question{}, ErrCompleted
	}
	c.quiz = NewQuiz(DefaultQuestions)
	q, _ := c.quiz.Current()
	return q, nil
}

// Quiz returns the quiz in progress, if any.
func (c *Controller) Quiz() (*Quiz, bool) {
	return c.quiz, c.quiz != nil
}

// AnswerQuiz answers the current quiz question. When the quiz ends its
// result becomes the skill level answer.
func (c *Controller) AnswerQuiz(yes bool) (bool, error) {
	if c.Completed() {
		return false, ErrCompleted
	}
	if c.quiz == nil {
		return false, ErrNoQuiz
	}
	done, err := c.quiz.Answer(yes)
	if err != nil {
		return done, err
	}
	if done {
		c.ApplyQuiz()
	}
	return done, nil
}

// ApplyQuiz copies a finished quiz's result into the skill level answer.
// It reports whether anything was applied.
func (c *Controller) ApplyQuiz() bool {
	if c.Completed() || c.quiz == nil || !c.quiz.Done() {
		return false
	}
	c.answers.SkillLevel = c.quiz.Result()
	return true
}
