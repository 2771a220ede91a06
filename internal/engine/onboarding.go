package engine

import (
	"github.com/abhisek/spinlab/internal/catalog"
	"github.com/abhisek/spinlab/internal/onboarding"
)

// QuizView is the state of an in-flight skill quiz.
type QuizView struct {
	Question *onboarding.Question `json:"question,omitempty"`
	Position int                  `json:"position"`
	Total    int                  `json:"total"`
	Done     bool                 `json:"done"`
	Result   string               `json:"result,omitempty"`
}

// OnboardingView is the read model of the onboarding wizard.
type OnboardingView struct {
	Step        onboarding.Step        `json:"step"`
	StepIndex   int                    `json:"step_index"`
	StepCount   int                    `json:"step_count"`
	Answers     onboarding.Answers     `json:"answers"`
	CanAdvance  bool                   `json:"can_advance"`
	Completed   bool                   `json:"completed"`
	Completion  *onboarding.Completion `json:"completion,omitempty"`
	Recommended *catalog.Path          `json:"recommended,omitempty"`
	Quiz        *QuizView              `json:"quiz,omitempty"`
}

// Onboarding returns the wizard state.
func (e *Engine) Onboarding() OnboardingView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.onboardingView()
}

func (e *Engine) onboardingView() OnboardingView {
	c := e.onboarding
	v := OnboardingView{
		Step:       c.Step(),
		StepIndex:  c.Step().Index(),
		StepCount:  len(onboarding.StepOrder),
		Answers:    c.Answers(),
		CanAdvance: c.CanAdvance(),
		Completed:  c.Completed(),
	}
	if comp, ok := c.Completion(); ok {
		v.Completion = &comp
	}
	if p, ok := c.Recommended(); ok {
		v.Recommended = &p
	}
	if q, ok := c.Quiz(); ok {
		pos, total := q.Position()
		qv := &QuizView{Position: pos, Total: total, Done: q.Done()}
		if cur, ok := q.Current(); ok {
			qv.Question = &cur
		} else {
			qv.Result = string(q.Result())
		}
		v.Quiz = qv
	}
	return v
}

// OnboardingNext advances the wizard if the current step allows it.
func (e *Engine) OnboardingNext() (OnboardingView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.onboarding.Next(e.now()); err != nil {
		return OnboardingView{}, err
	}
	return e.onboardingView(), nil
}

// OnboardingBack moves the wizard back one step.
func (e *Engine) OnboardingBack() (OnboardingView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.onboarding.Prev(); err != nil {
		return OnboardingView{}, err
	}
	return e.onboardingView(), nil
}

// SkipOnboarding ends the wizard immediately.
func (e *Engine) SkipOnboarding() (OnboardingView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.onboarding.Skip(e.now()); err != nil {
		return OnboardingView{}, err
	}
	return e.onboardingView(), nil
}

// AnswerUpdate carries wizard selections. Nil fields are left untouched.
type AnswerUpdate struct {
	SkillLevel *string   `json:"skill_level,omitempty"`
	Goals      *[]string `json:"goals,omitempty"`
	Styles     *[]string `json:"styles,omitempty"`
}

// SetOnboardingAnswers applies selections. Values are validated before any
// of them are applied.
func (e *Engine) SetOnboardingAnswers(u AnswerUpdate) (OnboardingView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.onboarding.Completed() {
		return OnboardingView{}, onboarding.ErrCompleted
	}
	if u.SkillLevel != nil {
		if _, err := onboarding.ParseSkillLevel(*u.SkillLevel); err != nil {
			return OnboardingView{}, err
		}
	}
	if u.Goals != nil {
		for _, g := range *u.Goals {
			if _, err := onboarding.ParseGoal(g); err != nil {
				return OnboardingView{}, err
			}
		}
	}
	if u.Styles != nil {
		for _, s := range *u.Styles {
			if _, err := onboarding.ParseStyle(s); err != nil {
				return OnboardingView{}, err
			}
		}
	}

	if u.SkillLevel != nil {
		_ = e.onboarding.SelectSkillLevel(*u.SkillLevel)
	}
	if u.Goals != nil {
		_ = e.onboarding.SetGoals(*u.Goals)
	}
	if u.Styles != nil {
		_ = e.onboarding.SetStyles(*u.Styles)
	}
	return e.onboardingView(), nil
}

// ToggleGoal adds or removes one goal.
func (e *Engine) ToggleGoal(goal string) (OnboardingView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.onboarding.ToggleGoal(goal); err != nil {
		return OnboardingView{}, err
	}
	return e.onboardingView(), nil
}

// ToggleStyle adds or removes one preferred style.
func (e *Engine) ToggleStyle(style string) (OnboardingView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.onboarding.ToggleStyle(style); err != nil {
		return OnboardingView{}, err
	}
	return e.onboardingView(), nil
}

// StartQuiz begins the skill quiz.
func (e *Engine) StartQuiz() (OnboardingView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.onboarding.StartQuiz(); err != nil {
		return OnboardingView{}, err
	}
	return e.onboardingView(), nil
}

// AnswerQuiz answers the current quiz question.
func (e *Engine) AnswerQuiz(yes bool) (OnboardingView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.onboarding.AnswerQuiz(yes); err != nil {
		return OnboardingView{}, err
	}
	return e.onboardingView(), nil
}
