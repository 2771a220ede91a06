package onboarding

import (
	"time"

	"github.com/abhisek/spinlab/internal/catalog"
	"github.com/abhisek/spinlab/internal/store"
)

// SnapshotData exports the wizard state, including an unfinished quiz.
func (c *Controller) SnapshotData() *store.OnboardingSnapshotData {
	data := &store.OnboardingSnapshotData{
		CurrentStep:     string(c.step),
		RecommendedPath: c.recommended,
	}
	if c.answers.SkillLevel != "" {
		s := string(c.answers.SkillLevel)
		data.SkillLevel = &s
	}
	for _, g := range c.answers.Goals {
		data.Goals = append(data.Goals, string(g))
	}
	for _, s := range c.answers.Styles {
		data.Styles = append(data.Styles, string(s))
	}
	if c.completion != nil {
		data.Completed = true
		data.CompletedBy = string(c.completion.By)
		at := c.completion.At.Format(time.RFC3339)
		data.CompletedAt = &at
	}
	if c.quiz != nil {
		qd := &store.QuizSnapshotData{Done: c.quiz.Done()}
		for _, a := range c.quiz.answers {
			qd.Answers = append(qd.Answers, store.QuizAnswerData{QuestionID: a.QuestionID, Yes: a.Yes})
		}
		data.Quiz = qd
	}
	return data
}

// LoadSnapshot restores wizard state. Unknown values are dropped rather than
// failing the load.
func (c *Controller) LoadSnapshot(data *store.OnboardingSnapshotData) {
	c.step = StepWelcome
	c.answers = Answers{}
	c.completion = nil
	c.recommended = ""
	c.quiz = nil
	if data == nil {
		return
	}

	if s := Step(data.CurrentStep); s.Index() >= 0 {
		c.step = s
	}
	if data.SkillLevel != nil {
		if l, err := ParseSkillLevel(*data.SkillLevel); err == nil {
			c.answers.SkillLevel = l
		}
	}
	var goals []Goal
	for _, raw := range data.Goals {
		if g, err := ParseGoal(raw); err == nil {
			goals = append(goals, g)
		}
	}
	c.answers.Goals = dedupe(goals)
	var styles []catalog.Genre
	for _, raw := range data.Styles {
		if s, err := ParseStyle(raw); err == nil {
			styles = append(styles, s)
		}
	}
	c.answers.Styles = dedupe(styles)
	c.recommended = data.RecommendedPath

	if data.Completed {
		by := CompletionKind(data.CompletedBy)
		if by != CompletedSkipped {
			by = CompletedFinished
		}
		comp := &Completion{By: by}
		if data.CompletedAt != nil {
			if t, err := time.Parse(time.RFC3339, *data.CompletedAt); err == nil {
				comp.At = t
			}
		}
		c.completion = comp
		c.step = StepComplete
		return
	}

	if data.Quiz != nil {
		// Questions are fixed, so replaying the answers rebuilds the quiz.
		q := NewQuiz(DefaultQuestions)
		for _, a := range data.Quiz.Answers {
			if _, err := q.Answer(a.Yes); err != nil {
				break
			}
		}
		c.quiz = q
	}
}
