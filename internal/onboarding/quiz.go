package onboarding

import (
	"errors"

	"github.com/abhisek/spinlab/internal/catalog"
)

// ErrQuizFinished is returned when answering a quiz that has ended.
var ErrQuizFinished = errors.New("quiz already finished")

// Question is a yes/no skill check at a difficulty tier.
type Question struct {
	ID     string       `json:"id"`
	Prompt string       `json:"prompt"`
	Tier   catalog.Tier `json:"tier"`
}

// DefaultQuestions is the fixed quiz, easiest first.
var DefaultQuestions = []Question{
	{ID: "sleeper", Prompt: "Can you throw a sleeper that spins for five seconds?", Tier: catalog.TierBeginner},
	{ID: "bind", Prompt: "Can you bind the yo-yo back to your hand?", Tier: catalog.TierNovice},
	{ID: "trapeze", Prompt: "Can you land a trapeze and dismount cleanly?", Tier: catalog.TierIntermediate},
	{ID: "slack", Prompt: "Can you hit slack tricks like Kwijibo?", Tier: catalog.TierAdvanced},
	{ID: "freestyle", Prompt: "Can you string offstring catches into a freestyle?", Tier: catalog.TierMaster},
}

// earlyExitTier is the highest tier at which a "no" ends the quiz.
const earlyExitTier = catalog.TierNovice

// tierLevels maps the highest "yes" tier onto a skill level.
var tierLevels = map[catalog.Tier]SkillLevel{
	catalog.TierBeginner:     SkillBeginner,
	catalog.TierNovice:       SkillIntermediate,
	catalog.TierIntermediate: SkillAdvanced,
	catalog.TierAdvanced:     SkillAdvanced,
	catalog.TierMaster:       SkillExpert,
}

// QuizAnswer records one answer.
type QuizAnswer struct {
	QuestionID string       `json:"question_id"`
	Tier       catalog.Tier `json:"tier"`
	Yes        bool         `json:"yes"`
}

// Quiz walks a fixed list of questions in order.
type Quiz struct {
	questions []Question
	answers   []QuizAnswer
	done      bool
}

// NewQuiz starts a quiz over questions. An empty list yields a finished quiz.
func NewQuiz(questions []Question) *Quiz {
	q := &Quiz{questions: questions}
	q.done = len(questions) == 0
	return q
}

// Current returns the question awaiting an answer.
func (q *Quiz) Current() (Question, bool) {
	if q.done {
		return Question{}, false
	}
	return q.questions[len(q.answers)], true
}

// Position returns the 1-based index of the current question and the total.
func (q *Quiz) Position() (int, int) {
	return len(q.answers) + 1, len(q.questions)
}

// Answer records an answer to the current question. It reports whether the
// quiz has now ended, either by running out of questions or by a "no" at a
// low tier.
func (q *Quiz) Answer(yes bool) (bool, error) {
	cur, ok := q.Current()
	if !ok {
		return true, ErrQuizFinished
	}
	q.answers = append(q.answers, QuizAnswer{QuestionID: cur.ID, Tier: cur.Tier, Yes: yes})
	if !yes && cur.Tier <= earlyExitTier {
		q.done = true
	}
	if len(q.answers) == len(q.questions) {
		q.done = true
	}
	return q.done, nil
}

// Done reports whether the quiz has ended.
func (q *Quiz) Done() bool {
	return q.done
}

// Answers returns the answers so far.
func (q *Quiz) Answers() []QuizAnswer {
	return append([]QuizAnswer(nil), q.answers...)
}

// Result maps the highest "yes" tier to a skill level. No "yes" answers
// means beginner.
func (q *Quiz) Result() SkillLevel {
	var highest catalog.Tier
	for _, a := range q.answers {
		if a.Yes && a.Tier > highest {
			highest = a.Tier
		}
	}
	if lvl, ok := tierLevels[highest]; ok {
		return lvl
	}
	return SkillBeginner
}
