package onboarding

import (
	"sort"

	"github.com/abhisek/spinlab/internal/catalog"
	"github.com/abhisek/spinlab/internal/errs"
)

// SkillLevel is the learner's self-assessed ability.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
)

// AllSkillLevels returns skill levels from lowest to highest.
func AllSkillLevels() []SkillLevel {
	return []SkillLevel{SkillBeginner, SkillIntermediate, SkillAdvanced, SkillExpert}
}

// ParseSkillLevel validates a raw skill level.
func ParseSkillLevel(s string) (SkillLevel, error) {
	for _, l := range AllSkillLevels() {
		if string(l) == s {
			return l, nil
		}
	}
	return "", errs.Invalid("skill_level", "unknown skill level %q", s)
}

// Tier returns the catalog tier that best matches the skill level.
func (l SkillLevel) Tier() catalog.Tier {
	switch l {
	case SkillIntermediate:
		return catalog.TierNovice
	case SkillAdvanced:
		return catalog.TierIntermediate
	case SkillExpert:
		return catalog.TierMaster
	default:
		return catalog.TierBeginner
	}
}

// Label returns a display name.
func (l SkillLevel) Label() string {
	switch l {
	case SkillBeginner:
		return "Beginner"
	case SkillIntermediate:
		return "Intermediate"
	case SkillAdvanced:
		return "Advanced"
	case SkillExpert:
		return "Expert"
	default:
		return "Not set"
	}
}

// Goal is something the learner wants out of the app.
type Goal string

const (
	GoalLearnBasics Goal = "learn_basics"
	GoalNewTricks   Goal = "new_tricks"
	GoalCompete     Goal = "compete"
	GoalPerform     Goal = "perform"
	GoalHaveFun     Goal = "have_fun"
)

// AllGoals returns the selectable goals in display order.
func AllGoals() []Goal {
	return []Goal{GoalLearnBasics, GoalNewTricks, GoalCompete, GoalPerform, GoalHaveFun}
}

// ParseGoal validates a raw goal.
func ParseGoal(s string) (Goal, error) {
	for _, g := range AllGoals() {
		if string(g) == s {
			return g, nil
		}
	}
	return "", errs.Invalid("goal", "unknown goal %q", s)
}

// Label returns a display name.
func (g Goal) Label() string {
	switch g {
	case GoalLearnBasics:
		return "Learn the basics"
	case GoalNewTricks:
		return "Learn new tricks"
	case GoalCompete:
		return "Compete"
	case GoalPerform:
		return "Perform for friends"
	case GoalHaveFun:
		return "Just have fun"
	default:
		return string(g)
	}
}

// ParseStyle validates a raw play style against the known genres.
func ParseStyle(s string) (catalog.Genre, error) {
	for _, g := range catalog.AllGenres() {
		if string(g) == s {
			return g, nil
		}
	}
	return "", errs.Invalid("style", "unknown style %q", s)
}

// Answers holds the learner's wizard selections. Goals and Styles are kept
// sorted and free of duplicates.
type Answers struct {
	SkillLevel SkillLevel      `json:"skill_level,omitempty"`
	Goals      []Goal          `json:"goals"`
	Styles     []catalog.Genre `json:"styles"`
}

func (a Answers) clone() Answers {
	return Answers{
		SkillLevel: a.SkillLevel,
		Goals:      append([]Goal(nil), a.Goals...),
		Styles:     append([]catalog.Genre(nil), a.Styles...),
	}
}

func toggle[T ~string](set []T, v T) []T {
	for i, x := range set {
		if x == v {
			return append(set[:i:i], set[i+1:]...)
		}
	}
	set = append(set, v)
	sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })
	return set
}

func dedupe[T ~string](vals []T) []T {
	seen := make(map[T]bool, len(vals))
	out := make([]T, 0, len(vals))
	for _, v := range vals {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
