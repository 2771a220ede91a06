package onboarding

// Step is a position in the onboarding wizard.
type Step string

const (
	StepWelcome         Step = "welcome"
	StepSkillLevel      Step = "skill_level"
	StepGoals           Step = "goals"
	StepPreferredStyles Step = "preferred_styles"
	StepRecommendedPath Step = "recommended_path"
	StepComplete        Step = "complete"
)

// StepOrder is the fixed sequence of wizard steps.
var StepOrder = []Step{
	StepWelcome,
	StepSkillLevel,
	StepGoals,
	StepPreferredStyles,
	StepRecommendedPath,
	StepComplete,
}

// Index returns the position of s in StepOrder, or -1.
func (s Step) Index() int {
	for i, st := range StepOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// Title returns the heading shown for a step.
func (s Step) Title() string {
	switch s {
	case StepWelcome:
		return "Welcome"
	case StepSkillLevel:
		return "Your Skill Level"
	case StepGoals:
		return "Your Goals"
	case StepPreferredStyles:
		return "Favorite Styles"
	case StepRecommendedPath:
		return "Recommended Path"
	case StepComplete:
		return "All Set"
	default:
		return string(s)
	}
}

// Action is an input to the step machine.
type Action string

const (
	ActionNext Action = "next"
	ActionBack Action = "back"
	ActionSkip Action = "skip"
)

// transitions lists every allowed (step, action) pair. Missing entries are
// no-ops; complete has no outgoing edges.
var transitions = map[Step]map[Action]Step{
	StepWelcome: {
		ActionNext: StepSkillLevel,
		ActionSkip: StepComplete,
	},
	StepSkillLevel: {
		ActionNext: StepGoals,
		ActionBack: StepWelcome,
		ActionSkip: StepComplete,
	},
	StepGoals: {
		ActionNext: StepPreferredStyles,
		ActionBack: StepSkillLevel,
		ActionSkip: StepComplete,
	},
	StepPreferredStyles: {
		ActionNext: StepRecommendedPath,
		ActionBack: StepGoals,
		ActionSkip: StepComplete,
	},
	StepRecommendedPath: {
		ActionNext: StepComplete,
		ActionBack: StepPreferredStyles,
		ActionSkip: StepComplete,
	},
	StepComplete: {},
}

// gates are the completion predicates a step must satisfy before next.
var gates = map[Step]func(Answers) bool{
	StepSkillLevel:      func(a Answers) bool { return a.SkillLevel != "" },
	StepGoals:           func(a Answers) bool { return len(a.Goals) > 0 },
	StepPreferredStyles: func(a Answers) bool { return len(a.Styles) > 0 },
}

// CanAdvance reports whether the gate on step is satisfied by a.
func CanAdvance(step Step, a Answers) bool {
	gate, ok := gates[step]
	return !ok || gate(a)
}
