package achievements

import (
	"github.com/abhisek/spinlab/internal/catalog"
	"github.com/abhisek/spinlab/internal/errs"
)

// RuleKind names the metric a badge rule checks.
type RuleKind string

const (
	RuleItemsMastered RuleKind = "items_mastered"
	RuleLifetimeXP    RuleKind = "lifetime_xp"
	RuleCurrentStreak RuleKind = "current_streak"
	RuleLongestStreak RuleKind = "longest_streak"
	RuleWatchSeconds  RuleKind = "watch_seconds"
	RulePathComplete  RuleKind = "path_complete" // Target is the path ID
	RuleTierMastered  RuleKind = "tier_mastered" // Threshold is the tier
	RuleLevelReached  RuleKind = "level_reached"
)

var knownKinds = map[RuleKind]bool{
	RuleItemsMastered: true,
	RuleLifetimeXP:    true,
	RuleCurrentStreak: true,
	RuleLongestStreak: true,
	RuleWatchSeconds:  true,
	RulePathComplete:  true,
	RuleTierMastered:  true,
	RuleLevelReached:  true,
}

// ParseRuleKind validates a raw rule kind.
func ParseRuleKind(s string) (RuleKind, error) {
	k := RuleKind(s)
	if !knownKinds[k] {
		return "", errs.Invalid("kind", "unknown badge rule %q", s)
	}
	return k, nil
}

// Rule is a threshold predicate over learner State.
type Rule struct {
	Kind      RuleKind `json:"kind"`
	Threshold int      `json:"threshold,omitempty"`
	Target    string   `json:"target,omitempty"`
}

// State is a read-only view of everything badge rules look at.
type State struct {
	Catalog       *catalog.Catalog
	Mastered      map[string]bool
	MasteredCount int
	WatchSeconds  int
	LifetimeXP    int
	Level         int
	CurrentStreak int
	LongestStreak int
}

// metric returns the current value and the goal for a rule.
func (r Rule) metric(s State) (value, goal int) {
	switch r.Kind {
	case RuleItemsMastered:
		return s.MasteredCount, r.Threshold
	case RuleLifetimeXP:
		return s.LifetimeXP, r.Threshold
	case RuleCurrentStreak:
		return s.CurrentStreak, r.Threshold
	case RuleLongestStreak:
		return s.LongestStreak, r.Threshold
	case RuleWatchSeconds:
		return s.WatchSeconds, r.Threshold
	case RuleLevelReached:
		return s.Level, r.Threshold
	case RulePathComplete:
		if s.Catalog == nil {
			return 0, 1
		}
		items := s.Catalog.ByPath(r.Target)
		done := 0
		for _, it := range items {
			if s.Mastered[it.ID] {
				done++
			}
		}
		if len(items) == 0 {
			// An empty or unknown path can never be completed.
			return 0, 1
		}
		return done, len(items)
	case RuleTierMastered:
		if s.Catalog == nil {
			return 0, 1
		}
		for id := range s.Mastered {
			if it, err := s.Catalog.Get(id); err == nil && int(it.Tier) == r.Threshold {
				return 1, 1
			}
		}
		return 0, 1
	default:
		return 0, 1
	}
}

// Met reports whether the rule holds for s.
func (r Rule) Met(s State) bool {
	value, goal := r.metric(s)
	return value >= goal
}

// Progress returns how close s is to meeting the rule, in [0, 1].
func (r Rule) Progress(s State) float64 {
	value, goal := r.metric(s)
	if goal <= 0 {
		return 1
	}
	p := float64(value) / float64(goal)
	if p > 1 {
		p = 1
	}
	if p < 0 {
		p = 0
	}
	return p
}

func (r Rule) validate() error {
	if !knownKinds[r.Kind] {
		return errs.Invalid("kind", "unknown badge rule %q", r.Kind)
	}
	if r.Kind == RulePathComplete {
		if r.Target == "" {
			return errs.Invalid("target", "path_complete needs a path ID")
		}
		return nil
	}
	if r.Threshold <= 0 {
		return errs.Invalid("threshold", "must be > 0, got %d", r.Threshold)
	}
	if r.Kind == RuleTierMastered && !catalog.Tier(r.Threshold).Valid() {
		return errs.Invalid("threshold", "tier must be in [%d, %d]", catalog.MinTier, catalog.MaxTier)
	}
	return nil
}
