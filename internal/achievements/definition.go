package achievements

import (
	"fmt"

	"github.com/abhisek/spinlab/internal/catalog"
	"github.com/abhisek/spinlab/internal/errs"
)

// Definition describes an earnable badge.
type Definition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rarity      Rarity `json:"rarity"`
	XPReward    int    `json:"xp_reward"`
	Rule        Rule   `json:"rule"`
}

// Predicate reports whether the badge should be awarded for s.
func (d Definition) Predicate(s State) bool {
	return d.Rule.Met(s)
}

// Progress returns how close s is to earning the badge, in [0, 1].
func (d Definition) Progress(s State) float64 {
	return d.Rule.Progress(s)
}

// Validate checks a single definition.
func (d Definition) Validate() error {
	if d.ID == "" {
		return errs.Invalid("id", "badge ID is required")
	}
	if d.XPReward < 0 {
		return errs.Invalid("xp", "badge %q: reward must be >= 0", d.ID)
	}
	if err := d.Rule.validate(); err != nil {
		return fmt.Errorf("badge %q: %w", d.ID, err)
	}
	return nil
}

var milestoneBadges = []Definition{
	{ID: "first-trick", Name: "First Trick", Description: "Master your first trick", Rarity: RarityCommon, XPReward: 25,
		Rule: Rule{Kind: RuleItemsMastered, Threshold: 1}},
	{ID: "five-tricks", Name: "Getting the Hang", Description: "Master 5 tricks", Rarity: RarityCommon, XPReward: 50,
		Rule: Rule{Kind: RuleItemsMastered, Threshold: 5}},
	{ID: "ten-tricks", Name: "Trickster", Description: "Master 10 tricks", Rarity: RarityRare, XPReward: 100,
		Rule: Rule{Kind: RuleItemsMastered, Threshold: 10}},
	{ID: "twenty-tricks", Name: "Walking Library", Description: "Master 20 tricks", Rarity: RarityEpic, XPReward: 200,
		Rule: Rule{Kind: RuleItemsMastered, Threshold: 20}},
	{ID: "advanced-trick", Name: "Advanced Player", Description: "Master an Advanced tier trick", Rarity: RarityEpic, XPReward: 100,
		Rule: Rule{Kind: RuleTierMastered, Threshold: int(catalog.TierAdvanced)}},
	{ID: "master-trick", Name: "Master Class", Description: "Master a Master tier trick", Rarity: RarityLegendary, XPReward: 250,
		Rule: Rule{Kind: RuleTierMastered, Threshold: int(catalog.TierMaster)}},
	{ID: "xp-1000", Name: "Spin Up", Description: "Earn 1,000 XP", Rarity: RarityRare, XPReward: 50,
		Rule: Rule{Kind: RuleLifetimeXP, Threshold: 1000}},
	{ID: "xp-5000", Name: "Long Spinner", Description: "Earn 5,000 XP", Rarity: RarityEpic, XPReward: 100,
		Rule: Rule{Kind: RuleLifetimeXP, Threshold: 5000}},
	{ID: "level-5", Name: "Level 5", Description: "Reach level 5", Rarity: RarityRare, XPReward: 50,
		Rule: Rule{Kind: RuleLevelReached, Threshold: 5}},
	{ID: "level-10", Name: "Level 10", Description: "Reach level 10", Rarity: RarityLegendary, XPReward: 200,
		Rule: Rule{Kind: RuleLevelReached, Threshold: 10}},
	{ID: "binge-watcher", Name: "Binge Watcher", Description: "Watch an hour of tutorials", Rarity: RarityCommon, XPReward: 25,
		Rule: Rule{Kind: RuleWatchSeconds, Threshold: 3600}},
}

// streakDays are the day-streak milestones that carry a badge.
var streakDays = []int{3, 7, 14, 30}

// DefaultDefinitions returns the built-in badges: milestone badges, streak
// badges and one completion badge per catalog path. Path badge rarity comes
// from the depth of the path's deepest item.
func DefaultDefinitions(cat *catalog.Catalog) []Definition {
	defs := make([]Definition, 0, len(milestoneBadges)+len(streakDays)+len(cat.Paths()))
	defs = append(defs, milestoneBadges...)

	for _, days := range streakDays {
		r := StreakRarity(days)
		defs = append(defs, Definition{
			ID:          fmt.Sprintf("streak-%d", days),
			Name:        fmt.Sprintf("%d Day Streak", days),
			Description: fmt.Sprintf("Practice %d days in a row", days),
			Rarity:      r,
			XPReward:    rewardFor(r) / 2,
			Rule:        Rule{Kind: RuleCurrentStreak, Threshold: days},
		})
	}

	dm := ComputeDepthMap(cat)
	for _, p := range cat.Paths() {
		r := dm.RarityForPath(cat, p.ID)
		defs = append(defs, Definition{
			ID:          "path-" + p.ID,
			Name:        p.Name + " Complete",
			Description: fmt.Sprintf("Master every trick in %s", p.Name),
			Rarity:      r,
			XPReward:    rewardFor(r),
			Rule:        Rule{Kind: RulePathComplete, Target: p.ID},
		})
	}
	return defs
}

// Merge overlays custom definitions on base. A custom definition with an
// existing ID replaces it in place; new IDs are appended in order.
func Merge(base, custom []Definition) []Definition {
	out := make([]Definition, len(base))
	copy(out, base)
	idx := make(map[string]int, len(out))
	for i, d := range out {
		idx[d.ID] = i
	}
	for _, d := range custom {
		if i, ok := idx[d.ID]; ok {
			out[i] = d
			continue
		}
		idx[d.ID] = len(out)
		out = append(out, d)
	}
	return out
}
