package achievements

import "github.com/abhisek/spinlab/internal/errs"

// Rarity represents how hard a badge is to earn.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// AllRarities returns all rarities in order from lowest to highest.
func AllRarities() []Rarity {
	return []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}
}

// ParseRarity validates a raw rarity name. Empty means common.
func ParseRarity(s string) (Rarity, error) {
	if s == "" {
		return RarityCommon, nil
	}
	for _, r := range AllRarities() {
		if string(r) == s {
			return r, nil
		}
	}
	return "", errs.Invalid("rarity", "unknown rarity %q", s)
}

// DisplayName returns a human-readable label for the rarity.
func (r Rarity) DisplayName() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	default:
		return string(r)
	}
}

// Icon returns the display icon for the rarity.
func (r Rarity) Icon() string {
	switch r {
	case RarityCommon:
		return "🥉"
	case RarityRare:
		return "🥈"
	case RarityEpic:
		return "🥇"
	case RarityLegendary:
		return "🏆"
	default:
		return "✦"
	}
}

// StreakRarity returns the rarity for a day-streak milestone.
func StreakRarity(days int) Rarity {
	switch {
	case days >= 30:
		return RarityLegendary
	case days >= 14:
		return RarityEpic
	case days >= 7:
		return RarityRare
	default:
		return RarityCommon
	}
}

// rewardFor is the default XP reward for a badge of the given rarity.
func rewardFor(r Rarity) int {
	switch r {
	case RarityLegendary:
		return 250
	case RarityEpic:
		return 150
	case RarityRare:
		return 100
	default:
		return 50
	}
}
