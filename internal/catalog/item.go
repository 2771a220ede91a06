package catalog

// Tier is a difficulty ordinal from 1 (easiest) to 5 (hardest).
type Tier int

const (
	TierBeginner Tier = iota + 1
	TierNovice
	TierIntermediate
	TierAdvanced
	TierMaster
)

// MinTier and MaxTier bound valid difficulty tiers.
const (
	MinTier = TierBeginner
	MaxTier = TierMaster
)

// AllTiers returns all tiers from easiest to hardest.
func AllTiers() []Tier {
	return []Tier{TierBeginner, TierNovice, TierIntermediate, TierAdvanced, TierMaster}
}

// Valid reports whether t is within [MinTier, MaxTier].
func (t Tier) Valid() bool {
	return t >= MinTier && t <= MaxTier
}

// Label returns a human-readable name for the tier.
func (t Tier) Label() string {
	switch t {
	case TierBeginner:
		return "Beginner"
	case TierNovice:
		return "Novice"
	case TierIntermediate:
		return "Intermediate"
	case TierAdvanced:
		return "Advanced"
	case TierMaster:
		return "Master"
	default:
		return "Unknown"
	}
}

// Genre is a yo-yo play style such as 1A (single string) or 4A (offstring).
type Genre string

const (
	Genre1A Genre = "1a"
	Genre2A Genre = "2a"
	Genre3A Genre = "3a"
	Genre4A Genre = "4a"
	Genre5A Genre = "5a"
)

// AllGenres returns all genres in display order.
func AllGenres() []Genre {
	return []Genre{Genre1A, Genre2A, Genre3A, Genre4A, Genre5A}
}

// DisplayName returns a human-readable name for the genre.
func (g Genre) DisplayName() string {
	switch g {
	case Genre1A:
		return "1A String Tricks"
	case Genre2A:
		return "2A Looping"
	case Genre3A:
		return "3A Double String"
	case Genre4A:
		return "4A Offstring"
	case Genre5A:
		return "5A Freehand"
	default:
		return string(g)
	}
}

// SkillItem is a single learnable trick.
type SkillItem struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Genre         Genre    `json:"genre"`
	Tier          Tier     `json:"tier"`
	Prerequisites []string `json:"prerequisites,omitempty"`
	XPReward      int      `json:"xp_reward"`
	GroupID       string   `json:"module"`
	PathID        string   `json:"path"`
	VideoSeconds  int      `json:"video_seconds"`
}

// HasPrerequisites reports whether the item depends on any other item.
func (s SkillItem) HasPrerequisites() bool {
	return len(s.Prerequisites) > 0
}

// Module groups items inside a learning path.
type Module struct {
	ID     string `json:"id"`
	PathID string `json:"path"`
	Name   string `json:"name"`
}

// Path is an ordered curriculum of modules aimed at a skill level.
type Path struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Level       Tier    `json:"level"`
	Styles      []Genre `json:"styles"`
}
