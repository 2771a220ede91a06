package engine

import (
	"time"

	"github.com/abhisek/spinlab/internal/achievements"
	"github.com/abhisek/spinlab/internal/progress"
	"github.com/abhisek/spinlab/internal/xp"
)

// EventKind identifies a domain event.
type EventKind string

const (
	EventTransition EventKind = "transition"
	EventXP         EventKind = "xp"
	EventBadge      EventKind = "badge"
)

// XPGrant describes one XP credit.
type XPGrant struct {
	Amount int       `json:"amount"`
	Source xp.Source `json:"source"`
	Reason string    `json:"reason"`
}

// Event is something that happened to the learner. Exactly one of the
// payload fields is set, matching Kind.
type Event struct {
	Kind       EventKind            `json:"kind"`
	At         time.Time            `json:"at"`
	Transition *progress.Transition `json:"transition,omitempty"`
	XP         *XPGrant             `json:"xp,omitempty"`
	Badge      *achievements.Badge  `json:"badge,omitempty"`
}

// LevelUp records a level change caused by a command.
type LevelUp struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Outcome is the result of a command.
type Outcome struct {
	Transition *progress.Transition `json:"transition,omitempty"`
	XPAwarded  int                  `json:"xp_awarded"` // includes badge rewards
	NewBadges  []achievements.Badge `json:"new_badges,omitempty"`
	LevelUp    *LevelUp             `json:"level_up,omitempty"`
}
