package progress

import "github.com/abhisek/spinlab/internal/errs"

// Status is an item's stored position in the learning lifecycle.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusWatching   Status = "in_progress_watching"
	StatusPracticing Status = "in_progress_practicing"
	StatusMastered   Status = "mastered"
)

// transitions is the full table of allowed status changes. Anything not
// listed (including every regression) is rejected.
var transitions = map[Status]map[Status]bool{
	StatusNotStarted: {StatusWatching: true, StatusPracticing: true, StatusMastered: true},
	StatusWatching:   {StatusPracticing: true, StatusMastered: true},
	StatusPracticing: {StatusMastered: true},
	StatusMastered:   {},
}

// CanTransition reports whether the status table allows from → to.
func CanTransition(from, to Status) bool {
	return transitions[from][to]
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// InProgress reports whether s is one of the in-progress statuses.
func (s Status) InProgress() bool {
	return s == StatusWatching || s == StatusPracticing
}

// ActivityKind is a non-terminal learning action on an item.
type ActivityKind string

const (
	ActivityStartWatching   ActivityKind = "start_watching"
	ActivityStartPracticing ActivityKind = "start_practicing"
)

// ParseActivityKind validates a raw activity kind.
func ParseActivityKind(s string) (ActivityKind, error) {
	switch k := ActivityKind(s); k {
	case ActivityStartWatching, ActivityStartPracticing:
		return k, nil
	default:
		return "", errs.Invalid("kind", "unknown activity kind %q", s)
	}
}

func (k ActivityKind) target() Status {
	if k == ActivityStartPracticing {
		return StatusPracticing
	}
	return StatusWatching
}

// Transition records a status change for display and event logging.
type Transition struct {
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
	From     Status `json:"from"`
	To       Status `json:"to"`
	Trigger  string `json:"trigger"` // "start-watching", "start-practicing", "mastered"
}
