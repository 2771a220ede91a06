package progress

import "github.com/abhisek/spinlab/internal/catalog"

// DisplayState is the derived state shown to the learner.
type DisplayState string

const (
	DisplayLocked     DisplayState = "locked"
	DisplayAvailable  DisplayState = "available"
	DisplayInProgress DisplayState = "in_progress"
	DisplayMastered   DisplayState = "mastered"
)

// Icon returns the display icon for a state.
func (d DisplayState) Icon() string {
	switch d {
	case DisplayLocked:
		return "🔒"
	case DisplayAvailable:
		return "🔓"
	case DisplayInProgress:
		return "🪀"
	case DisplayMastered:
		return "✅"
	default:
		return "?"
	}
}

// Label returns the display label for a state.
func (d DisplayState) Label() string {
	switch d {
	case DisplayLocked:
		return "Locked"
	case DisplayAvailable:
		return "Available"
	case DisplayInProgress:
		return "In Progress"
	case DisplayMastered:
		return "Mastered"
	default:
		return "Unknown"
	}
}

// StatusReader exposes stored item statuses. Unknown items report
// StatusNotStarted.
type StatusReader interface {
	Status(itemID string) Status
}

// Resolve derives an item's display state from stored progress and the
// prerequisite graph. Mastered items stay mastered regardless of their
// prerequisites; a prerequisite missing from the catalog is never satisfied.
func Resolve(itemID string, statuses StatusReader, cat *catalog.Catalog) (DisplayState, error) {
	item, err := cat.Get(itemID)
	if err != nil {
		return "", err
	}
	return resolveItem(item, statuses, cat), nil
}

func resolveItem(item catalog.SkillItem, statuses StatusReader, cat *catalog.Catalog) DisplayState {
	status := statuses.Status(item.ID)
	if status == StatusMastered {
		return DisplayMastered
	}
	if !prerequisitesMet(item, statuses, cat) {
		return DisplayLocked
	}
	if status.InProgress() {
		return DisplayInProgress
	}
	return DisplayAvailable
}

func prerequisitesMet(item catalog.SkillItem, statuses StatusReader, cat *catalog.Catalog) bool {
	for _, prereqID := range item.Prerequisites {
		if !cat.Has(prereqID) || statuses.Status(prereqID) != StatusMastered {
			return false
		}
	}
	return true
}

// UnmetPrerequisites lists the prerequisites of itemID that are not mastered,
// including ones missing from the catalog.
func UnmetPrerequisites(itemID string, statuses StatusReader, cat *catalog.Catalog) ([]string, error) {
	item, err := cat.Get(itemID)
	if err != nil {
		return nil, err
	}
	var missing []string
	for _, prereqID := range item.Prerequisites {
		if !cat.Has(prereqID) || statuses.Status(prereqID) != StatusMastered {
			missing = append(missing, prereqID)
		}
	}
	return missing, nil
}

// AvailableItems returns unlocked, unmastered items in dependency order.
// In-progress items come first so that "continue" suggestions lead.
func AvailableItems(statuses StatusReader, cat *catalog.Catalog) []catalog.SkillItem {
	var started, fresh []catalog.SkillItem
	for _, it := range cat.TopologicalOrder() {
		switch resolveItem(it, statuses, cat) {
		case DisplayInProgress:
			started = append(started, it)
		case DisplayAvailable:
			fresh = append(fresh, it)
		}
	}
	return append(started, fresh...)
}
