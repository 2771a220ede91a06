package progress

import (
	"math"

	"github.com/abhisek/spinlab/internal/catalog"
)

// Completion summarizes how much of a group of items is mastered.
type Completion struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

func completionOf(items []catalog.SkillItem, statuses StatusReader) Completion {
	c := Completion{Total: len(items)}
	for _, it := range items {
		if statuses.Status(it.ID) == StatusMastered {
			c.Completed++
		}
	}
	if c.Total > 0 {
		c.Percentage = int(math.Round(float64(c.Completed) * 100 / float64(c.Total)))
	}
	return c
}

// PathCompletion returns completion for a path. Unknown paths are NotFound.
func (l *Ledger) PathCompletion(pathID string) (Completion, error) {
	if _, err := l.catalog.Path(pathID); err != nil {
		return Completion{}, err
	}
	return completionOf(l.catalog.ByPath(pathID), l), nil
}

// ModuleCompletion returns completion for a module. Unknown modules are NotFound.
func (l *Ledger) ModuleCompletion(moduleID string) (Completion, error) {
	if _, err := l.catalog.Module(moduleID); err != nil {
		return Completion{}, err
	}
	return completionOf(l.catalog.ByModule(moduleID), l), nil
}

// OverallCompletion returns completion across the whole catalog.
func (l *Ledger) OverallCompletion() Completion {
	return completionOf(l.catalog.Items(), l)
}

// PathComplete reports whether every item of a non-empty path is mastered.
func (l *Ledger) PathComplete(pathID string) bool {
	items := l.catalog.ByPath(pathID)
	if len(items) == 0 {
		return false
	}
	c := completionOf(items, l)
	return c.Completed == c.Total
}

// AvailableItems returns the recommend-next list for this ledger.
func (l *Ledger) AvailableItems() []catalog.SkillItem {
	return AvailableItems(l, l.catalog)
}
