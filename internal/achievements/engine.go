package achievements

import (
	"math"
	"sort"
	"time"

	"github.com/abhisek/spinlab/internal/errs"
	"github.com/abhisek/spinlab/internal/store"
)

// Badge is an earned badge.
type Badge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Rarity      Rarity    `json:"rarity"`
	XPAwarded   int       `json:"xp_awarded"`
	EarnedAt    time.Time `json:"earned_at"`
}

// Candidate is an unearned badge with the learner's progress toward it.
type Candidate struct {
	Definition Definition `json:"badge"`
	Progress   float64    `json:"progress"`
}

// Percent returns progress as a whole percentage.
func (c Candidate) Percent() int {
	return int(math.Round(c.Progress * 100))
}

// Engine evaluates badge definitions and remembers what was earned. Earned
// badges are permanent; the pending queue only tracks which ones the learner
// has not yet been shown.
type Engine struct {
	defs    []Definition
	byID    map[string]int
	earned  map[string]Badge
	order   []string
	pending []string
}

// NewEngine validates the definitions and builds an engine with nothing earned.
func NewEngine(defs []Definition) (*Engine, error) {
	e := &Engine{
		defs:   make([]Definition, 0, len(defs)),
		byID:   make(map[string]int, len(defs)),
		earned: make(map[string]Badge),
	}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, dup := e.byID[d.ID]; dup {
			return nil, errs.Invalid("id", "duplicate badge ID %q", d.ID)
		}
		e.byID[d.ID] = len(e.defs)
		e.defs = append(e.defs, d)
	}
	return e, nil
}

// Definitions returns all definitions in declared order.
func (e *Engine) Definitions() []Definition {
	out := make([]Definition, len(e.defs))
	copy(out, e.defs)
	return out
}

// Definition looks up a definition by ID.
func (e *Engine) Definition(id string) (Definition, error) {
	i, ok := e.byID[id]
	if !ok {
		return Definition{}, errs.NotFound("badge", id)
	}
	return e.defs[i], nil
}

// Evaluate awards every unearned badge whose predicate holds for s, in
// declared order. New badges are queued for notification and returned.
func (e *Engine) Evaluate(s State, now time.Time) []Badge {
	var awarded []Badge
	for _, d := range e.defs {
		if _, ok := e.earned[d.ID]; ok {
			continue
		}
		if !d.Predicate(s) {
			continue
		}
		b := Badge{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Rarity:      d.Rarity,
			XPAwarded:   d.XPReward,
			EarnedAt:    now,
		}
		e.earned[d.ID] = b
		e.order = append(e.order, d.ID)
		e.pending = append(e.pending, d.ID)
		awarded = append(awarded, b)
	}
	return awarded
}

// Has reports whether a badge was earned.
func (e *Engine) Has(id string) bool {
	_, ok := e.earned[id]
	return ok
}

// Earned returns earned badges in the order they were awarded.
func (e *Engine) Earned() []Badge {
	out := make([]Badge, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.earned[id])
	}
	return out
}

// Pending returns earned badges the learner has not acknowledged yet.
func (e *Engine) Pending() []Badge {
	out := make([]Badge, 0, len(e.pending))
	for _, id := range e.pending {
		out = append(out, e.earned[id])
	}
	return out
}

// Acknowledge removes a badge from the notification queue.
func (e *Engine) Acknowledge(id string) error {
	for i, p := range e.pending {
		if p == id {
			e.pending = append(e.pending[:i], e.pending[i+1:]...)
			return nil
		}
	}
	return errs.NotFound("notification", id)
}

// Next returns unearned badges ordered by progress, closest first. Ties keep
// declared order. A limit <= 0 returns all candidates.
func (e *Engine) Next(s State, limit int) []Candidate {
	var out []Candidate
	for _, d := range e.defs {
		if e.Has(d.ID) {
			continue
		}
		out = append(out, Candidate{Definition: d, Progress: d.Progress(s)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Progress > out[j].Progress })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SnapshotData exports earned badges and the pending queue.
func (e *Engine) SnapshotData() *store.BadgeSnapshotData {
	data := &store.BadgeSnapshotData{
		Earned:  make([]store.EarnedBadgeData, 0, len(e.order)),
		Pending: append([]string(nil), e.pending...),
	}
	for _, id := range e.order {
		b := e.earned[id]
		data.Earned = append(data.Earned, store.EarnedBadgeData{
			ID:        b.ID,
			EarnedAt:  b.EarnedAt.Format(time.RFC3339),
			XPAwarded: b.XPAwarded,
		})
	}
	return data
}

// LoadSnapshot restores earned badges. Badges whose definition has since
// been removed stay earned under their ID.
func (e *Engine) LoadSnapshot(data *store.BadgeSnapshotData) {
	e.earned = make(map[string]Badge)
	e.order = nil
	e.pending = nil
	if data == nil {
		return
	}
	for _, eb := range data.Earned {
		if _, dup := e.earned[eb.ID]; dup {
			continue
		}
		b := Badge{ID: eb.ID, Name: eb.ID, XPAwarded: eb.XPAwarded, Rarity: RarityCommon}
		if d, err := e.Definition(eb.ID); err == nil {
			b.Name = d.Name
			b.Description = d.Description
			b.Rarity = d.Rarity
		}
		if t, err := time.Parse(time.RFC3339, eb.EarnedAt); err == nil {
			b.EarnedAt = t
		}
		e.earned[eb.ID] = b
		e.order = append(e.order, eb.ID)
	}
	for _, id := range data.Pending {
		if _, ok := e.earned[id]; ok {
			e.pending = append(e.pending, id)
		}
	}
}
