package xp

import (
	"github.com/abhisek/spinlab/internal/errs"
	"github.com/abhisek/spinlab/internal/store"
)

// Source identifies where XP came from.
type Source string

const (
	SourceMastery Source = "mastery"
	SourceBadge   Source = "badge"
	SourceBonus   Source = "bonus"
)

// ParseSource validates a raw source name.
func ParseSource(s string) (Source, error) {
	switch src := Source(s); src {
	case SourceMastery, SourceBadge, SourceBonus:
		return src, nil
	default:
		return "", errs.Invalid("source", "unknown xp source %q", s)
	}
}

// Ledger accumulates lifetime XP. The total never decreases.
type Ledger struct {
	curve    Curve
	lifetime int
	bySource map[Source]int
}

// NewLedger creates an empty ledger on the given curve.
func NewLedger(curve Curve) *Ledger {
	if len(curve) == 0 {
		curve = DefaultCurve()
	}
	return &Ledger{curve: curve, bySource: make(map[Source]int)}
}

// Add credits amount XP. Zero is a no-op; negative amounts are rejected.
// It returns the level before and after the credit.
func (l *Ledger) Add(amount int, source Source) (before, after Level, err error) {
	if amount < 0 {
		return Level{}, Level{}, errs.Invalid("amount", "must be >= 0, got %d", amount)
	}
	if _, err := ParseSource(string(source)); err != nil {
		return Level{}, Level{}, err
	}
	before = l.Level()
	l.lifetime += amount
	if amount > 0 {
		l.bySource[source] += amount
	}
	return before, l.Level(), nil
}

// Lifetime returns total XP ever earned.
func (l *Ledger) Lifetime() int {
	return l.lifetime
}

// Level returns the current level on the curve.
func (l *Ledger) Level() Level {
	return l.curve.LevelFor(l.lifetime)
}

// Curve returns the level curve.
func (l *Ledger) Curve() Curve {
	return l.curve
}

// BySource returns a copy of the XP breakdown.
func (l *Ledger) BySource() map[Source]int {
	out := make(map[Source]int, len(l.bySource))
	for k, v := range l.bySource {
		out[k] = v
	}
	return out
}

// SnapshotData exports the ledger.
func (l *Ledger) SnapshotData() *store.XPSnapshotData {
	data := &store.XPSnapshotData{Lifetime: l.lifetime, BySource: make(map[string]int)}
	for k, v := range l.bySource {
		data.BySource[string(k)] = v
	}
	return data
}

// LoadSnapshot restores the ledger.
func (l *Ledger) LoadSnapshot(data *store.XPSnapshotData) {
	l.lifetime = 0
	l.bySource = make(map[Source]int)
	if data == nil {
		return
	}
	if data.Lifetime > 0 {
		l.lifetime = data.Lifetime
	}
	for k, v := range data.BySource {
		l.bySource[Source(k)] = v
	}
}
