// Package engine bundles one learner's progress, streak, XP, badges and
// onboarding state behind a single command/query surface.
//
// Every command runs under the engine's mutex and re-evaluates badges to a
// fixed point before returning, so callers never observe a half-applied
// action.
package engine

import (
	"sync"
	"time"

	"github.com/abhisek/spinlab/internal/achievements"
	"github.com/abhisek/spinlab/internal/catalog"
	"github.com/abhisek/spinlab/internal/onboarding"
	"github.com/abhisek/spinlab/internal/progress"
	"github.com/abhisek/spinlab/internal/store"
	"github.com/abhisek/spinlab/internal/streak"
	"github.com/abhisek/spinlab/internal/xp"
)

// Options configures a new Engine. Zero values pick the defaults.
type Options struct {
	Curve    xp.Curve
	Badges   []achievements.Definition
	Location *time.Location
	Clock    func() time.Time
}

// Engine is the per-user state context.
type Engine struct {
	mu sync.Mutex

	catalog    *catalog.Catalog
	progress   *progress.Ledger
	streak     *streak.Tracker
	xp         *xp.Ledger
	badges     *achievements.Engine
	onboarding *onboarding.Controller

	now    func() time.Time
	events []Event
}

// New creates an engine with empty state.
func New(cat *catalog.Catalog, opts Options) (*Engine, error) {
	defs := opts.Badges
	if defs == nil {
		defs = achievements.DefaultDefinitions(cat)
	}
	badges, err := achievements.NewEngine(defs)
	if err != nil {
		return nil, err
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Engine{
		catalog:    cat,
		progress:   progress.NewLedger(cat),
		streak:     streak.NewTracker(opts.Location),
		xp:         xp.NewLedger(opts.Curve),
		badges:     badges,
		onboarding: onboarding.NewController(cat),
		now:        clock,
	}, nil
}

// Catalog returns the catalog the engine was built with.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Snapshot exports the full state for persistence.
func (e *Engine) Snapshot() *store.SnapshotData {
	e.mu.Lock()
	defer e.mu.Unlock()
	return &store.SnapshotData{
		Version:    store.CurrentSnapshotVersion,
		Progress:   e.progress.SnapshotData(),
		Streak:     e.streak.SnapshotData(),
		XP:         e.xp.SnapshotData(),
		Badges:     e.badges.SnapshotData(),
		Onboarding: e.onboarding.SnapshotData(),
	}
}

// Restore replaces all state from a snapshot. A nil snapshot resets to empty.
func (e *Engine) Restore(data *store.SnapshotData) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if data == nil {
		data = &store.SnapshotData{}
	}
	e.progress.LoadSnapshot(data.Progress)
	e.streak.LoadSnapshot(data.Streak)
	e.xp.LoadSnapshot(data.XP)
	e.badges.LoadSnapshot(data.Badges)
	e.onboarding.LoadSnapshot(data.Onboarding)
	e.events = nil
}

// Events drains the domain events recorded since the last call.
func (e *Engine) Events() []Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := e.events
	e.events = nil
	return out
}

func (e *Engine) emit(ev Event) {
	e.events = append(e.events, ev)
}

func (e *Engine) badgeState(now time.Time) achievements.State {
	mastered := e.progress.MasteredSet()
	return achievements.State{
		Catalog:       e.catalog,
		Mastered:      mastered,
		MasteredCount: len(mastered),
		WatchSeconds:  e.progress.TotalWatchSeconds(),
		LifetimeXP:    e.xp.Lifetime(),
		Level:         e.xp.Level().Level,
		CurrentStreak: e.streak.Current(now),
		LongestStreak: e.streak.Longest(),
	}
}
