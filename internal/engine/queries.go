package engine

import (
	"github.com/abhisek/spinlab/internal/achievements"
	"github.com/abhisek/spinlab/internal/catalog"
	"github.com/abhisek/spinlab/internal/progress"
	"github.com/abhisek/spinlab/internal/streak"
	"github.com/abhisek/spinlab/internal/xp"
)

// ItemView is an item with its effective state and stored progress.
type ItemView struct {
	Item    catalog.SkillItem     `json:"item"`
	State   progress.DisplayState `json:"state"`
	Record  progress.Record       `json:"progress"`
	Missing []string              `json:"missing_prerequisites,omitempty"`
}

// StreakView summarizes day streaks.
type StreakView struct {
	Current       int  `json:"current"`
	Longest       int  `json:"longest"`
	ActiveToday   bool `json:"active_today"`
	NextMilestone int  `json:"next_milestone"`
}

// LevelView is the learner's XP position.
type LevelView struct {
	xp.Level
	LifetimeXP int            `json:"lifetime_xp"`
	PercentNow int            `json:"percent"`
	BySource   map[string]int `json:"by_source"`
}

// PathSummary is one row of the dashboard path list.
type PathSummary struct {
	Path       catalog.Path        `json:"path"`
	Completion progress.Completion `json:"completion"`
}

// Dashboard aggregates everything the home screen shows.
type Dashboard struct {
	Level      LevelView                `json:"level"`
	Streak     StreakView               `json:"streak"`
	Overall    progress.Completion      `json:"overall"`
	Paths      []PathSummary            `json:"paths"`
	Continue   []catalog.SkillItem      `json:"continue"`
	Pending    []achievements.Badge     `json:"pending_badges"`
	NextBadges []achievements.Candidate `json:"next_badges"`
	Onboarding OnboardingView           `json:"onboarding"`
}

// dashboardContinueLimit caps the "continue learning" list.
const dashboardContinueLimit = 5

func (e *Engine) itemView(it catalog.SkillItem) ItemView {
	state, _ := progress.Resolve(it.ID, e.progress, e.catalog)
	v := ItemView{Item: it, State: state, Record: e.progress.Get(it.ID)}
	if state == progress.DisplayLocked {
		v.Missing, _ = progress.UnmetPrerequisites(it.ID, e.progress, e.catalog)
	}
	return v
}

// ItemState returns one item's view.
func (e *Engine) ItemState(itemID string) (ItemView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	it, err := e.catalog.Get(itemID)
	if err != nil {
		return ItemView{}, err
	}
	return e.itemView(it), nil
}

// ItemStates returns views for a path's items, or for the whole catalog
// when pathID is empty.
func (e *Engine) ItemStates(pathID string) ([]ItemView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	items := e.catalog.Items()
	if pathID != "" {
		if _, err := e.catalog.Path(pathID); err != nil {
			return nil, err
		}
		items = e.catalog.ByPath(pathID)
	}
	out := make([]ItemView, 0, len(items))
	for _, it := range items {
		out = append(out, e.itemView(it))
	}
	return out, nil
}

// PathCompletion returns completion for a path.
func (e *Engine) PathCompletion(pathID string) (progress.Completion, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.progress.PathCompletion(pathID)
}

// ModuleCompletion returns completion for a module.
func (e *Engine) ModuleCompletion(moduleID string) (progress.Completion, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.progress.ModuleCompletion(moduleID)
}

// OverallCompletion returns completion across the catalog.
func (e *Engine) OverallCompletion() progress.Completion {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.progress.OverallCompletion()
}

// Recommended returns unlocked, unmastered items, in-progress ones first.
func (e *Engine) Recommended(limit int) []catalog.SkillItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.recommended(limit)
}

func (e *Engine) recommended(limit int) []catalog.SkillItem {
	items := e.progress.AvailableItems()
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

// Streak returns the streak summary as of now.
func (e *Engine) Streak() StreakView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.streakView()
}

func (e *Engine) streakView() StreakView {
	now := e.now()
	cur := e.streak.Current(now)
	return StreakView{
		Current:       cur,
		Longest:       e.streak.Longest(),
		ActiveToday:   e.streak.Active(now),
		NextMilestone: streak.NextMilestone(cur),
	}
}

// Level returns the learner's level.
func (e *Engine) Level() LevelView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.levelView()
}

func (e *Engine) levelView() LevelView {
	lvl := e.xp.Level()
	by := make(map[string]int)
	for k, v := range e.xp.BySource() {
		by[string(k)] = v
	}
	return LevelView{Level: lvl, LifetimeXP: e.xp.Lifetime(), PercentNow: lvl.Percent(), BySource: by}
}

// Badges returns earned badges in award order.
func (e *Engine) Badges() []achievements.Badge {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.badges.Earned()
}

// BadgeDefinitions returns every badge definition.
func (e *Engine) BadgeDefinitions() []achievements.Definition {
	return e.badges.Definitions()
}

// NextBadges returns the unearned badges closest to completion.
func (e *Engine) NextBadges(limit int) []achievements.Candidate {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.badges.Next(e.badgeState(e.now()), limit)
}

// PendingBadges returns badges awaiting acknowledgement.
func (e *Engine) PendingBadges() []achievements.Badge {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.badges.Pending()
}

// Dashboard returns the aggregate home view.
func (e *Engine) Dashboard() Dashboard {
	e.mu.Lock()
	defer e.mu.Unlock()

	d := Dashboard{
		Level:      e.levelView(),
		Streak:     e.streakView(),
		Overall:    e.progress.OverallCompletion(),
		Continue:   e.recommended(dashboardContinueLimit),
		Pending:    e.badges.Pending(),
		NextBadges: e.badges.Next(e.badgeState(e.now()), 3),
		Onboarding: e.onboardingView(),
	}
	for _, p := range e.catalog.Paths() {
		c, _ := e.progress.PathCompletion(p.ID)
		d.Paths = append(d.Paths, PathSummary{Path: p, Completion: c})
	}
	return d
}
