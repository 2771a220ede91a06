package engine

import (
	"fmt"
	"time"

	"github.com/abhisek/spinlab/internal/progress"
	"github.com/abhisek/spinlab/internal/xp"
)

// StartWatching marks an item as being watched.
func (e *Engine) StartWatching(itemID string) (Outcome, error) {
	return e.recordActivity(itemID, progress.ActivityStartWatching)
}

// StartPracticing marks an item as being practiced.
func (e *Engine) StartPracticing(itemID string) (Outcome, error) {
	return e.recordActivity(itemID, progress.ActivityStartPracticing)
}

// RecordActivity dispatches a raw activity kind.
func (e *Engine) RecordActivity(itemID, kind string) (Outcome, error) {
	k, err := progress.ParseActivityKind(kind)
	if err != nil {
		return Outcome{}, err
	}
	return e.recordActivity(itemID, k)
}

func (e *Engine) recordActivity(itemID string, kind progress.ActivityKind) (Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	before := e.xp.Level()
	t, err := e.progress.RecordActivity(itemID, kind, now)
	if err != nil {
		return Outcome{}, err
	}
	e.streak.Record(now)

	out := Outcome{Transition: t}
	if t != nil {
		e.emit(Event{Kind: EventTransition, At: now, Transition: t})
	}
	e.settle(&out, before, now)
	return out, nil
}

// MarkMastered masters an item and credits its XP reward. Repeating it for a
// mastered item returns an empty outcome.
func (e *Engine) MarkMastered(itemID string) (Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	before := e.xp.Level()
	t, reward, err := e.progress.RecordMastery(itemID, now)
	if err != nil {
		return Outcome{}, err
	}
	if t == nil {
		return Outcome{}, nil
	}
	e.streak.Record(now)
	e.emit(Event{Kind: EventTransition, At: now, Transition: t})

	out := Outcome{Transition: t}
	if err := e.credit(&out, reward, xp.SourceMastery, "mastered "+t.ItemName, now); err != nil {
		return Outcome{}, err
	}
	e.settle(&out, before, now)
	return out, nil
}

// AddWatchTime adds watched seconds to an item. Any positive amount counts as
// activity for the streak.
func (e *Engine) AddWatchTime(itemID string, seconds int) (Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	before := e.xp.Level()
	if err := e.progress.RecordWatchTime(itemID, seconds, now); err != nil {
		return Outcome{}, err
	}
	if seconds > 0 {
		e.streak.Record(now)
	}
	var out Outcome
	e.settle(&out, before, now)
	return out, nil
}

// AddBonusXP credits XP that is not tied to an item.
func (e *Engine) AddBonusXP(amount int, reason string) (Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	before := e.xp.Level()
	if reason == "" {
		reason = "bonus"
	}
	var out Outcome
	if err := e.credit(&out, amount, xp.SourceBonus, reason, now); err != nil {
		return Outcome{}, err
	}
	e.settle(&out, before, now)
	return out, nil
}

// AcknowledgeBadge removes a badge from the notification queue.
func (e *Engine) AcknowledgeBadge(badgeID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.badges.Acknowledge(badgeID)
}

func (e *Engine) credit(out *Outcome, amount int, source xp.Source, reason string, now time.Time) error {
	if _, _, err := e.xp.Add(amount, source); err != nil {
		return err
	}
	if amount == 0 {
		return nil
	}
	out.XPAwarded += amount
	e.emit(Event{Kind: EventXP, At: now, XP: &XPGrant{Amount: amount, Source: source, Reason: reason}})
	return nil
}

// settle evaluates badges until no new badge is earned. Badge rewards feed
// back into XP, which can unlock further XP or level badges.
func (e *Engine) settle(out *Outcome, before xp.Level, now time.Time) {
	for {
		awarded := e.badges.Evaluate(e.badgeState(now), now)
		if len(awarded) == 0 {
			break
		}
		for i := range awarded {
			b := awarded[i]
			out.NewBadges = append(out.NewBadges, b)
			e.emit(Event{Kind: EventBadge, At: now, Badge: &b})
			// Rewards were validated non-negative when the definitions loaded.
			_ = e.credit(out, b.XPAwarded, xp.SourceBadge, fmt.Sprintf("badge %s", b.ID), now)
		}
	}
	if after := e.xp.Level(); after.Level != before.Level {
		out.LevelUp = &LevelUp{From: before.Level, To: after.Level}
	}
}
