package profiles

import (
	"context"
	"sort"
	"time"

	"github.com/abhisek/spinlab/internal/engine"
	"github.com/abhisek/spinlab/internal/store"
)

// Activity is one entry of a learner's event log. Only the fields of its
// Kind are set.
type Activity struct {
	Sequence  int64            `json:"sequence"`
	Timestamp time.Time        `json:"timestamp"`
	Kind      engine.EventKind `json:"kind"`

	ItemID  string `json:"item_id,omitempty"`
	From    string `json:"from,omitempty"`
	To      string `json:"to,omitempty"`
	Trigger string `json:"trigger,omitempty"`

	Amount int    `json:"amount,omitempty"`
	Source string `json:"source,omitempty"`
	Reason string `json:"reason,omitempty"`

	BadgeID   string `json:"badge_id,omitempty"`
	BadgeName string `json:"badge_name,omitempty"`
	Rarity    string `json:"rarity,omitempty"`
}

// DefaultHistoryLimit is used when History is called with limit <= 0.
const DefaultHistoryLimit = 50

// History returns the user's most recent events across every event table,
// newest first.
func (m *Manager) History(ctx context.Context, userID string, limit int) ([]Activity, error) {
	if err := ValidateUserID(userID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	opts := store.QueryOpts{Limit: limit, Desc: true}

	progress, err := m.events.QueryProgressEvents(ctx, userID, opts)
	if err != nil {
		return nil, err
	}
	xps, err := m.events.QueryXPEvents(ctx, userID, opts)
	if err != nil {
		return nil, err
	}
	badges, err := m.events.QueryBadgeEvents(ctx, userID, opts)
	if err != nil {
		return nil, err
	}

	out := make([]Activity, 0, len(progress)+len(xps)+len(badges))
	for _, e := range progress {
		out = append(out, Activity{
			Sequence: e.Sequence, Timestamp: e.Timestamp, Kind: engine.EventTransition,
			ItemID: e.ItemID, From: e.From, To: e.To, Trigger: e.Trigger,
		})
	}
	for _, e := range xps {
		out = append(out, Activity{
			Sequence: e.Sequence, Timestamp: e.Timestamp, Kind: engine.EventXP,
			Amount: e.Amount, Source: e.Source, Reason: e.Reason,
		})
	}
	for _, e := range badges {
		out = append(out, Activity{
			Sequence: e.Sequence, Timestamp: e.Timestamp, Kind: engine.EventBadge,
			BadgeID: e.BadgeID, BadgeName: e.BadgeName, Rarity: e.Rarity, Amount: e.XPAwarded,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Sequence > out[j].Sequence })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
