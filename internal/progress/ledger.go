package progress

import (
	"sort"
	"time"

	"github.com/abhisek/spinlab/internal/catalog"
	"github.com/abhisek/spinlab/internal/errs"
)

// Record holds all progress data for a single item.
type Record struct {
	ItemID           string     `json:"item_id"`
	Status           Status     `json:"status"`
	WatchTimeSeconds int        `json:"watch_time_seconds"`
	XPEarned         int        `json:"xp_earned"`
	LastActivityAt   *time.Time `json:"last_activity_at,omitempty"`
	MasteredAt       *time.Time `json:"mastered_at,omitempty"` // When mastery was achieved
}

// Ledger is the per-user source of truth for item progress. Records are
// created lazily on first interaction and never deleted.
type Ledger struct {
	catalog *catalog.Catalog
	records map[string]*Record
}

// NewLedger creates an empty ledger over the given catalog.
func NewLedger(cat *catalog.Catalog) *Ledger {
	return &Ledger{
		catalog: cat,
		records: make(map[string]*Record),
	}
}

// Catalog returns the catalog the ledger validates against.
func (l *Ledger) Catalog() *catalog.Catalog {
	return l.catalog
}

// Status implements StatusReader.
func (l *Ledger) Status(itemID string) Status {
	if r, ok := l.records[itemID]; ok {
		return r.Status
	}
	return StatusNotStarted
}

// Get returns a copy of the record for an item, or a not-started record if
// the item has never been touched.
func (l *Ledger) Get(itemID string) Record {
	if r, ok := l.records[itemID]; ok {
		return *r
	}
	return Record{ItemID: itemID, Status: StatusNotStarted}
}

// Records returns copies of all records, sorted by item ID.
func (l *Ledger) Records() []Record {
	result := make([]Record, 0, len(l.records))
	for _, r := range l.records {
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ItemID < result[j].ItemID })
	return result
}

func (l *Ledger) record(itemID string) *Record {
	r, ok := l.records[itemID]
	if !ok {
		r = &Record{ItemID: itemID, Status: StatusNotStarted}
		l.records[itemID] = r
	}
	return r
}

// State resolves the display state of an item against this ledger.
func (l *Ledger) State(itemID string) (DisplayState, error) {
	return Resolve(itemID, l, l.catalog)
}

// RecordActivity marks an item as being watched or practiced. Status only
// moves forward: practicing never regresses to watching and mastered items
// are left alone. The returned transition is nil when the status did not
// change.
func (l *Ledger) RecordActivity(itemID string, kind ActivityKind, now time.Time) (*Transition, error) {
	item, err := l.catalog.Get(itemID)
	if err != nil {
		return nil, err
	}
	if _, err := ParseActivityKind(string(kind)); err != nil {
		return nil, err
	}

	r := l.record(itemID)
	r.LastActivityAt = &now

	to := kind.target()
	if !CanTransition(r.Status, to) {
		return nil, nil
	}
	t := &Transition{
		ItemID:   itemID,
		ItemName: item.Name,
		From:     r.Status,
		To:       to,
		Trigger:  triggerFor(kind),
	}
	r.Status = to
	return t, nil
}

func triggerFor(kind ActivityKind) string {
	if kind == ActivityStartPracticing {
		return "start-practicing"
	}
	return "start-watching"
}

// RecordMastery marks an item mastered and returns the XP it earned.
// Mastering an already-mastered item is a no-op: no transition, no XP,
// no error. Locked items fail with PrerequisiteNotMetError.
func (l *Ledger) RecordMastery(itemID string, now time.Time) (*Transition, int, error) {
	item, err := l.catalog.Get(itemID)
	if err != nil {
		return nil, 0, err
	}
	if l.Status(itemID) == StatusMastered {
		return nil, 0, nil
	}
	if !prerequisitesMet(item, l, l.catalog) {
		missing, _ := UnmetPrerequisites(itemID, l, l.catalog)
		return nil, 0, &errs.PrerequisiteNotMetError{ItemID: itemID, Missing: missing}
	}

	// A negative reward is a catalog defect; it earns nothing.
	reward := max(item.XPReward, 0)

	r := l.record(itemID)
	t := &Transition{
		ItemID:   itemID,
		ItemName: item.Name,
		From:     r.Status,
		To:       StatusMastered,
		Trigger:  "mastered",
	}
	r.Status = StatusMastered
	r.XPEarned = reward
	r.MasteredAt = &now
	r.LastActivityAt = &now
	return t, reward, nil
}

// RecordWatchTime adds watched seconds to an item.
func (l *Ledger) RecordWatchTime(itemID string, deltaSeconds int, now time.Time) error {
	if _, err := l.catalog.Get(itemID); err != nil {
		return err
	}
	if deltaSeconds < 0 {
		return errs.Invalid("delta_seconds", "must be >= 0, got %d", deltaSeconds)
	}
	r := l.record(itemID)
	r.WatchTimeSeconds += deltaSeconds
	r.LastActivityAt = &now
	return nil
}

// MasteredSet returns the set of mastered item IDs.
func (l *Ledger) MasteredSet() map[string]bool {
	result := make(map[string]bool)
	for id, r := range l.records {
		if r.Status == StatusMastered {
			result[id] = true
		}
	}
	return result
}

// MasteredCount returns the number of mastered items.
func (l *Ledger) MasteredCount() int {
	n := 0
	for _, r := range l.records {
		if r.Status == StatusMastered {
			n++
		}
	}
	return n
}

// TotalWatchSeconds returns the watch time summed over all items.
func (l *Ledger) TotalWatchSeconds() int {
	total := 0
	for _, r := range l.records {
		total += r.WatchTimeSeconds
	}
	return total
}

// TotalXPEarned returns the XP earned from mastered items.
func (l *Ledger) TotalXPEarned() int {
	total := 0
	for _, r := range l.records {
		total += r.XPEarned
	}
	return total
}
