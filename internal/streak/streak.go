package streak

import (
	"sort"
	"time"

	"github.com/abhisek/spinlab/internal/store"
)

// DayLayout is the key format for an activity day.
const DayLayout = "2006-01-02"

// Tracker keeps the set of distinct days with learning activity. Current and
// longest streaks are always derived from the set.
type Tracker struct {
	loc  *time.Location
	days map[string]bool
}

// NewTracker creates an empty tracker that buckets days in loc.
// A nil location means UTC.
func NewTracker(loc *time.Location) *Tracker {
	if loc == nil {
		loc = time.UTC
	}
	return &Tracker{loc: loc, days: make(map[string]bool)}
}

// Location returns the time zone used for day boundaries.
func (t *Tracker) Location() *time.Location {
	return t.loc
}

// DayKey returns the activity day for a timestamp.
func (t *Tracker) DayKey(at time.Time) string {
	return at.In(t.loc).Format(DayLayout)
}

// Record adds the day of at to the activity set. It reports whether the day
// was new.
func (t *Tracker) Record(at time.Time) bool {
	key := t.DayKey(at)
	if t.days[key] {
		return false
	}
	t.days[key] = true
	return true
}

// Active reports whether there is activity on the day of now.
func (t *Tracker) Active(now time.Time) bool {
	return t.days[t.DayKey(now)]
}

// Days returns the activity days in ascending order.
func (t *Tracker) Days() []string {
	out := make([]string, 0, len(t.days))
	for d := range t.days {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Current returns the length of the run of consecutive days ending today,
// or ending yesterday when today has no activity yet.
func (t *Tracker) Current(now time.Time) int {
	day := civil(now.In(t.loc))
	if !t.days[day.Format(DayLayout)] {
		day = day.AddDate(0, 0, -1)
	}
	n := 0
	for t.days[day.Format(DayLayout)] {
		n++
		day = day.AddDate(0, 0, -1)
	}
	return n
}

// Longest returns the longest run of consecutive days ever recorded.
func (t *Tracker) Longest() int {
	days := t.Days()
	longest, run := 0, 0
	var prev time.Time
	for i, key := range days {
		d, err := time.ParseInLocation(DayLayout, key, time.UTC)
		if err != nil {
			continue
		}
		if i > 0 && prev.AddDate(0, 0, 1).Equal(d) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = d
	}
	return longest
}

// civil truncates t to midnight in UTC on the same calendar date, so that
// AddDate steps whole days without DST surprises.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NextMilestone returns the next streak milestone above current.
// Milestones are 3, 7, 14, 30 and then every 30 days.
func NextMilestone(current int) int {
	for _, m := range []int{3, 7, 14, 30} {
		if m > current {
			return m
		}
	}
	return ((current / 30) + 1) * 30
}

// SnapshotData exports the activity days.
func (t *Tracker) SnapshotData() *store.StreakSnapshotData {
	return &store.StreakSnapshotData{Days: t.Days()}
}

// LoadSnapshot replaces the activity set. Malformed day keys are dropped.
func (t *Tracker) LoadSnapshot(data *store.StreakSnapshotData) {
	t.days = make(map[string]bool)
	if data == nil {
		return
	}
	for _, d := range data.Days {
		if _, err := time.Parse(DayLayout, d); err == nil {
			t.days[d] = true
		}
	}
}
