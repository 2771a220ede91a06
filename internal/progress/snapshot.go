package progress

import (
	"time"

	"github.com/abhisek/spinlab/internal/store"
)

// SnapshotData exports all records for persistence.
func (l *Ledger) SnapshotData() *store.ProgressSnapshotData {
	data := &store.ProgressSnapshotData{
		Items: make(map[string]*store.ItemProgressData, len(l.records)),
	}
	for id, r := range l.records {
		data.Items[id] = &store.ItemProgressData{
			ItemID:           r.ItemID,
			Status:           string(r.Status),
			WatchTimeSeconds: r.WatchTimeSeconds,
			XPEarned:         r.XPEarned,
			LastActivityAt:   formatTime(r.LastActivityAt),
			MasteredAt:       formatTime(r.MasteredAt),
		}
	}
	return data
}

// LoadSnapshot replaces the ledger contents with persisted records.
// Records with an unrecognized status are dropped.
func (l *Ledger) LoadSnapshot(data *store.ProgressSnapshotData) {
	l.records = make(map[string]*Record)
	if data == nil {
		return
	}
	for id, d := range data.Items {
		if d == nil {
			continue
		}
		status := Status(d.Status)
		if !status.Valid() {
			continue
		}
		l.records[id] = &Record{
			ItemID:           id,
			Status:           status,
			WatchTimeSeconds: d.WatchTimeSeconds,
			XPEarned:         d.XPEarned,
			LastActivityAt:   parseTime(d.LastActivityAt),
			MasteredAt:       parseTime(d.MasteredAt),
		}
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func parseTime(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil
	}
	return &t
}
