package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file:" + filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if assert.NoError(t, err, tt.pragma) {
			assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{snapshotsTable, progressEventsTable, xpEventsTable, badgeEventsTable} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open("file:" + path)
	require.NoError(t, err)
	require.NoError(t, s.SnapshotRepo().Save(ctx, &Snapshot{
		UserID: "u", Timestamp: time.Now(), Data: SnapshotData{Version: 1},
	}))
	require.NoError(t, s.Close())

	s, err = Open("file:" + path)
	require.NoError(t, err)
	defer s.Close()
	snap, err := s.SnapshotRepo().Latest(ctx, "u")
	require.NoError(t, err)
	require.NotNil(t, snap)

	// The counter resumes past the stored sequence.
	next, err := s.seq.Next(ctx)
	require.NoError(t, err)
	assert.Greater(t, next, snap.Sequence)
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	snap, err := repo.Latest(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, snap, "expected nil snapshot when none exist")

	mastered := "2026-07-01T18:00:00Z"
	now := time.Now().UTC().Truncate(time.Second)
	in := &Snapshot{
		UserID:    "alice",
		Sequence:  42,
		Timestamp: now,
		Data: SnapshotData{
			Version: CurrentSnapshotVersion,
			Progress: &ProgressSnapshotData{Items: map[string]*ItemProgressData{
				"sleeper": {ItemID: "sleeper", Status: "mastered", XPEarned: 50, MasteredAt: &mastered},
			}},
			XP: &XPSnapshotData{Lifetime: 50, BySource: map[string]int{"mastery": 50}},
		},
	}
	require.NoError(t, repo.Save(ctx, in))
	assert.NotZero(t, in.ID)

	snap, err = repo.Latest(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, int64(42), snap.Sequence)
	assert.Equal(t, "alice", snap.UserID)
	assert.True(t, now.Equal(snap.Timestamp), "timestamp = %v, want %v", snap.Timestamp, now)
	require.NotNil(t, snap.Data.Progress)
	assert.Equal(t, "mastered", snap.Data.Progress.Items["sleeper"].Status)
	assert.Equal(t, 50, snap.Data.XP.Lifetime)

	other, err := repo.Latest(ctx, "bob")
	require.NoError(t, err)
	assert.Nil(t, other, "snapshots are per user")
}

func TestSnapshotLatestReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	// Same timestamp for all: ordering comes from the assigned sequence.
	now := time.Now().UTC()
	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.Save(ctx, &Snapshot{
			UserID: "alice", Timestamp: now, Data: SnapshotData{Version: i},
		}))
	}

	snap, err := repo.Latest(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Data.Version)
}

func countSnapshots(t *testing.T, s *Store, userID string) int {
	t.Helper()
	var n int
	require.NoError(t, s.DB().QueryRow(
		"SELECT COUNT(*) FROM snapshots WHERE user_id = ?", userID,
	).Scan(&n))
	return n
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	for i := 1; i <= 7; i++ {
		require.NoError(t, repo.Save(ctx, &Snapshot{UserID: "alice", Timestamp: time.Now(), Data: SnapshotData{Version: i}}))
	}
	require.NoError(t, repo.Save(ctx, &Snapshot{UserID: "bob", Timestamp: time.Now()}))

	require.NoError(t, repo.Prune(ctx, "alice", 5))
	assert.Equal(t, 5, countSnapshots(t, s, "alice"))
	assert.Equal(t, 1, countSnapshots(t, s, "bob"), "prune is scoped to one user")

	snap, err := repo.Latest(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 7, snap.Data.Version)
}

func TestSnapshotPruneWithFewerThanKeep(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		require.NoError(t, repo.Save(ctx, &Snapshot{UserID: "alice", Timestamp: time.Now()}))
	}
	require.NoError(t, repo.Prune(ctx, "alice", 5))
	assert.Equal(t, 2, countSnapshots(t, s, "alice"))
}

func TestSnapshotUsersAndDelete(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	for _, u := range []string{"carol", "alice", "carol"} {
		require.NoError(t, repo.Save(ctx, &Snapshot{UserID: u, Timestamp: time.Now()}))
	}
	users, err := repo.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "carol"}, users)

	require.NoError(t, repo.DeleteUser(ctx, "carol"))
	users, err = repo.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, users)
}

func TestSnapshotSaveRequiresUser(t *testing.T) {
	s := openTestStore(t)
	assert.Error(t, s.SnapshotRepo().Save(context.Background(), &Snapshot{Timestamp: time.Now()}))
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(s.DB())
	require.NoError(t, err)

	first, err := sc.Next(ctx)
	require.NoError(t, err)
	for i := 1; i < 5; i++ {
		seq, err := sc.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, first+int64(i), seq)
	}
}

func TestEventAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()
	base := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.AppendProgressEvent(ctx, ProgressEventData{
		UserID: "alice", ItemID: "sleeper", From: "not_started", To: "watching", Trigger: "start-watching", Timestamp: base,
	}))
	require.NoError(t, repo.AppendProgressEvent(ctx, ProgressEventData{
		UserID: "alice", ItemID: "sleeper", From: "watching", To: "mastered", Trigger: "mark-mastered", Timestamp: base.Add(time.Hour),
	}))
	require.NoError(t, repo.AppendXPEvent(ctx, XPEventData{
		UserID: "alice", Amount: 50, Source: "mastery", Reason: "sleeper", Timestamp: base.Add(time.Hour),
	}))
	require.NoError(t, repo.AppendXPEvent(ctx, XPEventData{
		UserID: "alice", Amount: 10, Source: "bonus", Timestamp: base.Add(2 * time.Hour),
	}))
	require.NoError(t, repo.AppendBadgeEvent(ctx, BadgeEventData{
		UserID: "alice", BadgeID: "first-trick", BadgeName: "First Trick", Rarity: "common", XPAwarded: 50, Timestamp: base.Add(time.Hour),
	}))
	require.NoError(t, repo.AppendXPEvent(ctx, XPEventData{UserID: "bob", Amount: 5, Source: "bonus", Timestamp: base}))

	progress, err := repo.QueryProgressEvents(ctx, "alice", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, progress, 2)
	assert.Equal(t, "watching", progress[0].To)
	assert.Equal(t, "mark-mastered", progress[1].Trigger)
	assert.Less(t, progress[0].Sequence, progress[1].Sequence)

	xps, err := repo.QueryXPEvents(ctx, "alice", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, xps, 2)
	assert.Equal(t, "sleeper", xps[0].Reason)
	assert.Equal(t, "", xps[1].Reason)
	// Sequences are global across tables.
	assert.Greater(t, xps[0].Sequence, progress[1].Sequence)

	badges, err := repo.QueryBadgeEvents(ctx, "alice", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, badges, 1)
	assert.Equal(t, "first-trick", badges[0].BadgeID)
	assert.Equal(t, 50, badges[0].XPAwarded)

	t.Run("filters", func(t *testing.T) {
		got, err := repo.QueryXPEvents(ctx, "alice", QueryOpts{After: xps[0].Sequence})
		require.NoError(t, err)
		assert.Len(t, got, 1)

		got, err = repo.QueryXPEvents(ctx, "alice", QueryOpts{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, got, 1)

		pe, err := repo.QueryProgressEvents(ctx, "alice", QueryOpts{Before: progress[1].Sequence})
		require.NoError(t, err)
		assert.Len(t, pe, 1)

		newest, err := repo.QueryProgressEvents(ctx, "alice", QueryOpts{Limit: 1, Desc: true})
		require.NoError(t, err)
		require.Len(t, newest, 1)
		assert.Equal(t, "mastered", newest[0].To)

		ranged, err := repo.QueryXPEvents(ctx, "alice", QueryOpts{From: base.Add(90 * time.Minute)})
		require.NoError(t, err)
		assert.Len(t, ranged, 1)
	})

	require.NoError(t, repo.DeleteUser(ctx, "alice"))
	xps, err = repo.QueryXPEvents(ctx, "alice", QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, xps)
	bobs, err := repo.QueryXPEvents(ctx, "bob", QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, bobs, 1)
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("env override", func(t *testing.T) {
		want := filepath.Join(dir, "custom", "x.db")
		t.Setenv("SPINLAB_DB", want)
		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.DirExists(t, filepath.Dir(want))
	})

	t.Run("xdg", func(t *testing.T) {
		t.Setenv("SPINLAB_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "spinlab", "spinlab.db"), got)
	})
}
