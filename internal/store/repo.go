package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
	Desc   bool      // newest first
}

// Snapshot represents a point-in-time capture of one learner's state.
type Snapshot struct {
	ID        int64
	UserID    string
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot. A zero Sequence is assigned from the
	// global counter.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the user's most recent snapshot, or nil if none exist.
	Latest(ctx context.Context, userID string) (*Snapshot, error)

	// Prune deletes all but the user's N most recent snapshots.
	Prune(ctx context.Context, userID string, keep int) error

	// DeleteUser removes every snapshot of the user.
	DeleteUser(ctx context.Context, userID string) error

	// Users lists user IDs with at least one snapshot, sorted.
	Users(ctx context.Context) ([]string, error)
}

// ProgressEventData captures one item status transition.
type ProgressEventData struct {
	UserID    string
	ItemID    string
	From      string
	To        string
	Trigger   string
	Timestamp time.Time
}

// XPEventData captures one XP grant.
type XPEventData struct {
	UserID    string
	Amount    int
	Source    string
	Reason    string
	Timestamp time.Time
}

// BadgeEventData captures one badge award.
type BadgeEventData struct {
	UserID    string
	BadgeID   string
	BadgeName string
	Rarity    string
	XPAwarded int
	Timestamp time.Time
}

// ProgressEvent is a stored ProgressEventData.
type ProgressEvent struct {
	Sequence int64
	ProgressEventData
}

// XPEvent is a stored XPEventData.
type XPEvent struct {
	Sequence int64
	XPEventData
}

// BadgeEvent is a stored BadgeEventData.
type BadgeEvent struct {
	Sequence int64
	BadgeEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendProgressEvent(ctx context.Context, data ProgressEventData) error
	AppendXPEvent(ctx context.Context, data XPEventData) error
	AppendBadgeEvent(ctx context.Context, data BadgeEventData) error

	// Query methods return the user's events in sequence order, or newest
	// first when opts.Desc is set.
	QueryProgressEvents(ctx context.Context, userID string, opts QueryOpts) ([]ProgressEvent, error)
	QueryXPEvents(ctx context.Context, userID string, opts QueryOpts) ([]XPEvent, error)
	QueryBadgeEvents(ctx context.Context, userID string, opts QueryOpts) ([]BadgeEvent, error)

	// DeleteUser removes every event of the user.
	DeleteUser(ctx context.Context, userID string) error
}
