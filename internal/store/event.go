package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter manages the global monotonic sequence number shared by
// snapshots and every event table. Per-table auto-increment IDs can't order
// a progress event against an XP event, so each row takes its sequence
// from this single counter instead.
//
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo with ent's SQL builders.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) appendRow(ctx context.Context, table string, columns []string, values []any) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	query, args := builder().Insert(table).
		Columns(append([]string{"sequence"}, columns...)...).
		Values(append([]any{seq}, values...)...).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append %s: %w", table, err)
	}
	return nil
}

func (r *eventRepo) AppendProgressEvent(ctx context.Context, d ProgressEventData) error {
	return r.appendRow(ctx, progressEventsTable,
		[]string{"timestamp", "user_id", "item_id", "from_status", "to_status", "trigger_name"},
		[]any{d.Timestamp.UTC(), d.UserID, d.ItemID, d.From, d.To, d.Trigger},
	)
}

func (r *eventRepo) AppendXPEvent(ctx context.Context, d XPEventData) error {
	var reason any
	if d.Reason != "" {
		reason = d.Reason
	}
	return r.appendRow(ctx, xpEventsTable,
		[]string{"timestamp", "user_id", "amount", "source", "reason"},
		[]any{d.Timestamp.UTC(), d.UserID, d.Amount, d.Source, reason},
	)
}

func (r *eventRepo) AppendBadgeEvent(ctx context.Context, d BadgeEventData) error {
	return r.appendRow(ctx, badgeEventsTable,
		[]string{"timestamp", "user_id", "badge_id", "badge_name", "rarity", "xp_awarded"},
		[]any{d.Timestamp.UTC(), d.UserID, d.BadgeID, d.BadgeName, d.Rarity, d.XPAwarded},
	)
}

// eventQuery builds a filtered select over one event table. The first three
// selected columns are always sequence, timestamp and user_id.
func eventQuery(table, userID string, opts QueryOpts, columns ...string) (string, []any) {
	b := builder()
	s := b.Select(append([]string{"sequence", "timestamp", "user_id"}, columns...)...).
		From(b.Table(table)).
		Where(entsql.EQ("user_id", userID))
	if opts.After > 0 {
		s.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		s.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		s.Where(entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		s.Where(entsql.LTE("timestamp", opts.To.UTC()))
	}
	if opts.Desc {
		s.OrderBy(entsql.Desc("sequence"))
	} else {
		s.OrderBy("sequence")
	}
	if opts.Limit > 0 {
		s.Limit(opts.Limit)
	}
	return s.Query()
}

func queryEvents[T any](ctx context.Context, db *sql.DB, query string, args []any, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *eventRepo) QueryProgressEvents(ctx context.Context, userID string, opts QueryOpts) ([]ProgressEvent, error) {
	query, args := eventQuery(progressEventsTable, userID, opts, "item_id", "from_status", "to_status", "trigger_name")
	return queryEvents(ctx, r.db, query, args, func(rows *sql.Rows) (ProgressEvent, error) {
		var e ProgressEvent
		err := rows.Scan(&e.Sequence, &e.Timestamp, &e.UserID, &e.ItemID, &e.From, &e.To, &e.Trigger)
		return e, err
	})
}

func (r *eventRepo) QueryXPEvents(ctx context.Context, userID string, opts QueryOpts) ([]XPEvent, error) {
	query, args := eventQuery(xpEventsTable, userID, opts, "amount", "source", "reason")
	return queryEvents(ctx, r.db, query, args, func(rows *sql.Rows) (XPEvent, error) {
		var (
			e      XPEvent
			reason sql.NullString
		)
		err := rows.Scan(&e.Sequence, &e.Timestamp, &e.UserID, &e.Amount, &e.Source, &reason)
		e.Reason = reason.String
		return e, err
	})
}

func (r *eventRepo) QueryBadgeEvents(ctx context.Context, userID string, opts QueryOpts) ([]BadgeEvent, error) {
	query, args := eventQuery(badgeEventsTable, userID, opts, "badge_id", "badge_name", "rarity", "xp_awarded")
	return queryEvents(ctx, r.db, query, args, func(rows *sql.Rows) (BadgeEvent, error) {
		var e BadgeEvent
		err := rows.Scan(&e.Sequence, &e.Timestamp, &e.UserID, &e.BadgeID, &e.BadgeName, &e.Rarity, &e.XPAwarded)
		return e, err
	})
}

func (r *eventRepo) DeleteUser(ctx context.Context, userID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{progressEventsTable, xpEventsTable, badgeEventsTable} {
		query, args := builder().Delete(table).Where(entsql.EQ("user_id", userID)).Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	return tx.Commit()
}
