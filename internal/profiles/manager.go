// Package profiles loads and persists per-user engines.
//
// Every command runs against an engine rebuilt from the user's latest
// snapshot. A successful command writes a new snapshot and appends the
// engine's drained events; a failed command writes nothing.
package profiles

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/spinlab/internal/catalog"
	"github.com/abhisek/spinlab/internal/engine"
	"github.com/abhisek/spinlab/internal/errs"
	"github.com/abhisek/spinlab/internal/logger"
	"github.com/abhisek/spinlab/internal/store"
)

// Options configures a Manager.
type Options struct {
	Engine    engine.Options
	Retention int // snapshots kept per user; 0 keeps everything
	Logger    *logger.Logger
}

// Manager serializes commands per user and persists their results.
type Manager struct {
	catalog   *catalog.Catalog
	snapshots store.SnapshotRepo
	events    store.EventRepo
	opts      engine.Options
	retention int
	log       *logger.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewManager creates a Manager over the given repositories.
func NewManager(cat *catalog.Catalog, snapshots store.SnapshotRepo, events store.EventRepo, opts Options) *Manager {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	return &Manager{
		catalog:   cat,
		snapshots: snapshots,
		events:    events,
		opts:      opts.Engine,
		retention: opts.Retention,
		log:       log,
		locks:     make(map[string]*sync.Mutex),
	}
}

// Catalog returns the catalog every engine is built with.
func (m *Manager) Catalog() *catalog.Catalog {
	return m.catalog
}

// NewUserID returns a fresh random user ID.
func NewUserID() string {
	return uuid.NewString()
}

// ValidateUserID checks that id is usable as a user key.
func ValidateUserID(id string) error {
	if id == "" {
		return errs.Invalid("user", "user ID is required")
	}
	if len(id) > 128 {
		return errs.Invalid("user", "user ID is longer than 128 characters")
	}
	if strings.ContainsAny(id, " \t\r\n/") {
		return errs.Invalid("user", "user ID %q contains whitespace or '/'", id)
	}
	return nil
}

func (m *Manager) lock(userID string) func() {
	m.mu.Lock()
	l, ok := m.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		m.locks[userID] = l
	}
	m.mu.Unlock()
	l.Lock()
	return l.Unlock
}

func (m *Manager) load(ctx context.Context, userID string) (*engine.Engine, error) {
	e, err := engine.New(m.catalog, m.opts)
	if err != nil {
		return nil, err
	}
	snap, err := m.snapshots.Latest(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", userID, err)
	}
	if snap != nil {
		if snap.Data.Version > store.CurrentSnapshotVersion {
			m.log.Warn("snapshot from a newer version", "user", userID, "version", snap.Data.Version)
		}
		e.Restore(&snap.Data)
	}
	return e, nil
}

// Do runs fn against the user's engine and persists the result when fn
// succeeds.
func (m *Manager) Do(ctx context.Context, userID string, fn func(*engine.Engine) error) error {
	if err := ValidateUserID(userID); err != nil {
		return err
	}
	unlock := m.lock(userID)
	defer unlock()

	e, err := m.load(ctx, userID)
	if err != nil {
		return err
	}
	if err := fn(e); err != nil {
		return err
	}
	return m.persist(ctx, userID, e)
}

// View runs fn against the user's engine without persisting anything.
func (m *Manager) View(ctx context.Context, userID string, fn func(*engine.Engine) error) error {
	if err := ValidateUserID(userID); err != nil {
		return err
	}
	unlock := m.lock(userID)
	defer unlock()

	e, err := m.load(ctx, userID)
	if err != nil {
		return err
	}
	return fn(e)
}

// Create registers a new user with empty state and returns its ID.
func (m *Manager) Create(ctx context.Context) (string, error) {
	id := NewUserID()
	if err := m.Do(ctx, id, func(*engine.Engine) error { return nil }); err != nil {
		return "", err
	}
	m.log.Info("user created", "user", id)
	return id, nil
}

// Reset deletes every snapshot and event of the user.
func (m *Manager) Reset(ctx context.Context, userID string) error {
	if err := ValidateUserID(userID); err != nil {
		return err
	}
	unlock := m.lock(userID)
	defer unlock()

	if err := m.snapshots.DeleteUser(ctx, userID); err != nil {
		return err
	}
	if err := m.events.DeleteUser(ctx, userID); err != nil {
		return err
	}
	m.log.Info("user reset", "user", userID)
	return nil
}

// Users lists every user with stored state.
func (m *Manager) Users(ctx context.Context) ([]string, error) {
	return m.snapshots.Users(ctx)
}

func (m *Manager) persist(ctx context.Context, userID string, e *engine.Engine) error {
	log := m.log.With("user", userID)

	snap := &store.Snapshot{
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Data:      *e.Snapshot(),
	}
	if err := m.snapshots.Save(ctx, snap); err != nil {
		return fmt.Errorf("save snapshot for %s: %w", userID, err)
	}

	for _, ev := range e.Events() {
		if err := m.appendEvent(ctx, userID, ev); err != nil {
			log.Warn("failed to append event", "kind", ev.Kind, "error", err)
		}
	}

	if m.retention > 0 {
		if err := m.snapshots.Prune(ctx, userID, m.retention); err != nil {
			log.Warn("failed to prune snapshots", "error", err)
		}
	}
	log.Debug("state saved", "sequence", snap.Sequence)
	return nil
}

func (m *Manager) appendEvent(ctx context.Context, userID string, ev engine.Event) error {
	switch ev.Kind {
	case engine.EventTransition:
		t := ev.Transition
		return m.events.AppendProgressEvent(ctx, store.ProgressEventData{
			UserID:    userID,
			ItemID:    t.ItemID,
			From:      string(t.From),
			To:        string(t.To),
			Trigger:   t.Trigger,
			Timestamp: ev.At,
		})
	case engine.EventXP:
		return m.events.AppendXPEvent(ctx, store.XPEventData{
			UserID:    userID,
			Amount:    ev.XP.Amount,
			Source:    string(ev.XP.Source),
			Reason:    ev.XP.Reason,
			Timestamp: ev.At,
		})
	case engine.EventBadge:
		b := ev.Badge
		return m.events.AppendBadgeEvent(ctx, store.BadgeEventData{
			UserID:    userID,
			BadgeID:   b.ID,
			BadgeName: b.Name,
			Rarity:    string(b.Rarity),
			XPAwarded: b.XPAwarded,
			Timestamp: ev.At,
		})
	default:
		return fmt.Errorf("unknown event kind %q", ev.Kind)
	}
}
