package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/spinlab/internal/config"
	"github.com/abhisek/spinlab/internal/engine"
	"github.com/abhisek/spinlab/internal/logger"
	"github.com/abhisek/spinlab/internal/profiles"
	"github.com/abhisek/spinlab/internal/store"
)

// env is everything a command needs to act on one learner.
type env struct {
	cfg     *config.Config
	log     *logger.Logger
	st      *store.Store
	manager *profiles.Manager
	user    string
	out     io.Writer
	json    bool
}

// setup loads the config, opens the store and builds the profile manager.
// The caller must Close the returned env.
func setup(cmd *cobra.Command) (*env, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	cat, err := cfg.LoadCatalog()
	if err != nil {
		return nil, err
	}
	if err := cat.Validate(); err != nil {
		log.Warn("catalog has problems; affected tricks stay locked", "error", err)
	}
	curve, err := cfg.Curve()
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	defs, err := cfg.BadgeDefinitions(cat)
	if err != nil {
		return nil, err
	}

	user, _ := cmd.Flags().GetString("user")
	if user == "" {
		user = cfg.DefaultUser
	}
	if err := profiles.ValidateUserID(user); err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("store opened", "path", dbPath, "items", cat.Len())

	m := profiles.NewManager(cat, st.SnapshotRepo(), st.EventRepo(), profiles.Options{
		Engine: engine.Options{
			Curve:    curve,
			Badges:   defs,
			Location: loc,
		},
		Retention: cfg.SnapshotRetention,
		Logger:    log,
	})

	asJSON, _ := cmd.Flags().GetBool("json")
	return &env{
		cfg:     cfg,
		log:     log.With("user", user),
		st:      st,
		manager: m,
		user:    user,
		out:     cmd.OutOrStdout(),
		json:    asJSON,
	}, nil
}

func (e *env) Close() {
	e.st.Close()
	e.log.Sync()
}

// resolveDBPath returns the database path using --db (highest priority),
// then SPINLAB_DB or the config file, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.Database != "" {
		return cfg.Database, store.EnsureDir(cfg.Database)
	}
	return store.DefaultDBPath()
}

// withEnv wraps a RunE body with setup and teardown.
func withEnv(fn func(cmd *cobra.Command, e *env, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		return fn(cmd, e, args)
	}
}

// do runs fn as a persisted command for the env's learner.
func (e *env) do(cmd *cobra.Command, fn func(*engine.Engine) error) error {
	return e.manager.Do(cmd.Context(), e.user, fn)
}

// view runs fn read-only for the env's learner.
func (e *env) view(cmd *cobra.Command, fn func(*engine.Engine) error) error {
	return e.manager.View(cmd.Context(), e.user, fn)
}

// emit prints v as indented JSON when --json is set and reports whether it
// did.
func (e *env) emit(v any) (bool, error) {
	if !e.json {
		return false, nil
	}
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return true, enc.Encode(v)
}
