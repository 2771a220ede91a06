// Package config provides YAML-based configuration loading for spinlab.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/spinlab/internal/achievements"
	"github.com/abhisek/spinlab/internal/catalog"
	"github.com/abhisek/spinlab/internal/xp"
)

// Config is the top-level spinlab configuration, loaded from config.yaml.
type Config struct {
	// Database is the SQLite file path. Empty means the XDG default.
	Database string `yaml:"database"`
	// Catalog is a YAML trick catalog. Empty means the built-in one.
	Catalog string `yaml:"catalog"`
	// Timezone decides where a streak day starts and ends.
	Timezone string `yaml:"timezone"`
	// Levels are the cumulative XP thresholds, starting at 0.
	Levels            []int         `yaml:"levels"`
	Badges            []BadgeConfig `yaml:"badges"`
	SnapshotRetention int           `yaml:"snapshot_retention"`
	DefaultUser       string        `yaml:"default_user"`
	Log               LogConfig     `yaml:"log"`
	HTTP              HTTPConfig    `yaml:"http"`
}

// BadgeConfig defines a badge or overrides a built-in one by ID.
type BadgeConfig struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Rarity      string `yaml:"rarity"`
	XP          int    `yaml:"xp"`
	Rule        string `yaml:"rule"`
	Threshold   int    `yaml:"threshold"`
	Target      string `yaml:"target"`
}

// LogConfig selects the zap preset and level.
type LogConfig struct {
	Mode  string `yaml:"mode"`
	Level string `yaml:"level"`
}

// HTTPConfig holds settings for `spinlab serve`.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

const (
	DefaultSnapshotRetention = 10
	DefaultUser              = "default"
	DefaultHTTPAddr          = "127.0.0.1:8080"
)

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// DefaultPath returns $XDG_CONFIG_HOME/spinlab/config.yaml (or the
// ~/.config equivalent).
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "spinlab", "config.yaml")
}

// Load reads the YAML file at path, applies SPINLAB_* environment overrides
// and validates the result. An empty path tries DefaultPath and falls back
// to defaults when that file does not exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	var data []byte
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			data = b
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg, err := decode(data)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse unmarshals YAML bytes into a validated Config. The environment is
// not consulted.
func Parse(data []byte) (*Config, error) {
	cfg, err := decode(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults fills in default values.
func (c *Config) applyDefaults() {
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if len(c.Levels) == 0 {
		c.Levels = append([]int(nil), xp.DefaultThresholds...)
	}
	if c.SnapshotRetention == 0 {
		c.SnapshotRetention = DefaultSnapshotRetention
	}
	if c.DefaultUser == "" {
		c.DefaultUser = DefaultUser
	}
	if c.Log.Mode == "" {
		c.Log.Mode = "off"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = DefaultHTTPAddr
	}
}

// applyEnv overrides fields from SPINLAB_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("SPINLAB_DB"); v != "" {
		c.Database = v
	}
	if v := os.Getenv("SPINLAB_CATALOG"); v != "" {
		c.Catalog = v
	}
	if v := os.Getenv("SPINLAB_TIMEZONE"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("SPINLAB_USER"); v != "" {
		c.DefaultUser = v
	}
	if v := os.Getenv("SPINLAB_LOG_MODE"); v != "" {
		c.Log.Mode = v
	}
	if v := os.Getenv("SPINLAB_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("SPINLAB_HTTP_ADDR"); v != "" {
		c.HTTP.Addr = v
	}
	if v := os.Getenv("SPINLAB_SNAPSHOT_RETENTION"); v != "" {
		// A malformed value is caught by validate.
		n, err := strconv.Atoi(v)
		if err != nil {
			n = -1
		}
		c.SnapshotRetention = n
	}
}

// validate checks that all fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Sprintf("timezone %q: %v", c.Timezone, err))
	}
	if _, err := c.Curve(); err != nil {
		errs = append(errs, fmt.Sprintf("levels: %v", err))
	}
	if c.SnapshotRetention < 1 {
		errs = append(errs, "snapshot_retention must be >= 1")
	}
	switch strings.ToLower(c.Log.Mode) {
	case "off", "none", "nop", "dev", "development", "prod", "production":
	default:
		errs = append(errs, fmt.Sprintf("log.mode %q is not one of off, development, production", c.Log.Mode))
	}
	seen := make(map[string]bool)
	for i, b := range c.Badges {
		if seen[b.ID] {
			errs = append(errs, fmt.Sprintf("badges[%d]: duplicate id %q", i, b.ID))
		}
		seen[b.ID] = true
		if _, err := b.definition(); err != nil {
			errs = append(errs, fmt.Sprintf("badges[%d]: %v", i, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Curve builds the leveling curve.
func (c *Config) Curve() (xp.Curve, error) {
	return xp.NewCurve(c.Levels)
}

// LoadCatalog returns the configured catalog, or the built-in one.
func (c *Config) LoadCatalog() (*catalog.Catalog, error) {
	if c.Catalog == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(c.Catalog)
}

// BadgeDefinitions merges the configured badges over the defaults for cat.
func (c *Config) BadgeDefinitions(cat *catalog.Catalog) ([]achievements.Definition, error) {
	custom := make([]achievements.Definition, 0, len(c.Badges))
	for _, b := range c.Badges {
		d, err := b.definition()
		if err != nil {
			return nil, err
		}
		custom = append(custom, d)
	}
	return achievements.Merge(achievements.DefaultDefinitions(cat), custom), nil
}

func (b BadgeConfig) definition() (achievements.Definition, error) {
	rarity := achievements.RarityCommon
	if b.Rarity != "" {
		r, err := achievements.ParseRarity(b.Rarity)
		if err != nil {
			return achievements.Definition{}, err
		}
		rarity = r
	}
	kind, err := achievements.ParseRuleKind(b.Rule)
	if err != nil {
		return achievements.Definition{}, err
	}
	name := b.Name
	if name == "" {
		name = b.ID
	}
	d := achievements.Definition{
		ID:          b.ID,
		Name:        name,
		Description: b.Description,
		Rarity:      rarity,
		XPReward:    b.XP,
		Rule:        achievements.Rule{Kind: kind, Threshold: b.Threshold, Target: b.Target},
	}
	return d, d.Validate()
}
