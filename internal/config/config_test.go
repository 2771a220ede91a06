package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/spinlab/internal/achievements"
	"github.com/abhisek/spinlab/internal/catalog"
)

const validYAML = `
database: /tmp/spin.db
timezone: Asia/Kolkata
levels: [0, 100, 300]
snapshot_retention: 3
default_user: alice
log:
  mode: production
  level: debug
http:
  addr: ":9000"
badges:
  - id: first-trick
    name: First!
    rarity: rare
    xp: 500
    rule: items_mastered
    threshold: 1
  - id: marathon
    rule: watch_seconds
    threshold: 36000
`

func TestParseValid(t *testing.T) {
	cfg, err := Parse([]byte(validYAML))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/spin.db", cfg.Database)
	assert.Equal(t, []int{0, 100, 300}, cfg.Levels)
	assert.Equal(t, 3, cfg.SnapshotRetention)
	assert.Equal(t, "alice", cfg.DefaultUser)
	assert.Equal(t, "production", cfg.Log.Mode)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", loc.String())

	curve, err := cfg.Curve()
	require.NoError(t, err)
	assert.Equal(t, 3, curve.MaxLevel())
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, "Local", cfg.Timezone)
	assert.Equal(t, DefaultSnapshotRetention, cfg.SnapshotRetention)
	assert.Equal(t, DefaultUser, cfg.DefaultUser)
	assert.Equal(t, DefaultHTTPAddr, cfg.HTTP.Addr)
	assert.Equal(t, "off", cfg.Log.Mode)
	assert.Len(t, cfg.Levels, 10)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad yaml", "levels: [", "parse"},
		{"bad timezone", "timezone: Mars/Olympus", "timezone"},
		{"levels not from zero", "levels: [10, 20]", "levels"},
		{"levels not increasing", "levels: [0, 50, 50]", "levels"},
		{"negative retention", "snapshot_retention: -2", "snapshot_retention"},
		{"bad log mode", "log: {mode: loud}", "log.mode"},
		{"unknown rule", "badges: [{id: x, rule: karma, threshold: 1}]", "badges[0]"},
		{"bad rarity", "badges: [{id: x, rarity: mythic, rule: items_mastered, threshold: 1}]", "badges[0]"},
		{"zero threshold", "badges: [{id: x, rule: items_mastered}]", "badges[0]"},
		{"duplicate badge", "badges: [{id: x, rule: items_mastered, threshold: 1}, {id: x, rule: lifetime_xp, threshold: 1}]", "duplicate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBadgeDefinitionsMergeOverDefaults(t *testing.T) {
	cfg, err := Parse([]byte(validYAML))
	require.NoError(t, err)
	cat := catalog.Default()

	defs, err := cfg.BadgeDefinitions(cat)
	require.NoError(t, err)
	assert.Len(t, defs, len(achievements.DefaultDefinitions(cat))+1)

	byID := make(map[string]achievements.Definition)
	for _, d := range defs {
		byID[d.ID] = d
	}
	assert.Equal(t, 500, byID["first-trick"].XPReward)
	assert.Equal(t, achievements.RarityRare, byID["first-trick"].Rarity)
	assert.Equal(t, "marathon", byID["marathon"].Name)
	assert.Equal(t, achievements.RarityCommon, byID["marathon"].Rarity)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validYAML), 0o644))

	t.Setenv("SPINLAB_DB", "/data/override.db")
	t.Setenv("SPINLAB_USER", "bob")
	t.Setenv("SPINLAB_SNAPSHOT_RETENTION", "7")
	t.Setenv("SPINLAB_HTTP_ADDR", ":1234")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/override.db", cfg.Database)
	assert.Equal(t, "bob", cfg.DefaultUser)
	assert.Equal(t, 7, cfg.SnapshotRetention)
	assert.Equal(t, ":1234", cfg.HTTP.Addr)
	assert.Equal(t, "Asia/Kolkata", cfg.Timezone, "unset env keeps file value")
}

func TestLoadBadEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SPINLAB_SNAPSHOT_RETENTION", "lots")
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("default path may be absent", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, DefaultUser, cfg.DefaultUser)
	})
}

func TestLoadCatalog(t *testing.T) {
	cfg := Default()
	cat, err := cfg.LoadCatalog()
	require.NoError(t, err)
	assert.NotZero(t, cat.Len())

	cfg.Catalog = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = cfg.LoadCatalog()
	assert.Error(t, err)
}
