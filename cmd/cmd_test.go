package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cli runs the root command against an isolated config dir and database.
type cli struct {
	t  *testing.T
	db string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{"SPINLAB_DB", "SPINLAB_USER", "SPINLAB_CATALOG", "SPINLAB_LOG_MODE"} {
		t.Setenv(k, "")
	}
	return &cli{t: t, db: filepath.Join(t.TempDir(), "spinlab.db")}
}

func (c *cli) run(stdin string, args ...string) (string, error) {
	c.t.Helper()
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--db", c.db}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func (c *cli) ok(args ...string) string {
	c.t.Helper()
	out, err := c.run("", args...)
	require.NoError(c.t, err, out)
	return out
}

func TestRootHelpListsCommands(t *testing.T) {
	c := newCLI(t)
	out := c.ok("--help")
	for _, sub := range []string{"progress", "xp", "stats", "tricks", "badges", "onboard", "history", "serve", "reset", "version"} {
		assert.Contains(t, out, sub)
	}
}

func TestProgressFlow(t *testing.T) {
	c := newCLI(t)

	out := c.ok("progress", "watch", "throw-down")
	assert.Contains(t, out, "Throw Down: not_started → in_progress_watching")

	out, err := c.run("", "progress", "master", "sleeper")
	require.Error(t, err)
	assert.Contains(t, out, "locked: master throw-down first")

	out = c.ok("progress", "master", "throw-down")
	assert.Contains(t, out, "+75 XP")
	assert.Contains(t, out, "Badge earned: First Trick")

	out = c.ok("tricks", "show", "throw-down")
	assert.Contains(t, out, "Mastered")

	out = c.ok("history")
	assert.Contains(t, out, "Badge earned: First Trick")
	assert.Contains(t, out, "throw-down")
}

func TestWatchTimeValidation(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("", "progress", "watch-time", "throw-down", "soon")
	assert.Error(t, err)

	_, err = c.run("", "progress", "watch-time", "throw-down", "--", "-5")
	assert.Error(t, err)

	out := c.ok("--json", "progress", "watch-time", "throw-down", "120")
	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &res), out)
}

func TestXPBonusAndLevel(t *testing.T) {
	c := newCLI(t)

	out := c.ok("xp", "bonus", "40", "club", "meetup")
	assert.Contains(t, out, "+40 XP")

	out = c.ok("xp")
	assert.Contains(t, out, "Level 1")
	assert.Contains(t, out, "40 XP lifetime")

	_, err := c.run("", "xp", "bonus", "--", "-10")
	assert.Error(t, err)
	_, err = c.run("", "xp", "bonus", "lots")
	assert.Error(t, err)
}

func TestBadgesAck(t *testing.T) {
	c := newCLI(t)
	c.ok("progress", "master", "throw-down")

	out := c.ok("badges", "list")
	assert.Contains(t, out, "First Trick")
	assert.Contains(t, out, "NEW")

	_, err := c.run("", "badges", "ack")
	assert.Error(t, err)

	out = c.ok("badges", "ack", "--all")
	assert.Contains(t, out, "Acknowledged 1 badge(s).")

	out = c.ok("badges", "list")
	assert.NotContains(t, out, "NEW")

	out = c.ok("badges", "next", "-n", "2")
	assert.Contains(t, out, "PROGRESS")
}

func TestOnboardingCommands(t *testing.T) {
	c := newCLI(t)

	out := c.ok("onboard")
	assert.Contains(t, out, "Step 1 of")

	out = c.ok("onboard", "quiz", "no")
	assert.Contains(t, out, "Quiz complete")
	assert.Contains(t, out, "Beginner")

	out = c.ok("onboard", "skip")
	assert.Contains(t, out, "Onboarding skipped.")

	_, err := c.run("", "onboard", "next")
	assert.Error(t, err)
}

func TestInteractiveQuiz(t *testing.T) {
	c := newCLI(t)

	out, err := c.run("maybe\ny\nn\n", "onboard", "quiz")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Question 1 of")
	assert.Contains(t, out, "Please answer y or n.")
	assert.Contains(t, out, "Quiz complete")
}

func TestResetAsksForConfirmation(t *testing.T) {
	c := newCLI(t)
	c.ok("progress", "master", "throw-down")

	out, err := c.run("n\n", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")
	assert.Contains(t, c.ok("users"), "default")

	c.ok("reset", "--force")
	assert.Contains(t, c.ok("users"), "No learners yet.")
}

func TestUserFlagAndInvalidUser(t *testing.T) {
	c := newCLI(t)
	c.ok("--user", "kid-1", "xp", "bonus", "10")
	out := c.ok("--user", "kid-1", "users")
	assert.Contains(t, out, "* kid-1")

	_, err := c.run("", "--user", "../etc", "stats")
	assert.Error(t, err)
}

func TestConfigFileIsUsed(t *testing.T) {
	c := newCLI(t)
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("default_user: coach\n"), 0o644))

	c.ok("--config", cfg, "xp", "bonus", "5")
	assert.Contains(t, c.ok("--config", cfg, "users"), "* coach")

	_, err := c.run("", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "stats")
	assert.Error(t, err)
}

func TestStatsAndPaths(t *testing.T) {
	c := newCLI(t)
	out := c.ok("stats")
	assert.Contains(t, out, "Learner default")
	assert.Contains(t, out, "First Throws")
	assert.Contains(t, out, "Up next:")

	out = c.ok("paths")
	assert.Contains(t, out, "First Throws")

	out = c.ok("tricks", "list", "--path", "first-throws")
	assert.Contains(t, out, "throw-down")

	_, err := c.run("", "tricks", "list", "--path", "nope")
	assert.Error(t, err)
}

func TestDisplayVersion(t *testing.T) {
	assert.Equal(t, "(devel)", displayVersion("(devel)"))
	assert.Equal(t, "(devel)", displayVersion(""))
	assert.Equal(t, "v1.2.0", displayVersion("1.2"))
	assert.Equal(t, "v0.3.1", displayVersion("v0.3.1"))
}
