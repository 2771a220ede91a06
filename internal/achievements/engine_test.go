package achievements

import (
	"testing"
	"time"

	"github.com/abhisek/spinlab/internal/catalog"
	"github.com/abhisek/spinlab/internal/errs"
)

var testNow = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func mustEngine(t *testing.T, defs []Definition) *Engine {
	t.Helper()
	e, err := NewEngine(defs)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestEvaluate_AwardsOnce(t *testing.T) {
	e := mustEngine(t, []Definition{
		{ID: "one", Name: "One", Rule: Rule{Kind: RuleItemsMastered, Threshold: 1}},
		{ID: "three", Name: "Three", Rule: Rule{Kind: RuleItemsMastered, Threshold: 3}},
	})

	got := e.Evaluate(State{MasteredCount: 1}, testNow)
	if len(got) != 1 || got[0].ID != "one" {
		t.Fatalf("first evaluate = %v", got)
	}
	if got := e.Evaluate(State{MasteredCount: 1}, testNow); len(got) != 0 {
		t.Errorf("re-evaluate awarded again: %v", got)
	}
	got = e.Evaluate(State{MasteredCount: 5}, testNow)
	if len(got) != 1 || got[0].ID != "three" {
		t.Errorf("second evaluate = %v", got)
	}
	if len(e.Earned()) != 2 {
		t.Errorf("Earned = %v", e.Earned())
	}
}

func TestEvaluate_DeclaredOrder(t *testing.T) {
	e := mustEngine(t, []Definition{
		{ID: "b", Rule: Rule{Kind: RuleLifetimeXP, Threshold: 10}},
		{ID: "a", Rule: Rule{Kind: RuleLifetimeXP, Threshold: 5}},
	})
	got := e.Evaluate(State{LifetimeXP: 100}, testNow)
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Errorf("order = %v", got)
	}
}

func TestPendingAndAcknowledge(t *testing.T) {
	e := mustEngine(t, []Definition{
		{ID: "x", Rule: Rule{Kind: RuleWatchSeconds, Threshold: 60}},
	})
	e.Evaluate(State{WatchSeconds: 60}, testNow)

	if p := e.Pending(); len(p) != 1 || p[0].ID != "x" {
		t.Fatalf("Pending = %v", p)
	}
	if err := e.Acknowledge("x"); err != nil {
		t.Fatal(err)
	}
	if len(e.Pending()) != 0 {
		t.Error("queue should be empty after acknowledge")
	}
	if !e.Has("x") {
		t.Error("acknowledge must not remove the earned badge")
	}
	if err := e.Acknowledge("x"); !errs.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestRules(t *testing.T) {
	cat := catalog.New(
		[]catalog.SkillItem{
			{ID: "a", Tier: 1, GroupID: "m"},
			{ID: "b", Tier: 4, GroupID: "m", Prerequisites: []string{"a"}},
		},
		[]catalog.Module{{ID: "m", PathID: "p"}},
		[]catalog.Path{{ID: "p"}, {ID: "empty"}},
	)
	s := State{
		Catalog:       cat,
		Mastered:      map[string]bool{"a": true},
		MasteredCount: 1,
		CurrentStreak: 2,
		LongestStreak: 5,
		Level:         3,
	}

	tests := []struct {
		name     string
		rule     Rule
		met      bool
		progress float64
	}{
		{"path half", Rule{Kind: RulePathComplete, Target: "p"}, false, 0.5},
		{"empty path", Rule{Kind: RulePathComplete, Target: "empty"}, false, 0},
		{"tier 1", Rule{Kind: RuleTierMastered, Threshold: 1}, true, 1},
		{"tier 4", Rule{Kind: RuleTierMastered, Threshold: 4}, false, 0},
		{"current streak", Rule{Kind: RuleCurrentStreak, Threshold: 4}, false, 0.5},
		{"longest streak", Rule{Kind: RuleLongestStreak, Threshold: 3}, true, 1},
		{"level", Rule{Kind: RuleLevelReached, Threshold: 3}, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.Met(s); got != tt.met {
				t.Errorf("Met = %v, want %v", got, tt.met)
			}
			if got := tt.rule.Progress(s); got != tt.progress {
				t.Errorf("Progress = %v, want %v", got, tt.progress)
			}
		})
	}
}

func TestNext_SortedByProgress(t *testing.T) {
	e := mustEngine(t, []Definition{
		{ID: "far", Rule: Rule{Kind: RuleItemsMastered, Threshold: 10}},
		{ID: "near", Rule: Rule{Kind: RuleItemsMastered, Threshold: 2}},
		{ID: "done", Rule: Rule{Kind: RuleItemsMastered, Threshold: 1}},
	})
	s := State{MasteredCount: 1}
	e.Evaluate(s, testNow)

	next := e.Next(s, 5)
	if len(next) != 2 || next[0].Definition.ID != "near" || next[1].Definition.ID != "far" {
		t.Fatalf("Next = %+v", next)
	}
	if next[0].Percent() != 50 {
		t.Errorf("Percent = %d, want 50", next[0].Percent())
	}
	if got := e.Next(s, 1); len(got) != 1 {
		t.Errorf("limit ignored: %d", len(got))
	}
}

func TestCandidatePercent_Rounds(t *testing.T) {
	tests := []struct {
		progress float64
		want     int
	}{
		{29.0 / 100, 29},
		{0.5, 50},
		{2.0 / 3, 67},
		{1, 100},
	}
	for _, tt := range tests {
		if got := (Candidate{Progress: tt.progress}).Percent(); got != tt.want {
			t.Errorf("Percent(%v) = %d, want %d", tt.progress, got, tt.want)
		}
	}
}

func TestNewEngine_Rejects(t *testing.T) {
	tests := []struct {
		name string
		defs []Definition
	}{
		{"duplicate", []Definition{
			{ID: "a", Rule: Rule{Kind: RuleItemsMastered, Threshold: 1}},
			{ID: "a", Rule: Rule{Kind: RuleItemsMastered, Threshold: 2}},
		}},
		{"unknown kind", []Definition{{ID: "a", Rule: Rule{Kind: "bogus", Threshold: 1}}}},
		{"zero threshold", []Definition{{ID: "a", Rule: Rule{Kind: RuleLifetimeXP}}}},
		{"path without target", []Definition{{ID: "a", Rule: Rule{Kind: RulePathComplete}}}},
		{"bad tier", []Definition{{ID: "a", Rule: Rule{Kind: RuleTierMastered, Threshold: 7}}}},
		{"negative reward", []Definition{{ID: "a", XPReward: -1, Rule: Rule{Kind: RuleLifetimeXP, Threshold: 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewEngine(tt.defs); !errs.IsInvalidArgument(err) {
				t.Errorf("expected InvalidArgument, got %v", err)
			}
		})
	}
}

func TestDefaultDefinitions(t *testing.T) {
	cat := catalog.Default()
	defs := DefaultDefinitions(cat)
	e := mustEngine(t, defs)

	tests := []struct {
		id     string
		rarity Rarity
	}{
		{"path-first-throws", RarityRare},
		{"path-string-tricks", RarityEpic},
		{"path-looping", RarityLegendary},
		{"path-offstring", RarityEpic},
		{"path-competition", RarityLegendary},
		{"streak-3", RarityCommon},
		{"streak-30", RarityLegendary},
	}
	for _, tt := range tests {
		d, err := e.Definition(tt.id)
		if err != nil {
			t.Errorf("Definition(%q): %v", tt.id, err)
			continue
		}
		if d.Rarity != tt.rarity {
			t.Errorf("%s rarity = %s, want %s", tt.id, d.Rarity, tt.rarity)
		}
	}
	if _, err := e.Definition("nope"); !errs.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestMerge(t *testing.T) {
	base := []Definition{{ID: "a", XPReward: 1}, {ID: "b", XPReward: 2}}
	got := Merge(base, []Definition{{ID: "b", XPReward: 20}, {ID: "c", XPReward: 3}})
	if len(got) != 3 || got[1].XPReward != 20 || got[2].ID != "c" {
		t.Errorf("Merge = %+v", got)
	}
	if base[1].XPReward != 2 {
		t.Error("Merge must not mutate base")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	defs := []Definition{
		{ID: "a", Name: "A", Rarity: RarityRare, Rule: Rule{Kind: RuleItemsMastered, Threshold: 1}},
		{ID: "b", Name: "B", Rule: Rule{Kind: RuleItemsMastered, Threshold: 2}},
	}
	e := mustEngine(t, defs)
	e.Evaluate(State{MasteredCount: 2}, testNow)
	e.Acknowledge("a")

	restored := mustEngine(t, defs)
	restored.LoadSnapshot(e.SnapshotData())

	if !restored.Has("a") || !restored.Has("b") {
		t.Fatal("earned badges not restored")
	}
	if p := restored.Pending(); len(p) != 1 || p[0].ID != "b" {
		t.Errorf("Pending = %v", p)
	}
	if b := restored.Earned()[0]; b.Rarity != RarityRare || !b.EarnedAt.Equal(testNow) {
		t.Errorf("restored badge = %+v", b)
	}
}
