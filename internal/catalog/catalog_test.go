package catalog

import (
	"strings"
	"testing"

	"github.com/abhisek/spinlab/internal/errs"
)

func TestDefault_Validates(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("seed catalog validation failed: %v", err)
	}
	if c.Len() != 22 {
		t.Errorf("got %d items, want 22", c.Len())
	}
}

func TestGet(t *testing.T) {
	c := Default()

	it, err := c.Get("gravity-pull")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.Name != "Gravity Pull" || it.Tier != TierBeginner || it.XPReward != 50 {
		t.Errorf("unexpected item: %+v", it)
	}
	if it.PathID != "first-throws" {
		t.Errorf("path should be derived from module, got %q", it.PathID)
	}

	_, err = c.Get("nonexistent")
	if !errs.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestByPathAndModule(t *testing.T) {
	c := Default()
	tests := []struct {
		path string
		want int
	}{
		{"first-throws", 7},
		{"string-tricks", 5},
		{"looping", 5},
		{"offstring", 3},
		{"competition", 2},
	}
	for _, tt := range tests {
		if got := len(c.ByPath(tt.path)); got != tt.want {
			t.Errorf("ByPath(%q) = %d items, want %d", tt.path, got, tt.want)
		}
	}
	if got := len(c.ByModule("fundamentals")); got != 4 {
		t.Errorf("ByModule(fundamentals) = %d, want 4", got)
	}
	if got := len(c.ModulesOf("first-throws")); got != 2 {
		t.Errorf("ModulesOf(first-throws) = %d, want 2", got)
	}
}

func TestByPath_SortedByTier(t *testing.T) {
	c := Default()
	for _, p := range c.Paths() {
		items := c.ByPath(p.ID)
		for i := 1; i < len(items); i++ {
			if items[i].Tier < items[i-1].Tier {
				t.Errorf("path %q not sorted by tier at %d", p.ID, i)
			}
		}
	}
}

func TestTopologicalOrder_RespectsPrerequisites(t *testing.T) {
	c := Default()
	pos := make(map[string]int)
	for i, it := range c.TopologicalOrder() {
		pos[it.ID] = i
	}
	if len(pos) != c.Len() {
		t.Fatalf("topological order has %d items, want %d", len(pos), c.Len())
	}
	for _, it := range c.Items() {
		for _, p := range it.Prerequisites {
			if pos[p] >= pos[it.ID] {
				t.Errorf("%q appears before its prerequisite %q", it.ID, p)
			}
		}
	}
}

func TestDepth(t *testing.T) {
	c := Default()
	tests := []struct {
		id   string
		want int
	}{
		{"throw-down", 0},
		{"gravity-pull", 1},
		{"forward-pass", 2},
		{"kwijibo", 5},
		{"kamikaze", 6},
	}
	for _, tt := range tests {
		d, ok := c.Depth(tt.id)
		if !ok || d != tt.want {
			t.Errorf("Depth(%q) = %d, %v; want %d", tt.id, d, ok, tt.want)
		}
	}
	if _, ok := c.Depth("nonexistent"); ok {
		t.Error("unknown item should have no depth")
	}
}

func TestNew_CycleExcludedFromTopoOrder(t *testing.T) {
	c := New([]SkillItem{
		{ID: "root", Tier: 1},
		{ID: "a", Tier: 1, Prerequisites: []string{"b"}},
		{ID: "b", Tier: 1, Prerequisites: []string{"a"}},
		{ID: "c", Tier: 1, Prerequisites: []string{"ghost"}},
	}, nil, nil)

	order := c.TopologicalOrder()
	if len(order) != 1 || order[0].ID != "root" {
		t.Errorf("expected only root in topo order, got %v", order)
	}
	if !c.Has("a") || !c.Has("c") {
		t.Error("cyclic and dangling items must still be queryable")
	}
}

func TestNew_DuplicateEdgesIgnored(t *testing.T) {
	c := New([]SkillItem{
		{ID: "a", Tier: 1},
		{ID: "b", Tier: 1},
		{ID: "c", Tier: 1, Prerequisites: []string{"a", "b"}},
		{ID: "c", Tier: 1, Prerequisites: []string{"a"}},
	}, nil, nil)

	if deps := c.Dependents("a"); len(deps) != 1 || deps[0].ID != "c" {
		t.Errorf("Dependents(a) = %v, want [c]", deps)
	}
	pos := make(map[string]int)
	for i, it := range c.TopologicalOrder() {
		pos[it.ID] = i
	}
	if len(pos) != 3 {
		t.Fatalf("topological order = %v", c.TopologicalOrder())
	}
	if pos["c"] < pos["a"] || pos["c"] < pos["b"] {
		t.Errorf("c ordered before a prerequisite: %v", pos)
	}
}

func TestValidate_DetectsProblems(t *testing.T) {
	tests := []struct {
		name  string
		items []SkillItem
		want  string
	}{
		{
			name: "cycle",
			items: []SkillItem{
				{ID: "r", Tier: 1},
				{ID: "a", Tier: 1, Prerequisites: []string{"b"}},
				{ID: "b", Tier: 1, Prerequisites: []string{"a"}},
			},
			want: "cycle detected involving items: a, b",
		},
		{
			name:  "dangling",
			items: []SkillItem{{ID: "a", Tier: 1, Prerequisites: []string{"ghost"}}},
			want:  `nonexistent prerequisite "ghost"`,
		},
		{
			name:  "duplicate",
			items: []SkillItem{{ID: "a", Tier: 1}, {ID: "a", Tier: 1}},
			want:  "duplicate item ID",
		},
		{
			name:  "tier",
			items: []SkillItem{{ID: "a", Tier: 9}},
			want:  "tier must be in [1, 5]",
		},
		{
			name:  "xp",
			items: []SkillItem{{ID: "a", Tier: 1, XPReward: -5}},
			want:  "xp reward must be >= 0",
		},
		{
			name:  "module",
			items: []SkillItem{{ID: "a", Tier: 1, GroupID: "missing"}},
			want:  `nonexistent module "missing"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.items, nil, nil).Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should contain %q", err, tt.want)
			}
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse([]byte("items: [")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestParse_Minimal(t *testing.T) {
	c, err := Parse([]byte(`
paths:
  - {id: p, name: P, level: 1, styles: [1a]}
modules:
  - {id: m, path: p, name: M}
items:
  - {id: a, name: A, genre: 1a, tier: 1, xp: 10, module: m}
  - {id: b, name: B, genre: 1a, tier: 2, xp: 20, module: m, prerequisites: [a]}
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	b, _ := c.Get("b")
	if b.PathID != "p" || b.XPReward != 20 || len(b.Prerequisites) != 1 {
		t.Errorf("unexpected item: %+v", b)
	}
	if deps := c.Dependents("a"); len(deps) != 1 || deps[0].ID != "b" {
		t.Errorf("Dependents(a) = %v", deps)
	}
	p, err := c.Path("p")
	if err != nil || len(p.Styles) != 1 || p.Styles[0] != Genre1A {
		t.Errorf("Path(p) = %+v, %v", p, err)
	}
}

func TestTier_Label(t *testing.T) {
	if TierMaster.Label() != "Master" || Tier(0).Label() != "Unknown" {
		t.Error("unexpected tier labels")
	}
	if Tier(0).Valid() || !TierAdvanced.Valid() {
		t.Error("unexpected tier validity")
	}
}
