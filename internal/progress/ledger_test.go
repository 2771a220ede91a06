package progress

import (
	"testing"
	"time"

	"github.com/abhisek/spinlab/internal/catalog"
	"github.com/abhisek/spinlab/internal/errs"
)

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

// testCatalog: a → b → c, plus d which depends on a missing item.
func testCatalog() *catalog.Catalog {
	return catalog.New(
		[]catalog.SkillItem{
			{ID: "a", Name: "A", Tier: 1, XPReward: 50, GroupID: "m1"},
			{ID: "b", Name: "B", Tier: 2, XPReward: 100, GroupID: "m1", Prerequisites: []string{"a"}},
			{ID: "c", Name: "C", Tier: 3, XPReward: 150, GroupID: "m2", Prerequisites: []string{"b"}},
			{ID: "d", Name: "D", Tier: 3, XPReward: 10, GroupID: "m2", Prerequisites: []string{"ghost"}},
		},
		[]catalog.Module{{ID: "m1", PathID: "p"}, {ID: "m2", PathID: "p"}, {ID: "empty", PathID: "p"}},
		[]catalog.Path{{ID: "p", Name: "P", Level: 1}},
	)
}

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusNotStarted, StatusWatching, true},
		{StatusNotStarted, StatusPracticing, true},
		{StatusNotStarted, StatusMastered, true},
		{StatusWatching, StatusPracticing, true},
		{StatusWatching, StatusMastered, true},
		{StatusPracticing, StatusMastered, true},
		{StatusPracticing, StatusWatching, false},
		{StatusMastered, StatusWatching, false},
		{StatusMastered, StatusNotStarted, false},
		{StatusWatching, StatusWatching, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestResolve_UnlockScenario(t *testing.T) {
	l := NewLedger(testCatalog())

	if s, _ := l.State("a"); s != DisplayAvailable {
		t.Errorf("a = %s, want available", s)
	}
	if s, _ := l.State("b"); s != DisplayLocked {
		t.Errorf("b = %s, want locked", s)
	}

	if _, _, err := l.RecordMastery("a", testNow); err != nil {
		t.Fatalf("master a: %v", err)
	}
	if s, _ := l.State("b"); s != DisplayAvailable {
		t.Errorf("b after a mastered = %s, want available", s)
	}
	if s, _ := l.State("c"); s != DisplayLocked {
		t.Errorf("c = %s, want locked", s)
	}
}

func TestResolve_DanglingPrerequisiteLocked(t *testing.T) {
	l := NewLedger(testCatalog())
	if s, _ := l.State("d"); s != DisplayLocked {
		t.Errorf("d = %s, want locked", s)
	}
	missing, err := UnmetPrerequisites("d", l, l.Catalog())
	if err != nil || len(missing) != 1 || missing[0] != "ghost" {
		t.Errorf("UnmetPrerequisites(d) = %v, %v", missing, err)
	}
}

func TestResolve_UnknownItem(t *testing.T) {
	l := NewLedger(testCatalog())
	if _, err := l.State("zzz"); !errs.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestRecordActivity_ForwardOnly(t *testing.T) {
	l := NewLedger(testCatalog())

	tr, err := l.RecordActivity("a", ActivityStartPracticing, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr == nil || tr.From != StatusNotStarted || tr.To != StatusPracticing {
		t.Fatalf("unexpected transition: %+v", tr)
	}

	// Watching after practicing is not a regression.
	tr, err = l.RecordActivity("a", ActivityStartWatching, testNow.Add(time.Minute))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr != nil {
		t.Errorf("expected no transition, got %+v", tr)
	}
	rec := l.Get("a")
	if rec.Status != StatusPracticing {
		t.Errorf("status = %s, want practicing", rec.Status)
	}
	if rec.LastActivityAt == nil || !rec.LastActivityAt.Equal(testNow.Add(time.Minute)) {
		t.Errorf("LastActivityAt not updated: %v", rec.LastActivityAt)
	}
	if s, _ := l.State("a"); s != DisplayInProgress {
		t.Errorf("display = %s, want in_progress", s)
	}
}

func TestRecordActivity_LockedItemAllowed(t *testing.T) {
	l := NewLedger(testCatalog())
	tr, err := l.RecordActivity("c", ActivityStartWatching, testNow)
	if err != nil || tr == nil {
		t.Fatalf("expected watching transition, got %+v, %v", tr, err)
	}
	if s, _ := l.State("c"); s != DisplayLocked {
		t.Errorf("display = %s, want locked", s)
	}
}

func TestRecordActivity_Errors(t *testing.T) {
	l := NewLedger(testCatalog())
	if _, err := l.RecordActivity("zzz", ActivityStartWatching, testNow); !errs.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
	if _, err := l.RecordActivity("a", ActivityKind("dance"), testNow); !errs.IsInvalidArgument(err) {
		t.Errorf("expected InvalidArgument, got %v", err)
	}
	if len(l.Records()) != 0 {
		t.Error("failed commands must not create records")
	}
}

func TestRecordMastery(t *testing.T) {
	l := NewLedger(testCatalog())

	_, _, err := l.RecordMastery("b", testNow)
	if !errs.IsPrerequisiteNotMet(err) {
		t.Fatalf("expected PrerequisiteNotMet, got %v", err)
	}
	if l.Status("b") != StatusNotStarted {
		t.Error("locked mastery must not change status")
	}

	tr, xp, err := l.RecordMastery("a", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr == nil || tr.To != StatusMastered || xp != 50 {
		t.Errorf("transition=%+v xp=%d", tr, xp)
	}
	rec := l.Get("a")
	if rec.MasteredAt == nil || rec.XPEarned != 50 {
		t.Errorf("unexpected record: %+v", rec)
	}

	// Second submission is idempotent.
	tr, xp, err = l.RecordMastery("a", testNow.Add(time.Second))
	if err != nil || tr != nil || xp != 0 {
		t.Errorf("repeat mastery = %+v, %d, %v", tr, xp, err)
	}
	if l.TotalXPEarned() != 50 || l.MasteredCount() != 1 {
		t.Errorf("totals changed after repeat: xp=%d count=%d", l.TotalXPEarned(), l.MasteredCount())
	}

	// Activity on a mastered item never regresses it.
	if tr, _ := l.RecordActivity("a", ActivityStartWatching, testNow); tr != nil {
		t.Errorf("mastered item regressed: %+v", tr)
	}
}

func TestRecordMastery_NegativeRewardClamped(t *testing.T) {
	l := NewLedger(catalog.New([]catalog.SkillItem{{ID: "x", Tier: 1, XPReward: -10}}, nil, nil))

	tr, xp, err := l.RecordMastery("x", testNow)
	if err != nil || tr == nil {
		t.Fatalf("RecordMastery = %+v, %v", tr, err)
	}
	if xp != 0 || l.Get("x").XPEarned != 0 || l.TotalXPEarned() != 0 {
		t.Errorf("xp=%d record=%+v total=%d", xp, l.Get("x"), l.TotalXPEarned())
	}
}

func TestRecordWatchTime(t *testing.T) {
	l := NewLedger(testCatalog())
	if err := l.RecordWatchTime("a", 30, testNow); err != nil {
		t.Fatal(err)
	}
	if err := l.RecordWatchTime("b", 45, testNow); err != nil {
		t.Fatal(err)
	}
	if err := l.RecordWatchTime("a", -1, testNow); !errs.IsInvalidArgument(err) {
		t.Errorf("expected InvalidArgument, got %v", err)
	}
	if err := l.RecordWatchTime("zzz", 1, testNow); !errs.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
	if got := l.TotalWatchSeconds(); got != 75 {
		t.Errorf("TotalWatchSeconds = %d, want 75", got)
	}
	if l.Status("a") != StatusNotStarted {
		t.Error("watch time alone must not change status")
	}
}

func TestCompletion(t *testing.T) {
	l := NewLedger(testCatalog())
	l.RecordMastery("a", testNow)

	m1, err := l.ModuleCompletion("m1")
	if err != nil {
		t.Fatal(err)
	}
	if m1 != (Completion{Completed: 1, Total: 2, Percentage: 50}) {
		t.Errorf("m1 = %+v", m1)
	}

	p, _ := l.PathCompletion("p")
	if p != (Completion{Completed: 1, Total: 4, Percentage: 25}) {
		t.Errorf("p = %+v", p)
	}

	empty, err := l.ModuleCompletion("empty")
	if err != nil || empty != (Completion{}) {
		t.Errorf("empty = %+v, %v", empty, err)
	}

	if _, err := l.PathCompletion("nope"); !errs.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
	if _, err := l.ModuleCompletion("nope"); !errs.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestCompletion_Rounding(t *testing.T) {
	items := []catalog.SkillItem{{ID: "x"}, {ID: "y"}, {ID: "z"}}
	cat := catalog.New(items, nil, nil)
	l := NewLedger(cat)
	l.RecordMastery("x", testNow)
	l.RecordMastery("y", testNow)

	if got := l.OverallCompletion().Percentage; got != 67 {
		t.Errorf("2/3 = %d%%, want 67", got)
	}
}

func TestAvailableItems(t *testing.T) {
	l := NewLedger(testCatalog())
	l.RecordMastery("a", testNow)
	l.RecordActivity("b", ActivityStartWatching, testNow)

	got := l.AvailableItems()
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("AvailableItems = %v", got)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	l := NewLedger(testCatalog())
	l.RecordMastery("a", testNow)
	l.RecordActivity("b", ActivityStartPracticing, testNow)
	l.RecordWatchTime("b", 120, testNow)

	restored := NewLedger(testCatalog())
	restored.LoadSnapshot(l.SnapshotData())

	if restored.Status("a") != StatusMastered || restored.Status("b") != StatusPracticing {
		t.Errorf("statuses not restored: a=%s b=%s", restored.Status("a"), restored.Status("b"))
	}
	rec := restored.Get("a")
	if rec.MasteredAt == nil || !rec.MasteredAt.Equal(testNow) {
		t.Errorf("MasteredAt = %v", rec.MasteredAt)
	}
	if restored.TotalWatchSeconds() != 120 {
		t.Errorf("watch seconds = %d", restored.TotalWatchSeconds())
	}
}
