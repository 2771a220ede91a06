package store

// CurrentSnapshotVersion is written into every new snapshot.
const CurrentSnapshotVersion = 1

// SnapshotData captures one user's full engine state at a point in time.
// Each domain package converts its own state to and from its section.
type SnapshotData struct {
	Version    int                     `json:"version"`
	Progress   *ProgressSnapshotData   `json:"progress,omitempty"`
	Streak     *StreakSnapshotData     `json:"streak,omitempty"`
	XP         *XPSnapshotData         `json:"xp,omitempty"`
	Badges     *BadgeSnapshotData      `json:"badges,omitempty"`
	Onboarding *OnboardingSnapshotData `json:"onboarding,omitempty"`
}

// ProgressSnapshotData holds per-item progress records keyed by item ID.
type ProgressSnapshotData struct {
	Items map[string]*ItemProgressData `json:"items"`
}

// ItemProgressData is the persisted form of a single item's progress.
type ItemProgressData struct {
	ItemID           string  `json:"item_id"`
	Status           string  `json:"status"`
	WatchTimeSeconds int     `json:"watch_time_seconds"`
	XPEarned         int     `json:"xp_earned"`
	LastActivityAt   *string `json:"last_activity_at,omitempty"` // RFC3339
	MasteredAt       *string `json:"mastered_at,omitempty"`      // RFC3339
}

// StreakSnapshotData holds the distinct activity days as YYYY-MM-DD keys.
type StreakSnapshotData struct {
	Days []string `json:"days"`
}

// XPSnapshotData holds the lifetime XP total and its breakdown by source.
type XPSnapshotData struct {
	Lifetime int            `json:"lifetime"`
	BySource map[string]int `json:"by_source,omitempty"`
}

// BadgeSnapshotData holds earned badges and the unacknowledged queue.
type BadgeSnapshotData struct {
	Earned  []EarnedBadgeData `json:"earned"`
	Pending []string          `json:"pending,omitempty"`
}

// EarnedBadgeData is the persisted form of an earned badge.
type EarnedBadgeData struct {
	ID        string `json:"id"`
	EarnedAt  string `json:"earned_at"` // RFC3339
	XPAwarded int    `json:"xp_awarded"`
}

// OnboardingSnapshotData is the persisted onboarding flow state.
type OnboardingSnapshotData struct {
	CurrentStep     string            `json:"current_step"`
	SkillLevel      *string           `json:"skill_level,omitempty"`
	Goals           []string          `json:"goals,omitempty"`
	Styles          []string          `json:"styles,omitempty"`
	Completed       bool              `json:"completed"`
	CompletedAt     *string           `json:"completed_at,omitempty"` // RFC3339
	CompletedBy     string            `json:"completed_by,omitempty"` // "finished" or "skipped"
	RecommendedPath string            `json:"recommended_path,omitempty"`
	Quiz            *QuizSnapshotData `json:"quiz,omitempty"`
}

// QuizSnapshotData is the persisted state of an in-flight skill quiz.
type QuizSnapshotData struct {
	Answers []QuizAnswerData `json:"answers"`
	Done    bool             `json:"done"`
}

// QuizAnswerData records one quiz answer.
type QuizAnswerData struct {
	QuestionID string `json:"question_id"`
	Yes        bool   `json:"yes"`
}
