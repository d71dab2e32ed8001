package progression

import "time"

// Unbounded marks the upper end of the final Tier/Act/Rank bracket.
const Unbounded int64 = -1

type RewardType string

const (
	RewardPoints RewardType = "points"
	RewardTokens RewardType = "tokens"
)

type Tier struct {
	Name       string `json:"name"`
	MinPoints  int64  `json:"min_points"`
	MaxPoints  int64  `json:"max_points"`
	Benefit    string `json:"benefit"`
	ColorTheme string `json:"color_theme,omitempty"`
}

type Rank struct {
	Name      string `json:"name"`
	MinPoints int64  `json:"min_points"`
	MaxPoints int64  `json:"max_points"`
}

type Act struct {
	ID        string `json:"id"`
	Ordinal   int    `json:"ordinal"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle,omitempty"`
	MinPoints int64  `json:"min_points"`
	MaxPoints int64  `json:"max_points"`
	Ranks     []Rank `json:"ranks"`
}

type Quest struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	RewardType   RewardType `json:"reward_type"`
	RewardAmount int64      `json:"reward_amount"`
	MinAct       int        `json:"min_act"`
	Progress     int        `json:"progress"`
}

type Reward struct {
	Type   RewardType `json:"type"`
	Amount int64      `json:"amount"`
}

type Booster struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	UnlockedAt time.Time  `json:"unlocked_at"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

// BoosterStatus is the computed activity view of one inventory item at a
// specific instant. Remaining is zero for permanently active items.
type BoosterStatus struct {
	Booster        Booster       `json:"booster"`
	Active         bool          `json:"active"`
	ExpiresAt      *time.Time    `json:"expires_at,omitempty"`
	Remaining      time.Duration `json:"-"`
	RemainingLabel string        `json:"remaining,omitempty"`
}

type ActProgress struct {
	Act             Act     `json:"act"`
	Rank            Rank    `json:"rank"`
	ProgressPercent float64 `json:"progress_percent"`
	PointsToNext    int64   `json:"points_to_next"`
	GoalName        string  `json:"goal_name"`
}

type AvailableQuest struct {
	Quest    Quest `json:"quest"`
	Progress int   `json:"progress"`
}

type LockedQuest struct {
	Quest       Quest  `json:"quest"`
	UnlockTitle string `json:"unlock_title"`
}

type QuestPartition struct {
	Available []AvailableQuest `json:"available"`
	Locked    []LockedQuest    `json:"locked"`
}

// AccountSnapshot is the read-only input the engine computes over. The engine
// never mutates it; balances are owned and persisted by the caller.
type AccountSnapshot struct {
	MemberID    string    `json:"member_id"`
	DisplayName string    `json:"display_name,omitempty"`
	Points      int64     `json:"points"`
	Tokens      int64     `json:"tokens"`
	CreatedAt   time.Time `json:"created_at"`
	Inventory   []Booster `json:"inventory"`
	Quests      []Quest   `json:"quests"`
	Version     int64     `json:"version"`
}
