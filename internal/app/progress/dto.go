package progress

import (
	"strings"
	"time"

	"tavola/internal/domain/progression"
)

type Request struct {
	MemberID    string
	BoosterType string
}

type Response struct {
	MemberID       string          `json:"member_id"`
	DisplayName    string          `json:"display_name,omitempty"`
	Points         int64           `json:"points"`
	Tokens         int64           `json:"tokens"`
	Tier           TierView        `json:"tier"`
	Act            ActPositionView `json:"act"`
	Quests         QuestViews      `json:"quests"`
	ActiveBoosters []BoosterView   `json:"active_boosters"`
	EvaluatedAt    time.Time       `json:"evaluated_at"`
}

type TierView struct {
	Name       string   `json:"name"`
	Benefits   []string `json:"benefits"`
	ColorTheme string   `json:"color_theme,omitempty"`
	MinPoints  int64    `json:"min_points"`
	MaxPoints  *int64   `json:"max_points,omitempty"`
}

type ActPositionView struct {
	ID              string  `json:"id"`
	Ordinal         int     `json:"ordinal"`
	Title           string  `json:"title"`
	Subtitle        string  `json:"subtitle,omitempty"`
	Rank            string  `json:"rank"`
	ProgressPercent float64 `json:"progress_percent"`
	PointsToNext    int64   `json:"points_to_next"`
	GoalName        string  `json:"goal_name"`
}

type QuestViews struct {
	Available []AvailableQuestView `json:"available"`
	Locked    []LockedQuestView    `json:"locked"`
}

type AvailableQuestView struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	RewardType   string `json:"reward_type"`
	RewardAmount int64  `json:"reward_amount"`
	Progress     int    `json:"progress"`
}

type LockedQuestView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	UnlockTitle string `json:"unlocked_by"`
}

type BoosterView struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Remaining string     `json:"remaining,omitempty"`
}

// benefitDelimiter splits the tier's packed perk string for display.
const benefitDelimiter = "|"

func toTierView(tier progression.Tier) TierView {
	view := TierView{
		Name:       tier.Name,
		ColorTheme: tier.ColorTheme,
		MinPoints:  tier.MinPoints,
	}
	if tier.MaxPoints != progression.Unbounded {
		max := tier.MaxPoints
		view.MaxPoints = &max
	}
	for _, b := range strings.Split(tier.Benefit, benefitDelimiter) {
		if b = strings.TrimSpace(b); b != "" {
			view.Benefits = append(view.Benefits, b)
		}
	}
	return view
}

func toActPositionView(detail progression.ActProgress) ActPositionView {
	return ActPositionView{
		ID:              detail.Act.ID,
		Ordinal:         detail.Act.Ordinal,
		Title:           detail.Act.Title,
		Subtitle:        detail.Act.Subtitle,
		Rank:            detail.Rank.Name,
		ProgressPercent: detail.ProgressPercent,
		PointsToNext:    detail.PointsToNext,
		GoalName:        detail.GoalName,
	}
}

func toQuestViews(part progression.QuestPartition) QuestViews {
	out := QuestViews{
		Available: make([]AvailableQuestView, 0, len(part.Available)),
		Locked:    make([]LockedQuestView, 0, len(part.Locked)),
	}
	for _, q := range part.Available {
		out.Available = append(out.Available, AvailableQuestView{
			ID:           q.Quest.ID,
			Title:        q.Quest.Title,
			Description:  q.Quest.Description,
			RewardType:   string(q.Quest.RewardType),
			RewardAmount: q.Quest.RewardAmount,
			Progress:     q.Progress,
		})
	}
	for _, q := range part.Locked {
		out.Locked = append(out.Locked, LockedQuestView{
			ID:          q.Quest.ID,
			Title:       q.Quest.Title,
			UnlockTitle: q.UnlockTitle,
		})
	}
	return out
}

func toBoosterViews(statuses []progression.BoosterStatus) []BoosterView {
	out := make([]BoosterView, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, BoosterView{
			ID:        s.Booster.ID,
			Name:      s.Booster.Name,
			ExpiresAt: s.ExpiresAt,
			Remaining: s.RemainingLabel,
		})
	}
	return out
}
