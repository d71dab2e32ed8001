package overview

import (
	"context"
	"errors"
	"strings"

	"tavola/internal/app/ports"
	"tavola/internal/domain/progression"
)

var ErrInvalidRequest = errors.New("invalid overview request")

// UseCase backs the syndicate overview modal: the whole narrative ladder with
// the member's position marked on it.
type UseCase struct {
	Accounts ports.AccountRepository
	Ladder   progression.Ladder
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.MemberID) == "" {
		return Response{}, ErrInvalidRequest
	}

	snapshot, err := u.Accounts.GetByMemberID(ctx, req.MemberID)
	if err != nil {
		return Response{}, err
	}
	detail, err := u.Ladder.DetailedProgress(snapshot.Points)
	if err != nil {
		return Response{}, err
	}

	acts := u.Ladder.Acts()
	views := make([]ActView, 0, len(acts))
	for _, act := range acts {
		view := ActView{
			ID:        act.ID,
			Ordinal:   act.Ordinal,
			Title:     act.Title,
			Subtitle:  act.Subtitle,
			MinPoints: act.MinPoints,
			Current:   act.Ordinal == detail.Act.Ordinal,
			Cleared:   act.Ordinal < detail.Act.Ordinal,
		}
		if act.MaxPoints != progression.Unbounded {
			max := act.MaxPoints
			view.MaxPoints = &max
		}
		for _, rank := range act.Ranks {
			view.Ranks = append(view.Ranks, RankView{
				Name:      rank.Name,
				MinPoints: rank.MinPoints,
				Current:   view.Current && rank.Name == detail.Rank.Name,
			})
		}
		views = append(views, view)
	}

	return Response{
		MemberID:        snapshot.MemberID,
		Points:          snapshot.Points,
		Acts:            views,
		CurrentRank:     detail.Rank.Name,
		ProgressPercent: detail.ProgressPercent,
		PointsToNext:    detail.PointsToNext,
		GoalName:        detail.GoalName,
	}, nil
}

type Request struct {
	MemberID string
}

type Response struct {
	MemberID        string    `json:"member_id"`
	Points          int64     `json:"points"`
	Acts            []ActView `json:"acts"`
	CurrentRank     string    `json:"current_rank"`
	ProgressPercent float64   `json:"progress_percent"`
	PointsToNext    int64     `json:"points_to_next"`
	GoalName        string    `json:"goal_name"`
}

type ActView struct {
	ID        string     `json:"id"`
	Ordinal   int        `json:"ordinal"`
	Title     string     `json:"title"`
	Subtitle  string     `json:"subtitle,omitempty"`
	MinPoints int64      `json:"min_points"`
	MaxPoints *int64     `json:"max_points,omitempty"`
	Ranks     []RankView `json:"ranks"`
	Current   bool       `json:"current"`
	Cleared   bool       `json:"cleared"`
}

type RankView struct {
	Name      string `json:"name"`
	MinPoints int64  `json:"min_points"`
	Current   bool   `json:"current"`
}
