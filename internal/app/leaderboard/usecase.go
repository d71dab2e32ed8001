package leaderboard

import (
	"context"

	"tavola/internal/app/ports"
	"tavola/internal/domain/progression"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// UseCase serves the public leaderboard: top accounts by points, each
// annotated with its resolved tier.
type UseCase struct {
	Board  ports.LeaderboardRepository
	Ladder progression.Ladder
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	rows, err := u.Board.TopByPoints(ctx, limit)
	if err != nil {
		return Response{}, err
	}

	entries := make([]Entry, 0, len(rows))
	for i, row := range rows {
		tier, err := u.Ladder.ResolveTier(row.Points)
		if err != nil {
			return Response{}, err
		}
		entries = append(entries, Entry{
			Position:    i + 1,
			MemberID:    row.MemberID,
			DisplayName: row.DisplayName,
			Points:      row.Points,
			Tier:        tier.Name,
		})
	}
	return Response{Entries: entries}, nil
}

type Request struct {
	Limit int
}

type Response struct {
	Entries []Entry `json:"entries"`
}

type Entry struct {
	Position    int    `json:"position"`
	MemberID    string `json:"member_id"`
	DisplayName string `json:"display_name,omitempty"`
	Points      int64  `json:"points"`
	Tier        string `json:"tier"`
}
