package memory

import (
	"context"
	"sort"

	"tavola/internal/app/ports"
)

type LeaderboardRepo struct {
	store *Store
}

func NewLeaderboardRepo(store *Store) LeaderboardRepo {
	return LeaderboardRepo{store: store}
}

func (r LeaderboardRepo) TopByPoints(_ context.Context, limit int) ([]ports.LeaderboardRow, error) {
	rows := make([]ports.LeaderboardRow, 0, len(r.store.accounts))
	for _, snapshot := range r.store.accounts {
		rows = append(rows, ports.LeaderboardRow{
			MemberID:    snapshot.MemberID,
			DisplayName: snapshot.DisplayName,
			Points:      snapshot.Points,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].MemberID < rows[j].MemberID
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}
