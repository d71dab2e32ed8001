package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"tavola/internal/adapter/repo/gorm/model"
	"tavola/internal/app/ports"
)

type LeaderboardRepo struct {
	db *gorm.DB
}

func NewLeaderboardRepo(db *gorm.DB) LeaderboardRepo {
	return LeaderboardRepo{db: db}
}

func (r LeaderboardRepo) TopByPoints(ctx context.Context, limit int) ([]ports.LeaderboardRow, error) {
	var rows []model.MemberAccount
	err := getDBFromCtx(ctx, r.db).
		Order("points DESC, member_id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]ports.LeaderboardRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.LeaderboardRow{
			MemberID:    row.MemberID,
			DisplayName: row.DisplayName,
			Points:      row.Points,
		})
	}
	return out, nil
}
