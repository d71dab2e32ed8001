package gormrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tavola/internal/adapter/repo/gorm/model"
	"tavola/internal/app/ports"
)

type LedgerRepo struct {
	db *gorm.DB
}

func NewLedgerRepo(db *gorm.DB) LedgerRepo {
	return LedgerRepo{db: db}
}

func (r LedgerRepo) GetByIdempotencyKey(ctx context.Context, memberID, key string) (*ports.LedgerEntry, error) {
	var row model.AccrualLedger
	err := getDBFromCtx(ctx, r.db).
		Where("member_id = ? AND idempotency_key = ?", memberID, key).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	entry := toEntry(row)
	return &entry, nil
}

func (r LedgerRepo) Append(ctx context.Context, entry ports.LedgerEntry) error {
	row := model.AccrualLedger{
		MemberID:       entry.MemberID,
		IdempotencyKey: entry.IdempotencyKey,
		Source:         entry.Source,
		SourceRef:      entry.SourceRef,
		PointsDelta:    entry.PointsDelta,
		TokensDelta:    entry.TokensDelta,
		PointsAfter:    entry.PointsAfter,
		TokensAfter:    entry.TokensAfter,
		AppliedAt:      entry.AppliedAt,
	}
	return getDBFromCtx(ctx, r.db).Create(&row).Error
}

func (r LedgerRepo) ListByMemberID(ctx context.Context, memberID string, limit int) ([]ports.LedgerEntry, error) {
	var rows []model.AccrualLedger
	err := getDBFromCtx(ctx, r.db).
		Where("member_id = ?", memberID).
		Order("applied_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]ports.LedgerEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, toEntry(row))
	}
	return out, nil
}

func toEntry(row model.AccrualLedger) ports.LedgerEntry {
	return ports.LedgerEntry{
		MemberID:       row.MemberID,
		IdempotencyKey: row.IdempotencyKey,
		Source:         row.Source,
		SourceRef:      row.SourceRef,
		PointsDelta:    row.PointsDelta,
		TokensDelta:    row.TokensDelta,
		PointsAfter:    row.PointsAfter,
		TokensAfter:    row.TokensAfter,
		AppliedAt:      row.AppliedAt,
	}
}
