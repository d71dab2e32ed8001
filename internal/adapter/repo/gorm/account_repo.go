package gormrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tavola/internal/adapter/repo/gorm/model"
	"tavola/internal/app/ports"
	"tavola/internal/domain/progression"
)

type AccountRepo struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) AccountRepo {
	return AccountRepo{db: db}
}

// GetByMemberID assembles the full snapshot the engine computes over:
// balances plus the member's inventory and quest rows.
func (r AccountRepo) GetByMemberID(ctx context.Context, memberID string) (progression.AccountSnapshot, error) {
	db := getDBFromCtx(ctx, r.db)

	var account model.MemberAccount
	if err := db.Where("member_id = ?", memberID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return progression.AccountSnapshot{}, ports.ErrNotFound
		}
		return progression.AccountSnapshot{}, err
	}

	var items []model.InventoryItem
	if err := db.Where("member_id = ?", memberID).Order("unlocked_at").Find(&items).Error; err != nil {
		return progression.AccountSnapshot{}, err
	}
	var quests []model.MemberQuest
	if err := db.Where("member_id = ?", memberID).Order("quest_id").Find(&quests).Error; err != nil {
		return progression.AccountSnapshot{}, err
	}

	snapshot := progression.AccountSnapshot{
		MemberID:    account.MemberID,
		DisplayName: account.DisplayName,
		Points:      account.Points,
		Tokens:      account.Tokens,
		CreatedAt:   account.CreatedAt,
		Inventory:   make([]progression.Booster, 0, len(items)),
		Quests:      make([]progression.Quest, 0, len(quests)),
		Version:     account.Version,
	}
	for _, item := range items {
		snapshot.Inventory = append(snapshot.Inventory, progression.Booster{
			ID:         item.ItemID,
			Name:       item.Name,
			Type:       item.ItemType,
			UnlockedAt: item.UnlockedAt,
			ExpiresAt:  item.ExpiresAt,
		})
	}
	for _, quest := range quests {
		snapshot.Quests = append(snapshot.Quests, progression.Quest{
			ID:           quest.QuestID,
			Title:        quest.Title,
			Description:  quest.Description,
			RewardType:   progression.RewardType(quest.RewardType),
			RewardAmount: quest.RewardAmount,
			MinAct:       quest.MinAct,
			Progress:     quest.Progress,
		})
	}
	return snapshot, nil
}

func (r AccountRepo) SaveBalancesWithVersion(ctx context.Context, snapshot progression.AccountSnapshot, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)

	if expectedVersion == 0 {
		account := model.MemberAccount{
			MemberID:    snapshot.MemberID,
			DisplayName: snapshot.DisplayName,
			Points:      snapshot.Points,
			Tokens:      snapshot.Tokens,
			Version:     snapshot.Version,
			CreatedAt:   snapshot.CreatedAt,
		}
		return db.Create(&account).Error
	}

	res := db.Model(&model.MemberAccount{}).
		Where("member_id = ? AND version = ?", snapshot.MemberID, expectedVersion).
		Updates(map[string]any{
			"points":  snapshot.Points,
			"tokens":  snapshot.Tokens,
			"version": snapshot.Version,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}
