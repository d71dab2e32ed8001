package model

import "time"

type MemberAccount struct {
	MemberID    string `gorm:"primaryKey;column:member_id"`
	DisplayName string `gorm:"column:display_name"`
	Points      int64  `gorm:"column:points;not null;default:0"`
	Tokens      int64  `gorm:"column:tokens;not null;default:0"`
	Version     int64  `gorm:"column:version;not null;default:0"`
	CreatedAt   time.Time
}

func (MemberAccount) TableName() string { return "member_accounts" }

type InventoryItem struct {
	ItemID     string `gorm:"primaryKey;column:item_id"`
	MemberID   string `gorm:"column:member_id;index"`
	Name       string `gorm:"column:name"`
	ItemType   string `gorm:"column:item_type;index"`
	UnlockedAt time.Time
	ExpiresAt  *time.Time
}

func (InventoryItem) TableName() string { return "inventory_items" }

type MemberQuest struct {
	MemberID     string `gorm:"primaryKey;column:member_id"`
	QuestID      string `gorm:"primaryKey;column:quest_id"`
	Title        string `gorm:"column:title"`
	Description  string `gorm:"column:description"`
	RewardType   string `gorm:"column:reward_type"`
	RewardAmount int64  `gorm:"column:reward_amount"`
	MinAct       int    `gorm:"column:min_act;not null;default:0"`
	Progress     int    `gorm:"column:progress;not null;default:0"`
}

func (MemberQuest) TableName() string { return "member_quests" }

type AccrualLedger struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	MemberID       string `gorm:"column:member_id;uniqueIndex:idx_ledger_idem,priority:1;index"`
	IdempotencyKey string `gorm:"column:idempotency_key;uniqueIndex:idx_ledger_idem,priority:2"`
	Source         string `gorm:"column:source"`
	SourceRef      string `gorm:"column:source_ref"`
	PointsDelta    int64  `gorm:"column:points_delta"`
	TokensDelta    int64  `gorm:"column:tokens_delta"`
	PointsAfter    int64  `gorm:"column:points_after"`
	TokensAfter    int64  `gorm:"column:tokens_after"`
	AppliedAt      time.Time
}

func (AccrualLedger) TableName() string { return "accrual_ledger" }
