package ports

import (
	"context"
	"time"

	"tavola/internal/domain/progression"
)

type AccountRepository interface {
	GetByMemberID(ctx context.Context, memberID string) (progression.AccountSnapshot, error)
	// SaveBalancesWithVersion persists the snapshot's balances and version,
	// guarded by an optimistic check against expectedVersion. ErrConflict on a
	// concurrent update; expectedVersion 0 creates the account.
	SaveBalancesWithVersion(ctx context.Context, snapshot progression.AccountSnapshot, expectedVersion int64) error
}

// LedgerEntry is one applied accrual: the deltas plus the balances they
// produced, keyed for replay detection.
type LedgerEntry struct {
	MemberID       string
	IdempotencyKey string
	Source         string
	SourceRef      string
	PointsDelta    int64
	TokensDelta    int64
	PointsAfter    int64
	TokensAfter    int64
	AppliedAt      time.Time
}

const (
	LedgerSourceOrder = "order"
	LedgerSourceQuest = "quest"
)

type LedgerRepository interface {
	GetByIdempotencyKey(ctx context.Context, memberID, key string) (*LedgerEntry, error)
	Append(ctx context.Context, entry LedgerEntry) error
	ListByMemberID(ctx context.Context, memberID string, limit int) ([]LedgerEntry, error)
}

type LeaderboardRow struct {
	MemberID    string
	DisplayName string
	Points      int64
}

type LeaderboardRepository interface {
	TopByPoints(ctx context.Context, limit int) ([]LeaderboardRow, error)
}
