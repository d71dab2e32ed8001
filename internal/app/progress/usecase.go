package progress

import (
	"context"
	"errors"
	"strings"
	"time"

	"tavola/internal/app/ports"
	"tavola/internal/domain/progression"
)

var ErrInvalidRequest = errors.New("invalid progress request")

type UseCase struct {
	Accounts ports.AccountRepository
	Ladder   progression.Ladder
	Now      func() time.Time
}

// Execute assembles the member progress view: tier, act/rank position, quest
// partition, and the boosters active at a single captured instant. Read-only.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.MemberID) == "" {
		return Response{}, ErrInvalidRequest
	}
	boosterType := req.BoosterType
	if boosterType == "" {
		boosterType = progression.DefaultBoosterType
	}

	snapshot, err := u.Accounts.GetByMemberID(ctx, req.MemberID)
	if err != nil {
		return Response{}, err
	}

	tier, err := u.Ladder.ResolveTier(snapshot.Points)
	if err != nil {
		return Response{}, err
	}
	detail, err := u.Ladder.DetailedProgress(snapshot.Points)
	if err != nil {
		return Response{}, err
	}
	quests, err := u.Ladder.PartitionQuests(snapshot.Points, snapshot.Quests)
	if err != nil {
		return Response{}, err
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	// One instant for the whole response so booster countdowns are consistent.
	now := nowFn()
	boosters := progression.ActiveBoosters(snapshot.Inventory, boosterType, snapshot.CreatedAt, now)

	return Response{
		MemberID:       snapshot.MemberID,
		DisplayName:    snapshot.DisplayName,
		Points:         snapshot.Points,
		Tokens:         snapshot.Tokens,
		Tier:           toTierView(tier),
		Act:            toActPositionView(detail),
		Quests:         toQuestViews(quests),
		ActiveBoosters: toBoosterViews(boosters),
		EvaluatedAt:    now,
	}, nil
}
