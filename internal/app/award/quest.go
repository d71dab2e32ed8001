package award

import (
	"context"
	"errors"
	"strings"
	"time"

	"tavola/internal/app/ports"
	"tavola/internal/domain/progression"
)

var (
	ErrUnknownQuest    = errors.New("unknown quest")
	ErrQuestLocked     = errors.New("quest locked at current act")
	ErrQuestIncomplete = errors.New("quest progress below completion")
)

// QuestUseCase grants a completed quest's declared reward. The engine only
// echoes the reward shape; the claim gate (known quest, unlocked act, 100%
// progress) and the balance update happen here.
type QuestUseCase struct {
	TxManager ports.TxManager
	Accounts  ports.AccountRepository
	Ledger    ports.LedgerRepository
	Ladder    progression.Ladder
	Metrics   ports.AwardMetrics
	Now       func() time.Time
}

func (u QuestUseCase) Execute(ctx context.Context, req QuestRequest) (Response, error) {
	req.MemberID = strings.TrimSpace(req.MemberID)
	req.IdempotencyKey = strings.TrimSpace(req.IdempotencyKey)
	req.QuestID = strings.TrimSpace(req.QuestID)
	if req.MemberID == "" || req.IdempotencyKey == "" || req.QuestID == "" {
		return Response{}, ErrInvalidRequest
	}

	out, err := applyDeltas(ctx, applyInput{
		tx:       u.TxManager,
		accounts: u.Accounts,
		ledger:   u.Ledger,
		now:      u.Now,

		memberID:       req.MemberID,
		idempotencyKey: req.IdempotencyKey,
		source:         ports.LedgerSourceQuest,
		sourceRef:      req.QuestID,
		deltas: func(snapshot progression.AccountSnapshot) (int64, int64, error) {
			quest, ok := findQuest(snapshot.Quests, req.QuestID)
			if !ok {
				return 0, 0, ErrUnknownQuest
			}
			act, _, err := u.Ladder.ResolveAct(snapshot.Points)
			if err != nil {
				return 0, 0, err
			}
			if quest.MinAct > act.Ordinal {
				return 0, 0, ErrQuestLocked
			}
			if quest.Progress < 100 {
				return 0, 0, ErrQuestIncomplete
			}
			reward := progression.RewardFromQuest(quest)
			switch reward.Type {
			case progression.RewardTokens:
				return 0, reward.Amount, nil
			default:
				return reward.Amount, 0, nil
			}
		},
	})
	recordMetrics(u.Metrics, ports.LedgerSourceQuest, err)
	return out, err
}

func findQuest(quests []progression.Quest, id string) (progression.Quest, bool) {
	for _, q := range quests {
		if q.ID == id {
			return q, true
		}
	}
	return progression.Quest{}, false
}
