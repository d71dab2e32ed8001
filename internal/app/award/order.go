package award

import (
	"context"
	"errors"
	"strings"
	"time"

	"tavola/internal/app/ports"
	"tavola/internal/domain/progression"
)

var ErrInvalidRequest = errors.New("invalid award request")

// OrderUseCase applies a settled order's point/token deltas to the account.
// The engine only computes the deltas; durability, versioning and replay
// detection live here, transactionally with the ledger entry.
type OrderUseCase struct {
	TxManager ports.TxManager
	Accounts  ports.AccountRepository
	Ledger    ports.LedgerRepository
	Metrics   ports.AwardMetrics
	Now       func() time.Time
}

func (u OrderUseCase) Execute(ctx context.Context, req OrderRequest) (Response, error) {
	req.MemberID = strings.TrimSpace(req.MemberID)
	req.IdempotencyKey = strings.TrimSpace(req.IdempotencyKey)
	if req.MemberID == "" || req.IdempotencyKey == "" {
		return Response{}, ErrInvalidRequest
	}

	points, err := progression.PointsFromOrder(req.OrderTotal)
	if err != nil {
		return Response{}, err
	}
	tokens, err := progression.TokensFromOrder(req.OrderTotal)
	if err != nil {
		return Response{}, err
	}

	out, err := applyDeltas(ctx, applyInput{
		tx:       u.TxManager,
		accounts: u.Accounts,
		ledger:   u.Ledger,
		now:      u.Now,

		memberID:       req.MemberID,
		idempotencyKey: req.IdempotencyKey,
		source:         ports.LedgerSourceOrder,
		sourceRef:      req.OrderID,
		deltas: func(progression.AccountSnapshot) (int64, int64, error) {
			return points, tokens, nil
		},
	})
	recordMetrics(u.Metrics, ports.LedgerSourceOrder, err)
	return out, err
}

func recordMetrics(m ports.AwardMetrics, source string, err error) {
	if m == nil {
		return
	}
	switch {
	case err == nil:
		m.RecordAward(source)
	case errors.Is(err, ports.ErrConflict):
		m.RecordConflict()
	default:
		m.RecordFailure()
	}
}
