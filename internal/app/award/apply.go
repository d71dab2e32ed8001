package award

import (
	"context"
	"errors"
	"time"

	"tavola/internal/app/ports"
	"tavola/internal/domain/progression"
)

type applyInput struct {
	tx       ports.TxManager
	accounts ports.AccountRepository
	ledger   ports.LedgerRepository
	now      func() time.Time

	memberID       string
	idempotencyKey string
	source         string
	sourceRef      string

	// deltas runs inside the transaction against the loaded snapshot and
	// either yields the point/token deltas or vetoes the award (quest claims
	// gate on eligibility and completion).
	deltas func(snapshot progression.AccountSnapshot) (points, tokens int64, err error)
}

// applyDeltas is the shared transactional core of both award paths: replay the
// recorded result when the idempotency key was seen before, otherwise load the
// account, apply the deltas under an optimistic version check, and append the
// ledger entry in the same transaction.
func applyDeltas(ctx context.Context, in applyInput) (Response, error) {
	nowFn := in.now
	if nowFn == nil {
		nowFn = time.Now
	}

	var out Response
	err := in.tx.RunInTx(ctx, func(txCtx context.Context) error {
		prior, err := in.ledger.GetByIdempotencyKey(txCtx, in.memberID, in.idempotencyKey)
		if err == nil && prior != nil {
			out = Response{
				MemberID:    prior.MemberID,
				Source:      prior.Source,
				SourceRef:   prior.SourceRef,
				PointsDelta: prior.PointsDelta,
				TokensDelta: prior.TokensDelta,
				Points:      prior.PointsAfter,
				Tokens:      prior.TokensAfter,
				Replayed:    true,
				AppliedAt:   prior.AppliedAt,
			}
			return nil
		}
		if err != nil && !errors.Is(err, ports.ErrNotFound) {
			return err
		}

		snapshot, err := in.accounts.GetByMemberID(txCtx, in.memberID)
		if err != nil {
			return err
		}
		pointsDelta, tokensDelta, err := in.deltas(snapshot)
		if err != nil {
			return err
		}

		expectedVersion := snapshot.Version
		snapshot.Points += pointsDelta
		snapshot.Tokens += tokensDelta
		snapshot.Version++
		if err := in.accounts.SaveBalancesWithVersion(txCtx, snapshot, expectedVersion); err != nil {
			return err
		}

		appliedAt := nowFn()
		entry := ports.LedgerEntry{
			MemberID:       in.memberID,
			IdempotencyKey: in.idempotencyKey,
			Source:         in.source,
			SourceRef:      in.sourceRef,
			PointsDelta:    pointsDelta,
			TokensDelta:    tokensDelta,
			PointsAfter:    snapshot.Points,
			TokensAfter:    snapshot.Tokens,
			AppliedAt:      appliedAt,
		}
		if err := in.ledger.Append(txCtx, entry); err != nil {
			return err
		}

		out = Response{
			MemberID:    in.memberID,
			Source:      in.source,
			SourceRef:   in.sourceRef,
			PointsDelta: pointsDelta,
			TokensDelta: tokensDelta,
			Points:      snapshot.Points,
			Tokens:      snapshot.Tokens,
			AppliedAt:   appliedAt,
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}
