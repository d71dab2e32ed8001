package history

import (
	"context"
	"errors"
	"strings"
	"time"

	"tavola/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid history request")

const defaultLimit = 50

// UseCase lists a member's accrual ledger, newest first.
type UseCase struct {
	Ledger ports.LedgerRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.MemberID) == "" {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	entries, err := u.Ledger.ListByMemberID(ctx, req.MemberID, limit)
	if err != nil {
		return Response{}, err
	}

	out := Response{Entries: make([]EntryView, 0, len(entries))}
	for _, e := range entries {
		out.Entries = append(out.Entries, EntryView{
			Source:      e.Source,
			SourceRef:   e.SourceRef,
			PointsDelta: e.PointsDelta,
			TokensDelta: e.TokensDelta,
			PointsAfter: e.PointsAfter,
			TokensAfter: e.TokensAfter,
			AppliedAt:   e.AppliedAt,
		})
	}
	return out, nil
}

type Request struct {
	MemberID string
	Limit    int
}

type Response struct {
	Entries []EntryView `json:"entries"`
}

type EntryView struct {
	Source      string    `json:"source"`
	SourceRef   string    `json:"source_ref,omitempty"`
	PointsDelta int64     `json:"points_delta"`
	TokensDelta int64     `json:"tokens_delta"`
	PointsAfter int64     `json:"points_after"`
	TokensAfter int64     `json:"tokens_after"`
	AppliedAt   time.Time `json:"applied_at"`
}
