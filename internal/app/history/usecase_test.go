package history

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"tavola/internal/adapter/repo/memory"
	"tavola/internal/app/ports"
)

func TestExecute_ListsNewestFirstWithLimit(t *testing.T) {
	store := memory.NewStore()
	ledger := memory.NewLedgerRepo(store)
	base := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		err := ledger.Append(context.Background(), ports.LedgerEntry{
			MemberID:       "m-1",
			IdempotencyKey: fmt.Sprintf("k-%d", i),
			Source:         ports.LedgerSourceOrder,
			PointsDelta:    int64(i),
			AppliedAt:      base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	uc := UseCase{Ledger: ledger}
	resp, err := uc.Execute(context.Background(), Request{MemberID: "m-1", Limit: 3})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(resp.Entries) != 3 {
		t.Fatalf("entries=%d want 3", len(resp.Entries))
	}
	if resp.Entries[0].PointsDelta != 4 || resp.Entries[2].PointsDelta != 2 {
		t.Fatalf("ordering wrong: %+v", resp.Entries)
	}
}

func TestExecute_BlankMemberRejected(t *testing.T) {
	uc := UseCase{Ledger: memory.NewLedgerRepo(memory.NewStore())}
	if _, err := uc.Execute(context.Background(), Request{MemberID: ""}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}
