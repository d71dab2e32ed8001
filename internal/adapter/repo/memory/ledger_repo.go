package memory

import (
	"context"

	"tavola/internal/app/ports"
)

type LedgerRepo struct {
	store *Store
}

func NewLedgerRepo(store *Store) LedgerRepo {
	return LedgerRepo{store: store}
}

func (r LedgerRepo) GetByIdempotencyKey(_ context.Context, memberID, key string) (*ports.LedgerEntry, error) {
	entry, ok := r.store.ledger[ledgerKey(memberID, key)]
	if !ok {
		return nil, ports.ErrNotFound
	}
	out := entry
	return &out, nil
}

func (r LedgerRepo) Append(_ context.Context, entry ports.LedgerEntry) error {
	key := ledgerKey(entry.MemberID, entry.IdempotencyKey)
	if _, ok := r.store.ledger[key]; ok {
		return ports.ErrConflict
	}
	r.store.ledger[key] = entry
	r.store.history[entry.MemberID] = append(r.store.history[entry.MemberID], entry)
	return nil
}

func (r LedgerRepo) ListByMemberID(_ context.Context, memberID string, limit int) ([]ports.LedgerEntry, error) {
	entries := r.store.history[memberID]
	// Newest first, matching the SQL adapter's ordering.
	out := make([]ports.LedgerEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, entries[i])
	}
	return out, nil
}
