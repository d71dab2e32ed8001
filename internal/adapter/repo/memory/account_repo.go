package memory

import (
	"context"

	"tavola/internal/app/ports"
	"tavola/internal/domain/progression"
)

type AccountRepo struct {
	store *Store
}

func NewAccountRepo(store *Store) AccountRepo {
	return AccountRepo{store: store}
}

func (r AccountRepo) GetByMemberID(_ context.Context, memberID string) (progression.AccountSnapshot, error) {
	snapshot, ok := r.store.accounts[memberID]
	if !ok {
		return progression.AccountSnapshot{}, ports.ErrNotFound
	}
	return snapshot, nil
}

func (r AccountRepo) SaveBalancesWithVersion(_ context.Context, snapshot progression.AccountSnapshot, expectedVersion int64) error {
	current, ok := r.store.accounts[snapshot.MemberID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.accounts[snapshot.MemberID] = snapshot
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	current.Points = snapshot.Points
	current.Tokens = snapshot.Tokens
	current.Version = snapshot.Version
	r.store.accounts[snapshot.MemberID] = current
	return nil
}
