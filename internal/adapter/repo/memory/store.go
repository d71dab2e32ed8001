package memory

import (
	"sync"

	"tavola/internal/app/ports"
	"tavola/internal/domain/progression"
)

// Store is the in-memory backing shared by the repos in this package. The
// TxManager serializes transactional sections on the store mutex.
type Store struct {
	mu       sync.Mutex
	accounts map[string]progression.AccountSnapshot
	ledger   map[string]ports.LedgerEntry
	history  map[string][]ports.LedgerEntry
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[string]progression.AccountSnapshot),
		ledger:   make(map[string]ports.LedgerEntry),
		history:  make(map[string][]ports.LedgerEntry),
	}
}

func ledgerKey(memberID, key string) string {
	return memberID + "::" + key
}

func (s *Store) SeedAccount(snapshot progression.AccountSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[snapshot.MemberID] = snapshot
}
