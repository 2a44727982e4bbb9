package ledger

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps records in process memory. Used in tests and when
// the ledger is switched off on disk.
type MemoryStore struct {
	mu   sync.RWMutex
	recs []RunRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, rec RunRecord) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = append(s.recs, rec)
	return nil
}

func (s *MemoryStore) Recent(_ context.Context, limit int) ([]RunRecord, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	if limit <= 0 {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.recs)
	if limit > n {
		limit = n
	}
	out := make([]RunRecord, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.recs[i])
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
