package artifact

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemorySink keeps written artifacts in a map. Meant for tests and for
// the gateway's dry-run mode.
type MemorySink struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemorySink() *MemorySink {
	return &MemorySink{data: make(map[string][]byte)}
}

func (s *MemorySink) Write(_ context.Context, rel string, data []byte) error {
	if s == nil {
		return fmt.Errorf("sink is nil")
	}
	if err := ValidatePath(rel); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[normalizeRel(rel)] = append([]byte(nil), data...)
	return nil
}

func (s *MemorySink) Flush(context.Context) error { return nil }

// Get returns a copy of a written artifact.
func (s *MemorySink) Get(rel string) ([]byte, bool) {
	if s == nil {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.data[normalizeRel(rel)]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), raw...), true
}

// Files lists written paths in sorted order.
func (s *MemorySink) Files() []string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.data))
	for key := range s.data {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
