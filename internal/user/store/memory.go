package store

import (
	"context"
	"sync"

	"github.com/AlibekovAA/user-registry/internal/user/domain"
)

// MemoryStore answers deletes from a configured table. Ids without an answer report false.
type MemoryStore struct {
	mu      sync.RWMutex
	answers map[domain.ID]bool
	calls   []domain.ID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{answers: make(map[domain.ID]bool)}
}

func (s *MemoryStore) Set(id domain.ID, deleted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers[id] = deleted
}

// Confirm marks every given id as deletable.
func (s *MemoryStore) Confirm(ids ...domain.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.answers[id] = true
	}
}

func (s *MemoryStore) Delete(_ context.Context, id domain.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, id)
	return s.answers[id], nil
}

// Calls returns the ids Delete was invoked with, in order.
func (s *MemoryStore) Calls() []domain.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ID, len(s.calls))
	copy(out, s.calls)
	return out
}
