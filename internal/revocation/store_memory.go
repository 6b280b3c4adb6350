package revocation

import (
	"context"
	"strings"
	"sync"
)

// InMemoryStore is a process-local revocation set for development and tests.
type InMemoryStore struct {
	mu      sync.RWMutex
	revoked map[string]struct{}
}

// NewInMemoryStore constructs an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{revoked: make(map[string]struct{})}
}

func (s *InMemoryStore) Apply(_ context.Context, revoked, deleted []string) error {
	revoked, deleted = normalize(revoked), normalize(deleted)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range revoked {
		s.revoked[id] = struct{}{}
	}
	for _, id := range deleted {
		delete(s.revoked, id)
	}
	recordApply(len(revoked), len(deleted))
	return nil
}

func (s *InMemoryStore) IsRevoked(_ context.Context, uvci string) (bool, error) {
	uvci = strings.TrimSpace(uvci)
	if uvci == "" {
		return false, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.revoked[uvci]
	return ok, nil
}

func (s *InMemoryStore) Clean(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked = make(map[string]struct{})
	recordClean()
	return nil
}

// Len reports the number of revoked identifiers.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.revoked)
}
