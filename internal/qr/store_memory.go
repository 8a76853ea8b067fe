package qr

import (
	"context"
	"sync"
	"time"
)

// InMemoryStore keeps the issuance log for tests.
type InMemoryStore struct {
	mu     sync.Mutex
	tokens []IssuedToken
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, token IssuedToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = append(s.tokens, token)
	return nil
}

// Issued returns a copy of the log.
func (s *InMemoryStore) Issued() []IssuedToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]IssuedToken{}, s.tokens...)
}

// InMemoryUsageStore implements single-use marking without Redis.
type InMemoryUsageStore struct {
	mu   sync.Mutex
	used map[string]time.Time
}

func NewInMemoryUsageStore() *InMemoryUsageStore {
	return &InMemoryUsageStore{used: make(map[string]time.Time)}
}

func (s *InMemoryUsageStore) MarkUsed(_ context.Context, tokenID string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.used[tokenID]; ok {
		return true, nil
	}
	s.used[tokenID] = time.Now()
	return false, nil
}
