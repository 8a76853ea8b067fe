package employee

import (
	"context"
	"sort"
	"sync"
)

// InMemoryStore backs the directory in tests and single-node deployments
// seeded from a file at startup.
type InMemoryStore struct {
	mu        sync.RWMutex
	employees map[string]Employee
}

func NewInMemoryStore(seed ...Employee) *InMemoryStore {
	s := &InMemoryStore{employees: make(map[string]Employee)}
	for _, e := range seed {
		s.employees[e.Name] = e
	}
	return s
}

// Put inserts or replaces a directory entry.
func (s *InMemoryStore) Put(e Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[e.Name] = e
}

func (s *InMemoryStore) FindByName(_ context.Context, name string) (Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.employees[name]
	if !ok {
		return Employee{}, ErrNotFound
	}
	return e, nil
}

func (s *InMemoryStore) ListActive(_ context.Context) ([]Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var active []Employee
	for _, e := range s.employees {
		if e.Active() {
			active = append(active, e)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Name < active[j].Name })
	return active, nil
}
