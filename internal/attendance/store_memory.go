package attendance

import (
	"context"
	"sort"
	"sync"
)

// InMemoryEventStore keeps the event log in memory for tests and local
// runs without Postgres.
type InMemoryEventStore struct {
	mu     sync.RWMutex
	events []ClockEvent
}

func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{}
}

func (s *InMemoryEventStore) Append(_ context.Context, event ClockEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *InMemoryEventStore) LastByEmployee(_ context.Context, employeeName string) (ClockEvent, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var last ClockEvent
	found := false
	for _, e := range s.events {
		if e.EmployeeName != employeeName {
			continue
		}
		if !found || e.Timestamp >= last.Timestamp {
			last = e
			found = true
		}
	}
	return last, found, nil
}

func (s *InMemoryEventStore) ListByDate(_ context.Context, date string) ([]ClockEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []ClockEvent
	for _, e := range s.events {
		if e.Date == date {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out, nil
}

func (s *InMemoryEventStore) ListByEmployeeSince(_ context.Context, employeeName, fromDate string) ([]ClockEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []ClockEvent
	for _, e := range s.events {
		if e.EmployeeName == employeeName && e.Date >= fromDate {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out, nil
}

func (s *InMemoryEventStore) ListRange(_ context.Context, fromDate, toDate, employeeName string) ([]ClockEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []ClockEvent
	for _, e := range s.events {
		if !e.Validated || e.Date < fromDate || e.Date > toDate {
			continue
		}
		if employeeName != "" && e.EmployeeName != employeeName {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EmployeeName != out[j].EmployeeName {
			return out[i].EmployeeName < out[j].EmployeeName
		}
		return out[i].Timestamp < out[j].Timestamp
	})
	return out, nil
}

// InMemoryAttemptStore keeps rejected attempts in memory.
type InMemoryAttemptStore struct {
	mu       sync.RWMutex
	attempts []FailedAttempt
}

func NewInMemoryAttemptStore() *InMemoryAttemptStore {
	return &InMemoryAttemptStore{}
}

func (s *InMemoryAttemptStore) Append(_ context.Context, attempt FailedAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts = append(s.attempts, attempt)
	return nil
}

func (s *InMemoryAttemptStore) ListSince(_ context.Context, fromTimestamp int64) ([]FailedAttempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []FailedAttempt
	for _, a := range s.attempts {
		if a.Timestamp >= fromTimestamp {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out, nil
}
