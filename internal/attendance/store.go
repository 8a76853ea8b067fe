package attendance

import "context"

//go:generate mockgen -source=store.go -destination=mocks/mocks.go -package=mocks EventStore,AttemptStore

// EventStore is the append-only clock event log plus the point queries
// the validator and the read endpoints need. Events are never updated or
// deleted.
type EventStore interface {
	Append(ctx context.Context, event ClockEvent) error
	// LastByEmployee returns the most recent event for the employee by
	// timestamp, or ok=false when the employee has no history.
	LastByEmployee(ctx context.Context, employeeName string) (ClockEvent, bool, error)
	ListByDate(ctx context.Context, date string) ([]ClockEvent, error)
	// ListByEmployeeSince returns events on or after fromDate, newest first.
	ListByEmployeeSince(ctx context.Context, employeeName, fromDate string) ([]ClockEvent, error)
	// ListRange returns validated events with date in [from, to] ordered by
	// employee then timestamp ascending, optionally filtered by employee.
	ListRange(ctx context.Context, fromDate, toDate, employeeName string) ([]ClockEvent, error)
}

// AttemptStore is the append-only failed attempt log.
type AttemptStore interface {
	Append(ctx context.Context, attempt FailedAttempt) error
	ListSince(ctx context.Context, fromTimestamp int64) ([]FailedAttempt, error)
}
