package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// PostgresEventStore persists the marcajes table. Inserts only; rows are
// never updated or deleted.
type PostgresEventStore struct {
	db *sql.DB
}

func NewPostgresEventStore(db *sql.DB) *PostgresEventStore {
	return &PostgresEventStore{db: db}
}

const eventColumns = `
	id, empleado_nombre, tipo, fecha, hora, timestamp,
	latitud, longitud, distancia_metros, dispositivo, validado, sincronizado
`

func (s *PostgresEventStore) Append(ctx context.Context, event ClockEvent) error {
	query := `
		INSERT INTO marcajes (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		event.EmployeeName,
		event.Kind,
		event.Date,
		event.Time,
		event.Timestamp,
		event.Lat,
		event.Lon,
		event.DistanceMeters,
		event.Device,
		event.Validated,
		event.Synced,
	)
	if err != nil {
		return fmt.Errorf("insert clock event: %w", err)
	}
	return nil
}

func (s *PostgresEventStore) LastByEmployee(ctx context.Context, employeeName string) (ClockEvent, bool, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM marcajes
		WHERE empleado_nombre = $1
		ORDER BY timestamp DESC
		LIMIT 1
	`
	event, err := s.scanEvent(s.db.QueryRowContext(ctx, query, employeeName))
	if errors.Is(err, sql.ErrNoRows) {
		return ClockEvent{}, false, nil
	}
	if err != nil {
		return ClockEvent{}, false, fmt.Errorf("query last clock event: %w", err)
	}
	return event, true, nil
}

func (s *PostgresEventStore) ListByDate(ctx context.Context, date string) ([]ClockEvent, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM marcajes
		WHERE fecha = $1
		ORDER BY timestamp DESC
	`
	return s.queryEvents(ctx, query, date)
}

func (s *PostgresEventStore) ListByEmployeeSince(ctx context.Context, employeeName, fromDate string) ([]ClockEvent, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM marcajes
		WHERE empleado_nombre = $1 AND fecha >= $2
		ORDER BY timestamp DESC
	`
	return s.queryEvents(ctx, query, employeeName, fromDate)
}

func (s *PostgresEventStore) ListRange(ctx context.Context, fromDate, toDate, employeeName string) ([]ClockEvent, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM marcajes
		WHERE validado AND fecha BETWEEN $1 AND $2
	`
	args := []any{fromDate, toDate}
	if employeeName != "" {
		query += " AND empleado_nombre = $3"
		args = append(args, employeeName)
	}
	query += " ORDER BY empleado_nombre, timestamp"
	return s.queryEvents(ctx, query, args...)
}

func (s *PostgresEventStore) queryEvents(ctx context.Context, query string, args ...any) ([]ClockEvent, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query clock events: %w", err)
	}
	defer rows.Close()

	var events []ClockEvent
	for rows.Next() {
		event, err := s.scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan clock event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clock events: %w", err)
	}
	return events, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresEventStore) scanEvent(row rowScanner) (ClockEvent, error) {
	var e ClockEvent
	err := row.Scan(
		&e.ID,
		&e.EmployeeName,
		&e.Kind,
		&e.Date,
		&e.Time,
		&e.Timestamp,
		&e.Lat,
		&e.Lon,
		&e.DistanceMeters,
		&e.Device,
		&e.Validated,
		&e.Synced,
	)
	return e, err
}

// PostgresAttemptStore persists the intentos_fallidos table.
type PostgresAttemptStore struct {
	db *sql.DB
}

func NewPostgresAttemptStore(db *sql.DB) *PostgresAttemptStore {
	return &PostgresAttemptStore{db: db}
}

func (s *PostgresAttemptStore) Append(ctx context.Context, attempt FailedAttempt) error {
	if attempt.ID == uuid.Nil {
		attempt.ID = uuid.New()
	}
	query := `
		INSERT INTO intentos_fallidos
			(id, empleado_nombre, motivo, timestamp, latitud, longitud, dispositivo)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		attempt.ID,
		attempt.EmployeeName,
		attempt.Reason,
		attempt.Timestamp,
		attempt.Lat,
		attempt.Lon,
		attempt.Device,
	)
	if err != nil {
		return fmt.Errorf("insert failed attempt: %w", err)
	}
	return nil
}

func (s *PostgresAttemptStore) ListSince(ctx context.Context, fromTimestamp int64) ([]FailedAttempt, error) {
	query := `
		SELECT id, empleado_nombre, motivo, timestamp, latitud, longitud, dispositivo
		FROM intentos_fallidos
		WHERE timestamp >= $1
		ORDER BY timestamp DESC
	`
	rows, err := s.db.QueryContext(ctx, query, fromTimestamp)
	if err != nil {
		return nil, fmt.Errorf("query failed attempts: %w", err)
	}
	defer rows.Close()

	var attempts []FailedAttempt
	for rows.Next() {
		var a FailedAttempt
		if err := rows.Scan(&a.ID, &a.EmployeeName, &a.Reason, &a.Timestamp, &a.Lat, &a.Lon, &a.Device); err != nil {
			return nil, fmt.Errorf("scan failed attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate failed attempts: %w", err)
	}
	return attempts, nil
}
