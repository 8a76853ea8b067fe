package employee

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"asistencia/internal/platform/config"
)

// PostgresStore reads the empleados table maintained by the registration
// workflow.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByName(ctx context.Context, name string) (Employee, error) {
	query := `
		SELECT nombre, rol, estado, tipo_pago, sueldo_mensual
		FROM empleados
		WHERE nombre = $1
	`
	var e Employee
	var role string
	err := s.db.QueryRowContext(ctx, query, name).Scan(
		&e.Name, &role, &e.Status, &e.PayType, &e.MonthlySalary,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, fmt.Errorf("find employee: %w", err)
	}
	e.Role = config.ShiftClass(role)
	return e, nil
}

func (s *PostgresStore) ListActive(ctx context.Context) ([]Employee, error) {
	query := `
		SELECT nombre, rol, estado, tipo_pago, sueldo_mensual
		FROM empleados
		WHERE estado = $1
		ORDER BY nombre
	`
	rows, err := s.db.QueryContext(ctx, query, StatusActive)
	if err != nil {
		return nil, fmt.Errorf("list active employees: %w", err)
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		var role string
		if err := rows.Scan(&e.Name, &role, &e.Status, &e.PayType, &e.MonthlySalary); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		e.Role = config.ShiftClass(role)
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}
	return employees, nil
}
