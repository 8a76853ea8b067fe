package employee

import "asistencia/internal/platform/config"

// Status values mirror the directory file the site maintains. Only ACTIVO
// employees may clock in.
type Status string

const (
	StatusPending  Status = "PENDIENTE"
	StatusActive   Status = "ACTIVO"
	StatusInactive Status = "INACTIVO"
)

// PayType drives which payroll report an employee appears in.
type PayType string

const (
	PayQuincenal PayType = "quincenal"
	PayMensual   PayType = "mensual"
)

// Employee is a directory entry. Mutated only through the external
// approval workflow; this service reads it to gate clock requests.
type Employee struct {
	Name          string
	Role          config.ShiftClass
	Status        Status
	PayType       PayType
	MonthlySalary float64
}

// Active reports whether the employee may clock in.
func (e Employee) Active() bool {
	return e.Status == StatusActive
}
