package employee

import (
	"context"

	pkgerrors "asistencia/pkg/errors"
)

// ErrNotFound keeps directory lookups consistent across implementations.
var ErrNotFound = pkgerrors.New(pkgerrors.CodeEmployeeNotFound, "empleado no encontrado")

// Store is the employee directory read interface.
type Store interface {
	FindByName(ctx context.Context, name string) (Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
}
