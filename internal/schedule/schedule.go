// Package schedule decides whether a clock request falls inside the
// allowed working window for the employee's shift class and day of week.
package schedule

import (
	"context"
	"fmt"
	"time"

	"asistencia/internal/employee"
	"asistencia/internal/platform/config"
	pkgerrors "asistencia/pkg/errors"
)

// Gate checks employees against the configured window table. The table is
// immutable after startup.
type Gate struct {
	schedule  config.Schedule
	employees employee.Store
}

func NewGate(schedule config.Schedule, employees employee.Store) *Gate {
	return &Gate{schedule: schedule, employees: employees}
}

// Check returns nil when the employee exists, is active, and now's
// time-of-day falls inside the applicable window (closing extended by the
// exit grace). Only the weekday/weekend split looks at the calendar; the
// comparison itself is time-of-day only.
func (g *Gate) Check(ctx context.Context, employeeName string, now time.Time) error {
	emp, err := g.employees.FindByName(ctx, employeeName)
	if err != nil {
		return err
	}
	if !emp.Active() {
		return pkgerrors.New(pkgerrors.CodeEmployeeInactive, "Empleado no está activo")
	}

	window := g.windowFor(emp.Role, now)

	current := now.Hour()*3600 + now.Minute()*60 + now.Second()
	opening := window.Opening.Minutes() * 60
	closing := window.Closing.Minutes()*60 + int(g.schedule.ExitGrace.Seconds())

	if current < opening {
		return pkgerrors.New(pkgerrors.CodeBeforeOpening,
			fmt.Sprintf("Fuera de horario. Inicio: %s", window.Opening))
	}
	if current > closing {
		return pkgerrors.New(pkgerrors.CodeAfterGraceClose,
			fmt.Sprintf("Fuera de horario. Cierre: %s (+ %d min)",
				window.Closing, int(g.schedule.ExitGrace.Minutes())))
	}
	return nil
}

func (g *Gate) windowFor(role config.ShiftClass, now time.Time) config.Window {
	windows, ok := g.schedule.Windows[role]
	if !ok {
		windows = g.schedule.Windows[g.schedule.DefaultClass]
	}
	if isWeekend(now) {
		return windows.Weekend
	}
	return windows.Weekday
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
