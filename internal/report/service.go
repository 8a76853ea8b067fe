package report

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"asistencia/internal/attendance"
	"asistencia/internal/employee"
	pkgerrors "asistencia/pkg/errors"
)

// CSVWriter persists an exported record set. The default implementation
// writes files to a directory; tests swap in a capture.
type CSVWriter interface {
	Write(ctx context.Context, filename string, header []string, rows [][]string) error
}

// Service builds payroll and anomaly reports from the raw event log.
// Reports are always recomputed; nothing here is cached or persisted.
type Service struct {
	events    attendance.EventStore
	employees employee.Store
	csv       CSVWriter
	logger    *slog.Logger
	tracer    trace.Tracer
}

func NewService(events attendance.EventStore, employees employee.Store, csv CSVWriter, logger *slog.Logger) *Service {
	return &Service{
		events:    events,
		employees: employees,
		csv:       csv,
		logger:    logger,
		tracer:    otel.Tracer("asistencia/report"),
	}
}

// Hours builds the worked-hours report for [from, to]. When employeeName
// is empty every employee with events in the range gets a row. Session
// reconstruction runs per employee in parallel; result order follows the
// store's ordering (employee ascending).
func (s *Service) Hours(ctx context.Context, from, to, employeeName string) ([]EmployeeHours, error) {
	ctx, span := s.tracer.Start(ctx, "report.Hours", trace.WithAttributes(
		attribute.String("from", from),
		attribute.String("to", to),
	))
	defer span.End()

	events, err := s.events.ListRange(ctx, from, to, employeeName)
	if err != nil {
		return nil, s.internal(ctx, "list events", err)
	}

	grouped, order := groupByEmployee(events)

	results := make([]EmployeeHours, len(order))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range order {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = buildEmployeeHours(name, grouped[name])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, s.internal(ctx, "build report", err)
	}
	return results, nil
}

func buildEmployeeHours(name string, events []attendance.ClockEvent) EmployeeHours {
	row := EmployeeHours{Employee: name, Detail: []DayDetail{}}

	var total float64
	for _, sess := range buildSessions(events) {
		if sess.Open {
			continue
		}
		class := ClassifyDay(rawHours(sess))
		if class != DayIncomplete {
			row.TotalDays++
		}
		total += rawHours(sess)
		row.Detail = append(row.Detail, DayDetail{
			Date:  sess.Date,
			Entry: sess.Entry,
			Exit:  sess.Exit,
			Hours: sess.Hours,
			Class: string(class),
		})
	}
	row.TotalHours = round2(total)
	return row
}

// PayPeriod builds the quincena summary for one employee over [from, to].
// Closed sessions are classified as full or half shifts; entries that
// never got an exit are counted separately and contribute no hours.
func (s *Service) PayPeriod(ctx context.Context, employeeName, from, to string) (PayPeriod, error) {
	ctx, span := s.tracer.Start(ctx, "report.PayPeriod", trace.WithAttributes(
		attribute.String("employee", employeeName),
	))
	defer span.End()

	if _, err := s.employees.FindByName(ctx, employeeName); err != nil {
		return PayPeriod{}, err
	}

	events, err := s.events.ListRange(ctx, from, to, employeeName)
	if err != nil {
		return PayPeriod{}, s.internal(ctx, "list events", err)
	}

	period := PayPeriod{Employee: employeeName, Detail: []DayDetail{}}
	var total float64
	for _, sess := range buildSessions(events) {
		if sess.Open {
			period.EntradasSinSalida++
			continue
		}
		turno := ClassifyTurno(rawHours(sess))
		switch turno {
		case TurnoCompleto:
			period.DiasCompletos++
		case TurnoMedio:
			period.MediosTurnos++
		}
		total += rawHours(sess)
		period.Detail = append(period.Detail, DayDetail{
			Date:  sess.Date,
			Entry: sess.Entry,
			Exit:  sess.Exit,
			Hours: sess.Hours,
			Turno: string(turno),
		})
	}
	period.TotalHours = round2(total)
	period.Faltas = Faltas(period.DiasCompletos + period.MediosTurnos)
	return period, nil
}

// PayPeriods builds the quincena summary for every active employee paid
// by quincena. Monthly-paid staff never appear here.
func (s *Service) PayPeriods(ctx context.Context, from, to string) ([]PayPeriod, error) {
	ctx, span := s.tracer.Start(ctx, "report.PayPeriods")
	defer span.End()

	active, err := s.employees.ListActive(ctx)
	if err != nil {
		return nil, s.internal(ctx, "list employees", err)
	}

	var names []string
	for _, e := range active {
		if e.PayType == employee.PayQuincenal {
			names = append(names, e.Name)
		}
	}

	periods := make([]PayPeriod, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			p, err := s.PayPeriod(gctx, name, from, to)
			if err != nil {
				return err
			}
			periods[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return periods, nil
}

// Anomalies scans [from, to] for suspicious attendance patterns: open
// sessions, short full-threshold shifts and overly long shifts.
func (s *Service) Anomalies(ctx context.Context, from, to string) ([]Anomaly, error) {
	ctx, span := s.tracer.Start(ctx, "report.Anomalies")
	defer span.End()

	events, err := s.events.ListRange(ctx, from, to, "")
	if err != nil {
		return nil, s.internal(ctx, "list events", err)
	}

	grouped, order := groupByEmployee(events)

	anomalies := []Anomaly{}
	for _, name := range order {
		openDays := 0
		for _, sess := range buildSessions(grouped[name]) {
			if sess.Open {
				openDays++
				continue
			}
			// Scans the displayed (rounded) duration, so a shift must
			// round below 6h to flag short.
			switch {
			case ClassifyTurno(rawHours(sess)) == TurnoCompleto && sess.Hours < 6:
				anomalies = append(anomalies, Anomaly{
					Employee: name,
					Kind:     AnomalyShortShift,
					Date:     sess.Date,
					Hours:    sess.Hours,
					Severity: SeverityHigh,
				})
			case sess.Hours > 10:
				anomalies = append(anomalies, Anomaly{
					Employee: name,
					Kind:     AnomalyLongShift,
					Date:     sess.Date,
					Hours:    sess.Hours,
					Severity: SeverityLow,
				})
			}
		}
		if openDays > 0 {
			anomalies = append(anomalies, Anomaly{
				Employee: name,
				Kind:     AnomalyOpenSession,
				Count:    openDays,
				Severity: SeverityMedium,
			})
		}
	}
	return anomalies, nil
}

var exportHeader = []string{"empleado", "tipo", "fecha", "hora", "distancia_m", "dispositivo"}

// ExportCSV dumps every validated event in [from, to] as one CSV row per
// event, named asistencia_<from>_<to>.csv.
func (s *Service) ExportCSV(ctx context.Context, from, to string) (ExportResult, error) {
	ctx, span := s.tracer.Start(ctx, "report.ExportCSV")
	defer span.End()

	events, err := s.events.ListRange(ctx, from, to, "")
	if err != nil {
		return ExportResult{}, s.internal(ctx, "list events", err)
	}

	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			e.EmployeeName,
			string(e.Kind),
			e.Date,
			e.Time,
			fmt.Sprintf("%.2f", e.DistanceMeters),
			e.Device,
		})
	}

	filename := fmt.Sprintf("asistencia_%s_%s.csv", from, to)
	if err := s.csv.Write(ctx, filename, exportHeader, rows); err != nil {
		return ExportResult{}, s.internal(ctx, "write csv", err)
	}
	s.logger.InfoContext(ctx, "csv exported", "filename", filename, "records", len(rows))
	return ExportResult{Filename: filename, RecordCount: len(rows)}, nil
}

func (s *Service) internal(ctx context.Context, op string, err error) error {
	s.logger.ErrorContext(ctx, "report failure", "op", op, "error", err)
	return pkgerrors.New(pkgerrors.CodeInternal, "Error interno del servidor")
}
