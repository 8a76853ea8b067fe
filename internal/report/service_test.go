package report_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asistencia/internal/attendance"
	"asistencia/internal/employee"
	"asistencia/internal/report"
)

var bogota = time.FixedZone("America/Bogota", -5*3600)

type captureCSV struct {
	filename string
	header   []string
	rows     [][]string
}

func (c *captureCSV) Write(_ context.Context, filename string, header []string, rows [][]string) error {
	c.filename = filename
	c.header = header
	c.rows = rows
	return nil
}

type fixture struct {
	events    *attendance.InMemoryEventStore
	employees *employee.InMemoryStore
	csv       *captureCSV
	service   *report.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	events := attendance.NewInMemoryEventStore()
	employees := employee.NewInMemoryStore()
	csv := &captureCSV{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{
		events:    events,
		employees: employees,
		csv:       csv,
		service:   report.NewService(events, employees, csv, logger),
	}
}

func (f *fixture) mark(t *testing.T, name string, kind attendance.Kind, date, clock string) {
	t.Helper()
	f.employees.Put(employee.Employee{
		Name:    name,
		Role:    "general",
		Status:  employee.StatusActive,
		PayType: employee.PayQuincenal,
	})
	at, err := time.ParseInLocation("2006-01-02 15:04:05", date+" "+clock, bogota)
	require.NoError(t, err)
	event := attendance.NewClockEvent(attendance.MarkRequest{
		EmployeeName: name,
		Kind:         kind,
		Lat:          5.6185,
		Lon:          -73.8162,
		Device:       "Chrome/Android/mobile",
	}, at, 12.5)
	require.NoError(t, f.events.Append(context.Background(), event))
}

func TestHoursPairsFirstEntryWithLastExit(t *testing.T) {
	f := newFixture(t)
	f.mark(t, "Ana", attendance.KindEntry, "2025-11-10", "09:00:00")
	f.mark(t, "Ana", attendance.KindEntry, "2025-11-10", "09:05:00")
	f.mark(t, "Ana", attendance.KindExit, "2025-11-10", "17:00:00")
	f.mark(t, "Ana", attendance.KindExit, "2025-11-10", "17:30:00")

	rows, err := f.service.Hours(context.Background(), "2025-11-10", "2025-11-10", "")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Ana", row.Employee)
	require.Len(t, row.Detail, 1)
	day := row.Detail[0]
	assert.Equal(t, "09:00:00", day.Entry)
	assert.Equal(t, "17:30:00", day.Exit)
	assert.InDelta(t, 8.5, day.Hours, 0.001)
	assert.Equal(t, "completa", day.Class)
	assert.Equal(t, 1, row.TotalDays)
	assert.InDelta(t, 8.5, row.TotalHours, 0.001)
}

func TestHoursClassifiesTiers(t *testing.T) {
	f := newFixture(t)
	// 7h full, 4h partial, 2h incomplete, across three days.
	f.mark(t, "Ana", attendance.KindEntry, "2025-11-10", "11:30:00")
	f.mark(t, "Ana", attendance.KindExit, "2025-11-10", "18:30:00")
	f.mark(t, "Ana", attendance.KindEntry, "2025-11-11", "11:30:00")
	f.mark(t, "Ana", attendance.KindExit, "2025-11-11", "15:30:00")
	f.mark(t, "Ana", attendance.KindEntry, "2025-11-12", "11:30:00")
	f.mark(t, "Ana", attendance.KindExit, "2025-11-12", "13:30:00")

	rows, err := f.service.Hours(context.Background(), "2025-11-10", "2025-11-12", "Ana")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	require.Len(t, row.Detail, 3)
	assert.Equal(t, "completa", row.Detail[0].Class)
	assert.Equal(t, "parcial", row.Detail[1].Class)
	assert.Equal(t, "incompleta", row.Detail[2].Class)
	// Incomplete day contributes hours but no day count.
	assert.Equal(t, 2, row.TotalDays)
	assert.InDelta(t, 13, row.TotalHours, 0.001)
}

func TestHoursSkipsOpenAndExitOnlyDays(t *testing.T) {
	f := newFixture(t)
	f.mark(t, "Ana", attendance.KindEntry, "2025-11-10", "11:30:00")
	f.mark(t, "Ana", attendance.KindExit, "2025-11-11", "21:00:00")

	rows, err := f.service.Hours(context.Background(), "2025-11-01", "2025-11-30", "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].Detail)
	assert.Zero(t, rows[0].TotalDays)
	assert.Zero(t, rows[0].TotalHours)
}

func TestHoursSeparatesEmployees(t *testing.T) {
	f := newFixture(t)
	f.mark(t, "Luis", attendance.KindEntry, "2025-11-10", "11:30:00")
	f.mark(t, "Luis", attendance.KindExit, "2025-11-10", "19:30:00")
	f.mark(t, "Ana", attendance.KindEntry, "2025-11-10", "11:30:00")
	f.mark(t, "Ana", attendance.KindExit, "2025-11-10", "18:30:00")

	rows, err := f.service.Hours(context.Background(), "2025-11-10", "2025-11-10", "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ana", rows[0].Employee)
	assert.Equal(t, "Luis", rows[1].Employee)
	assert.InDelta(t, 7, rows[0].TotalHours, 0.001)
	assert.InDelta(t, 8, rows[1].TotalHours, 0.001)
}

func TestPayPeriodCountsShiftsAndFaltas(t *testing.T) {
	f := newFixture(t)
	// 8 full shifts, 2 half shifts, 1 entry without exit.
	for day := 1; day <= 8; day++ {
		date := time.Date(2025, 11, day, 0, 0, 0, 0, bogota).Format("2006-01-02")
		f.mark(t, "Ana", attendance.KindEntry, date, "11:30:00")
		f.mark(t, "Ana", attendance.KindExit, date, "20:00:00")
	}
	for day := 9; day <= 10; day++ {
		date := time.Date(2025, 11, day, 0, 0, 0, 0, bogota).Format("2006-01-02")
		f.mark(t, "Ana", attendance.KindEntry, date, "11:30:00")
		f.mark(t, "Ana", attendance.KindExit, date, "15:30:00")
	}
	f.mark(t, "Ana", attendance.KindEntry, "2025-11-11", "11:30:00")

	period, err := f.service.PayPeriod(context.Background(), "Ana", "2025-11-01", "2025-11-15")
	require.NoError(t, err)

	assert.Equal(t, 8, period.DiasCompletos)
	assert.Equal(t, 2, period.MediosTurnos)
	assert.Equal(t, 1, period.EntradasSinSalida)
	// 15 days minus 10 worked minus 2 rest days.
	assert.Equal(t, 3, period.Faltas)
	assert.InDelta(t, 8*8.5+2*4, period.TotalHours, 0.001)
	require.Len(t, period.Detail, 10)
	assert.Equal(t, "completo", period.Detail[0].Turno)
	assert.Equal(t, "medio", period.Detail[8].Turno)
}

func TestPayPeriodFaltasNeverNegative(t *testing.T) {
	f := newFixture(t)
	for day := 1; day <= 14; day++ {
		date := time.Date(2025, 11, day, 0, 0, 0, 0, bogota).Format("2006-01-02")
		f.mark(t, "Ana", attendance.KindEntry, date, "11:30:00")
		f.mark(t, "Ana", attendance.KindExit, date, "20:00:00")
	}

	period, err := f.service.PayPeriod(context.Background(), "Ana", "2025-11-01", "2025-11-15")
	require.NoError(t, err)
	assert.Zero(t, period.Faltas)
}

func TestPayPeriodUnknownEmployee(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.PayPeriod(context.Background(), "Nadie", "2025-11-01", "2025-11-15")
	assert.ErrorIs(t, err, employee.ErrNotFound)
}

func TestPayPeriodsOnlyCoverQuincenalStaff(t *testing.T) {
	f := newFixture(t)
	f.mark(t, "Ana", attendance.KindEntry, "2025-11-10", "11:30:00")
	f.mark(t, "Ana", attendance.KindExit, "2025-11-10", "20:00:00")
	f.mark(t, "Carlos", attendance.KindEntry, "2025-11-10", "11:30:00")
	f.mark(t, "Carlos", attendance.KindExit, "2025-11-10", "20:00:00")
	f.employees.Put(employee.Employee{
		Name:    "Carlos",
		Role:    "general",
		Status:  employee.StatusActive,
		PayType: employee.PayMensual,
	})

	periods, err := f.service.PayPeriods(context.Background(), "2025-11-01", "2025-11-15")
	require.NoError(t, err)
	require.Len(t, periods, 1)
	assert.Equal(t, "Ana", periods[0].Employee)
}

func TestAnomaliesFlagsOpenShortAndLong(t *testing.T) {
	f := newFixture(t)
	// Two open sessions for Ana.
	f.mark(t, "Ana", attendance.KindEntry, "2025-11-10", "11:30:00")
	f.mark(t, "Ana", attendance.KindEntry, "2025-11-11", "11:30:00")
	// Long shift for Luis.
	f.mark(t, "Luis", attendance.KindEntry, "2025-11-10", "10:00:00")
	f.mark(t, "Luis", attendance.KindExit, "2025-11-10", "21:30:00")

	anomalies, err := f.service.Anomalies(context.Background(), "2025-11-01", "2025-11-30")
	require.NoError(t, err)
	require.Len(t, anomalies, 2)

	assert.Equal(t, report.AnomalyOpenSession, anomalies[0].Kind)
	assert.Equal(t, "Ana", anomalies[0].Employee)
	assert.Equal(t, 2, anomalies[0].Count)
	assert.Equal(t, report.SeverityMedium, anomalies[0].Severity)

	assert.Equal(t, report.AnomalyLongShift, anomalies[1].Kind)
	assert.Equal(t, "Luis", anomalies[1].Employee)
	assert.InDelta(t, 11.5, anomalies[1].Hours, 0.001)
	assert.Equal(t, report.SeverityLow, anomalies[1].Severity)
}

func TestAnomaliesCleanRangeIsEmpty(t *testing.T) {
	f := newFixture(t)
	f.mark(t, "Ana", attendance.KindEntry, "2025-11-10", "11:30:00")
	f.mark(t, "Ana", attendance.KindExit, "2025-11-10", "19:30:00")

	anomalies, err := f.service.Anomalies(context.Background(), "2025-11-01", "2025-11-30")
	require.NoError(t, err)
	assert.Empty(t, anomalies)
}

func TestExportCSVWritesEveryEvent(t *testing.T) {
	f := newFixture(t)
	f.mark(t, "Ana", attendance.KindEntry, "2025-11-10", "11:30:00")
	f.mark(t, "Ana", attendance.KindExit, "2025-11-10", "19:30:00")
	f.mark(t, "Luis", attendance.KindEntry, "2025-11-10", "11:45:00")

	result, err := f.service.ExportCSV(context.Background(), "2025-11-01", "2025-11-30")
	require.NoError(t, err)

	assert.Equal(t, "asistencia_2025-11-01_2025-11-30.csv", result.Filename)
	assert.Equal(t, 3, result.RecordCount)
	require.Len(t, f.csv.rows, 3)
	assert.Equal(t, []string{"empleado", "tipo", "fecha", "hora", "distancia_m", "dispositivo"}, f.csv.header)
	assert.Equal(t, []string{"Ana", "entrada", "2025-11-10", "11:30:00", "12.50", "Chrome/Android/mobile"}, f.csv.rows[0])
}
