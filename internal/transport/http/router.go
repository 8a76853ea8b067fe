// Package httptransport is the thin HTTP layer. Handlers decode, delegate
// to domain services and encode; business rules never live here.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"asistencia/internal/attendance"
	"asistencia/internal/employee"
	"asistencia/internal/platform/config"
	"asistencia/internal/platform/metrics"
	"asistencia/internal/platform/middleware"
	"asistencia/internal/qr"
	"asistencia/internal/report"
	"asistencia/pkg/platform/httputil"
)

// QRService issues and checks QR tokens.
type QRService interface {
	Issue(ctx context.Context) (qr.Issued, error)
	Verify(ctx context.Context, token string) (string, error)
}

// MarkService runs clock requests through the validation pipeline and
// answers the read queries.
type MarkService interface {
	Mark(ctx context.Context, req attendance.MarkRequest) (attendance.MarkResult, error)
	MarksForDate(ctx context.Context, date string) ([]attendance.ClockEvent, error)
	MarksForEmployee(ctx context.Context, employeeName string, lookbackDays int) ([]attendance.ClockEvent, error)
	FailedAttemptsSince(ctx context.Context, fromTimestamp int64) ([]attendance.FailedAttempt, error)
}

// ReportService builds payroll views from the event log.
type ReportService interface {
	Hours(ctx context.Context, from, to, employeeName string) ([]report.EmployeeHours, error)
	PayPeriod(ctx context.Context, employeeName, from, to string) (report.PayPeriod, error)
	PayPeriods(ctx context.Context, from, to string) ([]report.PayPeriod, error)
	Anomalies(ctx context.Context, from, to string) ([]report.Anomaly, error)
	ExportCSV(ctx context.Context, from, to string) (report.ExportResult, error)
}

// Directory lists the staff able to clock in.
type Directory interface {
	ListActive(ctx context.Context) ([]employee.Employee, error)
}

// Handler wires all endpoints to their services.
type Handler struct {
	cfg     config.Config
	qr      QRService
	marks   MarkService
	reports ReportService
	staff   Directory
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewHandler(
	cfg config.Config,
	qrs QRService,
	marks MarkService,
	reports ReportService,
	staff Directory,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Handler {
	return &Handler{
		cfg:     cfg,
		qr:      qrs,
		marks:   marks,
		reports: reports,
		staff:   staff,
		logger:  logger,
		metrics: m,
	}
}

// NewRouter mounts every endpoint behind the standard middleware chain.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.DeviceLabel)
	r.Use(middleware.Logger(h.logger))
	r.Use(middleware.Latency(h.metrics))
	r.Use(middleware.Recovery(h.logger))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.handleHealth)
		r.Get("/generar-qr", h.handleGenerateQR)
		r.With(middleware.ContentTypeJSON).Post("/validar-qr", h.handleValidateQR)
		r.With(middleware.ContentTypeJSON).Post("/marcar", h.handleMark)
		r.Get("/empleados", h.handleListEmployees)
		r.Get("/marcajes/hoy", h.handleMarksToday)
		r.Get("/marcajes/empleado/{nombre}", h.handleMarksForEmployee)
		r.Get("/intentos-fallidos", h.handleFailedAttempts)
		r.Get("/reporte/horas", h.handleHoursReport)
		r.Get("/reporte/quincena", h.handlePayPeriodReport)
		r.Get("/reporte/anomalias", h.handleAnomaliesReport)
		r.Get("/exportar/csv", h.handleExportCSV)
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":           "ok",
		"radio_metros":     h.cfg.GPSRadiusM,
		"qr_vigencia_seg":  int(h.cfg.QRLifetime.Seconds()),
		"qr_un_solo_uso":   h.cfg.QRSingleUse,
		"almacen_postgres": h.cfg.DatabaseURL != "",
	})
}
