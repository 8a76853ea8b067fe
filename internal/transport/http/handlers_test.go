package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"asistencia/internal/attendance"
	"asistencia/internal/employee"
	"asistencia/internal/platform/config"
	"asistencia/internal/qr"
	"asistencia/internal/report"
	"asistencia/internal/schedule"
)

// HandlerSuite runs every endpoint through the real router with real
// in-memory components. The schedule is opened around the clock so the
// wall-time of the test run never matters.
type HandlerSuite struct {
	suite.Suite
	router http.Handler
	qr     *qr.Service
	events *attendance.InMemoryEventStore
}

func (s *HandlerSuite) SetupTest() {
	cfg := config.FromEnv()
	allDay := config.Window{
		Opening: config.ClockTime{Hour: 0, Minute: 0},
		Closing: config.ClockTime{Hour: 23, Minute: 59},
	}
	for class, windows := range cfg.Schedule.Windows {
		windows.Weekday = allDay
		windows.Weekend = allDay
		cfg.Schedule.Windows[class] = windows
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	staff := employee.NewInMemoryStore(
		employee.Employee{Name: "Ana", Role: "general", Status: employee.StatusActive, PayType: employee.PayQuincenal},
		employee.Employee{Name: "Luis", Role: "cocina", Status: employee.StatusActive, PayType: employee.PayQuincenal},
		employee.Employee{Name: "Pedro", Role: "general", Status: employee.StatusInactive, PayType: employee.PayMensual},
	)

	qrService := qr.NewService(cfg.SecretKey, cfg.QRLifetime, qr.NewInMemoryStore())
	gate := schedule.NewGate(cfg.Schedule, staff)
	s.events = attendance.NewInMemoryEventStore()
	attempts := attendance.NewInMemoryAttemptStore()

	marks := attendance.NewService(
		attendance.Site{Lat: cfg.SiteLat, Lon: cfg.SiteLon, RadiusM: cfg.GPSRadiusM},
		qrService,
		gate,
		s.events,
		attempts,
		logger,
		nil,
	)
	reports := report.NewService(s.events, staff, report.NewFileCSVWriter(s.T().TempDir()), logger)

	s.qr = qrService
	handler := NewHandler(cfg, qrService, marks, reports, staff, logger, nil)
	s.router = NewRouter(handler)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) postJSON(path string, payload any) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	require.NoError(s.T(), err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Linux; Android 14) Chrome/122.0 Mobile Safari/537.36")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) decode(rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(s.T(), json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func (s *HandlerSuite) freshToken() string {
	issued, err := s.qr.Issue(context.Background())
	require.NoError(s.T(), err)
	return issued.Token
}

func (s *HandlerSuite) markPayload(token, name, kind string) map[string]any {
	return map[string]any{
		"token":    token,
		"empleado": name,
		"tipo":     kind,
		"lat":      5.618553712703385,
		"lng":      -73.81627418830061,
	}
}

func (s *HandlerSuite) TestHealth() {
	rec := s.get("/api/health")
	require.Equal(s.T(), http.StatusOK, rec.Code)
	body := s.decode(rec)
	assert.Equal(s.T(), "ok", body["status"])
	assert.EqualValues(s.T(), 50, body["radio_metros"])
}

func (s *HandlerSuite) TestGenerateQR() {
	rec := s.get("/api/generar-qr")
	require.Equal(s.T(), http.StatusOK, rec.Code)
	body := s.decode(rec)
	assert.NotEmpty(s.T(), body["token"])
	assert.EqualValues(s.T(), 300, body["valid_for_seconds"])

	expiresAt, ok := body["expires_at"].(string)
	require.True(s.T(), ok, "expires_at must be a string")
	parsed, err := time.Parse(time.RFC3339, expiresAt)
	require.NoError(s.T(), err)
	assert.True(s.T(), parsed.After(time.Now()))
}

func (s *HandlerSuite) TestValidateQR_Valid() {
	rec := s.postJSON("/api/validar-qr", map[string]string{"token": s.freshToken()})
	require.Equal(s.T(), http.StatusOK, rec.Code)
	body := s.decode(rec)
	assert.Equal(s.T(), true, body["valid"])
	assert.NotEmpty(s.T(), body["token_id"])
}

func (s *HandlerSuite) TestValidateQR_Garbage() {
	rec := s.postJSON("/api/validar-qr", map[string]string{"token": "no-es-un-jwt"})
	require.Equal(s.T(), http.StatusBadRequest, rec.Code)
	body := s.decode(rec)
	assert.Equal(s.T(), false, body["valid"])
	assert.NotEmpty(s.T(), body["error"])
}

func (s *HandlerSuite) TestValidateQR_MalformedJSON() {
	req := httptest.NewRequest(http.MethodPost, "/api/validar-qr", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestMark_Accepted() {
	rec := s.postJSON("/api/marcar", s.markPayload(s.freshToken(), "Ana", "entrada"))
	require.Equal(s.T(), http.StatusOK, rec.Code, rec.Body.String())
	body := s.decode(rec)
	assert.Equal(s.T(), true, body["success"])
	assert.Contains(s.T(), body["message"], "Ana")
	assert.Contains(s.T(), body["message"], "Entrada registrada")
}

func (s *HandlerSuite) TestMark_RecordsDeviceFromUserAgent() {
	rec := s.postJSON("/api/marcar", s.markPayload(s.freshToken(), "Ana", "entrada"))
	require.Equal(s.T(), http.StatusOK, rec.Code)

	events, err := s.events.ListByDate(context.Background(), time.Now().Format("2006-01-02"))
	require.NoError(s.T(), err)
	require.Len(s.T(), events, 1)
	assert.Contains(s.T(), events[0].Device, "Chrome")
}

func (s *HandlerSuite) TestMark_PayloadDeviceOverridesUserAgent() {
	payload := s.markPayload(s.freshToken(), "Ana", "entrada")
	payload["dispositivo"] = "tablet-cocina"
	rec := s.postJSON("/api/marcar", payload)
	require.Equal(s.T(), http.StatusOK, rec.Code)

	events, err := s.events.ListByDate(context.Background(), time.Now().Format("2006-01-02"))
	require.NoError(s.T(), err)
	require.Len(s.T(), events, 1)
	assert.Equal(s.T(), "tablet-cocina", events[0].Device)
}

func (s *HandlerSuite) TestMark_MissingFields() {
	payload := s.markPayload(s.freshToken(), "Ana", "entrada")
	delete(payload, "lat")
	rec := s.postJSON("/api/marcar", payload)
	require.Equal(s.T(), http.StatusBadRequest, rec.Code)
	body := s.decode(rec)
	assert.Equal(s.T(), "missing_fields", body["codigo"])
	assert.Equal(s.T(), "Datos incompletos", body["error"])
}

func (s *HandlerSuite) TestMark_UnknownKind() {
	rec := s.postJSON("/api/marcar", s.markPayload(s.freshToken(), "Ana", "almuerzo"))
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestMark_InvalidToken() {
	rec := s.postJSON("/api/marcar", s.markPayload("basura", "Ana", "entrada"))
	require.Equal(s.T(), http.StatusBadRequest, rec.Code)
	body := s.decode(rec)
	assert.Equal(s.T(), "token_invalid", body["codigo"])
}

func (s *HandlerSuite) TestMark_OutOfRange() {
	payload := s.markPayload(s.freshToken(), "Ana", "entrada")
	payload["lat"] = 5.63
	rec := s.postJSON("/api/marcar", payload)
	require.Equal(s.T(), http.StatusBadRequest, rec.Code)
	body := s.decode(rec)
	assert.Equal(s.T(), "out_of_range", body["codigo"])
}

func (s *HandlerSuite) TestMark_Duplicate() {
	rec := s.postJSON("/api/marcar", s.markPayload(s.freshToken(), "Ana", "entrada"))
	require.Equal(s.T(), http.StatusOK, rec.Code)

	rec = s.postJSON("/api/marcar", s.markPayload(s.freshToken(), "Ana", "entrada"))
	require.Equal(s.T(), http.StatusBadRequest, rec.Code)
	body := s.decode(rec)
	assert.Equal(s.T(), "duplicate_mark", body["codigo"])
}

func (s *HandlerSuite) TestFailedAttempts() {
	rec := s.postJSON("/api/marcar", s.markPayload("basura", "Ana", "entrada"))
	require.Equal(s.T(), http.StatusBadRequest, rec.Code)

	rec = s.get("/api/intentos-fallidos")
	require.Equal(s.T(), http.StatusOK, rec.Code)
	body := s.decode(rec)
	attempts, ok := body["intentos"].([]any)
	require.True(s.T(), ok)
	require.Len(s.T(), attempts, 1)
	first, ok := attempts[0].(map[string]any)
	require.True(s.T(), ok)
	assert.Equal(s.T(), "Ana", first["empleado"])
	assert.Equal(s.T(), "QR inválido", first["motivo"])
}

func (s *HandlerSuite) TestListEmployees_OnlyActive() {
	rec := s.get("/api/empleados")
	require.Equal(s.T(), http.StatusOK, rec.Code)
	body := s.decode(rec)
	assert.ElementsMatch(s.T(), []any{"Ana", "Luis"}, body["empleados"])
}

func (s *HandlerSuite) TestMarksToday() {
	rec := s.postJSON("/api/marcar", s.markPayload(s.freshToken(), "Ana", "entrada"))
	require.Equal(s.T(), http.StatusOK, rec.Code)

	rec = s.get("/api/marcajes/hoy")
	require.Equal(s.T(), http.StatusOK, rec.Code)
	body := s.decode(rec)
	marks, ok := body["marcajes"].([]any)
	require.True(s.T(), ok)
	assert.Len(s.T(), marks, 1)
}

func (s *HandlerSuite) TestMarksForEmployee_BadLookback() {
	rec := s.get("/api/marcajes/empleado/Ana?dias=muchos")
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestHoursReport_RequiresRange() {
	rec := s.get("/api/reporte/horas")
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestHoursReport() {
	rec := s.postJSON("/api/marcar", s.markPayload(s.freshToken(), "Ana", "entrada"))
	require.Equal(s.T(), http.StatusOK, rec.Code)

	today := time.Now().Format("2006-01-02")
	rec = s.get(fmt.Sprintf("/api/reporte/horas?fecha_inicio=%s&fecha_fin=%s", today, today))
	require.Equal(s.T(), http.StatusOK, rec.Code)
	body := s.decode(rec)
	assert.Equal(s.T(), today, body["fecha_inicio"])
	assert.NotNil(s.T(), body["reporte"])
}

func (s *HandlerSuite) TestPayPeriodReport_UnknownEmployee() {
	rec := s.get("/api/reporte/quincena?empleado=Nadie&fecha_inicio=2025-11-01&fecha_fin=2025-11-15")
	require.Equal(s.T(), http.StatusBadRequest, rec.Code)
	body := s.decode(rec)
	assert.Equal(s.T(), "employee_not_found", body["codigo"])
}

func (s *HandlerSuite) TestPayPeriodReport_AllQuincenal() {
	rec := s.get("/api/reporte/quincena?fecha_inicio=2025-11-01&fecha_fin=2025-11-15")
	require.Equal(s.T(), http.StatusOK, rec.Code)
	body := s.decode(rec)
	periods, ok := body["quincenas"].([]any)
	require.True(s.T(), ok)
	// Pedro is monthly-paid and inactive; only Ana and Luis qualify.
	assert.Len(s.T(), periods, 2)
}

func (s *HandlerSuite) TestAnomaliesReport() {
	rec := s.get("/api/reporte/anomalias?fecha_inicio=2025-11-01&fecha_fin=2025-11-15")
	require.Equal(s.T(), http.StatusOK, rec.Code)
	body := s.decode(rec)
	assert.NotNil(s.T(), body["anomalias"])
}

func (s *HandlerSuite) TestExportCSV() {
	rec := s.postJSON("/api/marcar", s.markPayload(s.freshToken(), "Ana", "entrada"))
	require.Equal(s.T(), http.StatusOK, rec.Code)

	today := time.Now().Format("2006-01-02")
	rec = s.get(fmt.Sprintf("/api/exportar/csv?fecha_inicio=%s&fecha_fin=%s", today, today))
	require.Equal(s.T(), http.StatusOK, rec.Code)
	body := s.decode(rec)
	assert.Equal(s.T(), fmt.Sprintf("asistencia_%s_%s.csv", today, today), body["filename"])
	assert.EqualValues(s.T(), 1, body["registros"])
}
