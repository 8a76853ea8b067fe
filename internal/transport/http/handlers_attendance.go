package httptransport

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"asistencia/internal/attendance"
	"asistencia/internal/geo"
	pkgerrors "asistencia/pkg/errors"
	"asistencia/pkg/platform/httputil"
	"asistencia/pkg/requestcontext"
)

type markRequest struct {
	Token    string   `json:"token"`
	Employee string   `json:"empleado"`
	Kind     string   `json:"tipo"`
	Lat      *float64 `json:"lat"`
	Lon      *float64 `json:"lng"`
	Device   string   `json:"dispositivo"`
}

type markResponse struct {
	Success   bool    `json:"success"`
	Message   string  `json:"message"`
	LocalTime string  `json:"hora"`
	Distance  float64 `json:"distancia_m"`
}

type eventResponse struct {
	Employee string  `json:"empleado"`
	Kind     string  `json:"tipo"`
	Date     string  `json:"fecha"`
	Time     string  `json:"hora"`
	Distance float64 `json:"distancia_m"`
	Device   string  `json:"dispositivo"`
}

func toEventResponses(events []attendance.ClockEvent) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, eventResponse{
			Employee: e.EmployeeName,
			Kind:     string(e.Kind),
			Date:     e.Date,
			Time:     e.Time,
			Distance: e.DistanceMeters,
			Device:   e.Device,
		})
	}
	return out
}

func (h *Handler) handleMark(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.Decode[markRequest](w, r, h.logger)
	if !ok {
		return
	}

	// Structural validation happens before the pipeline; these rejections
	// are not logged as failed attempts.
	kind := attendance.Kind(req.Kind)
	if req.Token == "" || req.Employee == "" || !kind.Valid() || req.Lat == nil || req.Lon == nil {
		httputil.WriteError(w, pkgerrors.New(pkgerrors.CodeMissingFields, "Datos incompletos"))
		return
	}
	if !geo.ValidCoordinates(*req.Lat, *req.Lon) {
		httputil.WriteError(w, pkgerrors.New(pkgerrors.CodeMissingFields, "Datos incompletos"))
		return
	}

	// The payload may name the device; otherwise fall back to the label
	// derived from the User-Agent.
	device := req.Device
	if device == "" {
		device = requestcontext.Device(ctx)
	}

	result, err := h.marks.Mark(ctx, attendance.MarkRequest{
		Token:        req.Token,
		EmployeeName: req.Employee,
		Kind:         kind,
		Lat:          *req.Lat,
		Lon:          *req.Lon,
		Device:       device,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "mark accepted",
		"request_id", requestID,
		"employee", req.Employee,
		"kind", req.Kind,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, markResponse{
		Success:   true,
		Message:   result.Message,
		LocalTime: result.LocalTime,
		Distance:  result.DistanceMeters,
	})
}

func (h *Handler) handleFailedAttempts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Default window is the last 24 hours; ?desde= takes a unix timestamp.
	since := requestcontext.Now(ctx).Add(-24 * time.Hour).Unix()
	if raw := r.URL.Query().Get("desde"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httputil.WriteError(w, pkgerrors.New(pkgerrors.CodeMissingFields, "Datos incompletos"))
			return
		}
		since = parsed
	}

	attempts, err := h.marks.FailedAttemptsSince(ctx, since)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	type attemptResponse struct {
		Employee  string `json:"empleado"`
		Reason    string `json:"motivo"`
		Timestamp int64  `json:"timestamp"`
		Device    string `json:"dispositivo"`
	}
	out := make([]attemptResponse, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, attemptResponse{
			Employee:  a.EmployeeName,
			Reason:    a.Reason,
			Timestamp: a.Timestamp,
			Device:    a.Device,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"intentos": out})
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	active, err := h.staff.ListActive(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	names := make([]string, 0, len(active))
	for _, e := range active {
		names = append(names, e.Name)
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"empleados": names})
}

func (h *Handler) handleMarksToday(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	today := requestcontext.Now(ctx).Format("2006-01-02")

	events, err := h.marks.MarksForDate(ctx, today)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"fecha":    today,
		"marcajes": toEventResponses(events),
	})
}

func (h *Handler) handleMarksForEmployee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "nombre")

	lookback := 0
	if raw := r.URL.Query().Get("dias"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			httputil.WriteError(w, pkgerrors.New(pkgerrors.CodeMissingFields, "Datos incompletos"))
			return
		}
		lookback = parsed
	}

	events, err := h.marks.MarksForEmployee(ctx, name, lookback)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"empleado": name,
		"marcajes": toEventResponses(events),
	})
}
