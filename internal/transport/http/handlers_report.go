package httptransport

import (
	"net/http"

	pkgerrors "asistencia/pkg/errors"
	"asistencia/pkg/platform/httputil"
)

// dateRange pulls fecha_inicio/fecha_fin from the query string. Both are
// required on every report endpoint.
func dateRange(r *http.Request) (from, to string, err error) {
	q := r.URL.Query()
	from, to = q.Get("fecha_inicio"), q.Get("fecha_fin")
	if from == "" || to == "" || from > to {
		return "", "", pkgerrors.New(pkgerrors.CodeMissingFields, "Datos incompletos")
	}
	return from, to, nil
}

func (h *Handler) handleHoursReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	from, to, err := dateRange(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	rows, err := h.reports.Hours(ctx, from, to, r.URL.Query().Get("empleado"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"fecha_inicio": from,
		"fecha_fin":    to,
		"reporte":      rows,
	})
}

func (h *Handler) handlePayPeriodReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	from, to, err := dateRange(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	// With empleado the report covers one person; without it, every
	// active quincena-paid employee.
	if name := r.URL.Query().Get("empleado"); name != "" {
		period, err := h.reports.PayPeriod(ctx, name, from, to)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, period)
		return
	}

	periods, err := h.reports.PayPeriods(ctx, from, to)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"fecha_inicio": from,
		"fecha_fin":    to,
		"quincenas":    periods,
	})
}

func (h *Handler) handleAnomaliesReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	from, to, err := dateRange(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	anomalies, err := h.reports.Anomalies(ctx, from, to)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"fecha_inicio": from,
		"fecha_fin":    to,
		"anomalias":    anomalies,
	})
}

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	from, to, err := dateRange(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.reports.ExportCSV(ctx, from, to)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}
