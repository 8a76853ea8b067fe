// Package httputil centralizes JSON encoding and domain error translation
// for the HTTP transport so every handler answers with the same envelope.
package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"

	pkgerrors "asistencia/pkg/errors"
)

// WriteJSON encodes v with the given status. Encoding failures are beyond
// recovery at this point; the status line is already on the wire.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps a domain error onto an HTTP response. The body carries
// the user-facing message plus the machine code.
func WriteError(w http.ResponseWriter, err error) {
	code := pkgerrors.CodeOf(err)
	message := err.Error()
	if code == pkgerrors.CodeInternal {
		// Never leak driver detail; services already sanitize but raw
		// errors can still reach here from middleware.
		message = "Error interno del servidor"
	}
	WriteJSON(w, pkgerrors.ToHTTPStatus(code), map[string]string{
		"error":  message,
		"codigo": string(code),
	})
}

// Decode parses a JSON request body into T. On failure it answers the
// request itself and returns ok=false.
func Decode[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (T, bool) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		logger.WarnContext(r.Context(), "malformed request body", "error", err)
		WriteError(w, pkgerrors.New(pkgerrors.CodeMissingFields, "Datos incompletos"))
		return v, false
	}
	return v, true
}
