package httptransport

import (
	"net/http"
	"time"

	"asistencia/pkg/platform/httputil"
	"asistencia/pkg/requestcontext"
)

type validateQRRequest struct {
	Token string `json:"token"`
}

func (h *Handler) handleGenerateQR(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	issued, err := h.qr.Issue(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "qr issuance failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.metrics.IncrementQRIssued()
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"token":             issued.Token,
		"expires_at":        issued.ExpiresAt.Format(time.RFC3339),
		"valid_for_seconds": issued.ValidForSeconds,
	})
}

func (h *Handler) handleValidateQR(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.Decode[validateQRRequest](w, r, h.logger)
	if !ok {
		return
	}

	tokenID, err := h.qr.Verify(ctx, req.Token)
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, map[string]any{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"valid":    true,
		"token_id": tokenID,
	})
}
