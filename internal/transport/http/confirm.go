package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Rushi8087/xerox-automation/internal/domain"
)

// OrderConfirmer is the minimal interface needed to place an order.
type OrderConfirmer interface {
	Confirm(ctx context.Context, sessionID string) (domain.ConfirmedOrder, error)
}

type confirmRequest struct {
	SessionID string `json:"session_id"`
}

// HandleConfirm returns the handler for POST /api/place-order. Confirmation
// is exactly-once: the second and later calls for a session get 409.
func HandleConfirm(svc OrderConfirmer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req confirmRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.SessionID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidID, "session_id required")
			return
		}

		order, err := svc.Confirm(r.Context(), req.SessionID)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrSessionNotFound):
				writeError(w, http.StatusNotFound, codeSessionNotFound, "session not found")
			case errors.Is(err, domain.ErrOrderAlreadyConfirmed):
				writeError(w, http.StatusConflict, codeOrderConfirmed, "order already confirmed")
			case errors.Is(err, domain.ErrEmptyOrder):
				writeError(w, http.StatusUnprocessableEntity, codeEmptyOrder, "order has no files")
			case errors.Is(err, domain.ErrInvalidInput):
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, order)
	}
}
