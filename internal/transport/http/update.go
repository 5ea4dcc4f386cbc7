package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Rushi8087/xerox-automation/internal/domain"
)

// FileUpdater is the minimal interface needed to replace a session's files.
type FileUpdater interface {
	ReplaceFiles(ctx context.Context, sessionID string, files []domain.FileEntry) error
}

type updateRequest struct {
	SessionID string             `json:"session_id"`
	Files     []domain.FileEntry `json:"files"`
}

// HandleUpdate returns the handler for POST /api/update. The request carries
// the complete file list; removing a file or clearing the order is the same
// call with a shorter list.
func HandleUpdate(svc FileUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req updateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.SessionID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidID, "session_id required")
			return
		}

		if err := svc.ReplaceFiles(r.Context(), req.SessionID, req.Files); err != nil {
			switch {
			case errors.Is(err, domain.ErrSessionNotFound):
				writeError(w, http.StatusNotFound, codeSessionNotFound, "session not found")
			case errors.Is(err, domain.ErrOrderAlreadyConfirmed):
				writeError(w, http.StatusConflict, codeOrderConfirmed, "order already confirmed")
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}
