package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Rushi8087/xerox-automation/internal/domain"
)

// OrderReader is the minimal interface needed to view a session's order.
type OrderReader interface {
	Order(ctx context.Context, sessionID string) (domain.Session, error)
}

// HandleGetOrder returns the handler for GET /api/order/{sessionID}.
func HandleGetOrder(svc OrderReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		sessionID, ok := parseOrderPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusBadRequest, codeInvalidID, "session id required")
			return
		}

		sess, err := svc.Order(r.Context(), sessionID)
		if err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				writeError(w, http.StatusNotFound, codeSessionNotFound, "session not found")
				return
			}
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, sessionResponse{
			SessionID: sess.ID,
			OrderID:   sess.OrderID,
			CreatedAt: sess.CreatedAt,
			Confirmed: sess.Confirmed,
			Files:     sess.Files,
		})
	}
}

func parseOrderPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 || parts[0] != "api" || parts[1] != "order" || parts[2] == "" {
		return "", false
	}
	return parts[2], true
}

type sessionResponse struct {
	SessionID string             `json:"session_id"`
	OrderID   string             `json:"order_id"`
	CreatedAt time.Time          `json:"created_at"`
	Confirmed bool               `json:"confirmed"`
	Files     []domain.FileEntry `json:"files"`
}
