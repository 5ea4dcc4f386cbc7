package http

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Rushi8087/xerox-automation/internal/domain"
)

// OrderFinder is the slice of the spool the operator endpoints need.
type OrderFinder interface {
	Pending() ([]string, error)
	Archived() ([]string, error)
	Find(orderID string) (domain.ConfirmedOrder, error)
}

type orderListResponse struct {
	Pending  []string `json:"pending"`
	Archived []string `json:"archived"`
}

// HandleListOrders returns the operator handler for GET /orders: record
// names currently queued and already printed.
func HandleListOrders(finder OrderFinder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		pending, err := finder.Pending()
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}
		archived, err := finder.Archived()
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		resp := orderListResponse{Pending: []string{}, Archived: []string{}}
		for _, p := range pending {
			resp.Pending = append(resp.Pending, recordName(p))
		}
		for _, p := range archived {
			resp.Archived = append(resp.Archived, recordName(p))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleGetConfirmedOrder returns the operator handler for
// GET /orders/{orderID}.
func HandleGetConfirmedOrder(finder OrderFinder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) != 2 || parts[0] != "orders" || parts[1] == "" {
			writeError(w, http.StatusBadRequest, codeInvalidID, "order id required")
			return
		}

		order, err := finder.Find(parts[1])
		if err != nil {
			if errors.Is(err, domain.ErrOrderNotFound) {
				writeError(w, http.StatusNotFound, codeOrderNotFound, "order not found")
				return
			}
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, order)
	}
}

func recordName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".json")
}
