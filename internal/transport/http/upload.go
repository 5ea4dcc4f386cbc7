package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/Rushi8087/xerox-automation/internal/domain"
)

// 50 MiB, matching the WhatsApp document size cap.
const maxUploadBytes = 50 << 20

// FileUploader is the minimal interface needed to add files to a session.
type FileUploader interface {
	AddFileBySession(ctx context.Context, sessionID, filename string, content []byte) (domain.FileEntry, error)
}

// HandleUpload returns the handler for POST /api/upload (multipart form with
// a session_id field and one file part).
func HandleUpload(svc FileUploader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid multipart form")
			return
		}

		sessionID := r.FormValue("session_id")
		if sessionID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidID, "session_id required")
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, codeMissingFile, "file part required")
			return
		}
		defer file.Close()

		content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "could not read file")
			return
		}

		entry, err := svc.AddFileBySession(r.Context(), sessionID, header.Filename, content)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrSessionNotFound):
				writeError(w, http.StatusNotFound, codeSessionNotFound, "session not found")
			case errors.Is(err, domain.ErrUnsupportedFormat):
				writeError(w, http.StatusUnprocessableEntity, codeUnsupportedFormat, "unsupported file format")
			case errors.Is(err, domain.ErrOrderAlreadyConfirmed):
				writeError(w, http.StatusConflict, codeOrderConfirmed, "order already confirmed")
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, entry)
	}
}
