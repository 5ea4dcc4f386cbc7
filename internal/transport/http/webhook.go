package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Rushi8087/xerox-automation/internal/whatsapp"
)

// ChatHandler is the minimal interface needed to process inbound messages.
type ChatHandler interface {
	HandleText(ctx context.Context, userID, text string)
	HandleMedia(ctx context.Context, userID, mediaID, filename string)
}

// HandleWebhook returns the Graph webhook endpoint. GET answers the
// subscription challenge; POST delivers message events.
func HandleWebhook(svc ChatHandler, verifyToken string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			q := r.URL.Query()
			if q.Get("hub.mode") == "subscribe" && q.Get("hub.verify_token") == verifyToken {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(q.Get("hub.challenge")))
				return
			}
			writeError(w, http.StatusForbidden, codeForbidden, "verification failed")
		case http.MethodPost:
			var payload whatsapp.WebhookPayload
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			for _, msg := range payload.Messages() {
				switch msg.Type {
				case "text":
					if msg.Text != nil {
						svc.HandleText(r.Context(), msg.From, msg.Text.Body)
					}
				case "image", "document":
					if id := msg.MediaID(); id != "" {
						svc.HandleMedia(r.Context(), msg.From, id, msg.AttachmentName())
					}
				}
			}

			// The Graph API retries non-200 responses; message-level problems
			// are handled in chat, never surfaced here.
			w.WriteHeader(http.StatusOK)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}
