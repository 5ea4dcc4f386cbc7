package http

import "net/http"

// NotFoundHandler is the catch-all for paths outside the webhook, API and
// operator routes.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "no such route")
	})
}
