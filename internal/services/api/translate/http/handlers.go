// Package http provides the translate endpoint
package http

import (
	"net/http"

	"linguabot/internal/modkit/httpkit"
	"linguabot/internal/services/api/translate/domain"
)

type handlers struct {
	svc domain.TranslatorPort
}

// Register mounts the translate routes
func Register(r httpkit.Router, svc domain.TranslatorPort) {
	h := &handlers{svc: svc}

	httpkit.Post(r, "/", h.translate)
}

func (h *handlers) translate(r *http.Request, req domain.TranslateRequest) (any, error) {
	return h.svc.Translate(r.Context(), req)
}
