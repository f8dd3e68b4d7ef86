// internal/app/features/home/handler.go
// Package home serves the static landing page whose embedded script calls
// the tracking endpoint on load.
package home

import (
	"net/http"
	"path/filepath"

	"go.uber.org/zap"
)

// Handler holds dependencies needed to serve the landing page.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// ServeRoot handles GET / with the landing page.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join("public", "index.html"))
}
