// internal/app/features/track/routes.go
package track

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter that serves the tracking endpoint.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Serve) // mounted under /api/track-visitor
	return r
}
