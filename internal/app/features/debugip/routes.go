// internal/app/features/debugip/routes.go
package debugip

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter that serves the IP debug endpoint.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Serve) // mounted under /api/debug/ip
	return r
}
