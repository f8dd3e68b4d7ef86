// internal/app/features/admin/routes.go
package admin

import (
	"github.com/driftline/beacon/internal/app/system/admintoken"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the admin API under the path where this router is mounted
// (typically "/api/admin" from bootstrap). Login is public; everything else
// requires a valid bearer token.
func Routes(h *Handler, tokens *admintoken.Manager) chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.ServeLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.Require)

		pr.Get("/analytics", h.ServeAnalytics)
		pr.Get("/recent-visitors", h.ServeRecent)
		pr.Get("/location-stats", h.ServeLocations)
		pr.Get("/timeline", h.ServeTimeline)
	})

	return r
}
