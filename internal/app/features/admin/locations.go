// internal/app/features/admin/locations.go
package admin

import (
	"net/http"

	visitorstore "github.com/driftline/beacon/internal/app/store/visitors"
	"go.uber.org/zap"
)

// topCountryLimit caps the country breakdown the dashboard renders.
const topCountryLimit = 10

// ServeLocations handles GET /api/admin/location-stats: the top countries by
// visit count, each with the set of cities seen. Empty on store failure.
func (h *Handler) ServeLocations(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.TopCountries(r.Context(), topCountryLimit)
	if err != nil {
		h.Log.Error("location stats query failed", zap.Error(err))
		stats = nil
	}
	if stats == nil {
		stats = []visitorstore.CountryStat{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"locations": stats,
	})
}
