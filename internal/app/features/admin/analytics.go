// internal/app/features/admin/analytics.go
package admin

import "net/http"

// ServeAnalytics handles GET /api/admin/analytics. The counts fetch is
// already tolerant: on store trouble every field is zero.
func (h *Handler) ServeAnalytics(w http.ResponseWriter, r *http.Request) {
	counts := h.Store.FetchCounts(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"analytics": counts,
	})
}
