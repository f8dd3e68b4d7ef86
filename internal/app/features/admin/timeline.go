// internal/app/features/admin/timeline.go
package admin

import (
	"net/http"

	visitorstore "github.com/driftline/beacon/internal/app/store/visitors"
	"go.uber.org/zap"
)

// ServeTimeline handles GET /api/admin/timeline?filter=24h|7d|30d. Buckets
// are sparse and chronological; unknown filters fall back to 24h. Empty on
// store failure.
func (h *Handler) ServeTimeline(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")
	window := visitorstore.ParseWindow(filter)

	buckets, err := h.Store.Timeline(r.Context(), window)
	if err != nil {
		h.Log.Error("timeline query failed", zap.String("filter", filter), zap.Error(err))
		buckets = nil
	}
	if buckets == nil {
		buckets = []visitorstore.Bucket{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"filter":   window.Name,
		"timeline": buckets,
	})
}
