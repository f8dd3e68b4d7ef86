// internal/app/features/admin/recent.go
package admin

import (
	"net/http"
	"strconv"

	"github.com/driftline/beacon/internal/domain/models"
	"go.uber.org/zap"
)

// ServeRecent handles GET /api/admin/recent-visitors?limit=N, newest first.
// A store failure serves an empty list rather than an error.
func (h *Handler) ServeRecent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	visitors, err := h.Store.Recent(r.Context(), limit)
	if err != nil {
		h.Log.Error("recent visitors query failed", zap.Error(err))
		visitors = nil
	}
	if visitors == nil {
		visitors = []models.Visitor{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"visitors": visitors,
		"count":    len(visitors),
	})
}
