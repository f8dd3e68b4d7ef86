// internal/app/features/track/handler.go
// Package track implements the visitor tracking endpoint called by the
// landing page on every load.
package track

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/driftline/beacon/internal/app/system/clientip"
	"github.com/driftline/beacon/internal/app/system/geo"
	"github.com/driftline/beacon/internal/app/system/limits"
	"github.com/driftline/beacon/internal/app/system/metrics"
	"github.com/driftline/beacon/internal/app/system/sanitize"
	"github.com/driftline/beacon/internal/app/system/timeouts"
	"github.com/driftline/beacon/internal/app/system/vpn"
	"github.com/driftline/beacon/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VisitorInserter is the slice of the visitor store the tracker needs.
type VisitorInserter interface {
	Insert(ctx context.Context, v models.Visitor) error
}

// Handler holds the tracking pipeline dependencies.
type Handler struct {
	Store    VisitorInserter
	Resolver *clientip.Resolver
	Geo      *geo.Resolver
	VPN      *vpn.Classifier
	Log      *zap.Logger
}

// NewHandler constructs a track Handler.
func NewHandler(store VisitorInserter, resolver *clientip.Resolver, geoRes *geo.Resolver, classifier *vpn.Classifier, logger *zap.Logger) *Handler {
	return &Handler{
		Store:    store,
		Resolver: resolver,
		Geo:      geoRes,
		VPN:      classifier,
		Log:      logger,
	}
}

type trackRequest struct {
	SessionID string `json:"sessionId"`
}

type trackResponse struct {
	Success     bool   `json:"success"`
	DetectedIP  string `json:"detectedIP"`
	Location    string `json:"location"`
	VPNDetected bool   `json:"vpnDetected"`
}

// Serve handles POST /api/track-visitor.
//
// The endpoint never hard-fails: a missing session id is replaced with a
// generated one, lookup failures degrade to Unknown fields, and a store
// insert failure is logged while the client still sees success. Losing a
// record is preferable to blocking the landing page on analytics.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	var req trackRequest
	// Body may be absent or malformed; both get a generated session id.
	_ = json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxTrackBodySize)).Decode(&req)
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	rec := h.buildRecord(r.Context(), r, req.SessionID)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()
	if err := h.Store.Insert(ctx, rec); err != nil {
		h.Log.Error("track: visitor insert failed, dropping record",
			zap.String("ip", rec.IPv4), zap.Error(err))
		metrics.VisitorsTracked.WithLabelValues("dropped").Inc()
	} else {
		metrics.VisitorsTracked.WithLabelValues("saved").Inc()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(trackResponse{
		Success:     true,
		DetectedIP:  rec.IPv4,
		Location:    fmt.Sprintf("%s, %s", rec.Location.City, rec.Location.Country),
		VPNDetected: rec.VPN.IsVPN,
	})
}

// buildRecord runs the classification pipeline for one request. Every step
// degrades to defaults; the record is always complete.
func (h *Handler) buildRecord(ctx context.Context, r *http.Request, sessionID string) models.Visitor {
	ip := h.Resolver.Resolve(ctx, r)
	loc := h.Geo.Lookup(ip)
	verdict := h.VPN.Classify(ctx, ip, loc)
	metrics.VPNVerdicts.WithLabelValues(verdict.VPNType).Inc()

	return models.Visitor{
		IPv4:     ip,
		IPv6:     clientip.IPv6FromHeaders(r),
		Location: loc,
		VPN:      verdict,
		Browser: models.BrowserInfo{
			UserAgent:      sanitize.Plain(r.UserAgent()),
			Language:       sanitize.Plain(r.Header.Get("Accept-Language")),
			Referer:        sanitize.Plain(r.Referer()),
			AcceptEncoding: sanitize.Plain(r.Header.Get("Accept-Encoding")),
		},
		SessionID: sanitize.Plain(sessionID),
	}
}
