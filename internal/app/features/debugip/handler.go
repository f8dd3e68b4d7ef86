// internal/app/features/debugip/handler.go
// Package debugip exposes a diagnostic endpoint that shows how the server
// sees the caller: every address-bearing header, the transport address, and
// the resolved classification. Useful when tuning proxy configuration.
package debugip

import (
	"encoding/json"
	"net/http"

	"github.com/driftline/beacon/internal/app/system/clientip"
	"github.com/driftline/beacon/internal/app/system/geo"
	"github.com/driftline/beacon/internal/app/system/vpn"
	"github.com/driftline/beacon/internal/domain/models"
	"go.uber.org/zap"
)

// Handler resolves and reports client address details.
type Handler struct {
	Resolver *clientip.Resolver
	Geo      *geo.Resolver
	VPN      *vpn.Classifier
	Log      *zap.Logger
}

// NewHandler constructs a debugip Handler.
func NewHandler(resolver *clientip.Resolver, geoRes *geo.Resolver, classifier *vpn.Classifier, logger *zap.Logger) *Handler {
	return &Handler{Resolver: resolver, Geo: geoRes, VPN: classifier, Log: logger}
}

type debugResponse struct {
	DetectedIP string            `json:"detectedIP"`
	IPv6       string            `json:"ipv6,omitempty"`
	RemoteAddr string            `json:"remoteAddr"`
	Headers    map[string]string `json:"headers"`
	Location   models.Location   `json:"location"`
	VPN        models.VPNInfo    `json:"vpnInfo"`
}

// Serve handles GET /api/debug/ip.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ip := h.Resolver.Resolve(r.Context(), r)
	loc := h.Geo.Lookup(ip)
	verdict := h.VPN.Classify(r.Context(), ip, loc)

	headers := make(map[string]string)
	for _, name := range clientip.ProxyHeaders() {
		if v := r.Header.Get(name); v != "" {
			headers[name] = v
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(debugResponse{
		DetectedIP: ip,
		IPv6:       clientip.IPv6FromHeaders(r),
		RemoteAddr: r.RemoteAddr,
		Headers:    headers,
		Location:   loc,
		VPN:        verdict,
	})
}
