// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	adminfeature "github.com/driftline/beacon/internal/app/features/admin"
	debugipfeature "github.com/driftline/beacon/internal/app/features/debugip"
	healthfeature "github.com/driftline/beacon/internal/app/features/health"
	homefeature "github.com/driftline/beacon/internal/app/features/home"
	trackfeature "github.com/driftline/beacon/internal/app/features/track"
	visitorstore "github.com/driftline/beacon/internal/app/store/visitors"
	"github.com/driftline/beacon/internal/app/system/admintoken"
	"github.com/driftline/beacon/internal/app/system/clientip"
	"github.com/driftline/beacon/internal/app/system/echoip"
	"github.com/driftline/beacon/internal/app/system/ratelimit"
	"github.com/driftline/beacon/internal/app/system/timeouts"
	"github.com/driftline/beacon/internal/app/system/vpn"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. Beacon assembles the classification
// pipeline (client-IP resolver, geo reader, VPN classifier), the visitor
// store, and mounts the landing page plus the tracking and admin APIs.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	var echo clientip.EchoLookup
	if appCfg.EchoEnabled {
		echo = echoip.New(nil, timeouts.External(), logger)
	}
	resolver := clientip.New(echo, logger)

	var reputation *vpn.ReputationClient
	if appCfg.ReputationURL != "" {
		reputation = vpn.NewReputationClient(appCfg.ReputationURL, appCfg.ReputationKey, timeouts.External(), logger)
	}
	classifier := vpn.New(deps.Tor, reputation, logger)

	store := visitorstore.New(deps.MongoDatabase)

	tokens, err := admintoken.New(appCfg.AdminTokenKey, admintoken.DefaultTTL)
	if err != nil {
		logger.Error("admin token manager init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.Geo, logger)
	r.Mount("/api/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Landing page
	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Visitor tracking, rate limited per peer address
	trackHandler := trackfeature.NewHandler(store, resolver, deps.Geo, classifier, logger)
	trackRoutes := trackfeature.Routes(trackHandler)
	if appCfg.TrackRateLimit > 0 {
		limiter := ratelimit.New(appCfg.TrackRateLimit, time.Minute)
		r.With(limiter.Middleware(ratelimit.RemoteAddrKey)).Mount("/api/track-visitor", trackRoutes)
	} else {
		r.Mount("/api/track-visitor", trackRoutes)
	}

	// IP resolution diagnostics
	debugHandler := debugipfeature.NewHandler(resolver, deps.Geo, classifier, logger)
	r.Mount("/api/debug/ip", debugipfeature.Routes(debugHandler))

	// Admin dashboard API
	adminHandler := adminfeature.NewHandler(store, tokens, appCfg.AdminPassword, logger)
	r.Mount("/api/admin", adminfeature.Routes(adminHandler, tokens))

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	return r, nil
}
