// internal/app/system/metrics/metrics.go
// Package metrics exposes Prometheus counters for the tracking pipeline.
// The registry is served by promhttp on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// VisitorsTracked counts track-visitor calls by persistence outcome
	// ("saved" or "dropped").
	VisitorsTracked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beacon_visitors_tracked_total",
			Help: "Total tracked page loads by persistence outcome",
		},
		[]string{"outcome"},
	)

	// VPNVerdicts counts classifier verdicts by type.
	VPNVerdicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beacon_vpn_verdicts_total",
			Help: "Total VPN classifier verdicts by vpn type",
		},
		[]string{"vpn_type"},
	)

	// EchoFallbacks counts resolves that had to consult external
	// what-is-my-ip services.
	EchoFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "beacon_echo_fallbacks_total",
			Help: "Total client-IP resolutions that fell through to echo services",
		},
	)

	// UnknownIPs counts resolves that produced the unknown sentinel.
	UnknownIPs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "beacon_unknown_ips_total",
			Help: "Total client-IP resolutions that failed entirely",
		},
	)
)
