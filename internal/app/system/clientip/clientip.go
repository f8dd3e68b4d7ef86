// internal/app/system/clientip/clientip.go
// Package clientip resolves the best-guess public address for a request.
package clientip

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/driftline/beacon/internal/app/system/ipaddr"
	"github.com/driftline/beacon/internal/app/system/metrics"
	"github.com/driftline/beacon/internal/domain/models"
	"go.uber.org/zap"
)

// Proxy headers in trust order. The first header present whose first
// comma-separated token validates as a public address wins.
var proxyHeaders = []string{
	"cf-connecting-ip",
	"x-forwarded-for",
	"x-real-ip",
	"true-client-ip",
	"x-client-ip",
	"forwarded-for",
	"x-forwarded",
	"forwarded",
}

// ProxyHeaders returns the header names the resolver inspects, in trust
// order. The debug endpoint uses it to echo what the server saw.
func ProxyHeaders() []string {
	out := make([]string, len(proxyHeaders))
	copy(out, proxyHeaders)
	return out
}

// EchoLookup queries external "what is my IP" services. Implemented by
// echoip.Client; nil disables the external fallback.
type EchoLookup interface {
	PublicIP(ctx context.Context) (string, error)
}

// A source inspects one part of the request and returns a candidate public
// IP, or "" if it has nothing to offer. Sources are evaluated in order and
// the first non-empty result short-circuits the chain.
type source func(r *http.Request) string

// Resolver produces a single public IP string for an incoming request.
type Resolver struct {
	sources []source
	echo    EchoLookup
	log     *zap.Logger
}

// New constructs a Resolver. echo may be nil to skip the external fallback.
func New(echo EchoLookup, logger *zap.Logger) *Resolver {
	return &Resolver{
		sources: []source{transportAddr, headerAddr, remoteAddrFallback},
		echo:    echo,
		log:     logger,
	}
}

// Resolve walks the source chain and falls through to the echo services.
// It always returns a value; models.UnknownIP marks total failure.
func (rs *Resolver) Resolve(ctx context.Context, r *http.Request) string {
	for _, src := range rs.sources {
		if ip := src(r); ip != "" {
			return ip
		}
	}
	if rs.echo != nil {
		metrics.EchoFallbacks.Inc()
		if ip, err := rs.echo.PublicIP(ctx); err == nil && ip != "" {
			return ip
		} else if err != nil {
			rs.log.Debug("echo-service lookup failed", zap.Error(err))
		}
	}
	metrics.UnknownIPs.Inc()
	return models.UnknownIP
}

// IPv6FromHeaders scans the forwarding headers for a well-formed IPv6
// address. The record keeps it as a secondary field; "" means none seen.
func IPv6FromHeaders(r *http.Request) string {
	for _, h := range proxyHeaders {
		for _, tok := range strings.Split(r.Header.Get(h), ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			if strings.Contains(tok, ":") && ipaddr.IsPublic(tok) && !strings.Contains(ipaddr.Strip(tok), ".") {
				return ipaddr.Strip(tok)
			}
		}
	}
	return ""
}

// transportAddr accepts the socket peer address when it is already a usable
// public IP (direct deployments with no proxy in front).
func transportAddr(r *http.Request) string {
	host := remoteHost(r)
	if host == "" || ipaddr.IsLoopbackLike(host) {
		return ""
	}
	if ipaddr.IsPublic(host) {
		return ipaddr.Strip(host)
	}
	return ""
}

// headerAddr scans the proxy header chain.
func headerAddr(r *http.Request) string {
	for _, h := range proxyHeaders {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		// Header may carry a chain; the leftmost entry is the original client.
		first := strings.TrimSpace(strings.Split(v, ",")[0])
		if ipaddr.IsPublic(first) {
			return ipaddr.Strip(first)
		}
	}
	return ""
}

// remoteAddrFallback takes the socket address even when it is not public,
// as long as it parses. A private peer beats no answer for LAN deployments.
func remoteAddrFallback(r *http.Request) string {
	host := remoteHost(r)
	if host == "" || ipaddr.IsLoopbackLike(host) {
		return ""
	}
	if net.ParseIP(ipaddr.Strip(host)) != nil {
		return ipaddr.Strip(host)
	}
	return ""
}

func remoteHost(r *http.Request) string {
	if r.RemoteAddr == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
