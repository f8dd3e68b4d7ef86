// internal/app/system/ipaddr/ipaddr.go
// Package ipaddr classifies address strings as routable public IPs.
package ipaddr

import (
	"net"
	"regexp"
	"strings"
)

var (
	ipv4Pattern = regexp.MustCompile(`^(\d{1,3})\.(\d{1,3})\.(\d{1,3})\.(\d{1,3})$`)

	// Strict 8-group form only. Zero-compressed ("::") and mixed IPv4-mapped
	// addresses beyond the stripped ::ffff: prefix are rejected. This matches
	// the historical behavior of the tracking widget and is kept as-is rather
	// than silently widened.
	ipv6Pattern = regexp.MustCompile(`^([0-9a-fA-F]{1,4}:){7}[0-9a-fA-F]{1,4}$`)
)

// Ranges an address can match and still not be a usable client IP.
var privateBlocks = mustParseCIDRs(
	"10.0.0.0/8",     // RFC1918
	"172.16.0.0/12",  // RFC1918
	"192.168.0.0/16", // RFC1918
	"169.254.0.0/16", // RFC3927 link-local
	"127.0.0.0/8",    // loopback
	"fc00::/7",       // RFC4193 unique-local
	"fe80::/10",      // IPv6 link-local
	"::1/128",        // IPv6 loopback
)

func mustParseCIDRs(blocks ...string) []*net.IPNet {
	nets := make([]*net.IPNet, 0, len(blocks))
	for _, b := range blocks {
		_, n, err := net.ParseCIDR(b)
		if err != nil {
			panic("ipaddr: bad builtin CIDR " + b)
		}
		nets = append(nets, n)
	}
	return nets
}

// Strip removes the IPv4-mapped IPv6 prefix, leaving the dotted-quad form.
func Strip(s string) string {
	return strings.TrimPrefix(strings.TrimSpace(s), "::ffff:")
}

// IsWellFormed reports whether s is a syntactically valid address in one of
// the two accepted shapes (after mapped-prefix stripping).
func IsWellFormed(s string) bool {
	s = Strip(s)
	if ipv4Pattern.MatchString(s) {
		// Regex allows octets up to 999; let the net package arbitrate.
		return net.ParseIP(s) != nil
	}
	return ipv6Pattern.MatchString(s)
}

// IsPublic reports whether s is a well-formed, publicly routable address.
// Private, loopback, link-local, and unique-local ranges all return false,
// as does anything the strict syntax check rejects.
func IsPublic(s string) bool {
	s = Strip(s)
	if !IsWellFormed(s) {
		return false
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return false
	}
	for _, block := range privateBlocks {
		if block.Contains(ip) {
			return false
		}
	}
	return true
}

// IsLoopbackLike reports whether s is loopback, link-local, unspecified, or
// the IPv4-mapped loopback — transport addresses that should be skipped when
// resolving the client IP.
func IsLoopbackLike(s string) bool {
	ip := net.ParseIP(Strip(s))
	if ip == nil {
		return false
	}
	return ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsUnspecified()
}
