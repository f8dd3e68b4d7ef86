// internal/domain/models/visitor.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VPN verdict types. A verdict is always one of these values; "unknown"
// covers both classifier failure and the zero state.
const (
	VPNTypeNone    = "none"
	VPNTypeTor     = "tor"
	VPNTypeVPN     = "vpn"
	VPNTypeProxy   = "proxy"
	VPNTypeHosting = "hosting"
	VPNTypeUnknown = "unknown"
)

// UnknownIP is the sentinel stored when no public address could be resolved.
const UnknownIP = "unknown"

// Location is the coarse geolocation attached to a visitor record.
// Lookup failures produce the zero-value record from UnknownLocation,
// never an error.
type Location struct {
	Country   string  `bson:"country" json:"country"`
	Region    string  `bson:"region" json:"region"`
	City      string  `bson:"city" json:"city"`
	TimeZone  string  `bson:"timezone" json:"timezone"`
	Latitude  float64 `bson:"lat" json:"lat"`
	Longitude float64 `bson:"lng" json:"lng"`
	ISP       string  `bson:"isp" json:"isp"`
	ASN       uint    `bson:"asn" json:"asn"`
	MapURL    string  `bson:"map_url,omitempty" json:"mapUrl,omitempty"`
}

// UnknownLocation returns the default record used when geolocation is
// unavailable for any reason.
func UnknownLocation() Location {
	return Location{
		Country:  "Unknown",
		Region:   "Unknown",
		City:     "Unknown",
		TimeZone: "Unknown",
		ISP:      "Unknown",
	}
}

// VPNInfo is the confidence-scored VPN/proxy verdict for a visitor IP.
type VPNInfo struct {
	IsVPN            bool     `bson:"is_vpn" json:"isVPN"`
	VPNType          string   `bson:"vpn_type" json:"vpnType"`
	Confidence       float64  `bson:"confidence" json:"confidence"`
	DetectionMethods []string `bson:"detection_methods,omitempty" json:"detectionMethods,omitempty"`
	Details          string   `bson:"details,omitempty" json:"details,omitempty"`
}

// UnknownVPNInfo is the degraded verdict used when classification fails.
func UnknownVPNInfo() VPNInfo {
	return VPNInfo{VPNType: VPNTypeUnknown}
}

// BrowserInfo holds client-supplied request metadata. Values are
// HTML-stripped before persistence; they are otherwise untrusted input.
type BrowserInfo struct {
	UserAgent      string `bson:"user_agent" json:"userAgent"`
	Language       string `bson:"language" json:"language"`
	Referer        string `bson:"referer" json:"referer"`
	AcceptEncoding string `bson:"accept_encoding" json:"acceptEncoding"`
}

// Visitor is one tracked page load. Records are append-only: there is no
// update or single-delete path, only the full wipe utility.
type Visitor struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	IPv4      string             `bson:"ipv4" json:"ipv4"`
	IPv6      string             `bson:"ipv6,omitempty" json:"ipv6,omitempty"`
	Location  Location           `bson:"location" json:"location"`
	VPN       VPNInfo            `bson:"vpn" json:"vpnInfo"`
	Browser   BrowserInfo        `bson:"browser" json:"browserInfo"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	SessionID string             `bson:"session_id" json:"sessionId"`
}
