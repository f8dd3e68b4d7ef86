// internal/app/system/geo/geo.go
// Package geo maps IP strings to coarse locations from local MaxMind
// databases. Lookups never fail: any problem degrades to the all-Unknown
// record so that visitor persistence is never blocked on geolocation.
package geo

import (
	"fmt"
	"net"

	"github.com/driftline/beacon/internal/app/system/ipaddr"
	"github.com/driftline/beacon/internal/domain/models"
	"github.com/oschwald/geoip2-golang"
	"go.uber.org/zap"
)

// Resolver wraps the GeoLite2 City reader and, when available, the ASN
// reader for ISP/org attribution.
type Resolver struct {
	city *geoip2.Reader
	asn  *geoip2.Reader
	log  *zap.Logger
}

// New opens the database files. A missing or unreadable file logs a warning
// and disables that lookup rather than failing startup; the resolver then
// serves Unknown records.
func New(cityPath, asnPath string, logger *zap.Logger) *Resolver {
	r := &Resolver{log: logger}

	if cityPath != "" {
		db, err := geoip2.Open(cityPath)
		if err != nil {
			logger.Warn("geo: city database unavailable, serving Unknown",
				zap.String("path", cityPath), zap.Error(err))
		} else {
			r.city = db
		}
	}
	if asnPath != "" {
		db, err := geoip2.Open(asnPath)
		if err != nil {
			logger.Warn("geo: asn database unavailable, isp fields degrade to Unknown",
				zap.String("path", asnPath), zap.Error(err))
		} else {
			r.asn = db
		}
	}
	return r
}

// Close releases the database readers.
func (r *Resolver) Close() {
	if r.city != nil {
		r.city.Close()
	}
	if r.asn != nil {
		r.asn.Close()
	}
}

// Enabled reports whether a city database is loaded.
func (r *Resolver) Enabled() bool {
	return r.city != nil
}

// Lookup resolves ip to a location record. The sentinel "unknown", parse
// failures, and database misses all return models.UnknownLocation().
func (r *Resolver) Lookup(ip string) models.Location {
	loc := models.UnknownLocation()

	if r.city == nil || ip == "" || ip == models.UnknownIP {
		return loc
	}
	parsed := net.ParseIP(ipaddr.Strip(ip))
	if parsed == nil {
		return loc
	}

	city, err := r.city.City(parsed)
	if err != nil {
		r.log.Debug("geo: city lookup failed", zap.String("ip", ip), zap.Error(err))
		return loc
	}
	if name := city.Country.Names["en"]; name != "" {
		loc.Country = name
	}
	if len(city.Subdivisions) > 0 {
		if name := city.Subdivisions[0].Names["en"]; name != "" {
			loc.Region = name
		}
	}
	if name := city.City.Names["en"]; name != "" {
		loc.City = name
	}
	if tz := city.Location.TimeZone; tz != "" {
		loc.TimeZone = tz
	}
	loc.Latitude = city.Location.Latitude
	loc.Longitude = city.Location.Longitude

	if r.asn != nil {
		if rec, err := r.asn.ASN(parsed); err == nil {
			if rec.AutonomousSystemOrganization != "" {
				loc.ISP = rec.AutonomousSystemOrganization
			}
			loc.ASN = rec.AutonomousSystemNumber
		}
	}

	loc.MapURL = MapURL(loc.Latitude, loc.Longitude)
	return loc
}

// MapURL derives a map link from coordinates; both must be non-zero.
func MapURL(lat, lng float64) string {
	if lat == 0 || lng == 0 {
		return ""
	}
	return fmt.Sprintf("https://www.google.com/maps?q=%f,%f", lat, lng)
}
