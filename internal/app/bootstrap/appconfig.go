// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration: ports, TLS, log level and
// the like live in WAFFLE's CoreConfig.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI      string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase string // Database name within MongoDB

	// Admin dashboard access
	AdminPassword string // Admin secret, plaintext or a bcrypt hash
	AdminTokenKey string // HMAC key for signing admin bearer tokens (32+ bytes)

	// Offline geolocation databases (MaxMind mmdb format); blank disables
	GeoCityDBPath string // GeoLite2-City.mmdb path
	GeoASNDBPath  string // GeoLite2-ASN.mmdb path

	// Tor exit list source
	TorExitListURL     string        // URL of the Tor bulk exit list; blank disables
	TorRefreshInterval time.Duration // how often the background worker reloads the list

	// Optional IP reputation service
	ReputationURL string // Base URL of the reputation API; blank disables
	ReputationKey string // API key for the reputation service

	// Echo-service fallback for client IP resolution
	EchoEnabled bool // Query external "what is my IP" services when headers fail

	// Tracking endpoint rate limit, requests per minute per peer address
	TrackRateLimit int
}
