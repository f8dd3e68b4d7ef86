// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/driftline/beacon/internal/app/system/vpn"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for Beacon.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, admin_password, etc.
//   - Environment variables: BEACON_MONGO_URI, BEACON_ADMIN_PASSWORD, etc.
//   - Command-line flags: --mongo_uri, --admin_password, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "beacon", Desc: "MongoDB database name"},

	{Name: "admin_password", Default: "", Desc: "Admin dashboard password (plaintext or bcrypt hash)"},
	{Name: "admin_token_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Admin token signing key (must be strong in production)"},

	{Name: "geo_city_db", Default: "", Desc: "Path to GeoLite2-City.mmdb (blank disables city lookups)"},
	{Name: "geo_asn_db", Default: "", Desc: "Path to GeoLite2-ASN.mmdb (blank disables ISP/ASN lookups)"},

	{Name: "tor_exit_list_url", Default: vpn.TorBulkExitURL, Desc: "URL of the Tor bulk exit list (blank disables Tor detection)"},
	{Name: "tor_refresh_interval", Default: "12h", Desc: "How often to reload the Tor exit list (e.g., 12h, 30m)"},

	{Name: "reputation_url", Default: "", Desc: "Base URL of the IP reputation API (blank disables)"},
	{Name: "reputation_key", Default: "", Desc: "API key for the IP reputation service"},

	{Name: "echo_enabled", Default: true, Desc: "Query external echo services when no header yields a public IP"},

	{Name: "track_rate_limit", Default: 60, Desc: "Tracking requests allowed per minute per peer address (0 disables)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, BEACON_* for app), and
// command-line flags, merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "BEACON", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),

		AdminPassword: appValues.String("admin_password"),
		AdminTokenKey: appValues.String("admin_token_key"),

		GeoCityDBPath: appValues.String("geo_city_db"),
		GeoASNDBPath:  appValues.String("geo_asn_db"),

		TorExitListURL:     appValues.String("tor_exit_list_url"),
		TorRefreshInterval: appValues.Duration("tor_refresh_interval", 12*time.Hour),

		ReputationURL: appValues.String("reputation_url"),
		ReputationKey: appValues.String("reputation_key"),

		EchoEnabled: appValues.Bool("echo_enabled"),

		TrackRateLimit: appValues.Int("track_rate_limit"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Beacon validates the MongoDB URI format to catch configuration errors
// early, and requires an admin password plus a usable token key so the
// dashboard cannot come up wide open or with unsignable tokens.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.AdminPassword == "" {
		return fmt.Errorf("admin_password must be set; the dashboard has no default credential")
	}
	if len(appCfg.AdminTokenKey) < 32 {
		return fmt.Errorf("admin_token_key must be at least 32 bytes")
	}

	return nil
}
