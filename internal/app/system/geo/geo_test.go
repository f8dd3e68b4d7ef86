package geo_test

import (
	"testing"

	"github.com/driftline/beacon/internal/app/system/geo"
	"go.uber.org/zap"
)

func TestLookup_NoDatabaseServesUnknown(t *testing.T) {
	r := geo.New("", "", zap.NewNop())
	defer r.Close()

	loc := r.Lookup("8.8.8.8")
	if loc.Country != "Unknown" || loc.City != "Unknown" || loc.ISP != "Unknown" {
		t.Errorf("expected Unknown record, got %+v", loc)
	}
	if loc.Latitude != 0 || loc.Longitude != 0 {
		t.Errorf("expected zero coordinates, got %f,%f", loc.Latitude, loc.Longitude)
	}
	if loc.MapURL != "" {
		t.Errorf("expected no map URL, got %q", loc.MapURL)
	}
}

func TestLookup_MissingFileDegrades(t *testing.T) {
	// Bad paths must not fail construction.
	r := geo.New("/nonexistent/GeoLite2-City.mmdb", "/nonexistent/GeoLite2-ASN.mmdb", zap.NewNop())
	defer r.Close()

	if r.Enabled() {
		t.Error("expected resolver to be disabled with missing database")
	}
	loc := r.Lookup("8.8.8.8")
	if loc.Country != "Unknown" {
		t.Errorf("expected Unknown country, got %q", loc.Country)
	}
}

func TestLookup_SentinelAndMalformed(t *testing.T) {
	r := geo.New("", "", zap.NewNop())
	defer r.Close()

	for _, ip := range []string{"unknown", "", "not-an-ip"} {
		loc := r.Lookup(ip)
		if loc.Country != "Unknown" {
			t.Errorf("Lookup(%q): expected Unknown country, got %q", ip, loc.Country)
		}
	}
}

func TestMapURL(t *testing.T) {
	if got := geo.MapURL(0, 0); got != "" {
		t.Errorf("MapURL(0,0) = %q, want empty", got)
	}
	if got := geo.MapURL(48.85, 0); got != "" {
		t.Errorf("MapURL(48.85,0) = %q, want empty", got)
	}
	got := geo.MapURL(48.85, 2.35)
	if got == "" {
		t.Error("expected a map URL for non-zero coordinates")
	}
}
