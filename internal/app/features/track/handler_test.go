// internal/app/features/track/handler_test.go
package track_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/driftline/beacon/internal/app/features/track"
	"github.com/driftline/beacon/internal/app/system/clientip"
	"github.com/driftline/beacon/internal/app/system/geo"
	"github.com/driftline/beacon/internal/app/system/vpn"
	"github.com/driftline/beacon/internal/domain/models"
	"go.uber.org/zap"
)

type fakeStore struct {
	saved []models.Visitor
	err   error
}

func (f *fakeStore) Insert(_ context.Context, v models.Visitor) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, v)
	return nil
}

type noEcho struct{}

func (noEcho) PublicIP(context.Context) (string, error) {
	return "", errors.New("echo disabled in tests")
}

func newHandler(store *fakeStore) *track.Handler {
	logger := zap.NewNop()
	tor := vpn.NewTorSet("", logger)
	return track.NewHandler(
		store,
		clientip.New(noEcho{}, logger),
		geo.New("", "", logger),
		vpn.New(tor, nil, logger),
		logger,
	)
}

func trackRequest(body string) *http.Request {
	var rdr *strings.Reader
	if body == "" {
		rdr = strings.NewReader("")
	} else {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/track-visitor", rdr)
	req.RemoteAddr = "127.0.0.1:41000"
	return req
}

func TestServeRecordsVisitor(t *testing.T) {
	store := &fakeStore{}
	h := newHandler(store)

	req := trackRequest(`{"sessionId":"sess-123"}`)
	req.Header.Set("CF-Connecting-IP", "8.8.8.8")
	req.Header.Set("User-Agent", "Mozilla/5.0 (test)")
	req.Header.Set("Accept-Language", "en-US")

	rr := httptest.NewRecorder()
	h.Serve(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var resp struct {
		Success     bool   `json:"success"`
		DetectedIP  string `json:"detectedIP"`
		Location    string `json:"location"`
		VPNDetected bool   `json:"vpnDetected"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Error("Success = false, want true")
	}
	if resp.DetectedIP != "8.8.8.8" {
		t.Errorf("DetectedIP = %q, want 8.8.8.8", resp.DetectedIP)
	}
	if resp.Location != "Unknown, Unknown" {
		t.Errorf("Location = %q, want \"Unknown, Unknown\" without a geo database", resp.Location)
	}

	if len(store.saved) != 1 {
		t.Fatalf("saved %d records, want 1", len(store.saved))
	}
	rec := store.saved[0]
	if rec.IPv4 != "8.8.8.8" {
		t.Errorf("record IPv4 = %q", rec.IPv4)
	}
	if rec.SessionID != "sess-123" {
		t.Errorf("record SessionID = %q, want sess-123", rec.SessionID)
	}
	if rec.Browser.UserAgent != "Mozilla/5.0 (test)" {
		t.Errorf("record UserAgent = %q", rec.Browser.UserAgent)
	}
}

func TestServeGeneratesSessionID(t *testing.T) {
	store := &fakeStore{}
	h := newHandler(store)

	rr := httptest.NewRecorder()
	h.Serve(rr, trackRequest(""))

	if len(store.saved) != 1 {
		t.Fatalf("saved %d records, want 1", len(store.saved))
	}
	if store.saved[0].SessionID == "" {
		t.Error("SessionID is empty, want a generated id")
	}
}

func TestServeSucceedsWhenStoreFails(t *testing.T) {
	store := &fakeStore{err: errors.New("mongo down")}
	h := newHandler(store)

	req := trackRequest(`{"sessionId":"s"}`)
	req.Header.Set("CF-Connecting-IP", "1.1.1.1")

	rr := httptest.NewRecorder()
	h.Serve(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even when the store is down", rr.Code)
	}
	var resp struct {
		Success    bool   `json:"success"`
		DetectedIP string `json:"detectedIP"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Error("Success = false, want true on store failure")
	}
	if resp.DetectedIP != "1.1.1.1" {
		t.Errorf("DetectedIP = %q, want 1.1.1.1", resp.DetectedIP)
	}
}

func TestServeSanitizesBrowserFields(t *testing.T) {
	store := &fakeStore{}
	h := newHandler(store)

	req := trackRequest(`{}`)
	req.Header.Set("CF-Connecting-IP", "8.8.8.8")
	req.Header.Set("User-Agent", `<script>alert(1)</script>Mozilla`)
	req.Header.Set("Referer", "https://example.com/<b>page</b>")

	rr := httptest.NewRecorder()
	h.Serve(rr, req)

	rec := store.saved[0]
	if strings.Contains(rec.Browser.UserAgent, "<script>") {
		t.Errorf("UserAgent kept markup: %q", rec.Browser.UserAgent)
	}
	if strings.Contains(rec.Browser.Referer, "<b>") {
		t.Errorf("Referer kept markup: %q", rec.Browser.Referer)
	}
}
