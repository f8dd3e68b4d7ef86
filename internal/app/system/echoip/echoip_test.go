package echoip_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/driftline/beacon/internal/app/system/echoip"
	"go.uber.org/zap"
)

func TestPublicIP_FirstServiceWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("8.8.8.8\n"))
	}))
	defer srv.Close()

	c := echoip.New([]string{srv.URL}, time.Second, zap.NewNop())
	ip, err := c.PublicIP(context.Background())
	if err != nil {
		t.Fatalf("PublicIP failed: %v", err)
	}
	if ip != "8.8.8.8" {
		t.Errorf("PublicIP() = %q, want %q", ip, "8.8.8.8")
	}
}

func TestPublicIP_FallsThroughFailures(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer bad.Close()

	private := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("192.168.1.1"))
	}))
	defer private.Close()

	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("1.2.3.4"))
	}))
	defer good.Close()

	c := echoip.New([]string{bad.URL, private.URL, good.URL}, time.Second, zap.NewNop())
	ip, err := c.PublicIP(context.Background())
	if err != nil {
		t.Fatalf("PublicIP failed: %v", err)
	}
	if ip != "1.2.3.4" {
		t.Errorf("PublicIP() = %q, want %q", ip, "1.2.3.4")
	}
}

func TestPublicIP_AllFail(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()

	c := echoip.New([]string{bad.URL}, time.Second, zap.NewNop())
	if _, err := c.PublicIP(context.Background()); err == nil {
		t.Fatal("expected error when every service fails")
	}
}
