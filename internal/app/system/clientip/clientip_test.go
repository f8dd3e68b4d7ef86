package clientip_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/driftline/beacon/internal/app/system/clientip"
	"go.uber.org/zap"
)

type fakeEcho struct {
	ip  string
	err error
}

func (f *fakeEcho) PublicIP(ctx context.Context) (string, error) {
	return f.ip, f.err
}

func TestResolve_ForwardedForFirstPublicToken(t *testing.T) {
	rs := clientip.New(nil, zap.NewNop())

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "127.0.0.1:52100"
	req.Header.Set("X-Forwarded-For", "8.8.8.8, 10.0.0.5")

	if got := rs.Resolve(context.Background(), req); got != "8.8.8.8" {
		t.Errorf("Resolve() = %q, want %q", got, "8.8.8.8")
	}
}

func TestResolve_TransportAddressWins(t *testing.T) {
	rs := clientip.New(nil, zap.NewNop())

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "203.0.113.9:40312"
	req.Header.Set("X-Forwarded-For", "8.8.8.8")

	if got := rs.Resolve(context.Background(), req); got != "203.0.113.9" {
		t.Errorf("Resolve() = %q, want %q", got, "203.0.113.9")
	}
}

func TestResolve_HeaderPriorityOrder(t *testing.T) {
	rs := clientip.New(nil, zap.NewNop())

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "127.0.0.1:52100"
	req.Header.Set("X-Real-IP", "1.1.1.1")
	req.Header.Set("CF-Connecting-IP", "9.9.9.9")

	// cf-connecting-ip outranks x-real-ip.
	if got := rs.Resolve(context.Background(), req); got != "9.9.9.9" {
		t.Errorf("Resolve() = %q, want %q", got, "9.9.9.9")
	}
}

func TestResolve_SkipsPrivateHeaderValues(t *testing.T) {
	rs := clientip.New(nil, zap.NewNop())

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "127.0.0.1:52100"
	req.Header.Set("CF-Connecting-IP", "192.168.0.20")
	req.Header.Set("X-Real-IP", "8.8.4.4")

	if got := rs.Resolve(context.Background(), req); got != "8.8.4.4" {
		t.Errorf("Resolve() = %q, want %q", got, "8.8.4.4")
	}
}

func TestResolve_PrivateTransportFallback(t *testing.T) {
	rs := clientip.New(&fakeEcho{ip: "5.5.5.5"}, zap.NewNop())

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.168.1.40:1234"

	// A private socket peer still beats the external echo services.
	if got := rs.Resolve(context.Background(), req); got != "192.168.1.40" {
		t.Errorf("Resolve() = %q, want %q", got, "192.168.1.40")
	}
}

func TestResolve_EchoFallback(t *testing.T) {
	rs := clientip.New(&fakeEcho{ip: "5.5.5.5"}, zap.NewNop())

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "127.0.0.1:9999"

	if got := rs.Resolve(context.Background(), req); got != "5.5.5.5" {
		t.Errorf("Resolve() = %q, want %q", got, "5.5.5.5")
	}
}

func TestResolve_Unknown(t *testing.T) {
	rs := clientip.New(&fakeEcho{err: errors.New("all services down")}, zap.NewNop())

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "127.0.0.1:9999"

	if got := rs.Resolve(context.Background(), req); got != "unknown" {
		t.Errorf("Resolve() = %q, want %q", got, "unknown")
	}
}

func TestIPv6FromHeaders(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Forwarded-For", "8.8.8.8, 2001:4860:4860:0000:0000:0000:0000:8888")

	got := clientip.IPv6FromHeaders(req)
	if got != "2001:4860:4860:0000:0000:0000:0000:8888" {
		t.Errorf("IPv6FromHeaders() = %q", got)
	}

	req2 := httptest.NewRequest("GET", "/", nil)
	req2.Header.Set("X-Forwarded-For", "8.8.8.8")
	if got := clientip.IPv6FromHeaders(req2); got != "" {
		t.Errorf("IPv6FromHeaders() = %q, want empty", got)
	}
}
