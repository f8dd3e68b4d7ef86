package admintoken_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/driftline/beacon/internal/app/system/admintoken"
)

const testKey = "test-signing-key-0123456789abcdef"

func TestIssueAndVerify(t *testing.T) {
	m, err := admintoken.New(testKey, time.Hour)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tok, err := m.Issue()
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if tok == "" {
		t.Fatal("expected non-empty token")
	}
	if !m.Verify(tok) {
		t.Error("freshly issued token did not verify")
	}
}

func TestVerify_Garbage(t *testing.T) {
	m, err := admintoken.New(testKey, time.Hour)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for _, tok := range []string{"", "garbage", "aaaa.bbbb.cccc"} {
		if m.Verify(tok) {
			t.Errorf("Verify(%q) = true, want false", tok)
		}
	}
}

func TestVerify_DifferentKeyRejected(t *testing.T) {
	m1, _ := admintoken.New(testKey, time.Hour)
	m2, _ := admintoken.New("another-signing-key-0123456789abcdef", time.Hour)

	tok, err := m1.Issue()
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if m2.Verify(tok) {
		t.Error("token verified under a different key")
	}
}

func TestNew_ShortKeyRejected(t *testing.T) {
	if _, err := admintoken.New("short", time.Hour); err == nil {
		t.Error("expected error for short signing key")
	}
}

func TestRequire_Middleware(t *testing.T) {
	m, _ := admintoken.New(testKey, time.Hour)
	called := false
	h := m.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	// No token.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/admin/analytics", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if called {
		t.Error("handler ran without a token")
	}

	// Bearer token.
	tok, _ := m.Issue()
	req := httptest.NewRequest("GET", "/api/admin/analytics", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !called {
		t.Errorf("status = %d, called = %v; want 200 and handler run", rec.Code, called)
	}
}
