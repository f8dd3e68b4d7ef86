// internal/app/system/admintoken/admintoken.go
// Package admintoken issues and checks the bearer tokens returned by the
// admin login endpoint. Tokens are HMAC-encoded timestamps, so the server
// keeps no session state; a token is valid until its TTL passes.
package admintoken

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
)

const tokenName = "beacon-admin"

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = 12 * time.Hour

// Manager signs and verifies admin tokens with a process-scoped key.
type Manager struct {
	sc  *securecookie.SecureCookie
	ttl time.Duration
}

type claims struct {
	IssuedAt int64
}

// New builds a Manager from the signing key. A short key is rejected so a
// blank config cannot silently issue forgeable tokens. ttl <= 0 uses
// DefaultTTL.
func New(key string, ttl time.Duration) (*Manager, error) {
	if len(key) < 32 {
		return nil, errors.New("admintoken: signing key must be at least 32 bytes")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	sc := securecookie.New([]byte(key), nil)
	sc.MaxAge(int(ttl.Seconds()))
	return &Manager{sc: sc, ttl: ttl}, nil
}

// Issue returns a fresh token.
func (m *Manager) Issue() (string, error) {
	return m.sc.Encode(tokenName, claims{IssuedAt: time.Now().Unix()})
}

// Verify reports whether token is authentic and unexpired.
func (m *Manager) Verify(token string) bool {
	if token == "" {
		return false
	}
	var c claims
	if err := m.sc.Decode(tokenName, token, &c); err != nil {
		return false
	}
	return time.Since(time.Unix(c.IssuedAt, 0)) < m.ttl
}

// Require is middleware for the admin API. It accepts the token from an
// Authorization: Bearer header or an X-Admin-Token header and answers 401
// with a generic JSON body otherwise.
func (m *Manager) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.Verify(TokenFromRequest(r)) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"error":"unauthorized"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// TokenFromRequest extracts the presented token, or "".
func TokenFromRequest(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if tok, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return tok
		}
	}
	return r.Header.Get("X-Admin-Token")
}
