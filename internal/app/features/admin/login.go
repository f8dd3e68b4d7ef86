// internal/app/features/admin/login.go
package admin

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/driftline/beacon/internal/app/system/limits"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Password string `json:"password"`
}

// ServeLogin handles POST /api/admin/login. On a correct password it issues
// a signed bearer token; anything else gets a generic 401.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxLoginBodySize)).Decode(&req); err != nil || req.Password == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"success": false, "error": "unauthorized",
		})
		return
	}

	if !h.passwordMatches(req.Password) {
		h.Log.Warn("admin login rejected")
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"success": false, "error": "unauthorized",
		})
		return
	}

	token, err := h.Tokens.Issue()
	if err != nil {
		h.Log.Error("admin token issue failed", zap.Error(err))
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"success": false, "error": "unauthorized",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true, "token": token,
	})
}

// passwordMatches compares against the configured secret. A secret with a
// bcrypt prefix is treated as a hash; otherwise the compare is constant-time
// on the plaintext.
func (h *Handler) passwordMatches(candidate string) bool {
	if h.Password == "" {
		return false
	}
	if strings.HasPrefix(h.Password, "$2a$") || strings.HasPrefix(h.Password, "$2b$") {
		return bcrypt.CompareHashAndPassword([]byte(h.Password), []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(h.Password), []byte(candidate)) == 1
}
