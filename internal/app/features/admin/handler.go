// internal/app/features/admin/handler.go
// Package admin serves the dashboard API: login plus the aggregate
// analytics endpoints the dashboard polls.
package admin

import (
	"context"
	"encoding/json"
	"net/http"

	visitorstore "github.com/driftline/beacon/internal/app/store/visitors"
	"github.com/driftline/beacon/internal/app/system/admintoken"
	"github.com/driftline/beacon/internal/domain/models"
	"go.uber.org/zap"
)

// AnalyticsStore is the read side of the visitor store the dashboard needs.
type AnalyticsStore interface {
	FetchCounts(ctx context.Context) visitorstore.Counts
	Recent(ctx context.Context, limit int64) ([]models.Visitor, error)
	TopCountries(ctx context.Context, limit int) ([]visitorstore.CountryStat, error)
	Timeline(ctx context.Context, w visitorstore.Window) ([]visitorstore.Bucket, error)
}

// Handler holds the admin API dependencies.
type Handler struct {
	Store    AnalyticsStore
	Tokens   *admintoken.Manager
	Password string
	Log      *zap.Logger
}

// NewHandler constructs an admin Handler. password is the configured admin
// secret, either plaintext or a bcrypt hash.
func NewHandler(store AnalyticsStore, tokens *admintoken.Manager, password string, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Tokens: tokens, Password: password, Log: logger}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
