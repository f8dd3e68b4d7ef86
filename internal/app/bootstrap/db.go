// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/driftline/beacon/internal/app/system/geo"
	"github.com/driftline/beacon/internal/app/system/indexes"
	"github.com/driftline/beacon/internal/app/system/timeouts"
	"github.com/driftline/beacon/internal/app/system/vpn"
	"github.com/driftline/beacon/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection and constructs the shared
// lookup resources. The geo reader and Tor set are created here so later
// hooks share the same instances; the Tor list itself is fetched in Startup.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	connectCtx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(appCfg.MongoURI))
	if err != nil {
		return DBDeps{}, err
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return DBDeps{}, err
	}
	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	tor := vpn.NewTorSet(appCfg.TorExitListURL, logger)

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
		Geo:           geo.New(appCfg.GeoCityDBPath, appCfg.GeoASNDBPath, logger),
		Tor:           tor,
		TorRefresh:    workers.NewTorRefresh(tor, logger, appCfg.TorRefreshInterval),
	}, nil
}

// EnsureSchema creates the visitor collection indexes. Index creation is
// idempotent, so this runs on every boot.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	schemaCtx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()

	return indexes.EnsureAll(schemaCtx, deps.MongoDatabase)
}
