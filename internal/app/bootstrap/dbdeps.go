// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/driftline/beacon/internal/app/system/geo"
	"github.com/driftline/beacon/internal/app/system/vpn"
	"github.com/driftline/beacon/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database and shared back-end dependencies for the app.
// Everything here is constructed in ConnectDB so every later hook sees the
// same instances; the Tor list itself is fetched in Startup so an
// unreachable source degrades instead of failing boot.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	Geo        *geo.Resolver
	Tor        *vpn.TorSet
	TorRefresh *workers.TorRefresh
}
