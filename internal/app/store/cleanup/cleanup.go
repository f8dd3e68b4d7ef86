// internal/app/store/cleanup/cleanup.go
// Package cleanup implements the destructive database reset used by the
// beaconwipe utility.
package cleanup

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Collections lists every collection in the database.
func Collections(ctx context.Context, db *mongo.Database) ([]string, error) {
	return db.ListCollectionNames(ctx, bson.M{})
}

// Drop removes every collection in the database and returns the names of
// the collections it dropped. Running against an empty database drops
// nothing and is not an error.
func Drop(ctx context.Context, db *mongo.Database, logger *zap.Logger) ([]string, error) {
	names, err := Collections(ctx, db)
	if err != nil {
		return nil, err
	}

	dropped := make([]string, 0, len(names))
	for _, name := range names {
		if err := db.Collection(name).Drop(ctx); err != nil {
			return dropped, err
		}
		logger.Info("dropped collection", zap.String("collection", name))
		dropped = append(dropped, name)
	}
	return dropped, nil
}
