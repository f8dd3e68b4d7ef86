// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup from the EnsureSchema hook. Each ensure*
function is idempotent; Mongo treats CreateMany of an existing index as a
no-op. Errors are aggregated so every problem is visible and startup can
fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureVisitors(ctx, db); err != nil {
		problems = append(problems, "visitors: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// ensureVisitors covers the aggregator's query patterns: recent-first
// listing and time windows (timestamp desc), per-IP lookups, and country
// grouping.
func ensureVisitors(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection("visitors")
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("timestamp_desc"),
		},
		{
			Keys:    bson.D{{Key: "ipv4", Value: 1}},
			Options: options.Index().SetName("ipv4"),
		},
		{
			Keys:    bson.D{{Key: "location.country", Value: 1}},
			Options: options.Index().SetName("country"),
		},
	})
	return err
}
