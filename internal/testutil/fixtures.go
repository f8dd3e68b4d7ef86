package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/driftline/beacon/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TestMongoEnv names the env var holding the test MongoDB URI. Tests that
// need a live store skip when it is unset, so the pure-logic suites run
// anywhere.
const TestMongoEnv = "BEACON_TEST_MONGO_URI"

// SetupTestDB connects to the test MongoDB instance and returns a database
// unique to the calling test. The database is dropped during cleanup.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv(TestMongoEnv)
	if uri == "" {
		t.Skipf("set %s to run tests that need MongoDB", TestMongoEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("mongo connect failed: %v", err)
	}

	db := client.Database(fmt.Sprintf("beacon_test_%d", time.Now().UnixNano()))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return db
}

// TestContext returns a context suitable for store calls in tests.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// VisitorRecord builds a plausible visitor fixture. Override fields on the
// returned value before inserting as needed.
func VisitorRecord(ip, country, city string, ts time.Time) models.Visitor {
	loc := models.UnknownLocation()
	if country != "" {
		loc.Country = country
	}
	if city != "" {
		loc.City = city
	}
	return models.Visitor{
		IPv4:     ip,
		Location: loc,
		VPN:      models.VPNInfo{VPNType: models.VPNTypeNone},
		Browser: models.BrowserInfo{
			UserAgent: "Mozilla/5.0 (X11; Linux x86_64) TestAgent/1.0",
			Language:  "en-US",
		},
		Timestamp: ts,
		SessionID: fmt.Sprintf("sess-%d", ts.UnixNano()),
	}
}

// InsertVisitors inserts the given fixtures directly, bypassing the store.
func InsertVisitors(t *testing.T, db *mongo.Database, records ...models.Visitor) {
	t.Helper()
	ctx, cancel := TestContext()
	defer cancel()

	docs := make([]interface{}, len(records))
	for i, r := range records {
		if r.Timestamp.IsZero() {
			r.Timestamp = time.Now().UTC()
		}
		docs[i] = r
	}
	if _, err := db.Collection("visitors").InsertMany(ctx, docs); err != nil {
		t.Fatalf("insert fixtures failed: %v", err)
	}
}
