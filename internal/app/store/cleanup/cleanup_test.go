// internal/app/store/cleanup/cleanup_test.go
package cleanup_test

import (
	"testing"
	"time"

	"github.com/driftline/beacon/internal/app/store/cleanup"
	"github.com/driftline/beacon/internal/testutil"
	"go.uber.org/zap"
)

func TestDropRemovesAllCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	testutil.InsertVisitors(t, db,
		testutil.VisitorRecord("8.8.8.8", "United States", "Mountain View", time.Now().UTC()),
	)

	dropped, err := cleanup.Drop(ctx, db, zap.NewNop())
	if err != nil {
		t.Fatalf("Drop failed: %v", err)
	}
	if len(dropped) != 1 || dropped[0] != "visitors" {
		t.Errorf("dropped = %v, want [visitors]", dropped)
	}

	names, err := cleanup.Collections(ctx, db)
	if err != nil {
		t.Fatalf("Collections failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("collections remain after drop: %v", names)
	}
}

func TestDropIsIdempotentOnEmptyDatabase(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 2; i++ {
		dropped, err := cleanup.Drop(ctx, db, zap.NewNop())
		if err != nil {
			t.Fatalf("run %d: Drop failed: %v", i, err)
		}
		if len(dropped) != 0 {
			t.Errorf("run %d: dropped = %v, want none on an empty database", i, dropped)
		}
	}
}
