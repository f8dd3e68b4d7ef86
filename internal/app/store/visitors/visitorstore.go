// internal/app/store/visitors/visitorstore.go
package visitorstore

import (
	"context"
	"time"

	"github.com/driftline/beacon/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the data access layer for the append-only visitors collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("visitors")}
}

// Insert persists one visitor record. If Timestamp is zero it is set to
// time.Now().UTC(). There is no update path; records are immutable.
func (s *Store) Insert(ctx context.Context, v models.Visitor) error {
	if v.Timestamp.IsZero() {
		v.Timestamp = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, v)
	return err
}

// Recent returns the newest records first. limit is clamped to [1, 200].
func (s *Store) Recent(ctx context.Context, limit int64) ([]models.Visitor, error) {
	if limit < 1 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Visitor{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Counts is the set of totals shown on the admin dashboard.
type Counts struct {
	Total       int64 `json:"totalVisitors"`
	Today       int64 `json:"todayVisitors"`
	Countries   int64 `json:"uniqueCountries"`
	VPNDetected int64 `json:"vpnDetected"`
}

// FetchCounts returns the dashboard totals. Intentionally tolerant: each
// counter degrades to 0 on error so an unavailable store renders an empty
// dashboard instead of failing the request.
func (s *Store) FetchCounts(ctx context.Context) Counts {
	var out Counts

	if n, err := s.c.CountDocuments(ctx, bson.M{}); err == nil {
		out.Total = n
	}

	// "Today" is the server's local calendar day.
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if n, err := s.c.CountDocuments(ctx, bson.M{"timestamp": bson.M{"$gte": midnight}}); err == nil {
		out.Today = n
	}

	if countries, err := s.c.Distinct(ctx, "location.country", bson.M{"location.country": bson.M{"$ne": "Unknown"}}); err == nil {
		out.Countries = int64(len(countries))
	}

	if n, err := s.c.CountDocuments(ctx, bson.M{"vpn.is_vpn": true}); err == nil {
		out.VPNDetected = n
	}

	return out
}

// CountryStat is one row of the top-countries breakdown.
type CountryStat struct {
	Country string   `bson:"_id" json:"country"`
	Count   int64    `bson:"count" json:"count"`
	Cities  []string `bson:"cities" json:"cities"`
}

// TopCountries groups records by country, newest-heaviest first, with each
// country's distinct city set. Unknown countries are excluded.
func (s *Store) TopCountries(ctx context.Context, limit int) ([]CountryStat, error) {
	if limit <= 0 {
		limit = 10
	}
	pipeline := []bson.M{
		{"$match": bson.M{"location.country": bson.M{"$ne": "Unknown"}}},
		{"$group": bson.M{
			"_id":    "$location.country",
			"count":  bson.M{"$sum": 1},
			"cities": bson.M{"$addToSet": "$location.city"},
		}},
		{"$sort": bson.M{"count": -1}},
		{"$limit": limit},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []CountryStat{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Window selects the timeline span and its bucket granularity.
type Window struct {
	Name   string
	Span   time.Duration
	Format string // Mongo $dateToString format for the bucket key
}

// Timeline windows keyed by the filter parameter. 24h buckets hourly;
// 7d and 30d bucket daily.
var windows = map[string]Window{
	"24h": {Name: "24h", Span: 24 * time.Hour, Format: "%Y-%m-%dT%H"},
	"7d":  {Name: "7d", Span: 7 * 24 * time.Hour, Format: "%Y-%m-%d"},
	"30d": {Name: "30d", Span: 30 * 24 * time.Hour, Format: "%Y-%m-%d"},
}

// ParseWindow maps a filter value to its window; unknown values fall back
// to 24h, matching the dashboard default.
func ParseWindow(filter string) Window {
	if w, ok := windows[filter]; ok {
		return w
	}
	return windows["24h"]
}

// Bucket is one time-bucketed histogram entry. Keys are chronological
// because the string format sorts lexically.
type Bucket struct {
	Key   string `bson:"_id" json:"bucket"`
	Count int64  `bson:"count" json:"count"`
}

// Timeline returns the visit histogram for the window, ascending by bucket.
// Buckets with no records are omitted: callers get a sparse series.
func (s *Store) Timeline(ctx context.Context, w Window) ([]Bucket, error) {
	since := time.Now().UTC().Add(-w.Span)
	pipeline := []bson.M{
		{"$match": bson.M{"timestamp": bson.M{"$gte": since}}},
		{"$group": bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": w.Format,
				"date":   "$timestamp",
			}},
			"count": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"_id": 1}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []Bucket{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
