package venuestore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"meetpoint-service/internal/domain"
	"meetpoint-service/internal/platform/logger"
	"meetpoint-service/internal/platform/obs"
	"meetpoint-service/internal/ports"
)

const serverSelectionTimeout = 10 * time.Second

// MongoVenueStore executes nearest-venue queries with a $geoNear
// aggregation over a 2dsphere-indexed collection. Distances are spherical
// and results arrive pre-sorted ascending; the store never re-sorts.
type MongoVenueStore struct {
	coll *mongo.Collection
	log  zerolog.Logger
}

// Connect opens a client, verifies the connection, and returns the store
// plus a close function. Connection failures map to ErrStoreConnection.
func Connect(ctx context.Context, uri, database, collection string) (*MongoVenueStore, func(context.Context) error, error) {
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(serverSelectionTimeout))
	if err != nil {
		return nil, nil, &domain.StoreError{
			Op:  "connect",
			Err: fmt.Errorf("%w: %v", domain.ErrStoreConnection, err),
		}
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, &domain.StoreError{
			Op:  "connect",
			Err: fmt.Errorf("%w: %v", domain.ErrStoreConnection, err),
		}
	}

	store := &MongoVenueStore{
		coll: client.Database(database).Collection(collection),
		log:  logger.New("venuestore"),
	}

	return store, client.Disconnect, nil
}

// NewWithCollection wires the store onto an existing collection handle.
func NewWithCollection(coll *mongo.Collection) *MongoVenueStore {
	return &MongoVenueStore{coll: coll, log: logger.New("venuestore")}
}

// EnsureIndexes idempotently creates the 2dsphere index every query
// depends on. Called once at startup and again as self-healing when a
// query reports the index missing.
func (s *MongoVenueStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "loc", Value: "2dsphere"}},
	})
	if err != nil {
		return &domain.StoreError{
			Op:  "ensure indexes",
			Err: fmt.Errorf("%w: %v", domain.ErrStoreIndexMissing, err),
		}
	}
	return nil
}

// buildPipeline maps a store-agnostic QuerySpec to a $geoNear aggregation.
// The center goes in as GeoJSON [lon, lat]; the category filter becomes a
// case-insensitive regex on the venue's category field.
func buildPipeline(spec ports.QuerySpec) mongo.Pipeline {
	geoNear := bson.D{
		{Key: "near", Value: bson.D{
			{Key: "type", Value: "Point"},
			{Key: "coordinates", Value: spec.Center.GeoJSON()},
		}},
		{Key: "distanceField", Value: "distance"},
		{Key: "maxDistance", Value: spec.RadiusMeters},
		{Key: "spherical", Value: true},
	}

	if spec.Category != "" {
		geoNear = append(geoNear, bson.E{Key: "query", Value: bson.D{
			{Key: "category", Value: primitive.Regex{Pattern: spec.Category, Options: "i"}},
		}})
	}

	return mongo.Pipeline{
		bson.D{{Key: "$geoNear", Value: geoNear}},
		bson.D{{Key: "$limit", Value: spec.MaxResults}},
	}
}

// Search runs the nearest-venue aggregation. Zero matches within the
// radius is an empty result, not an error. When the aggregation fails
// because the geospatial index is gone, one self-healing index creation is
// attempted before the query is retried.
func (s *MongoVenueStore) Search(ctx context.Context, spec ports.QuerySpec) (_ domain.SearchResult, err error) {
	defer obs.Time(ctx, "venuestore.search")(&err)

	pipeline := buildPipeline(spec)

	result, err := s.aggregate(ctx, pipeline)
	if err == nil {
		return result, nil
	}

	if !isIndexError(err) {
		return nil, s.classify("search", err)
	}

	s.log.Warn().Err(err).Msg("geospatial index missing, attempting self-heal")
	if healErr := s.EnsureIndexes(ctx); healErr != nil {
		return nil, healErr
	}

	result, err = s.aggregate(ctx, pipeline)
	if err != nil {
		return nil, &domain.StoreError{
			Op:  "search",
			Err: fmt.Errorf("%w: %v", domain.ErrStoreIndexMissing, err),
		}
	}
	return result, nil
}

func (s *MongoVenueStore) aggregate(ctx context.Context, pipeline mongo.Pipeline) (domain.SearchResult, error) {
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	result := domain.SearchResult{}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Categories lists the distinct category values in the collection, sorted.
func (s *MongoVenueStore) Categories(ctx context.Context) (_ []string, err error) {
	defer obs.Time(ctx, "venuestore.categories")(&err)

	raw, err := s.coll.Distinct(ctx, "category", bson.D{})
	if err != nil {
		return nil, s.classify("categories", err)
	}

	categories := make([]string, 0, len(raw))
	for _, v := range raw {
		if c, ok := v.(string); ok && c != "" {
			categories = append(categories, c)
		}
	}
	sort.Strings(categories)

	return categories, nil
}

// InsertVenues bulk-loads venue documents. Used by the seed tool; the
// engine itself only reads the collection.
func (s *MongoVenueStore) InsertVenues(ctx context.Context, venues []domain.Venue) (int, error) {
	if len(venues) == 0 {
		return 0, nil
	}

	docs := make([]any, 0, len(venues))
	for _, v := range venues {
		docs = append(docs, v)
	}

	result, err := s.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, s.classify("insert venues", err)
	}
	return len(result.InsertedIDs), nil
}

// Drop removes the venue collection. Used by the seed tool's reset path.
func (s *MongoVenueStore) Drop(ctx context.Context) error {
	if err := s.coll.Drop(ctx); err != nil {
		return s.classify("drop collection", err)
	}
	return nil
}

func (s *MongoVenueStore) classify(op string, err error) error {
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) || errors.Is(err, mongo.ErrClientDisconnected) {
		return &domain.StoreError{
			Op:  op,
			Err: fmt.Errorf("%w: %v", domain.ErrStoreConnection, err),
		}
	}
	return &domain.StoreError{Op: op, Err: err}
}

// The server reports a missing 2dsphere index as a $geoNear planner error.
func isIndexError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "2dsphere") {
		return true
	}
	return strings.Contains(msg, "$geonear") && strings.Contains(msg, "index")
}
