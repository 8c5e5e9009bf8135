package ports

import (
	"context"

	"meetpoint-service/internal/domain"
)

// QuerySpec is a store-agnostic nearest-neighbor query: venues within
// RadiusMeters of Center (great-circle distance), optionally filtered by a
// case-insensitive category match, capped at MaxResults, each result
// annotated with its distance in meters. Implementations must return
// results ordered ascending by distance.
type QuerySpec struct {
	Center       domain.Coordinate `json:"center"`
	RadiusMeters int               `json:"radius_meters"`
	Category     string            `json:"category,omitempty"`
	MaxResults   int               `json:"max_results"`
}

// Port: a boundary for executing nearest-venue queries against a
// geospatially indexed document store.
type VenueStore interface {
	// Execute the query. Zero matches is an empty result, not an error.
	Search(ctx context.Context, spec QuerySpec) (domain.SearchResult, error)

	// Idempotently create the spherical index the queries depend on.
	EnsureIndexes(ctx context.Context) error

	// Distinct category values present in the collection.
	Categories(ctx context.Context) ([]string, error)
}
