package ports

import (
	"context"

	"meetpoint-service/internal/domain"
)

// Where a geocode result came from.
type Source string

const (
	SourceCache Source = "cache"
	SourceLive  Source = "live"
)

// A resolved address: coordinate plus the provider's display label.
type GeocodeResult struct {
	Coordinate domain.Coordinate
	Label      string
	Source     Source
}

// Port: a boundary for resolving a free-text address against an external
// geocoding provider. Implementations own their timeout and retry policy.
type GeocodeProvider interface {
	// Resolve an address to a coordinate and display label. Returns
	// domain.ErrAddressNotFound (wrapped) when the provider has no match
	// and domain.ErrGeocodeUnavailable when it cannot be reached.
	Geocode(ctx context.Context, address string) (domain.Coordinate, string, error)
}

// Cached geocode entry.
type CachedLocation struct {
	Coordinate domain.Coordinate
	Label      string
}

// Port: TTL cache keyed by normalized address. Implementations own expiry;
// Get never returns a stale entry. Must be safe for concurrent use.
type GeocodeCache interface {
	Get(ctx context.Context, address string) (CachedLocation, bool, error)
	Put(ctx context.Context, address string, loc CachedLocation) error
}
