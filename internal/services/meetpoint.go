package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"meetpoint-service/internal/domain"
	"meetpoint-service/internal/platform/logger"
	"meetpoint-service/internal/platform/obs"
	"meetpoint-service/internal/ports"
)

// addressResolver is the slice of Geocoder the meetpoint flow needs.
type addressResolver interface {
	Resolve(ctx context.Context, address string) (ports.GeocodeResult, error)
}

type SearchRequest struct {
	Address1 string
	Address2 string
	Filters  domain.SearchFilters
}

// SearchOutcome is everything a successful meetpoint search produces: both
// resolved endpoints, the midpoint, the ranked venues, and the diagnostic
// metrics for the request.
type SearchOutcome struct {
	Origin1  ports.GeocodeResult
	Origin2  ports.GeocodeResult
	Midpoint domain.Coordinate
	Venues   domain.SearchResult
	Metrics  QueryMetrics
}

// Meetpoint orchestrates the full search: validate filters, resolve both
// addresses, compute the spherical midpoint, and query the venue store.
// Stage errors propagate unmodified; when any stage fails, partial metrics
// are discarded rather than returned alongside the error.
type Meetpoint struct {
	resolver addressResolver
	store    ports.VenueStore
	log      zerolog.Logger
}

func NewMeetpoint(resolver addressResolver, store ports.VenueStore) *Meetpoint {
	return &Meetpoint{
		resolver: resolver,
		store:    store,
		log:      logger.New("meetpoint"),
	}
}

// Search runs one end-to-end meetpoint request.
//
// The two addresses resolve concurrently; both still serialize through the
// geocoder's single shared limiter, so live provider calls stay at least
// one interval apart. Both must resolve before a midpoint is computed --
// a partial resolution is never silently substituted.
func (m *Meetpoint) Search(ctx context.Context, req SearchRequest) (_ *SearchOutcome, err error) {
	defer obs.Time(ctx, "meetpoint.search")(&err)

	if err := ValidateFilters(req.Filters); err != nil {
		return nil, err
	}

	var (
		origin1, origin2 ports.GeocodeResult
		dur1, dur2       time.Duration
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		var err error
		origin1, err = m.resolver.Resolve(gctx, req.Address1)
		dur1 = time.Since(start)
		return err
	})
	g.Go(func() error {
		start := time.Now()
		var err error
		origin2, err = m.resolver.Resolve(gctx, req.Address2)
		dur2 = time.Since(start)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	mid := domain.Midpoint(origin1.Coordinate, origin2.Coordinate)
	spec := BuildQuery(mid, req.Filters)

	storeStart := time.Now()
	venues, err := m.store.Search(ctx, spec)
	storeDur := time.Since(storeStart)
	if err != nil {
		return nil, err
	}

	distStats, err := distanceStats(venues)
	if err != nil {
		return nil, fmt.Errorf("meetpoint search: %w", err)
	}

	m.log.Info().
		Str("midpoint", mid.String()).
		Int("results", len(venues)).
		Int64("store_ms", storeDur.Milliseconds()).
		Msg("search complete")

	outcome := &SearchOutcome{
		Origin1:  origin1,
		Origin2:  origin2,
		Midpoint: mid,
		Venues:   venues,
		Metrics: QueryMetrics{
			GeocodeMillis: map[string]float64{
				"addr1": float64(dur1.Microseconds()) / 1000,
				"addr2": float64(dur2.Microseconds()) / 1000,
			},
			GeocodeSources: map[string]ports.Source{
				"addr1": origin1.Source,
				"addr2": origin2.Source,
			},
			StoreMillis:   float64(storeDur.Microseconds()) / 1000,
			ResultCount:   len(venues),
			Query:         spec,
			DistanceStats: distStats,
		},
	}

	return outcome, nil
}
