package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"meetpoint-service/internal/domain"
	"meetpoint-service/internal/platform/logger"
	"meetpoint-service/internal/platform/obs"
	"meetpoint-service/internal/ports"
)

// Geocoder resolves addresses through a TTL cache and a shared rate
// limiter. Cache hits cost nothing against the external provider's
// courtesy limit; misses queue FIFO on the limiter, so concurrent requests
// serialize instead of being dropped, and live calls never fire closer
// together than the configured interval.
//
// One Geocoder instance is constructed at process start and shared by
// reference across all request handlers.
type Geocoder struct {
	provider ports.GeocodeProvider
	cache    ports.GeocodeCache
	limiter  *rate.Limiter
	log      zerolog.Logger
}

func NewGeocoder(provider ports.GeocodeProvider, cache ports.GeocodeCache, interval time.Duration) *Geocoder {
	if interval <= 0 {
		interval = time.Second
	}
	return &Geocoder{
		provider: provider,
		cache:    cache,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		log:      logger.New("geocoder"),
	}
}

// Resolve an address to a coordinate, consulting the cache first. Cache
// failures degrade to a live lookup rather than failing the request; the
// limiter slot is consumed per live call and released on completion,
// regardless of whether the caller is still waiting.
func (g *Geocoder) Resolve(ctx context.Context, address string) (_ ports.GeocodeResult, err error) {
	defer obs.Time(ctx, "geocode.resolve")(&err)

	norm := domain.NormalizeAddress(address)
	if norm == "" {
		return ports.GeocodeResult{}, &domain.GeocodeError{Address: address, Err: domain.ErrAddressNotFound}
	}

	loc, ok, err := g.cache.Get(ctx, norm)
	if err != nil {
		g.log.Warn().Err(err).Str("address", norm).Msg("geocode cache read failed")
	} else if ok {
		return ports.GeocodeResult{
			Coordinate: loc.Coordinate,
			Label:      loc.Label,
			Source:     ports.SourceCache,
		}, nil
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return ports.GeocodeResult{}, err
	}

	coord, label, err := g.provider.Geocode(ctx, norm)
	if err != nil {
		return ports.GeocodeResult{}, err
	}

	if err := g.cache.Put(ctx, norm, ports.CachedLocation{Coordinate: coord, Label: label}); err != nil {
		g.log.Warn().Err(err).Str("address", norm).Msg("geocode cache write failed")
	}

	return ports.GeocodeResult{
		Coordinate: coord,
		Label:      label,
		Source:     ports.SourceLive,
	}, nil
}
