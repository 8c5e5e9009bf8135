package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"meetpoint-service/internal/ports"
)

// PostgresGeocodeCache is a SQL-backed cache mapping addresses to resolved
// locations. It survives process restarts, which the in-memory cache does
// not; expiry is enforced at read time against the expires_at column.
type PostgresGeocodeCache struct {
	DB  *sql.DB
	TTL time.Duration
}

func NewPostgresGeocodeCache(db *sql.DB, ttl time.Duration) *PostgresGeocodeCache {
	return &PostgresGeocodeCache{DB: db, TTL: ttl}
}

// EnsureSchema creates the cache table if it does not exist.
func (s *PostgresGeocodeCache) EnsureSchema(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address    TEXT PRIMARY KEY,
		lon        DOUBLE PRECISION NOT NULL,
		lat        DOUBLE PRECISION NOT NULL,
		label      TEXT NOT NULL DEFAULT '',
		expires_at TIMESTAMPTZ NOT NULL
	);
	`
	if _, err := s.DB.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("geocode cache: create table: %w", err)
	}
	return nil
}

// Get fetches a cached location, treating expired rows as misses.
func (s *PostgresGeocodeCache) Get(ctx context.Context, address string) (ports.CachedLocation, bool, error) {
	if s.DB == nil {
		return ports.CachedLocation{}, false, errors.New("geocode cache: db is nil")
	}

	q := `
	SELECT lon, lat, label
	FROM geocode_cache
	WHERE address = $1 AND expires_at > now();
	`

	var loc ports.CachedLocation
	err := s.DB.QueryRowContext(ctx, q, address).
		Scan(&loc.Coordinate.Lon, &loc.Coordinate.Lat, &loc.Label)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.CachedLocation{}, false, nil
	}
	if err != nil {
		return ports.CachedLocation{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return loc, true, nil
}

// Put upserts an address -> location mapping with a fresh TTL.
func (s *PostgresGeocodeCache) Put(ctx context.Context, address string, loc ports.CachedLocation) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}
	if address == "" {
		return errors.New("insert geocode cache: empty address key")
	}

	q := `
	INSERT INTO geocode_cache (address, lon, lat, label, expires_at)
	VALUES ($1, $2, $3, $4, now() + $5::interval)
	ON CONFLICT (address) DO UPDATE
	SET lon = EXCLUDED.lon,
		lat = EXCLUDED.lat,
		label = EXCLUDED.label,
		expires_at = EXCLUDED.expires_at;
	`

	interval := fmt.Sprintf("%d seconds", int(s.TTL.Seconds()))
	if _, err := s.DB.ExecContext(ctx, q, address, loc.Coordinate.Lon, loc.Coordinate.Lat, loc.Label, interval); err != nil {
		return fmt.Errorf("insert geocode cache coord=%q: %w", address, err)
	}

	return nil
}
