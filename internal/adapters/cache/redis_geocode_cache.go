package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"meetpoint-service/internal/ports"
)

const redisKeyPrefix = "geocode:"

// RedisGeocodeCache stores geocode results in Redis with a server-side TTL.
// It lets several engine instances share one cache; expiry is handled by
// Redis, so Get never sees a stale entry.
type RedisGeocodeCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{client: client, ttl: ttl}
}

type redisEntry struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label"`
}

func (c *RedisGeocodeCache) Get(ctx context.Context, address string) (ports.CachedLocation, bool, error) {
	raw, err := c.client.Get(ctx, redisKeyPrefix+address).Result()
	if errors.Is(err, redis.Nil) {
		return ports.CachedLocation{}, false, nil
	}
	if err != nil {
		return ports.CachedLocation{}, false, fmt.Errorf("get geocode cache %q: %w", address, err)
	}

	var entry redisEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return ports.CachedLocation{}, false, fmt.Errorf("get geocode cache %q: decode: %w", address, err)
	}

	loc := ports.CachedLocation{Label: entry.Label}
	loc.Coordinate.Lat = entry.Lat
	loc.Coordinate.Lon = entry.Lon
	return loc, true, nil
}

func (c *RedisGeocodeCache) Put(ctx context.Context, address string, loc ports.CachedLocation) error {
	raw, err := json.Marshal(redisEntry{
		Lat:   loc.Coordinate.Lat,
		Lon:   loc.Coordinate.Lon,
		Label: loc.Label,
	})
	if err != nil {
		return fmt.Errorf("put geocode cache %q: encode: %w", address, err)
	}

	if err := c.client.Set(ctx, redisKeyPrefix+address, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("put geocode cache %q: %w", address, err)
	}
	return nil
}
