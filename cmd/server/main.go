package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"meetpoint-service/internal/adapters/cache"
	"meetpoint-service/internal/adapters/geocode"
	"meetpoint-service/internal/adapters/venuestore"
	"meetpoint-service/internal/api"
	"meetpoint-service/internal/api/handlers"
	"meetpoint-service/internal/platform/db"
	"meetpoint-service/internal/platform/logger"
	"meetpoint-service/internal/ports"
	"meetpoint-service/internal/services"
)

var log = logger.New("main")

// main is the application composition root. It wires concrete adapters
// (Mongo, Nominatim, the selected cache backend) behind ports and starts
// the HTTP server. The geocode cache and rate limiter live inside the one
// Geocoder instance shared by all request handlers.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found (using environment variables)")
	}

	mongoURI := os.Getenv("MONGO_URI")
	if strings.TrimSpace(mongoURI) == "" {
		log.Fatal().Msg("MONGO_URI is required")
	}

	port := getEnv("PORT", "8080")
	mongoDB := getEnv("MONGO_DB", "meetpoint")
	mongoColl := getEnv("MONGO_COLLECTION", "venues")

	ctx := context.Background()

	store, closeStore, err := venuestore.Connect(ctx, mongoURI, mongoDB, mongoColl)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	defer closeStore(context.Background())

	// The queries depend on the 2dsphere index; create it up front rather
	// than discovering its absence on the first search.
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Send()
	}
	log.Info().Str("db", mongoDB).Str("collection", mongoColl).Msg("Venue store ready")

	cacheTTL := getDurationEnv("CACHE_TTL", time.Hour)
	geocodeCache, err := buildGeocodeCache(ctx, cacheTTL)
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	provider, err := geocode.NewNominatimProvider(
		getEnv("GEOCODE_BASE_URL", geocode.DefaultBaseURL),
		getEnv("GEOCODE_USER_AGENT", "meetpoint-service"),
		getDurationEnv("GEOCODE_TIMEOUT", 10*time.Second),
	)
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	geocoder := services.NewGeocoder(provider, geocodeCache, getDurationEnv("RATE_LIMIT_INTERVAL", time.Second))
	meetpoint := services.NewMeetpoint(geocoder, store)

	router := api.NewRouter(meetpoint, store, handlers.Defaults{
		RadiusMeters: getIntEnv("DEFAULT_RADIUS_M", 1500),
		MaxResults:   getIntEnv("DEFAULT_MAX_RESULTS", 15),
	})

	// Write timeout leaves room for a cold-cache request: two rate-limited
	// geocode calls plus the store query.
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info().Str("addr", srv.Addr).Msg("Server listening")
	log.Fatal().Err(srv.ListenAndServe()).Send()
}

// buildGeocodeCache selects the cache backend: in-process by default,
// Redis or Postgres when configured.
func buildGeocodeCache(ctx context.Context, ttl time.Duration) (ports.GeocodeCache, error) {
	backend := getEnv("GEOCODE_CACHE", "memory")

	switch backend {
	case "memory":
		return cache.NewMemoryGeocodeCache(ttl), nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
			DB:   getIntEnv("REDIS_DB", 0),
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, err
		}
		log.Info().Msg("Using redis geocode cache")
		return cache.NewRedisGeocodeCache(client, ttl), nil

	case "postgres":
		sqlDB, err := db.Open(os.Getenv("DATABASE_URL"))
		if err != nil {
			return nil, err
		}
		pg := cache.NewPostgresGeocodeCache(sqlDB, ttl)
		if err := pg.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		log.Info().Msg("Using postgres geocode cache")
		return pg, nil
	}

	log.Warn().Str("backend", backend).Msg("Unknown GEOCODE_CACHE, falling back to memory")
	return cache.NewMemoryGeocodeCache(ttl), nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatal().Str("key", key).Str("value", v).Msg("invalid integer environment variable")
	}
	return n
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	// Accept bare seconds for compatibility with plain numeric config.
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatal().Str("key", key).Str("value", v).Msg("invalid duration environment variable")
	}
	return d
}
