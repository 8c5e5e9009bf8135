package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"meetpoint-service/internal/adapters/venuestore"
	"meetpoint-service/internal/domain"
	"meetpoint-service/internal/platform/logger"
)

var log = logger.New("seedtool")

// seedtool loads venue fixtures into the store and ensures the 2dsphere
// index exists, so a fresh environment can serve searches immediately.
func main() {
	file := flag.String("file", "data/venues.json", "JSON file of venue documents")
	drop := flag.Bool("drop", false, "drop the venue collection before seeding")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found (using environment variables)")
	}

	mongoURI := os.Getenv("MONGO_URI")
	if strings.TrimSpace(mongoURI) == "" {
		log.Fatal().Msg("MONGO_URI is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	store, closeStore, err := venuestore.Connect(ctx, mongoURI,
		getEnv("MONGO_DB", "meetpoint"),
		getEnv("MONGO_COLLECTION", "venues"),
	)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	defer closeStore(context.Background())

	if *drop {
		if err := store.Drop(ctx); err != nil {
			log.Fatal().Err(err).Send()
		}
		log.Info().Msg("Dropped venue collection")
	}

	venues, err := readVenues(*file)
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	inserted, err := store.InsertVenues(ctx, venues)
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Send()
	}

	log.Info().Int("inserted", inserted).Str("file", *file).Msg("Seed complete")
}

func readVenues(path string) ([]domain.Venue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var venues []domain.Venue
	if err := json.NewDecoder(f).Decode(&venues); err != nil {
		return nil, err
	}
	return venues, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
