package services

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"meetpoint-service/internal/domain"
	"meetpoint-service/internal/ports"
)

// DistanceStats summarizes the distances of a non-empty result set.
type DistanceStats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// QueryMetrics is the per-request diagnostic report handed to the caller
// alongside a successful result. It is never persisted. Timings for the
// store query and for geocoding are recorded separately; DistanceStats is
// nil for an empty result rather than zeroed, so an absent statistic is
// never mistaken for a real one.
type QueryMetrics struct {
	GeocodeMillis  map[string]float64      `json:"geocode_ms"`
	GeocodeSources map[string]ports.Source `json:"geocode_sources"`
	StoreMillis    float64                 `json:"query_time_ms"`
	ResultCount    int                     `json:"result_count"`
	Query          ports.QuerySpec         `json:"query"`
	DistanceStats  *DistanceStats          `json:"distance_stats,omitempty"`
}

func distanceStats(result domain.SearchResult) (*DistanceStats, error) {
	if len(result) == 0 {
		return nil, nil
	}

	distances := make([]float64, 0, len(result))
	for _, v := range result {
		distances = append(distances, v.DistanceMeters)
	}

	min, err := stats.Min(distances)
	if err != nil {
		return nil, fmt.Errorf("distance stats: %w", err)
	}
	max, err := stats.Max(distances)
	if err != nil {
		return nil, fmt.Errorf("distance stats: %w", err)
	}
	mean, err := stats.Mean(distances)
	if err != nil {
		return nil, fmt.Errorf("distance stats: %w", err)
	}
	median, err := stats.Median(distances)
	if err != nil {
		return nil, fmt.Errorf("distance stats: %w", err)
	}

	return &DistanceStats{Min: min, Max: max, Mean: mean, Median: median}, nil
}
