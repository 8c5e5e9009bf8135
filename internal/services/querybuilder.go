package services

import (
	"strings"

	"meetpoint-service/internal/domain"
	"meetpoint-service/internal/ports"
)

// ValidateFilters rejects out-of-range filter values at the boundary,
// before any external call is made. Values are rejected, not clamped.
func ValidateFilters(f domain.SearchFilters) error {
	if f.RadiusMeters < domain.MinRadiusMeters || f.RadiusMeters > domain.MaxRadiusMeters {
		return &domain.ValidationError{
			Field: "radius_meters",
			Value: f.RadiusMeters,
			Min:   domain.MinRadiusMeters,
			Max:   domain.MaxRadiusMeters,
		}
	}
	if f.MaxResults < domain.MinResults || f.MaxResults > domain.MaxResults {
		return &domain.ValidationError{
			Field: "max_results",
			Value: f.MaxResults,
			Min:   domain.MinResults,
			Max:   domain.MaxResults,
		}
	}
	return nil
}

// BuildQuery translates a midpoint and validated filters into the
// store-agnostic nearest-neighbor spec. It assumes ValidateFilters has
// already run and does not re-clamp.
func BuildQuery(center domain.Coordinate, f domain.SearchFilters) ports.QuerySpec {
	return ports.QuerySpec{
		Center:       center,
		RadiusMeters: f.RadiusMeters,
		Category:     strings.TrimSpace(f.Category),
		MaxResults:   f.MaxResults,
	}
}
