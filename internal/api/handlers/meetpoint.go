package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"meetpoint-service/internal/api/dto"
	"meetpoint-service/internal/domain"
	"meetpoint-service/internal/services"
)

// MeetpointService is the slice of the meetpoint service the handler needs.
type MeetpointService interface {
	Search(ctx context.Context, req services.SearchRequest) (*services.SearchOutcome, error)
}

// Defaults applied when the request omits optional filters.
type Defaults struct {
	RadiusMeters int
	MaxResults   int
}

// MeetpointHandler exposes the meetpoint search over HTTP. Rendering is the
// consumer's problem; the handler only shapes the engine's outputs (ranked
// venues plus diagnostics) into JSON.
type MeetpointHandler struct {
	Service  MeetpointService
	Defaults Defaults
}

func (h *MeetpointHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req dto.MeetpointRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_INPUT", "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "INVALID_INPUT", "body must contain only one JSON object")
		return
	}

	if strings.TrimSpace(req.Address1) == "" || strings.TrimSpace(req.Address2) == "" {
		writeError(w, r, http.StatusBadRequest, "INVALID_INPUT", "address1 and address2 are required")
		return
	}

	filters := domain.SearchFilters{
		Category:     req.Category,
		RadiusMeters: req.RadiusMeters,
		MaxResults:   req.MaxResults,
	}
	if filters.RadiusMeters == 0 {
		filters.RadiusMeters = h.Defaults.RadiusMeters
	}
	if filters.MaxResults == 0 {
		filters.MaxResults = h.Defaults.MaxResults
	}

	outcome, err := h.Service.Search(r.Context(), services.SearchRequest{
		Address1: req.Address1,
		Address2: req.Address2,
		Filters:  filters,
	})
	if err != nil {
		h.writeSearchError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toMeetpointResponse(outcome))
}

// Every failure reason is explicit; an empty-but-successful result is a 200
// and never conflated with an error.
func (h *MeetpointHandler) writeSearchError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrOutOfRange):
		writeError(w, r, http.StatusBadRequest, "OUT_OF_RANGE", err.Error())
	case errors.Is(err, domain.ErrAddressNotFound):
		var ge *domain.GeocodeError
		msg := "address not found"
		if errors.As(err, &ge) {
			msg = "address not found: " + ge.Address
		}
		writeError(w, r, http.StatusNotFound, "ADDRESS_NOT_FOUND", msg)
	case errors.Is(err, domain.ErrGeocodeUnavailable):
		writeError(w, r, http.StatusBadGateway, "GEOCODER_UNAVAILABLE", "geocoding service unavailable, please retry")
	case errors.Is(err, domain.ErrStoreConnection):
		writeError(w, r, http.StatusBadGateway, "STORE_UNAVAILABLE", "venue store unavailable")
	case errors.Is(err, domain.ErrStoreIndexMissing):
		writeError(w, r, http.StatusInternalServerError, "STORE_MISCONFIGURED", "venue store geospatial index missing")
	default:
		log.Error().Err(err).Msg("meetpoint search failed")
		writeError(w, r, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
}

func toMeetpointResponse(outcome *services.SearchOutcome) dto.MeetpointResponse {
	venues := make([]dto.VenueResponse, 0, len(outcome.Venues))
	for _, v := range outcome.Venues {
		vr := dto.VenueResponse{
			Name:           v.Name,
			Address:        v.Address,
			Category:       v.Category,
			Rating:         v.Rating,
			Price:          v.Price,
			DistanceMeters: v.DistanceMeters,
			ExternalIDs:    v.ExternalIDs,
		}
		if c, ok := v.Location.Coordinate(); ok {
			vr.Coordinate = dto.CoordinateResponse{Lat: c.Lat, Lon: c.Lon}
		}
		venues = append(venues, vr)
	}

	return dto.MeetpointResponse{
		Origin1: dto.EndpointResponse{
			Label:      outcome.Origin1.Label,
			Coordinate: dto.CoordinateResponse{Lat: outcome.Origin1.Coordinate.Lat, Lon: outcome.Origin1.Coordinate.Lon},
			Source:     string(outcome.Origin1.Source),
		},
		Origin2: dto.EndpointResponse{
			Label:      outcome.Origin2.Label,
			Coordinate: dto.CoordinateResponse{Lat: outcome.Origin2.Coordinate.Lat, Lon: outcome.Origin2.Coordinate.Lon},
			Source:     string(outcome.Origin2.Source),
		},
		Midpoint: dto.CoordinateResponse{Lat: outcome.Midpoint.Lat, Lon: outcome.Midpoint.Lon},
		Venues:   venues,
		Count:    len(venues),
		Debug: dto.DebugResponse{
			GeocodeMillis:  outcome.Metrics.GeocodeMillis,
			GeocodeSources: outcome.Metrics.GeocodeSources,
			QueryTimeMs:    outcome.Metrics.StoreMillis,
			ResultCount:    outcome.Metrics.ResultCount,
			Query:          outcome.Metrics.Query,
			DistanceStats:  outcome.Metrics.DistanceStats,
		},
	}
}
