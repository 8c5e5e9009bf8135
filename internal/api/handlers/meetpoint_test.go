package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"meetpoint-service/internal/api/dto"
	"meetpoint-service/internal/domain"
	"meetpoint-service/internal/ports"
	"meetpoint-service/internal/services"
)

type fakeMeetpoint struct {
	gotReq  services.SearchRequest
	outcome *services.SearchOutcome
	err     error
}

func (f *fakeMeetpoint) Search(ctx context.Context, req services.SearchRequest) (*services.SearchOutcome, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.outcome, nil
}

func postMeetpoint(t *testing.T, h *MeetpointHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/meetpoint", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Search(rec, req)
	return rec
}

func defaultOutcome() *services.SearchOutcome {
	return &services.SearchOutcome{
		Origin1: ports.GeocodeResult{
			Coordinate: domain.Coordinate{Lat: 40.7580, Lon: -73.9855},
			Label:      "Times Square",
			Source:     ports.SourceLive,
		},
		Origin2: ports.GeocodeResult{
			Coordinate: domain.Coordinate{Lat: 40.7359, Lon: -73.9911},
			Label:      "Union Square",
			Source:     ports.SourceCache,
		},
		Midpoint: domain.Coordinate{Lat: 40.7470, Lon: -73.9883},
		Venues: domain.SearchResult{
			{
				Venue: domain.Venue{
					Name:     "Trattoria Uno",
					Category: "Italian Restaurant",
					Location: domain.NewGeoPoint(domain.Coordinate{Lat: 40.7471, Lon: -73.9880}),
				},
				DistanceMeters: 220,
			},
		},
		Metrics: services.QueryMetrics{
			GeocodeSources: map[string]ports.Source{"addr1": ports.SourceLive, "addr2": ports.SourceCache},
			ResultCount:    1,
			DistanceStats:  &services.DistanceStats{Min: 220, Max: 220, Mean: 220, Median: 220},
		},
	}
}

func TestSearchHandlerSuccess(t *testing.T) {
	fake := &fakeMeetpoint{outcome: defaultOutcome()}
	h := &MeetpointHandler{Service: fake, Defaults: Defaults{RadiusMeters: 1500, MaxResults: 15}}

	rec := postMeetpoint(t, h, `{"address1":"Times Square, NY","address2":"Union Square, NY","category":"restaurant"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// Omitted filters fall back to configured defaults.
	if fake.gotReq.Filters.RadiusMeters != 1500 || fake.gotReq.Filters.MaxResults != 15 {
		t.Errorf("defaults not applied: %+v", fake.gotReq.Filters)
	}

	var res dto.MeetpointResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Count != 1 || len(res.Venues) != 1 {
		t.Fatalf("venues = %+v", res.Venues)
	}
	if res.Venues[0].Name != "Trattoria Uno" || res.Venues[0].DistanceMeters != 220 {
		t.Errorf("venue = %+v", res.Venues[0])
	}
	if res.Venues[0].Coordinate.Lat != 40.7471 {
		t.Errorf("venue coordinate = %+v", res.Venues[0].Coordinate)
	}
	if res.Origin1.Source != "live" || res.Origin2.Source != "cache" {
		t.Errorf("sources = %q, %q", res.Origin1.Source, res.Origin2.Source)
	}
	if res.Debug.DistanceStats == nil || res.Debug.DistanceStats.Median != 220 {
		t.Errorf("debug stats = %+v", res.Debug.DistanceStats)
	}
}

func TestSearchHandlerMissingAddress(t *testing.T) {
	fake := &fakeMeetpoint{outcome: defaultOutcome()}
	h := &MeetpointHandler{Service: fake, Defaults: Defaults{RadiusMeters: 1500, MaxResults: 15}}

	rec := postMeetpoint(t, h, `{"address1":"Times Square, NY"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestSearchHandlerRejectsUnknownFields(t *testing.T) {
	fake := &fakeMeetpoint{outcome: defaultOutcome()}
	h := &MeetpointHandler{Service: fake}

	rec := postMeetpoint(t, h, `{"address1":"a","address2":"b","bogus":true}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestSearchHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			"address not found",
			&domain.GeocodeError{Address: "nowhere", Err: domain.ErrAddressNotFound},
			http.StatusNotFound,
			"ADDRESS_NOT_FOUND",
		},
		{
			"geocoder unavailable",
			&domain.GeocodeError{Address: "a", Err: domain.ErrGeocodeUnavailable},
			http.StatusBadGateway,
			"GEOCODER_UNAVAILABLE",
		},
		{
			"out of range",
			&domain.ValidationError{Field: "radius_meters", Value: 99, Min: 500, Max: 3000},
			http.StatusBadRequest,
			"OUT_OF_RANGE",
		},
		{
			"store down",
			&domain.StoreError{Op: "search", Err: domain.ErrStoreConnection},
			http.StatusBadGateway,
			"STORE_UNAVAILABLE",
		},
		{
			"index missing",
			&domain.StoreError{Op: "search", Err: domain.ErrStoreIndexMissing},
			http.StatusInternalServerError,
			"STORE_MISCONFIGURED",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := &MeetpointHandler{
				Service:  &fakeMeetpoint{err: c.err},
				Defaults: Defaults{RadiusMeters: 1500, MaxResults: 15},
			}

			rec := postMeetpoint(t, h, `{"address1":"a","address2":"b"}`)

			if rec.Code != c.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, c.wantStatus)
			}

			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["code"] != c.wantCode {
				t.Errorf("code = %q, want %q", body["code"], c.wantCode)
			}
		})
	}
}
