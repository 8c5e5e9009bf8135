package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"meetpoint-service/internal/domain"
	"meetpoint-service/internal/platform/obs"
)

const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// NominatimProvider resolves free-text addresses against the OSM Nominatim
// API. It owns the HTTP timeout and retry/backoff policy; rate limiting is
// the caller's responsibility (a single shared limiter in front of all
// live lookups).
//
// The provider is safe for concurrent use.
type NominatimProvider struct {
	session   *http.Client
	baseURL   string
	userAgent string
}

func NewNominatimProvider(baseURL, userAgent string, timeout time.Duration) (*NominatimProvider, error) {
	if userAgent == "" {
		return nil, errors.New("nominatim user agent is empty")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	provider := &NominatimProvider{
		session:   &http.Client{Timeout: timeout},
		baseURL:   baseURL,
		userAgent: userAgent,
	}

	return provider, nil
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves an address to its best-match coordinate (/search, limit 1).
func (n *NominatimProvider) Geocode(ctx context.Context, address string) (_ domain.Coordinate, _ string, err error) {
	defer obs.Time(ctx, "nominatim.geocode")(&err)

	if address == "" {
		return domain.Coordinate{}, "", &domain.GeocodeError{Address: address, Err: domain.ErrAddressNotFound}
	}

	endpoint := n.baseURL + "/search"

	resp, err := n.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := n.newRequest(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		q := url.Values{}
		q.Set("q", address)
		q.Set("format", "jsonv2")
		q.Set("limit", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinate{}, "", &domain.GeocodeError{
			Address: address,
			Err:     fmt.Errorf("%w: %v", domain.ErrGeocodeUnavailable, err),
		}
	}
	defer resp.Body.Close()

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return domain.Coordinate{}, "", &domain.GeocodeError{
			Address: address,
			Err:     fmt.Errorf("%w: decode response: %v", domain.ErrGeocodeUnavailable, err),
		}
	}

	if len(places) == 0 {
		return domain.Coordinate{}, "", &domain.GeocodeError{Address: address, Err: domain.ErrAddressNotFound}
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return domain.Coordinate{}, "", fmt.Errorf("geocode %q: invalid latitude %q", address, places[0].Lat)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return domain.Coordinate{}, "", fmt.Errorf("geocode %q: invalid longitude %q", address, places[0].Lon)
	}

	coord := domain.Coordinate{Lat: lat, Lon: lon}
	if !coord.Valid() {
		return domain.Coordinate{}, "", fmt.Errorf("geocode %q: coordinate out of range %v", address, coord)
	}

	return coord, places[0].DisplayName, nil
}
