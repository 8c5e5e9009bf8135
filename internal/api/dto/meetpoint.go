package dto

import (
	"meetpoint-service/internal/ports"
	"meetpoint-service/internal/services"
)

type MeetpointRequest struct {
	Address1     string `json:"address1"`
	Address2     string `json:"address2"`
	Category     string `json:"category"`
	RadiusMeters int    `json:"radius_meters"`
	MaxResults   int    `json:"max_results"`
}

type CoordinateResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type EndpointResponse struct {
	Label      string             `json:"label"`
	Coordinate CoordinateResponse `json:"coordinate"`
	Source     string             `json:"source"`
}

type VenueResponse struct {
	Name           string             `json:"name"`
	Address        string             `json:"address,omitempty"`
	Category       string             `json:"category,omitempty"`
	Rating         any                `json:"rating,omitempty"`
	Price          string             `json:"price,omitempty"`
	Coordinate     CoordinateResponse `json:"coordinate"`
	DistanceMeters float64            `json:"distance_meters"`
	ExternalIDs    map[string]string  `json:"external_ids,omitempty"`
}

type DebugResponse struct {
	GeocodeMillis  map[string]float64      `json:"geocode_ms"`
	GeocodeSources map[string]ports.Source `json:"geocode_sources"`
	QueryTimeMs    float64                 `json:"query_time_ms"`
	ResultCount    int                     `json:"result_count"`
	Query          ports.QuerySpec         `json:"query"`
	DistanceStats  *services.DistanceStats `json:"distance_stats,omitempty"`
}

type MeetpointResponse struct {
	Origin1  EndpointResponse   `json:"origin1"`
	Origin2  EndpointResponse   `json:"origin2"`
	Midpoint CoordinateResponse `json:"midpoint"`
	Venues   []VenueResponse    `json:"venues"`
	Count    int                `json:"count"`
	Debug    DebugResponse      `json:"debug"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}
