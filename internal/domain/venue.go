package domain

// GeoJSON point as stored in the venue collection ([lon, lat]).
type GeoPoint struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}

// NewGeoPoint builds a GeoJSON Point from a coordinate.
func NewGeoPoint(c Coordinate) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: c.GeoJSON()}
}

// Coordinate returns the point as (lat, lon). The second return is false
// when the stored coordinate array is malformed.
func (p GeoPoint) Coordinate() (Coordinate, bool) {
	if len(p.Coordinates) < 2 {
		return Coordinate{}, false
	}
	return Coordinate{Lat: p.Coordinates[1], Lon: p.Coordinates[0]}, true
}

// Venue is a document owned by the venue store; the engine only reads it.
// Rating may arrive as either a string or a number depending on how the
// collection was populated.
type Venue struct {
	Name        string            `json:"name" bson:"name"`
	Address     string            `json:"address,omitempty" bson:"address,omitempty"`
	Category    string            `json:"category,omitempty" bson:"category,omitempty"`
	Rating      any               `json:"rating,omitempty" bson:"rating,omitempty"`
	Price       string            `json:"price,omitempty" bson:"price,omitempty"`
	Location    GeoPoint          `json:"loc" bson:"loc"`
	ExternalIDs map[string]string `json:"external_ids,omitempty" bson:"external_ids,omitempty"`
}

// RankedVenue pairs a venue with its distance from the query center.
type RankedVenue struct {
	Venue          `bson:",inline"`
	DistanceMeters float64 `json:"distance_meters" bson:"distance"`
}

// SearchResult is ordered ascending by distance. The order is produced by
// the store and never re-sorted by the engine; ties keep the store's
// natural order.
type SearchResult []RankedVenue
