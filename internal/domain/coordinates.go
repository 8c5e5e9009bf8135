package domain

import (
	"fmt"
	"math"
	"strings"
)

// Immutable geographic coordinate (latitude, longitude) in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the coordinate lies within the WGS84 ranges.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// GeoJSON returns the coordinate as [lon, lat] for store compatibility.
func (c Coordinate) GeoJSON() []float64 { return []float64{c.Lon, c.Lat} }

func (c Coordinate) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", c.Lat, c.Lon)
}

// Midpoint computes the spherical midpoint of two coordinates by averaging
// their unit Cartesian vectors. A planar average distorts near the poles and
// the antimeridian; this does not.
//
// Known degeneracy: for (near-)antipodal inputs the averaged vector
// approaches the origin and the result is numerically unstable. Both
// endpoints are assumed to fall within one metropolitan area, so this is an
// accepted limitation rather than a corrected case.
func Midpoint(a, b Coordinate) Coordinate {
	lat1, lon1 := radians(a.Lat), radians(a.Lon)
	lat2, lon2 := radians(b.Lat), radians(b.Lon)

	x1, y1, z1 := math.Cos(lat1)*math.Cos(lon1), math.Cos(lat1)*math.Sin(lon1), math.Sin(lat1)
	x2, y2, z2 := math.Cos(lat2)*math.Cos(lon2), math.Cos(lat2)*math.Sin(lon2), math.Sin(lat2)

	x, y, z := (x1+x2)/2, (y1+y2)/2, (z1+z2)/2

	lon := math.Atan2(y, x)
	hyp := math.Sqrt(x*x + y*y)
	lat := math.Atan2(z, hyp)

	return Coordinate{Lat: degrees(lat), Lon: degrees(lon)}
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }

// NormalizeAddress collapses whitespace so equal addresses share one cache key.
func NormalizeAddress(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
