package domain

// Bounds for search filters. Radius limits mirror the product's search
// slider; the result cap keeps a single query from dragging the whole
// collection across the wire.
const (
	MinRadiusMeters = 500
	MaxRadiusMeters = 3000
	MinResults      = 1
	MaxResults      = 25
)

// SearchFilters constrain a nearest-venue query. Category is matched
// case-insensitively against the venue's category field; an empty category
// means no filter.
type SearchFilters struct {
	Category     string
	RadiusMeters int
	MaxResults   int
}
