package domain

import "context"

// Location is a deduplicated pair of coordinates.
// swagger:model Location
type Location struct {
	ID  string  `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// LocationInput holds coordinates supplied by a client.
type LocationInput struct {
	Lat float64
	Lon float64
}

// LocationRepository resolves coordinates to an existing location or stores a new one.
type LocationRepository interface {
	ResolveOrCreate(ctx context.Context, in LocationInput) (*Location, error)
}
