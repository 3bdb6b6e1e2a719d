package places

import (
	"context"
	"errors"
)

// ErrNoAPIKey is returned when no Google API key is configured.
var ErrNoAPIKey = errors.New("GOOGLE_API_KEY not set")

// Place is one autocomplete suggestion.
type Place struct {
	Name    string    `json:"name"`
	Address string    `json:"address"`
	Center  []float64 `json:"center"` // [longitude, latitude]
}

// Geocoder resolves free text into candidate places.
type Geocoder interface {
	Autocomplete(ctx context.Context, query string) ([]Place, error)
}
