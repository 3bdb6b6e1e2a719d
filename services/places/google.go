package places

import (
	"context"
	"fmt"
	"strings"
	"time"

	"musa/config"

	"googlemaps.github.io/maps"
)

const (
	geocodeTimeout = 5 * time.Second
	maxSuggestions = 5
)

type GoogleGeocoder struct {
	client   *maps.Client
	language string
}

func NewGoogleGeocoder(cfg *config.Config) (*GoogleGeocoder, error) {
	if cfg.GoogleAPIKey == "" {
		return nil, ErrNoAPIKey
	}
	client, err := maps.NewClient(maps.WithAPIKey(cfg.GoogleAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleGeocoder{client: client, language: "it"}, nil
}

func (g *GoogleGeocoder) Autocomplete(ctx context.Context, query string) ([]Place, error) {
	ctx, cancel := context.WithTimeout(ctx, geocodeTimeout)
	defer cancel()

	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  query,
		Language: g.language,
	})
	if err != nil {
		return nil, fmt.Errorf("geocoding failed: %w", err)
	}

	places := make([]Place, 0, len(results))
	for _, r := range results {
		places = append(places, toPlace(r))
		if len(places) == maxSuggestions {
			break
		}
	}
	return places, nil
}

func toPlace(r maps.GeocodingResult) Place {
	name := ""
	if len(r.AddressComponents) > 0 {
		name = r.AddressComponents[0].LongName
	}
	if name == "" {
		name, _, _ = strings.Cut(r.FormattedAddress, ",")
	}
	return Place{
		Name:    strings.TrimSpace(name),
		Address: r.FormattedAddress,
		Center:  []float64{r.Geometry.Location.Lng, r.Geometry.Location.Lat},
	}
}
