package places

import (
	"testing"

	"musa/config"

	"github.com/stretchr/testify/assert"
	"googlemaps.github.io/maps"
)

func TestToPlace(t *testing.T) {
	r := maps.GeocodingResult{
		FormattedAddress: "Piazza del Colosseo, 1, 00184 Roma RM, Italy",
		AddressComponents: []maps.AddressComponent{
			{LongName: "Colosseo", Types: []string{"point_of_interest"}},
		},
	}
	r.Geometry.Location = maps.LatLng{Lat: 41.8902, Lng: 12.4922}

	p := toPlace(r)

	assert.Equal(t, "Colosseo", p.Name)
	assert.Equal(t, r.FormattedAddress, p.Address)
	assert.Equal(t, []float64{12.4922, 41.8902}, p.Center)
}

func TestToPlace_FallsBackToAddress(t *testing.T) {
	p := toPlace(maps.GeocodingResult{FormattedAddress: "Trastevere, Roma RM, Italy"})

	assert.Equal(t, "Trastevere", p.Name)
	assert.Equal(t, []float64{0, 0}, p.Center)
}

func TestNewGoogleGeocoder_RequiresKey(t *testing.T) {
	_, err := NewGoogleGeocoder(&config.Config{})
	assert.ErrorIs(t, err, ErrNoAPIKey)
}
