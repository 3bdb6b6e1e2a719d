package ai

import (
	"context"
	"errors"

	"musa/models"
)

// ErrGenerationFailed wraps model or transport failures of the AI source.
var ErrGenerationFailed = errors.New("ai spot generation failed")

// MaxGeneratedSpots caps how many AI spots a single call may return.
const MaxGeneratedSpots = 5

// TextGenerator is a generative text model.
type TextGenerator interface {
	Generate(ctx context.Context, systemRole, prompt string, temperature float32) (string, error)
}

// SpotGenerator produces validated spots from a free text query.
type SpotGenerator interface {
	// GenerateSpots never fails hard: on error it returns an empty list
	// together with an error wrapping ErrGenerationFailed for logging.
	GenerateSpots(ctx context.Context, query string, opts GenerateOptions) ([]models.Spot, error)
}

// GeoPoint is a WGS84 reference point.
type GeoPoint struct {
	Lat float64
	Lng float64
}

// GenerateOptions constrains a generation.
type GenerateOptions struct {
	City       string
	Mood       string
	MusicGenre string
	// Near and RadiusKm enable the proximity constraint when both are set.
	Near     *GeoPoint
	RadiusKm float64
}

func (o GenerateOptions) hasRadius() bool {
	return o.Near != nil && o.RadiusKm > 0
}
