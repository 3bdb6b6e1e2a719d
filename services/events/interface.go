package events

import (
	"context"

	"musa/models"
)

const (
	// DefaultCategory is Eventbrite's "Arts" category.
	DefaultCategory = "105"
	DefaultPageSize = 50
	DefaultRadiusKm = 15.0

	defaultEventCategory = "Evento"
)

// Client searches an external event catalogue.
type Client interface {
	// FetchEvents maps upstream events to spots. Upstream failures are
	// returned to the caller, radius filtering is left to the API.
	FetchEvents(ctx context.Context, params SearchParams) ([]models.Spot, error)
}

// SearchParams describe an event search. Lat/Lon take precedence over City.
type SearchParams struct {
	Query    string
	Lat      *float64
	Lon      *float64
	City     string
	Country  string
	RadiusKm float64
	Category string
	Page     int
	PageSize int
}
