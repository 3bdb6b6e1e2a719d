package spotRepo

import (
	"musa/models"

	"go.mongodb.org/mongo-driver/bson"
)

// PageOptions carries the paging window and ordering of a Find.
type PageOptions struct {
	Skip  int64
	Limit int64
	Sort  bson.D
}

// SpotRepository defines methods for spot data access.
type SpotRepository interface {
	// Create inserts a new spot.
	Create(spot *models.Spot) error
	// GetByID returns the spot or nil when it does not exist.
	GetByID(id string) (*models.Spot, error)
	// Update applies a $set document to the spot.
	Update(id string, set bson.M) error
	// Delete removes the spot.
	Delete(id string) error
	// Find returns spots matching the filter in the requested window.
	Find(filter bson.M, page PageOptions) ([]models.Spot, error)
	// Count returns the number of spots matching the filter.
	Count(filter bson.M) (int64, error)
	// FindChildren returns up to limit direct children of a spot.
	FindChildren(parentID string, limit int64) ([]models.SpotSummary, error)
	// AdjustChildrenCount atomically adds delta to the parent's counter.
	// Negative deltas never push the counter below zero.
	AdjustChildrenCount(parentID string, delta int) error
	// PushImage appends an image URL to the spot.
	PushImage(id, url string) error
}
