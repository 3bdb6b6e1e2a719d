package ugcRepo

import "musa/models"

// UGCRepository defines methods for reviews and comments.
type UGCRepository interface {
	Create(content *models.UGContent) error
	GetBySpot(spotID string) ([]models.UGContent, error)
	GetByUser(userID string) ([]models.UGContent, error)
	// DeleteBySpot removes every item attached to the spot.
	DeleteBySpot(spotID string) (int64, error)
}
