package spot

import (
	"errors"
	"net/http"

	"musa/models"

	"github.com/google/uuid"
)

var errUGCUnavailable = errors.New("ugc repository not configured")

// CreateUGC attaches a review or comment to a visible spot.
func (s *DefaultSpotService) CreateUGC(req models.UGCCreateRequest, requester *models.Requester) (*models.UGContent, error) {
	if requester == nil {
		return nil, ErrUnauthorized
	}
	if s.UGC == nil {
		return nil, errUGCUnavailable
	}
	if req.Kind == models.UGCKindReview && (req.Rating < 1 || req.Rating > 5) {
		return nil, &ServiceError{Code: "validation", Status: http.StatusBadRequest, Message: "A review needs a rating between 1 and 5"}
	}

	spot, err := s.Repo.GetByID(req.Spot)
	if err != nil {
		return nil, err
	}
	if spot == nil || (!spot.IsApproved && !requester.IsAdmin() && !requester.Owns(spot.Creator)) {
		return nil, ErrSpotNotFound
	}

	content := &models.UGContent{
		ID:     uuid.NewString(),
		Spot:   req.Spot,
		User:   requester.ID,
		Kind:   req.Kind,
		Text:   req.Text,
		Rating: req.Rating,
	}
	if content.Kind == models.UGCKindComment {
		content.Rating = 0
	}
	if err := s.UGC.Create(content); err != nil {
		return nil, err
	}
	return content, nil
}

// ListUserUGC returns everything the requester has posted.
func (s *DefaultSpotService) ListUserUGC(requester *models.Requester) ([]models.UGContent, error) {
	if requester == nil {
		return nil, ErrUnauthorized
	}
	if s.UGC == nil {
		return nil, errUGCUnavailable
	}
	return s.UGC.GetByUser(requester.ID)
}
