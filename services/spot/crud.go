package spot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"musa/models"
	"musa/services/storage"
	"musa/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// maxChildrenInDetail bounds the children embedded in a spot detail.
const maxChildrenInDetail = 5

// CreateSpot persists a user submitted spot. Only admin submissions are
// approved right away.
func (s *DefaultSpotService) CreateSpot(req models.SpotCreateRequest, requester *models.Requester) (*models.Spot, error) {
	if requester == nil {
		return nil, ErrUnauthorized
	}
	if len(req.Coordinates) != 2 || !utils.ValidLatLng(req.Coordinates[1], req.Coordinates[0]) {
		return nil, ErrInvalidCoordinates
	}
	if req.ParentID != "" {
		parent, err := s.Repo.GetByID(req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrParentNotFound
		}
	}

	spot := &models.Spot{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		Location: models.GeoLocation{
			Type:        "Point",
			Coordinates: []float64{req.Coordinates[0], req.Coordinates[1]},
			Address:     req.Address,
			City:        req.City,
			Country:     req.Country,
		},
		Images:      nonNil(req.Images),
		Category:    req.Category,
		Mood:        nonNil(req.Mood),
		MusicGenres: nonNil(req.MusicGenres),
		Tags:        nonNil(req.Tags),
		DateRange:   req.DateRange,
		ParentID:    req.ParentID,
		ContactInfo: req.ContactInfo,
		Creator:     requester.ID,
		IsApproved:  requester.IsAdmin(),
		Source:      models.SourceDatabase,
	}
	if spot.Type == "" {
		spot.Type = models.SpotTypeArtwork
	}
	if spot.Category == "" {
		spot.Category = "other"
	}

	if err := s.Repo.Create(spot); err != nil {
		return nil, err
	}
	if spot.ParentID != "" {
		if err := s.Repo.AdjustChildrenCount(spot.ParentID, 1); err != nil {
			s.logger().Error("Failed to increment parent children count",
				zap.String("parentId", spot.ParentID), zap.Error(err))
		}
	}
	return spot, nil
}

// GetSpot returns the spot with parent, children and attached UGC.
// Unapproved spots are only visible to admins and their creator.
func (s *DefaultSpotService) GetSpot(id string, requester *models.Requester) (*models.SpotDetail, error) {
	spot, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if spot == nil {
		return nil, ErrSpotNotFound
	}
	if !spot.IsApproved && !requester.IsAdmin() && !requester.Owns(spot.Creator) {
		return nil, ErrForbidden
	}
	if spot.Source == "" {
		spot.Source = models.SourceDatabase
	}

	detail := &models.SpotDetail{
		Spot:     *spot,
		Children: []models.SpotSummary{},
		Reviews:  []models.UGContent{},
	}

	if spot.ParentID != "" {
		parent, err := s.Repo.GetByID(spot.ParentID)
		if err != nil {
			return nil, err
		}
		if parent != nil {
			detail.Parent = &models.SpotSummary{ID: parent.ID, Name: parent.Name, Type: parent.Type}
		}
	}

	if spot.Type == models.SpotTypeVenue || spot.Type == models.SpotTypeCollection {
		children, err := s.Repo.FindChildren(spot.ID, maxChildrenInDetail)
		if err != nil {
			return nil, err
		}
		if children != nil {
			detail.Children = children
		}
	}

	if s.UGC != nil {
		reviews, err := s.UGC.GetBySpot(spot.ID)
		if err != nil {
			return nil, err
		}
		if reviews != nil {
			detail.Reviews = reviews
		}
	}
	return detail, nil
}

// UpdateSpot applies a partial update. Only the creator or an admin may edit.
func (s *DefaultSpotService) UpdateSpot(id string, req models.SpotUpdateRequest, requester *models.Requester) (*models.Spot, error) {
	spot, err := s.ownedSpot(id, requester)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Type != nil {
		set["type"] = *req.Type
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.Images != nil {
		set["images"] = req.Images
	}
	if req.Mood != nil {
		set["mood"] = req.Mood
	}
	if req.MusicGenres != nil {
		set["musicGenres"] = req.MusicGenres
	}
	if req.Tags != nil {
		set["tags"] = req.Tags
	}
	if req.DateRange != nil {
		set["dateRange"] = req.DateRange
	}
	if req.ContactInfo != nil {
		set["contactInfo"] = req.ContactInfo
	}
	if req.Rating != nil && requester.IsAdmin() {
		set["rating"] = *req.Rating
	}

	if req.Coordinates != nil {
		if len(req.Coordinates) != 2 || !utils.ValidLatLng(req.Coordinates[1], req.Coordinates[0]) {
			return nil, ErrInvalidCoordinates
		}
		set["location"] = models.GeoLocation{
			Type:        "Point",
			Coordinates: []float64{req.Coordinates[0], req.Coordinates[1]},
			Address:     valueOr(req.Address, spot.Location.Address),
			City:        valueOr(req.City, spot.Location.City),
			Country:     valueOr(req.Country, spot.Location.Country),
		}
	} else {
		if req.Address != nil {
			set["location.address"] = *req.Address
		}
		if req.City != nil {
			set["location.city"] = *req.City
		}
		if req.Country != nil {
			set["location.country"] = *req.Country
		}
	}

	oldParent, newParent := spot.ParentID, spot.ParentID
	if req.ParentID != nil && *req.ParentID != spot.ParentID {
		newParent = *req.ParentID
		if newParent == spot.ID {
			return nil, ErrSelfParent
		}
		if newParent != "" {
			parent, err := s.Repo.GetByID(newParent)
			if err != nil {
				return nil, err
			}
			if parent == nil {
				return nil, ErrParentNotFound
			}
		}
		set["parentId"] = newParent
	}

	if err := s.Repo.Update(id, set); err != nil {
		return nil, err
	}

	if oldParent != newParent {
		if oldParent != "" {
			if err := s.Repo.AdjustChildrenCount(oldParent, -1); err != nil {
				s.logger().Error("Failed to decrement old parent", zap.String("parentId", oldParent), zap.Error(err))
			}
		}
		if newParent != "" {
			if err := s.Repo.AdjustChildrenCount(newParent, 1); err != nil {
				s.logger().Error("Failed to increment new parent", zap.String("parentId", newParent), zap.Error(err))
			}
		}
	}

	return s.reload(id)
}

// DeleteSpot removes the spot, its UGC and its contribution to the parent counter.
func (s *DefaultSpotService) DeleteSpot(id string, requester *models.Requester) error {
	spot, err := s.ownedSpot(id, requester)
	if err != nil {
		return err
	}

	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	if spot.ParentID != "" {
		if err := s.Repo.AdjustChildrenCount(spot.ParentID, -1); err != nil {
			s.logger().Error("Failed to decrement parent children count",
				zap.String("parentId", spot.ParentID), zap.Error(err))
		}
	}
	if s.UGC != nil {
		if _, err := s.UGC.DeleteBySpot(id); err != nil {
			s.logger().Error("Failed to delete spot UGC", zap.String("spotId", id), zap.Error(err))
		}
	}
	return nil
}

// ApproveSpot makes a spot publicly visible. Admin only.
func (s *DefaultSpotService) ApproveSpot(id string, requester *models.Requester) (*models.Spot, error) {
	if requester == nil {
		return nil, ErrUnauthorized
	}
	if !requester.IsAdmin() {
		return nil, ErrForbidden
	}
	spot, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if spot == nil {
		return nil, ErrSpotNotFound
	}
	if err := s.Repo.Update(id, bson.M{"isApproved": true}); err != nil {
		return nil, err
	}
	return s.reload(id)
}

// AddImage uploads an image and attaches its URL to the spot.
func (s *DefaultSpotService) AddImage(ctx context.Context, id string, file io.Reader, filename string, size int64, requester *models.Requester) (*models.Spot, error) {
	if _, err := s.ownedSpot(id, requester); err != nil {
		return nil, err
	}
	if s.Uploader == nil {
		return nil, ErrUploaderMissing
	}
	if err := storage.ValidateImage(filename, size); err != nil {
		return nil, &ServiceError{Code: "validation", Status: http.StatusBadRequest, Message: err.Error()}
	}

	url, err := s.Uploader.UploadImage(ctx, file, filename, size, storage.SpotImagesFolder)
	if err != nil {
		s.logger().Error("Image upload failed", zap.String("spotId", id), zap.Error(err))
		return nil, &ServiceError{Code: "upstream", Status: http.StatusBadGateway, Message: "Image upload failed"}
	}
	if err := s.Repo.PushImage(id, url); err != nil {
		return nil, err
	}
	return s.reload(id)
}

// ownedSpot loads a spot the requester is allowed to modify.
func (s *DefaultSpotService) ownedSpot(id string, requester *models.Requester) (*models.Spot, error) {
	if requester == nil {
		return nil, ErrUnauthorized
	}
	spot, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if spot == nil {
		return nil, ErrSpotNotFound
	}
	if !requester.IsAdmin() && !requester.Owns(spot.Creator) {
		return nil, ErrForbidden
	}
	return spot, nil
}

func (s *DefaultSpotService) reload(id string) (*models.Spot, error) {
	spot, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if spot == nil {
		return nil, errors.Join(ErrSpotNotFound, fmt.Errorf("spot %s disappeared during update", id))
	}
	if spot.Source == "" {
		spot.Source = models.SourceDatabase
	}
	return spot, nil
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func valueOr(v *string, fallback string) string {
	if v != nil {
		return *v
	}
	return fallback
}
