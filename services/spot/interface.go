package spot

import (
	"context"
	"io"

	spotRepo "musa/database/repository/spot"
	ugcRepo "musa/database/repository/ugc"
	"musa/models"
	ai "musa/services/intelligence"
	"musa/services/storage"

	"go.uber.org/zap"
)

// SpotSuggester is the generative source of spots.
type SpotSuggester interface {
	GenerateSpots(ctx context.Context, query string, opts ai.GenerateOptions) ([]models.Spot, error)
}

type SpotService interface {
	// Discovery
	Search(ctx context.Context, params SearchParams, requester *models.Requester) (*SearchResult, error)
	Nearby(ctx context.Context, params SearchParams, requester *models.Requester) (*ListResult, error)
	Discover(ctx context.Context, params SearchParams, requester *models.Requester) (*ListResult, error)

	// CRUD and moderation
	CreateSpot(req models.SpotCreateRequest, requester *models.Requester) (*models.Spot, error)
	GetSpot(id string, requester *models.Requester) (*models.SpotDetail, error)
	UpdateSpot(id string, req models.SpotUpdateRequest, requester *models.Requester) (*models.Spot, error)
	DeleteSpot(id string, requester *models.Requester) error
	ApproveSpot(id string, requester *models.Requester) (*models.Spot, error)
	AddImage(ctx context.Context, id string, file io.Reader, filename string, size int64, requester *models.Requester) (*models.Spot, error)

	// UGC
	CreateUGC(req models.UGCCreateRequest, requester *models.Requester) (*models.UGContent, error)
	ListUserUGC(requester *models.Requester) ([]models.UGContent, error)
}

// DefaultSpotService is the production implementation.
type DefaultSpotService struct {
	Repo      spotRepo.SpotRepository
	UGC       ugcRepo.UGCRepository
	Suggester SpotSuggester
	Uploader  storage.ImageUploader
	Logger    *zap.Logger
}

func (s *DefaultSpotService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}
