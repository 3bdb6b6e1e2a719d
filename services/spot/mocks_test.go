package spot

import (
	"context"

	spotRepo "musa/database/repository/spot"
	"musa/models"
	ai "musa/services/intelligence"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

type MockSpotRepository struct {
	mock.Mock
}

func (m *MockSpotRepository) Create(spot *models.Spot) error {
	return m.Called(spot).Error(0)
}

func (m *MockSpotRepository) GetByID(id string) (*models.Spot, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Spot), args.Error(1)
}

func (m *MockSpotRepository) Update(id string, set bson.M) error {
	return m.Called(id, set).Error(0)
}

func (m *MockSpotRepository) Delete(id string) error {
	return m.Called(id).Error(0)
}

func (m *MockSpotRepository) Find(filter bson.M, page spotRepo.PageOptions) ([]models.Spot, error) {
	args := m.Called(filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Spot), args.Error(1)
}

func (m *MockSpotRepository) Count(filter bson.M) (int64, error) {
	args := m.Called(filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSpotRepository) FindChildren(parentID string, limit int64) ([]models.SpotSummary, error) {
	args := m.Called(parentID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SpotSummary), args.Error(1)
}

func (m *MockSpotRepository) AdjustChildrenCount(parentID string, delta int) error {
	return m.Called(parentID, delta).Error(0)
}

func (m *MockSpotRepository) PushImage(id, url string) error {
	return m.Called(id, url).Error(0)
}

type MockUGCRepository struct {
	mock.Mock
}

func (m *MockUGCRepository) Create(content *models.UGContent) error {
	return m.Called(content).Error(0)
}

func (m *MockUGCRepository) GetBySpot(spotID string) ([]models.UGContent, error) {
	args := m.Called(spotID)
	return args.Get(0).([]models.UGContent), args.Error(1)
}

func (m *MockUGCRepository) GetByUser(userID string) ([]models.UGContent, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.UGContent), args.Error(1)
}

func (m *MockUGCRepository) DeleteBySpot(spotID string) (int64, error) {
	args := m.Called(spotID)
	return args.Get(0).(int64), args.Error(1)
}

type MockSuggester struct {
	mock.Mock
}

func (m *MockSuggester) GenerateSpots(ctx context.Context, query string, opts ai.GenerateOptions) ([]models.Spot, error) {
	args := m.Called(ctx, query, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Spot), args.Error(1)
}

func point(lng, lat float64) models.GeoLocation {
	return models.GeoLocation{Type: "Point", Coordinates: []float64{lng, lat}}
}
