package spot

import (
	"context"
	"errors"
	"testing"

	spotRepo "musa/database/repository/spot"
	"musa/models"
	ai "musa/services/intelligence"
	"musa/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func newSearchService() (*DefaultSpotService, *MockSpotRepository, *MockSuggester) {
	repo := new(MockSpotRepository)
	sugg := new(MockSuggester)
	return &DefaultSpotService{Repo: repo, Suggester: sugg, Logger: zap.NewNop()}, repo, sugg
}

func TestSearchDatabaseSourceNeverCallsAI(t *testing.T) {
	svc, repo, sugg := newSearchService()
	dbSpots := []models.Spot{{ID: "s1", Name: "Colosseo", Location: point(12.4922, 41.8902)}}
	repo.On("Find", mock.Anything, mock.Anything).Return(dbSpots, nil)
	repo.On("Count", mock.Anything).Return(int64(1), nil)

	res, err := svc.Search(context.Background(), SearchParams{Search: "Colosseo", Source: "database"}, nil)
	require.NoError(t, err)

	sugg.AssertNumberOfCalls(t, "GenerateSpots", 0)
	require.Len(t, res.Data, 1)
	assert.Equal(t, models.SourceDatabase, res.Data[0].Source)
	assert.Equal(t, int64(1), res.Total)
}

func TestSearchOpenAISourceSkipsDatabase(t *testing.T) {
	svc, repo, sugg := newSearchService()
	sugg.On("GenerateSpots", mock.Anything, "murals", mock.Anything).
		Return([]models.Spot{{Name: "Mural", Source: models.SourceOpenAI, Location: point(12.49, 41.89)}}, nil)

	res, err := svc.Search(context.Background(), SearchParams{Search: "murals", Source: "openai"}, nil)
	require.NoError(t, err)

	repo.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Count", mock.Anything)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, int64(1), res.Total)
	assert.Equal(t, 1, res.Pages)
}

func TestSearchAIFailureStillSucceeds(t *testing.T) {
	svc, repo, sugg := newSearchService()
	sugg.On("GenerateSpots", mock.Anything, mock.Anything, mock.Anything).
		Return([]models.Spot{}, errors.Join(ai.ErrGenerationFailed, errors.New("timeout")))
	repo.On("Find", mock.Anything, mock.Anything).Return([]models.Spot{
		{ID: "s1", Name: "Galleria Borghese", Location: point(12.4921, 41.9142)},
	}, nil)
	repo.On("Count", mock.Anything).Return(int64(1), nil)

	res, err := svc.Search(context.Background(), SearchParams{Search: "galleria"}, nil)
	require.NoError(t, err)

	assert.True(t, res.Success)
	require.Len(t, res.Data, 1)
	for _, s := range res.Data {
		assert.Equal(t, models.SourceDatabase, s.Source)
	}
}

func TestSearchDatabaseFailureFailsRequest(t *testing.T) {
	svc, repo, sugg := newSearchService()
	sugg.On("GenerateSpots", mock.Anything, mock.Anything, mock.Anything).Return([]models.Spot{}, nil)
	repo.On("Find", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := svc.Search(context.Background(), SearchParams{Search: "anything"}, nil)
	assert.Error(t, err)
}

func TestSearchEnvelopeMergesAIFirst(t *testing.T) {
	svc, repo, sugg := newSearchService()
	aiSpots := []models.Spot{
		{Name: "AI One", Location: point(12.49, 41.89)},
		{Name: "AI Two", Source: models.SourceOpenAI, Location: point(12.48, 41.90)},
	}
	dbSpots := []models.Spot{{ID: "d1", Name: "DB One", Location: point(12.47, 41.88)}}

	sugg.On("GenerateSpots", mock.Anything, "street art", mock.Anything).Return(aiSpots, nil)
	repo.On("Find", mock.Anything, spotRepo.PageOptions{Skip: 10, Limit: 10, Sort: bson.D{{Key: "createdAt", Value: -1}}}).
		Return(dbSpots, nil)
	repo.On("Count", mock.Anything).Return(int64(12), nil)

	res, err := svc.Search(context.Background(), SearchParams{Search: "street art", Page: "2"}, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Count)
	assert.Equal(t, int64(14), res.Total)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, 2, res.CurrentPage)
	names := []string{res.Data[0].Name, res.Data[1].Name, res.Data[2].Name}
	assert.Equal(t, []string{"AI One", "AI Two", "DB One"}, names)
	assert.Equal(t, models.SourceOpenAI, res.Data[0].Source)
	assert.Equal(t, models.SourceDatabase, res.Data[2].Source)
}

func TestSearchBuildsAIQueryFromFilters(t *testing.T) {
	svc, repo, sugg := newSearchService()
	sugg.On("GenerateSpots", mock.Anything, ai.QueryFromFilters("calm", "jazz"), mock.Anything).Return([]models.Spot{}, nil)
	repo.On("Find", mock.Anything, mock.Anything).Return([]models.Spot{}, nil)
	repo.On("Count", mock.Anything).Return(int64(0), nil)

	_, err := svc.Search(context.Background(), SearchParams{Mood: "calm", MusicGenre: "jazz"}, nil)
	require.NoError(t, err)
	sugg.AssertExpectations(t)
}

func TestSearchWithoutQuerySkipsAI(t *testing.T) {
	svc, repo, sugg := newSearchService()
	repo.On("Find", mock.Anything, mock.Anything).Return([]models.Spot{}, nil)
	repo.On("Count", mock.Anything).Return(int64(0), nil)

	res, err := svc.Search(context.Background(), SearchParams{}, nil)
	require.NoError(t, err)
	sugg.AssertNumberOfCalls(t, "GenerateSpots", 0)
	assert.Equal(t, 0, res.Pages)
	assert.NotNil(t, res.Data)
}

func TestSearchRejectsUnknownSource(t *testing.T) {
	svc, repo, sugg := newSearchService()

	_, err := svc.Search(context.Background(), SearchParams{Source: "twitter"}, nil)
	assert.ErrorIs(t, err, ErrInvalidSource)
	repo.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
	sugg.AssertNumberOfCalls(t, "GenerateSpots", 0)
}

func TestRadiusAppliesToEverySource(t *testing.T) {
	const lat, lng, km = 41.8986, 12.4769, 3.0
	svc, repo, sugg := newSearchService()

	sugg.On("GenerateSpots", mock.Anything, mock.Anything, mock.MatchedBy(func(o ai.GenerateOptions) bool {
		return o.Near != nil && o.Near.Lat == lat && o.Near.Lng == lng && o.RadiusKm == km
	})).Return([]models.Spot{
		{Name: "Colosseo", Source: models.SourceOpenAI, Location: point(12.4922, 41.8902)},
		{Name: "Villa Adriana", Source: models.SourceOpenAI, Location: point(12.7744, 41.9424)},
		{Name: "No Coordinates", Source: models.SourceOpenAI},
	}, nil)
	repo.On("Find", mock.MatchedBy(func(f bson.M) bool {
		_, ok := f["location"]
		return ok
	}), mock.Anything).Return([]models.Spot{
		{ID: "d1", Name: "Pantheon", Location: point(12.4769, 41.8986)},
	}, nil)
	repo.On("Count", mock.Anything).Return(int64(1), nil)

	res, err := svc.Search(context.Background(), SearchParams{
		Search: "monuments", Lat: "41.8986", Lng: "12.4769", Distance: "3",
	}, nil)
	require.NoError(t, err)

	require.Len(t, res.Data, 2)
	for _, s := range res.Data {
		d := utils.Haversine(lat, lng, s.Location.Lat(), s.Location.Lng())
		assert.LessOrEqual(t, d, km+1e-9, s.Name)
	}
	assert.Equal(t, int64(2), res.Total)
}

func TestNearbyRequiresCoordinates(t *testing.T) {
	svc, repo, sugg := newSearchService()

	for _, p := range []SearchParams{{}, {Lat: "41.9"}, {Lng: "12.5"}, {Lat: "x", Lng: "12.5"}} {
		_, err := svc.Nearby(context.Background(), p, nil)
		assert.ErrorIs(t, err, ErrLocationRequired)
	}
	repo.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
	sugg.AssertNumberOfCalls(t, "GenerateSpots", 0)
}

func TestNearbyDefaultsDistanceAndLimit(t *testing.T) {
	svc, repo, sugg := newSearchService()
	sugg.On("GenerateSpots", mock.Anything, nearbyQuery, mock.MatchedBy(func(o ai.GenerateOptions) bool {
		return o.RadiusKm == DefaultNearbyKm
	})).Return([]models.Spot{}, nil)
	repo.On("Find", mock.MatchedBy(func(f bson.M) bool {
		loc, ok := f["location"].(bson.M)
		if !ok {
			return false
		}
		return loc["$nearSphere"].(bson.M)["$maxDistance"] == 5000.0
	}), mock.MatchedBy(func(p spotRepo.PageOptions) bool {
		return p.Skip == 0 && p.Limit == 10 && len(p.Sort) == 0
	})).Return([]models.Spot{{ID: "d1", Name: "Ara Pacis", Location: point(12.4755, 41.9062)}}, nil)

	res, err := svc.Nearby(context.Background(), SearchParams{Lat: "41.9028", Lng: "12.4964"}, nil)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 1, res.Count)
	repo.AssertNotCalled(t, "Count", mock.Anything)
	sugg.AssertExpectations(t)
}

func TestNearbyKeepsExplicitSort(t *testing.T) {
	svc, repo, _ := newSearchService()
	repo.On("Find", mock.Anything, mock.MatchedBy(func(p spotRepo.PageOptions) bool {
		return len(p.Sort) == 1 && p.Sort[0].Key == "rating"
	})).Return([]models.Spot{}, nil)

	_, err := svc.Nearby(context.Background(), SearchParams{Lat: "41.9", Lng: "12.5", Source: "database", SortBy: "rating"}, nil)
	require.NoError(t, err)

	repo.AssertExpectations(t)
}

func TestDiscoverRequiresMoodOrGenre(t *testing.T) {
	svc, repo, sugg := newSearchService()

	_, err := svc.Discover(context.Background(), SearchParams{Lat: "41.9", Lng: "12.5"}, nil)
	assert.ErrorIs(t, err, ErrMoodOrGenreRequired)

	repo.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
	sugg.AssertNumberOfCalls(t, "GenerateSpots", 0)
}

func TestDiscoverSortsByRating(t *testing.T) {
	svc, repo, sugg := newSearchService()
	sugg.On("GenerateSpots", mock.Anything, ai.QueryFromFilters("romantic", ""), mock.Anything).Return([]models.Spot{}, nil)
	repo.On("Find", mock.MatchedBy(func(f bson.M) bool {
		return f["isApproved"] == true
	}), mock.MatchedBy(func(p spotRepo.PageOptions) bool {
		return len(p.Sort) == 1 && p.Sort[0].Key == "rating" && p.Sort[0].Value == -1
	})).Return([]models.Spot{{ID: "d1", Name: "Giardino degli Aranci", Location: point(12.4797, 41.8848)}}, nil)

	res, err := svc.Discover(context.Background(), SearchParams{Mood: "romantic"}, member)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, models.SourceDatabase, res.Data[0].Source)
}

func TestMergeSourcesKeepsOrderAndTags(t *testing.T) {
	merged := MergeSources(
		SourceBatch{Source: models.SourceOpenAI, Spots: []models.Spot{{Name: "a"}}},
		SourceBatch{Source: models.SourceDatabase, Spots: []models.Spot{{Name: "b"}, {Name: "c", Source: models.SourceSelection}}},
		SourceBatch{Source: models.SourceEventbrite},
	)

	require.Len(t, merged, 3)
	assert.Equal(t, models.SourceOpenAI, merged[0].Source)
	assert.Equal(t, models.SourceDatabase, merged[1].Source)
	assert.Equal(t, models.SourceSelection, merged[2].Source)
	for _, s := range merged {
		assert.NotEmpty(t, s.Source)
	}
}
