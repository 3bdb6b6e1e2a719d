package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"musa/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, systemRole, prompt string, temperature float32) (string, error) {
	args := m.Called(ctx, systemRole, prompt, temperature)
	return args.String(0), args.Error(1)
}

var fixedNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func newTestGenerator(model TextGenerator) *DefaultSpotGenerator {
	return &DefaultSpotGenerator{
		Model:           model,
		DefaultCity:     "Roma",
		KnowledgeCutoff: "2023",
		Timeout:         time.Second,
		Logger:          zap.NewNop(),
		Now:             func() time.Time { return fixedNow },
	}
}

func stubReply(reply string, err error) *MockTextGenerator {
	m := new(MockTextGenerator)
	m.On("Generate", mock.Anything, mock.Anything, mock.Anything, generationTemperature).Return(reply, err)
	return m
}

func TestGenerateSpotsGarbageYieldsEmptyList(t *testing.T) {
	for _, reply := range []string{
		"I am sorry, I cannot help with that.",
		"[{\"name\": \"Unclosed\"",
		`{"name": "not an array"}`,
		`[{"name": "Wrong shape", "coordinates": "12.49,41.89"}]`,
	} {
		g := newTestGenerator(stubReply(reply, nil))
		spots, err := g.GenerateSpots(context.Background(), "street art", GenerateOptions{})
		require.NoError(t, err, reply)
		assert.Empty(t, spots, reply)
		assert.NotNil(t, spots)
	}
}

func TestGenerateSpotsModelFailureIsSoft(t *testing.T) {
	g := newTestGenerator(stubReply("", errors.New("quota exceeded")))

	spots, err := g.GenerateSpots(context.Background(), "street art", GenerateOptions{})

	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Empty(t, spots)
}

func TestGenerateSpotsNormalizesDefaults(t *testing.T) {
	reply := "Here you go:\n```json\n[{\"name\": \"Bocca della Verità\", \"coordinates\": [12.4814, 41.8881], \"address\": \"Piazza della Bocca della Verità 18\"}]\n```"
	g := newTestGenerator(stubReply(reply, nil))

	spots, err := g.GenerateSpots(context.Background(), "sculptures", GenerateOptions{})
	require.NoError(t, err)
	require.Len(t, spots, 1)

	s := spots[0]
	assert.Equal(t, models.SpotTypeArtwork, s.Type)
	assert.Equal(t, "other", s.Category)
	assert.Equal(t, models.SourceOpenAI, s.Source)
	assert.Equal(t, models.ConfidenceHigh, s.Confidence)
	assert.Equal(t, []string{models.PlaceholderImage}, s.Images)
	assert.Equal(t, []string{}, s.Mood)
	assert.Equal(t, []string{}, s.MusicGenres)
	assert.Equal(t, []string{}, s.Tags)
	assert.Equal(t, []float64{12.4814, 41.8881}, s.Location.Coordinates)
	assert.Equal(t, "Point", s.Location.Type)
}

func TestGenerateSpotsEventRecency(t *testing.T) {
	reply := `[
	  {"name": "Past Show", "type": "event", "coordinates": [12.49, 41.89], "startDate": "2025-05-01", "endDate": "2025-06-14"},
	  {"name": "Ends Today", "type": "event", "coordinates": [12.49, 41.89], "endDate": "2025-06-15"},
	  {"name": "Open Ended", "type": "event", "coordinates": [12.49, 41.89], "startDate": "2025-06-01"},
	  {"name": "Bad Date", "type": "event", "coordinates": [12.49, 41.89], "endDate": "next summer"},
	  {"name": "Future Fest", "type": "event", "coordinates": [12.49, 41.89], "startDate": "2025-07-01", "endDate": "2025-07-10"}
	]`
	g := newTestGenerator(stubReply(reply, nil))

	spots, err := g.GenerateSpots(context.Background(), "festivals", GenerateOptions{})
	require.NoError(t, err)

	names := make([]string, 0, len(spots))
	for _, s := range spots {
		names = append(names, s.Name)
		if s.DateRange != nil && s.DateRange.EndDate != nil {
			assert.False(t, s.DateRange.EndDate.Before(truncateToDate(fixedNow)), s.Name)
		}
	}
	assert.Equal(t, []string{"Ends Today", "Open Ended", "Future Fest"}, names)
	assert.Equal(t, missingEndWarning, spots[1].Warning)
	assert.Empty(t, spots[0].Warning)
	require.NotNil(t, spots[2].DateRange)
	require.NotNil(t, spots[2].DateRange.StartDate)
	assert.Equal(t, "2025-07-01", spots[2].DateRange.StartDate.Format(dateLayout))
}

func TestGenerateSpotsEventRecencyUsesUTCDate(t *testing.T) {
	rome := time.FixedZone("CEST", 2*60*60)
	reply := `[{"name": "Last Night", "type": "event", "coordinates": [12.49, 41.89], "endDate": "2025-06-10"}]`
	g := newTestGenerator(stubReply(reply, nil))
	g.Now = func() time.Time { return time.Date(2025, 6, 11, 0, 30, 0, 0, rome) }

	spots, err := g.GenerateSpots(context.Background(), "festivals", GenerateOptions{})
	require.NoError(t, err)
	require.Len(t, spots, 1)
	assert.Equal(t, "Last Night", spots[0].Name)
}

func TestGenerateSpotsRadiusFilter(t *testing.T) {
	// Colosseo is inside 5 km of the reference point, Villa Adriana (Tivoli) is not.
	reply := `[
	  {"name": "Colosseo", "type": "venue", "coordinates": [12.4922, 41.8902]},
	  {"name": "Villa Adriana", "type": "venue", "coordinates": [12.7744, 41.9424]}
	]`
	g := newTestGenerator(stubReply(reply, nil))

	spots, err := g.GenerateSpots(context.Background(), "ruins", GenerateOptions{
		Near:     &GeoPoint{Lat: 41.8986, Lng: 12.4769},
		RadiusKm: 5,
	})
	require.NoError(t, err)
	require.Len(t, spots, 1)
	assert.Equal(t, "Colosseo", spots[0].Name)
}

func TestGenerateSpotsDropsInvalidCandidates(t *testing.T) {
	reply := `[
	  {"name": "No Coordinates"},
	  {"name": "One Coordinate", "coordinates": [12.49]},
	  {"name": "Out Of Range", "coordinates": [12.49, 123.0]},
	  {"name": "Null Longitude", "coordinates": [null, 41.9]},
	  {"name": "Null Latitude", "coordinates": [12.49, null]},
	  {"name": "", "coordinates": [12.49, 41.89]},
	  {"name": "Odd Type", "type": "restaurant", "coordinates": [12.49, 41.89]},
	  {"name": "Valid", "coordinates": [12.49, 41.89]}
	]`
	g := newTestGenerator(stubReply(reply, nil))

	spots, err := g.GenerateSpots(context.Background(), "anything", GenerateOptions{})
	require.NoError(t, err)
	require.Len(t, spots, 1)
	assert.Equal(t, "Valid", spots[0].Name)
}

func TestGenerateSpotsCapsResults(t *testing.T) {
	items := make([]string, 0, 8)
	for i := 0; i < 8; i++ {
		items = append(items, fmt.Sprintf(`{"name": "Spot %d", "coordinates": [12.49, 41.89]}`, i))
	}
	g := newTestGenerator(stubReply("["+strings.Join(items, ",")+"]", nil))

	spots, err := g.GenerateSpots(context.Background(), "anything", GenerateOptions{})
	require.NoError(t, err)
	assert.Len(t, spots, MaxGeneratedSpots)
}

func TestGenerateSpotsPromptCarriesConstraints(t *testing.T) {
	m := new(MockTextGenerator)
	m.On("Generate", mock.Anything,
		mock.MatchedBy(func(role string) bool {
			return strings.Contains(role, "Milano") && strings.Contains(role, "2023")
		}),
		mock.MatchedBy(func(prompt string) bool {
			return strings.Contains(prompt, "Milano") &&
				strings.Contains(prompt, "within 3.0 km") &&
				strings.Contains(prompt, "calm") &&
				strings.Contains(prompt, "jazz") &&
				strings.Contains(prompt, "YYYY-MM-DD")
		}),
		generationTemperature,
	).Return("[]", nil)
	g := newTestGenerator(m)

	_, err := g.GenerateSpots(context.Background(), "quiet places", GenerateOptions{
		City:       "Milano",
		Mood:       "calm",
		MusicGenre: "jazz",
		Near:       &GeoPoint{Lat: 45.46, Lng: 9.19},
		RadiusKm:   3,
	})
	require.NoError(t, err)
	m.AssertExpectations(t)
}

func TestGenerateSpotsUsesDefaultCity(t *testing.T) {
	m := new(MockTextGenerator)
	m.On("Generate", mock.Anything, mock.Anything,
		mock.MatchedBy(func(prompt string) bool { return strings.Contains(prompt, "in Roma") }),
		generationTemperature,
	).Return("[]", nil)

	_, err := newTestGenerator(m).GenerateSpots(context.Background(), "murals", GenerateOptions{})
	require.NoError(t, err)
	m.AssertExpectations(t)
}

func TestQueryFromFilters(t *testing.T) {
	assert.Equal(t, "", QueryFromFilters("", ""))
	assert.Contains(t, QueryFromFilters("calm", ""), "calm")
	assert.Contains(t, QueryFromFilters("", "jazz"), "jazz")
	q := QueryFromFilters("romantic", "opera")
	assert.Contains(t, q, "romantic")
	assert.Contains(t, q, "opera")
}
