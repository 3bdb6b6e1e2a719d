package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"musa/config"
	"musa/models"
	"musa/utils"

	"go.uber.org/zap"
)

const (
	dateLayout        = "2006-01-02"
	missingEndWarning = "event end date not provided, verify before visiting"
)

// DefaultSpotGenerator implements SpotGenerator on top of a TextGenerator.
type DefaultSpotGenerator struct {
	Model           TextGenerator
	DefaultCity     string
	KnowledgeCutoff string
	Timeout         time.Duration
	Logger          *zap.Logger
	// Now is the clock used for event recency checks.
	Now func() time.Time
}

func NewDefaultSpotGenerator(model TextGenerator, cfg *config.Config, logger *zap.Logger) *DefaultSpotGenerator {
	return &DefaultSpotGenerator{
		Model:           model,
		DefaultCity:     cfg.AIDefaultCity,
		KnowledgeCutoff: cfg.AIKnowledgeCutoff,
		Timeout:         cfg.AITimeout(),
		Logger:          logger,
		Now:             time.Now,
	}
}

// GenerateSpots asks the model for spots matching query and returns the ones
// that survive validation, at most MaxGeneratedSpots.
func (g *DefaultSpotGenerator) GenerateSpots(ctx context.Context, query string, opts GenerateOptions) ([]models.Spot, error) {
	spots := []models.Spot{}
	if g.Model == nil {
		return spots, fmt.Errorf("%w: no model configured", ErrGenerationFailed)
	}

	city := opts.City
	if city == "" {
		city = g.DefaultCity
	}

	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	raw, err := g.Model.Generate(ctx, systemRole(city, g.KnowledgeCutoff), buildPrompt(query, city, opts), generationTemperature)
	if err != nil {
		return spots, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	candidates, err := decodeCandidates(raw)
	if err != nil {
		g.logger().Warn("Discarding unparseable AI output", zap.Error(err), zap.Int("length", len(raw)))
		utils.AICandidatesDropped.WithLabelValues("unparseable").Inc()
		return spots, nil
	}

	today := truncateToDate(g.now().UTC())
	for _, c := range candidates {
		spot, reason := g.accept(c, opts, today)
		if reason != "" {
			g.logger().Debug("Dropping AI candidate", zap.String("name", c.Name), zap.String("reason", reason))
			utils.AICandidatesDropped.WithLabelValues(reason).Inc()
			continue
		}
		spots = append(spots, spot)
		if len(spots) == MaxGeneratedSpots {
			break
		}
	}
	return spots, nil
}

// accept validates a candidate and normalizes it. A non-empty reason means
// the candidate was rejected.
func (g *DefaultSpotGenerator) accept(c candidate, opts GenerateOptions, today time.Time) (models.Spot, string) {
	if err := c.validate(); err != nil {
		return models.Spot{}, "invalid"
	}
	lng, lat, ok := c.point()
	if !ok {
		return models.Spot{}, "coordinates"
	}

	if opts.hasRadius() && !utils.WithinRadius(opts.Near.Lat, opts.Near.Lng, lat, lng, opts.RadiusKm) {
		return models.Spot{}, "radius"
	}

	spot := models.Spot{
		Name:        strings.TrimSpace(c.Name),
		Description: c.Description,
		Type:        models.SpotType(c.Type),
		Location: models.GeoLocation{
			Type:        "Point",
			Coordinates: []float64{lng, lat},
			Address:     c.Address,
			City:        c.City,
			Country:     c.Country,
		},
		Images:      c.Images,
		Category:    c.Category,
		Mood:        c.Mood,
		MusicGenres: c.MusicGenres,
		Tags:        c.Tags,
		IsApproved:  true,
		Source:      models.SourceOpenAI,
		Confidence:  models.ConfidenceHigh,
	}

	if spot.Type == models.SpotTypeEvent {
		dr := &models.DateRange{}
		if c.StartDate != nil && *c.StartDate != "" {
			if start, err := parseDate(*c.StartDate); err == nil {
				dr.StartDate = &start
			}
		}
		if c.EndDate == nil || *c.EndDate == "" {
			spot.Warning = missingEndWarning
		} else {
			end, err := parseDate(*c.EndDate)
			if err != nil {
				return models.Spot{}, "end_date"
			}
			if end.Before(today) {
				return models.Spot{}, "past_event"
			}
			dr.EndDate = &end
		}
		if dr.StartDate != nil || dr.EndDate != nil {
			spot.DateRange = dr
		}
	}

	normalize(&spot)
	return spot, ""
}

// normalize fills the defaults every AI spot must carry.
func normalize(s *models.Spot) {
	if s.Type == "" {
		s.Type = models.SpotTypeArtwork
	}
	if s.Category == "" {
		s.Category = "other"
	}
	if s.Mood == nil {
		s.Mood = []string{}
	}
	if s.MusicGenres == nil {
		s.MusicGenres = []string{}
	}
	if s.Tags == nil {
		s.Tags = []string{}
	}
	if len(s.Images) == 0 {
		s.Images = []string{models.PlaceholderImage}
	}
}

func parseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(dateLayout, v); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	return truncateToDate(t), nil
}

// truncateToDate drops the clock part, keeping the calendar date in UTC.
func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (g *DefaultSpotGenerator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

func (g *DefaultSpotGenerator) logger() *zap.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return zap.NewNop()
}

