package spot

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"musa/models"
	ai "musa/services/intelligence"
	"musa/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const nearbyQuery = "art and culture places nearby"

// SearchResult is the paginated envelope of GET /spots.
type SearchResult struct {
	Success     bool          `json:"success"`
	Count       int           `json:"count"`
	Total       int64         `json:"total"`
	Pages       int           `json:"pages"`
	CurrentPage int           `json:"currentPage"`
	Data        []models.Spot `json:"data"`
}

// ListResult is the envelope of the nearby and discover endpoints.
type ListResult struct {
	Success bool          `json:"success"`
	Count   int           `json:"count"`
	Data    []models.Spot `json:"data"`
}

// sourcePlan decides which sources a request reaches.
type sourcePlan struct {
	ai bool
	db bool
}

func planSources(source string) (sourcePlan, error) {
	switch strings.ToLower(strings.TrimSpace(source)) {
	case "", "all":
		return sourcePlan{ai: true, db: true}, nil
	case string(models.SourceOpenAI):
		return sourcePlan{ai: true}, nil
	case string(models.SourceDatabase):
		return sourcePlan{db: true}, nil
	}
	return sourcePlan{}, ErrInvalidSource
}

// collectRequest is one resolved fan-out over the sources.
type collectRequest struct {
	params     SearchParams
	plan       sourcePlan
	aiQuery    string
	filter     bson.M
	pagination Pagination
	countTotal bool
}

type collected struct {
	spots   []models.Spot
	aiCount int
	dbTotal int64
}

// collect runs the AI source and the database query concurrently, merges the
// results AI first and enforces the radius on every source.
func (s *DefaultSpotService) collect(ctx context.Context, req collectRequest) (*collected, error) {
	var aiSpots, dbSpots []models.Spot
	var dbTotal int64

	g, gctx := errgroup.WithContext(ctx)

	if req.plan.ai && req.aiQuery != "" && s.Suggester != nil {
		opts := generateOptions(req.params)
		g.Go(func() error {
			spots, err := s.Suggester.GenerateSpots(gctx, req.aiQuery, opts)
			if err != nil {
				s.logger().Warn("AI source failed, continuing without it",
					zap.String("query", req.aiQuery), zap.Error(err))
				utils.SourceFailures.WithLabelValues(string(models.SourceOpenAI)).Inc()
				spots = nil
			}
			aiSpots = spots
			return nil
		})
	}

	if req.plan.db {
		g.Go(func() error {
			spots, err := s.Repo.Find(req.filter, req.pagination.Options())
			if err != nil {
				utils.SourceFailures.WithLabelValues(string(models.SourceDatabase)).Inc()
				return fmt.Errorf("failed to query spots: %w", err)
			}
			dbSpots = spots
			if req.countTotal {
				total, err := s.Repo.Count(req.filter)
				if err != nil {
					utils.SourceFailures.WithLabelValues(string(models.SourceDatabase)).Inc()
					return fmt.Errorf("failed to count spots: %w", err)
				}
				dbTotal = total
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if lat, lng, km, ok := req.params.radius(); ok {
		aiSpots = FilterWithinRadius(aiSpots, lat, lng, km)
		dbSpots = FilterWithinRadius(dbSpots, lat, lng, km)
	}

	merged := MergeSources(
		SourceBatch{Source: models.SourceOpenAI, Spots: aiSpots},
		SourceBatch{Source: models.SourceDatabase, Spots: dbSpots},
	)
	recordReturned(merged)

	return &collected{spots: merged, aiCount: len(aiSpots), dbTotal: dbTotal}, nil
}

// Search serves GET /spots.
func (s *DefaultSpotService) Search(ctx context.Context, p SearchParams, requester *models.Requester) (*SearchResult, error) {
	plan, err := planSources(p.Source)
	if err != nil {
		return nil, err
	}

	aiQuery := strings.TrimSpace(p.Search)
	if aiQuery == "" {
		aiQuery = ai.QueryFromFilters(p.Mood, p.MusicGenre)
	}

	pagination := BuildPaginationOptions(p)
	res, err := s.collect(ctx, collectRequest{
		params:     p,
		plan:       plan,
		aiQuery:    aiQuery,
		filter:     BuildSpotQuery(p, requester),
		pagination: pagination,
		countTotal: true,
	})
	if err != nil {
		return nil, err
	}

	total := int64(res.aiCount) + res.dbTotal
	return &SearchResult{
		Success:     true,
		Count:       len(res.spots),
		Total:       total,
		Pages:       int(math.Ceil(float64(total) / float64(pagination.Limit))),
		CurrentPage: pagination.Page,
		Data:        res.spots,
	}, nil
}

// Nearby serves GET /spots/nearby. lat and lng are mandatory.
func (s *DefaultSpotService) Nearby(ctx context.Context, p SearchParams, requester *models.Requester) (*ListResult, error) {
	if _, _, ok := p.point(); !ok {
		return nil, ErrLocationRequired
	}
	plan, err := planSources(p.Source)
	if err != nil {
		return nil, err
	}
	if km, err := strconv.ParseFloat(strings.TrimSpace(p.Distance), 64); err != nil || !(km > 0) || math.IsInf(km, 0) {
		p.Distance = strconv.FormatFloat(DefaultNearbyKm, 'f', -1, 64)
	}

	pagination := BuildPaginationOptions(SearchParams{Limit: p.Limit, SortBy: p.SortBy, SortOrder: p.SortOrder})
	if strings.TrimSpace(p.SortBy) == "" {
		// $nearSphere already returns nearest first.
		pagination.Sort = nil
	}
	res, err := s.collect(ctx, collectRequest{
		params:     p,
		plan:       plan,
		aiQuery:    nearbyQuery,
		filter:     BuildSpotQuery(p, requester),
		pagination: pagination,
	})
	if err != nil {
		return nil, err
	}
	return &ListResult{Success: true, Count: len(res.spots), Data: res.spots}, nil
}

// Discover serves GET /spots/discover. At least one of mood or musicGenre is
// required; database results are ordered by rating.
func (s *DefaultSpotService) Discover(ctx context.Context, p SearchParams, requester *models.Requester) (*ListResult, error) {
	if strings.TrimSpace(p.Mood) == "" && strings.TrimSpace(p.MusicGenre) == "" {
		return nil, ErrMoodOrGenreRequired
	}
	plan, err := planSources(p.Source)
	if err != nil {
		return nil, err
	}

	pagination := BuildPaginationOptions(SearchParams{Limit: p.Limit})
	pagination.Sort = bson.D{{Key: "rating", Value: -1}}

	res, err := s.collect(ctx, collectRequest{
		params:     p,
		plan:       plan,
		aiQuery:    ai.QueryFromFilters(p.Mood, p.MusicGenre),
		filter:     BuildSpotQuery(p, requester),
		pagination: pagination,
	})
	if err != nil {
		return nil, err
	}
	return &ListResult{Success: true, Count: len(res.spots), Data: res.spots}, nil
}

func generateOptions(p SearchParams) ai.GenerateOptions {
	opts := ai.GenerateOptions{
		City:       p.City,
		Mood:       p.Mood,
		MusicGenre: p.MusicGenre,
	}
	if lat, lng, km, ok := p.radius(); ok {
		opts.Near = &ai.GeoPoint{Lat: lat, Lng: lng}
		opts.RadiusKm = km
	}
	return opts
}

func recordReturned(spots []models.Spot) {
	counts := map[models.Source]int{}
	for _, s := range spots {
		counts[s.Source]++
	}
	for src, n := range counts {
		utils.SpotsReturned.WithLabelValues(string(src)).Add(float64(n))
	}
}
