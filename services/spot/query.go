package spot

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	spotRepo "musa/database/repository/spot"
	"musa/models"
	"musa/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultPage     = 1
	DefaultLimit    = 10
	MaxLimit        = 100
	DefaultSortBy   = "createdAt"
	DefaultNearbyKm = 5.0
)

var sortableFields = map[string]bool{
	"createdAt": true,
	"updatedAt": true,
	"name":      true,
	"rating":    true,
}

// SearchParams are the raw query parameters of the discovery endpoints.
// Numeric fields stay strings so that malformed values can be ignored
// instead of failing the request.
type SearchParams struct {
	Search     string `form:"search"`
	Type       string `form:"type"`
	Category   string `form:"category"`
	Mood       string `form:"mood"`
	MusicGenre string `form:"musicGenre"`
	ParentID   string `form:"parentId"`
	Lat        string `form:"lat"`
	Lng        string `form:"lng"`
	Distance   string `form:"distance"`
	Page       string `form:"page"`
	Limit      string `form:"limit"`
	SortBy     string `form:"sortBy"`
	SortOrder  string `form:"sortOrder"`
	Source     string `form:"source"`
	City       string `form:"city"`
}

// Pagination is the resolved paging window.
type Pagination struct {
	Page  int
	Limit int
	Skip  int64
	Sort  bson.D
}

func (p Pagination) Options() spotRepo.PageOptions {
	return spotRepo.PageOptions{Skip: p.Skip, Limit: int64(p.Limit), Sort: p.Sort}
}

// point returns lat and lng when both parse as valid coordinates.
func (p SearchParams) point() (lat, lng float64, ok bool) {
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(p.Lat), 64)
	lng, errLng := strconv.ParseFloat(strings.TrimSpace(p.Lng), 64)
	if errLat != nil || errLng != nil || !utils.ValidLatLng(lat, lng) {
		return 0, 0, false
	}
	return lat, lng, true
}

// radius returns the geo filter when lat, lng and a positive distance are valid.
func (p SearchParams) radius() (lat, lng, km float64, ok bool) {
	lat, lng, ok = p.point()
	if !ok {
		return 0, 0, 0, false
	}
	km, err := strconv.ParseFloat(strings.TrimSpace(p.Distance), 64)
	if err != nil || math.IsNaN(km) || math.IsInf(km, 0) || km <= 0 {
		return 0, 0, 0, false
	}
	return lat, lng, km, true
}

// BuildSpotQuery translates search parameters into a MongoDB filter. Every
// present parameter adds an AND-ed clause.
func BuildSpotQuery(p SearchParams, requester *models.Requester) bson.M {
	filter := bson.M{}

	if p.Type != "" {
		filter["type"] = p.Type
	}
	if p.Category != "" {
		filter["category"] = p.Category
	}
	if p.ParentID != "" {
		filter["parentId"] = p.ParentID
	}
	if p.Mood != "" {
		filter["mood"] = bson.M{"$in": []string{p.Mood}}
	}
	if p.MusicGenre != "" {
		filter["musicGenres"] = bson.M{"$in": []string{p.MusicGenre}}
	}

	if !requester.IsAdmin() {
		filter["isApproved"] = true
	}

	if term := strings.TrimSpace(p.Search); term != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": rx},
			bson.M{"description": rx},
			bson.M{"tags": bson.M{"$in": bson.A{rx}}},
		}
	}

	if lat, lng, km, ok := p.radius(); ok {
		filter["location"] = bson.M{
			"$nearSphere": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": []float64{lng, lat},
				},
				"$maxDistance": km * 1000,
			},
		}
	}

	return filter
}

// BuildPaginationOptions resolves paging. Out of range values are clamped:
// page below 1 becomes 1, limit below 1 becomes 10, limit above 100 becomes 100.
func BuildPaginationOptions(p SearchParams) Pagination {
	page := atoiDefault(p.Page, DefaultPage)
	if page < 1 {
		page = DefaultPage
	}
	limit := atoiDefault(p.Limit, DefaultLimit)
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	sortBy := p.SortBy
	if !sortableFields[sortBy] {
		sortBy = DefaultSortBy
	}
	order := -1
	if strings.EqualFold(p.SortOrder, "asc") {
		order = 1
	}

	return Pagination{
		Page:  page,
		Limit: limit,
		Skip:  int64(page-1) * int64(limit),
		Sort:  bson.D{{Key: sortBy, Value: order}},
	}
}

func atoiDefault(v string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}
