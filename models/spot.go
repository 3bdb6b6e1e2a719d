package models

import "time"

// SpotType classifies what a spot represents.
type SpotType string

const (
	SpotTypeArtwork    SpotType = "artwork"
	SpotTypeVenue      SpotType = "venue"
	SpotTypeEvent      SpotType = "event"
	SpotTypeCollection SpotType = "collection"
)

// Source is the provenance marker of a spot. It is never empty in responses.
type Source string

const (
	SourceDatabase   Source = "database"
	SourceOpenAI     Source = "openai"
	SourceEventbrite Source = "eventbrite"
	SourceSelection  Source = "selection"
)

const (
	ConfidenceHigh = "high"

	// PlaceholderImage is attached to spots that come without pictures.
	PlaceholderImage = "https://res.cloudinary.com/musa/image/upload/v1/musa/placeholder.jpg"
)

// Moods lists the affect tags a spot can carry.
var Moods = []string{"calm", "energetic", "melancholic", "joyful", "mysterious", "romantic"}

// MusicGenres lists the genre tags a spot can carry.
var MusicGenres = []string{"classical", "jazz", "rock", "pop", "electronic", "hip-hop", "ambient", "folk", "opera", "indie", "other"}

// GeoLocation is a GeoJSON point plus its human readable address.
type GeoLocation struct {
	Type        string    `bson:"type" json:"type"`               // Always "Point"
	Coordinates []float64 `bson:"coordinates" json:"coordinates"` // [longitude, latitude]
	Address     string    `bson:"address" json:"address"`
	City        string    `bson:"city" json:"city"`
	Country     string    `bson:"country" json:"country"`
}

// Lng returns the longitude, or 0 when coordinates are missing.
func (g GeoLocation) Lng() float64 {
	if len(g.Coordinates) != 2 {
		return 0
	}
	return g.Coordinates[0]
}

// Lat returns the latitude, or 0 when coordinates are missing.
func (g GeoLocation) Lat() float64 {
	if len(g.Coordinates) != 2 {
		return 0
	}
	return g.Coordinates[1]
}

// DateRange bounds an event. Both ends are calendar dates.
type DateRange struct {
	StartDate *time.Time `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate   *time.Time `bson:"endDate,omitempty" json:"endDate,omitempty"`
}

type ContactInfo struct {
	Website string `bson:"website,omitempty" json:"website,omitempty"`
	Email   string `bson:"email,omitempty" json:"email,omitempty"`
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// Spot is the unit of discoverable content, whatever its origin.
type Spot struct {
	ID            string       `bson:"id,omitempty" json:"id,omitempty"`
	Name          string       `bson:"name" json:"name"`
	Description   string       `bson:"description" json:"description"`
	Type          SpotType     `bson:"type" json:"type"`
	Location      GeoLocation  `bson:"location" json:"location"`
	Images        []string     `bson:"images" json:"images"`
	Category      string       `bson:"category" json:"category"`
	Mood          []string     `bson:"mood" json:"mood"`
	MusicGenres   []string     `bson:"musicGenres" json:"musicGenres"`
	Tags          []string     `bson:"tags" json:"tags"`
	DateRange     *DateRange   `bson:"dateRange,omitempty" json:"dateRange,omitempty"`
	ParentID      string       `bson:"parentId,omitempty" json:"parentId,omitempty"`
	ChildrenCount int          `bson:"childrenCount" json:"childrenCount"`
	ContactInfo   *ContactInfo `bson:"contactInfo,omitempty" json:"contactInfo,omitempty"`
	Creator       string       `bson:"creator,omitempty" json:"creator,omitempty"`
	IsApproved    bool         `bson:"isApproved" json:"isApproved"`
	Rating        float64      `bson:"rating" json:"rating"`
	Source        Source       `bson:"source" json:"source"`

	// Only meaningful for AI generated spots; never persisted.
	Confidence string `bson:"-" json:"confidence,omitempty"`
	Warning    string `bson:"-" json:"warning,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt,omitempty"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt,omitempty"`
}

// HasValidCoordinates reports whether the spot carries a usable point.
func (s Spot) HasValidCoordinates() bool {
	return len(s.Location.Coordinates) == 2
}

// SpotSummary is the short form used for parent and children references.
type SpotSummary struct {
	ID       string   `bson:"id" json:"id"`
	Name     string   `bson:"name" json:"name"`
	Type     SpotType `bson:"type" json:"type"`
	Category string   `bson:"category,omitempty" json:"category,omitempty"`
	Images   []string `bson:"images,omitempty" json:"images,omitempty"`
}

// SpotDetail is a spot with its hierarchy and attached UGC.
type SpotDetail struct {
	Spot
	Parent   *SpotSummary  `json:"parent"`
	Children []SpotSummary `json:"children"`
	Reviews  []UGContent   `json:"reviews"`
}

// SpotCreateRequest is the payload for POST /api/spots.
type SpotCreateRequest struct {
	Name        string       `json:"name" binding:"required"`
	Description string       `json:"description" binding:"required"`
	Type        SpotType     `json:"type" binding:"omitempty,oneof=artwork venue event collection"`
	Coordinates []float64    `json:"coordinates" binding:"required,len=2"`
	Address     string       `json:"address"`
	City        string       `json:"city"`
	Country     string       `json:"country"`
	Images      []string     `json:"images"`
	Category    string       `json:"category"`
	Mood        []string     `json:"mood" binding:"omitempty,dive,oneof=calm energetic melancholic joyful mysterious romantic"`
	MusicGenres []string     `json:"musicGenres"`
	Tags        []string     `json:"tags"`
	DateRange   *DateRange   `json:"dateRange"`
	ParentID    string       `json:"parentId"`
	ContactInfo *ContactInfo `json:"contactInfo"`
}

// SpotUpdateRequest is the payload for PUT /api/spots/:id. Nil fields are left untouched.
type SpotUpdateRequest struct {
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	Type        *SpotType    `json:"type" binding:"omitempty,oneof=artwork venue event collection"`
	Coordinates []float64    `json:"coordinates" binding:"omitempty,len=2"`
	Address     *string      `json:"address"`
	City        *string      `json:"city"`
	Country     *string      `json:"country"`
	Images      []string     `json:"images"`
	Category    *string      `json:"category"`
	Mood        []string     `json:"mood" binding:"omitempty,dive,oneof=calm energetic melancholic joyful mysterious romantic"`
	MusicGenres []string     `json:"musicGenres"`
	Tags        []string     `json:"tags"`
	DateRange   *DateRange   `json:"dateRange"`
	ParentID    *string      `json:"parentId"`
	ContactInfo *ContactInfo `json:"contactInfo"`
	Rating      *float64     `json:"rating" binding:"omitempty,min=0,max=5"`
}
