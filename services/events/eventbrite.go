package events

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"musa/config"
	"musa/models"

	"github.com/goccy/go-json"
)

const eventbriteTimeLayout = "2006-01-02T15:04:05"

// EventbriteClient implements Client against the Eventbrite v3 search API.
type EventbriteClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	Now        func() time.Time
}

func NewEventbriteClient(cfg *config.Config) *EventbriteClient {
	return &EventbriteClient{
		BaseURL:    cfg.EventbriteBaseURL,
		Token:      cfg.EventbriteToken,
		HTTPClient: &http.Client{Timeout: cfg.EventsTimeout()},
		Now:        time.Now,
	}
}

type ebText struct {
	Text string `json:"text"`
}

type ebDate struct {
	Local string `json:"local"`
}

type ebEvent struct {
	Name        ebText  `json:"name"`
	Description *ebText `json:"description"`
	Start       *ebDate `json:"start"`
	End         *ebDate `json:"end"`
	URL         string  `json:"url"`
	Venue       *struct {
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
		Address   struct {
			Address1   string `json:"address_1"`
			PostalCode string `json:"postal_code"`
			City       string `json:"city"`
			Region     string `json:"region"`
			Country    string `json:"country"`
		} `json:"address"`
	} `json:"venue"`
	Category *struct {
		Name string `json:"name"`
	} `json:"category"`
	Tags []struct {
		DisplayName string `json:"display_name"`
	} `json:"tags"`
}

type ebSearchResponse struct {
	Events []ebEvent `json:"events"`
}

// FetchEvents queries Eventbrite and maps every event that carries venue
// coordinates into a spot.
func (c *EventbriteClient) FetchEvents(ctx context.Context, params SearchParams) ([]models.Spot, error) {
	reqURL, err := c.buildURL(params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build eventbrite request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("eventbrite request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read eventbrite response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var decoded ebSearchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode eventbrite response: %w", err)
	}

	spots := make([]models.Spot, 0, len(decoded.Events))
	for _, ev := range decoded.Events {
		if spot, ok := mapEvent(ev); ok {
			spots = append(spots, spot)
		}
	}
	return spots, nil
}

func (c *EventbriteClient) buildURL(p SearchParams) (string, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid eventbrite base url: %w", err)
	}

	page := p.Page
	if page < 1 {
		page = 1
	}
	pageSize := p.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	category := p.Category
	if category == "" {
		category = DefaultCategory
	}
	radius := p.RadiusKm
	if radius <= 0 {
		radius = DefaultRadiusKm
	}
	within := strconv.FormatFloat(radius, 'f', -1, 64) + "km"

	q := u.Query()
	q.Set("q", p.Query)
	q.Set("expand", "venue,category")
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	q.Set("start_date.range_start", c.now().UTC().Format(eventbriteTimeLayout)+"Z")
	q.Set("categories", category)

	switch {
	case p.Lat != nil && p.Lon != nil && !math.IsNaN(*p.Lat) && !math.IsNaN(*p.Lon):
		q.Set("location.latitude", strconv.FormatFloat(*p.Lat, 'f', -1, 64))
		q.Set("location.longitude", strconv.FormatFloat(*p.Lon, 'f', -1, 64))
		q.Set("location.within", within)
	case p.City != "":
		address := p.City
		if p.Country != "" {
			address = p.City + ", " + p.Country
		}
		q.Set("location.address", address)
		q.Set("location.within", within)
	}

	u.RawQuery = q.Encode()
	return u.String(), nil
}

func mapEvent(ev ebEvent) (models.Spot, bool) {
	if ev.Venue == nil {
		return models.Spot{}, false
	}
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(ev.Venue.Latitude), 64)
	lng, errLng := strconv.ParseFloat(strings.TrimSpace(ev.Venue.Longitude), 64)
	if errLat != nil || errLng != nil || math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return models.Spot{}, false
	}

	addr := ev.Venue.Address
	parts := make([]string, 0, 5)
	for _, p := range []string{addr.Address1, addr.PostalCode, addr.City, addr.Region, addr.Country} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}

	category := defaultEventCategory
	if ev.Category != nil && ev.Category.Name != "" {
		category = ev.Category.Name
	}

	tags := make([]string, 0, len(ev.Tags))
	for _, t := range ev.Tags {
		if t.DisplayName != "" {
			tags = append(tags, t.DisplayName)
		}
	}

	description := ""
	if ev.Description != nil {
		description = ev.Description.Text
	}

	spot := models.Spot{
		Name:        ev.Name.Text,
		Description: description,
		Type:        models.SpotTypeEvent,
		Location: models.GeoLocation{
			Type:        "Point",
			Coordinates: []float64{lng, lat},
			Address:     strings.Join(parts, ", "),
			City:        addr.City,
			Country:     addr.Country,
		},
		Images:      []string{},
		Category:    category,
		Mood:        []string{},
		MusicGenres: []string{},
		Tags:        tags,
		DateRange:   mapDateRange(ev.Start, ev.End),
		IsApproved:  true,
		Source:      models.SourceEventbrite,
	}
	if ev.URL != "" {
		spot.ContactInfo = &models.ContactInfo{Website: ev.URL}
	}
	return spot, true
}

func mapDateRange(start, end *ebDate) *models.DateRange {
	dr := &models.DateRange{}
	if start != nil {
		if t, err := time.Parse(eventbriteTimeLayout, start.Local); err == nil {
			dr.StartDate = &t
		}
	}
	if end != nil {
		if t, err := time.Parse(eventbriteTimeLayout, end.Local); err == nil {
			dr.EndDate = &t
		}
	}
	if dr.StartDate == nil && dr.EndDate == nil {
		return nil
	}
	return dr
}

func (c *EventbriteClient) client() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *EventbriteClient) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
