package ai

import (
	"fmt"
	"strings"
)

const generationTemperature float32 = 0.2

func systemRole(city, knowledgeCutoff string) string {
	return fmt.Sprintf(
		"You are an art and culture expert who knows %s in detail. "+
			"Your knowledge cutoff is %s. You only mention places and events you are certain exist.",
		city, knowledgeCutoff)
}

func buildPrompt(query, city string, opts GenerateOptions) string {
	var b strings.Builder

	fmt.Fprintf(&b, "List 3 to %d real art and culture spots in %s matching the query: %q.\n", MaxGeneratedSpots, city, query)
	b.WriteString("Only include places, artworks and events that really exist. Never invent names.\n")
	b.WriteString("Every spot must have a real, verifiable street address and accurate coordinates.\n")
	b.WriteString("Events must include startDate and endDate in YYYY-MM-DD format. Skip events that have already ended.\n")

	if opts.hasRadius() {
		fmt.Fprintf(&b, "All spots must be within %.1f km of latitude %.6f, longitude %.6f.\n",
			opts.RadiusKm, opts.Near.Lat, opts.Near.Lng)
	}
	if opts.Mood != "" {
		fmt.Fprintf(&b, "The atmosphere of the spots should be %s.\n", opts.Mood)
	}
	if opts.MusicGenre != "" {
		fmt.Fprintf(&b, "The spots should be associated with the music genre %s.\n", opts.MusicGenre)
	}

	b.WriteString(`Answer with a JSON array only. Each element has these fields:
  "name": string,
  "description": string,
  "type": one of "artwork", "venue", "event", "collection",
  "coordinates": [longitude, latitude] as numbers,
  "address": string,
  "city": string,
  "country": string,
  "category": string,
  "mood": array of strings,
  "musicGenres": array of strings,
  "tags": array of strings,
  "startDate": "YYYY-MM-DD" or null,
  "endDate": "YYYY-MM-DD" or null`)

	return b.String()
}

// QueryFromFilters derives a generation query from mood and genre filters.
// It returns "" when neither is set.
func QueryFromFilters(mood, musicGenre string) string {
	switch {
	case mood != "" && musicGenre != "":
		return fmt.Sprintf("art places with a %s mood related to %s music", mood, musicGenre)
	case mood != "":
		return fmt.Sprintf("art places with a %s mood", mood)
	case musicGenre != "":
		return fmt.Sprintf("art places related to %s music", musicGenre)
	}
	return ""
}
