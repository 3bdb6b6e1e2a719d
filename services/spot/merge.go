package spot

import (
	"musa/models"
	"musa/utils"
)

// SourceBatch is a list of spots coming from one provenance.
type SourceBatch struct {
	Source models.Source
	Spots  []models.Spot
}

// MergeSources concatenates batches in the given order, tagging every spot
// that carries no source with its batch's source.
func MergeSources(batches ...SourceBatch) []models.Spot {
	n := 0
	for _, b := range batches {
		n += len(b.Spots)
	}

	merged := make([]models.Spot, 0, n)
	for _, b := range batches {
		for _, s := range b.Spots {
			if s.Source == "" {
				s.Source = b.Source
			}
			merged = append(merged, s)
		}
	}
	return merged
}

// FilterWithinRadius keeps the spots lying within km of (lat, lng). Spots
// without coordinates are dropped.
func FilterWithinRadius(spots []models.Spot, lat, lng, km float64) []models.Spot {
	out := make([]models.Spot, 0, len(spots))
	for _, s := range spots {
		if !s.HasValidCoordinates() {
			continue
		}
		if utils.WithinRadius(lat, lng, s.Location.Lat(), s.Location.Lng(), km) {
			out = append(out, s)
		}
	}
	return out
}
