package spotRepo

import (
	"fmt"
	"time"

	"musa/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Find returns the spots matching filter inside the requested page.
func (r *MongoSpotRepo) Find(filter bson.M, page PageOptions) ([]models.Spot, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find()
	if page.Skip > 0 {
		opts.SetSkip(page.Skip)
	}
	if page.Limit > 0 {
		opts.SetLimit(page.Limit)
	}
	if len(page.Sort) > 0 {
		opts.SetSort(page.Sort)
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query spots: %w", err)
	}
	defer cursor.Close(ctx)

	spots := []models.Spot{}
	if err := cursor.All(ctx, &spots); err != nil {
		return nil, fmt.Errorf("failed to decode spots: %w", err)
	}
	return spots, nil
}

// Count returns how many spots match filter. Proximity operators are
// rewritten first since MongoDB rejects them in count queries.
func (r *MongoSpotRepo) Count(filter bson.M) (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, CountableFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count spots: %w", err)
	}
	return n, nil
}

// FindChildren returns a summary of up to limit children of the spot.
func (r *MongoSpotRepo) FindChildren(parentID string, limit int64) ([]models.SpotSummary, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().
		SetLimit(limit).
		SetProjection(bson.M{"id": 1, "name": 1, "type": 1, "category": 1, "images": 1})

	cursor, err := r.coll.Find(ctx, bson.M{"parentId": parentID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query children of %s: %w", parentID, err)
	}
	defer cursor.Close(ctx)

	children := []models.SpotSummary{}
	if err := cursor.All(ctx, &children); err != nil {
		return nil, fmt.Errorf("failed to decode children of %s: %w", parentID, err)
	}
	return children, nil
}

// sphereRadiusKm is the radius $nearSphere measures GeoJSON distances with.
// Count must use the same sphere or the total drifts from the paged results.
const sphereRadiusKm = 6378.1

// CountableFilter returns a copy of filter where a $nearSphere on location is
// replaced by the equivalent $geoWithin/$centerSphere.
func CountableFilter(filter bson.M) bson.M {
	out := make(bson.M, len(filter))
	for k, v := range filter {
		out[k] = v
	}

	loc, ok := filter["location"].(bson.M)
	if !ok {
		return out
	}
	near, ok := loc["$nearSphere"].(bson.M)
	if !ok {
		return out
	}
	geometry, ok := near["$geometry"].(bson.M)
	if !ok {
		return out
	}
	coords, ok := geometry["coordinates"].([]float64)
	if !ok || len(coords) != 2 {
		return out
	}
	maxMeters, ok := near["$maxDistance"].(float64)
	if !ok {
		return out
	}

	radians := maxMeters / 1000 / sphereRadiusKm
	out["location"] = bson.M{
		"$geoWithin": bson.M{
			"$centerSphere": bson.A{[]float64{coords[0], coords[1]}, radians},
		},
	}
	return out
}
