package spotRepo

import (
	"fmt"
	"time"

	"musa/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new spot document.
func (r *MongoSpotRepo) Create(spot *models.Spot) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	spot.CreatedAt = now
	spot.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, spot); err != nil {
		return fmt.Errorf("failed to create spot: %w", err)
	}
	return nil
}

// GetByID retrieves a spot by its unique ID.
func (r *MongoSpotRepo) GetByID(id string) (*models.Spot, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var spot models.Spot
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&spot); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch spot with id %s: %w", id, err)
	}
	return &spot, nil
}

// Update sets the given fields on the spot and bumps updatedAt.
func (r *MongoSpotRepo) Update(id string, set bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if set == nil {
		set = bson.M{}
	}
	set["updatedAt"] = time.Now()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update spot with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("spot with id %s not found", id)
	}
	return nil
}

// Delete removes a spot document by its ID.
func (r *MongoSpotRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete spot with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("spot with id %s not found", id)
	}
	return nil
}

// AdjustChildrenCount applies an atomic $inc on the parent counter. A
// decrement only matches parents whose counter is still positive.
func (r *MongoSpotRepo) AdjustChildrenCount(parentID string, delta int) error {
	if parentID == "" || delta == 0 {
		return nil
	}
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": parentID}
	if delta < 0 {
		filter["childrenCount"] = bson.M{"$gte": -delta}
	}
	update := bson.M{"$inc": bson.M{"childrenCount": delta}}

	if _, err := r.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to adjust children count of %s: %w", parentID, err)
	}
	return nil
}

// PushImage appends an uploaded image URL to the spot.
func (r *MongoSpotRepo) PushImage(id, url string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"images": url},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to add image to spot %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("spot with id %s not found", id)
	}
	return nil
}
