package ugcRepo

import (
	"context"
	"fmt"
	"time"

	"musa/database"
	"musa/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUGCRepo implements UGCRepository using MongoDB.
type MongoUGCRepo struct {
	coll *mongo.Collection
}

func NewMongoUGCRepo(dbName string) UGCRepository {
	coll := database.Database(dbName).Collection("ugcontents")
	repo := &MongoUGCRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create ugc indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoUGCRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "spot", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoUGCRepo) Create(content *models.UGContent) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	content.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, content); err != nil {
		return fmt.Errorf("failed to create ugc: %w", err)
	}
	return nil
}

func (r *MongoUGCRepo) GetBySpot(spotID string) ([]models.UGContent, error) {
	return r.find(bson.M{"spot": spotID})
}

func (r *MongoUGCRepo) GetByUser(userID string) ([]models.UGContent, error) {
	return r.find(bson.M{"user": userID})
}

func (r *MongoUGCRepo) find(filter bson.M) ([]models.UGContent, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query ugc: %w", err)
	}
	defer cursor.Close(ctx)

	items := []models.UGContent{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode ugc: %w", err)
	}
	return items, nil
}

func (r *MongoUGCRepo) DeleteBySpot(spotID string) (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteMany(ctx, bson.M{"spot": spotID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete ugc of spot %s: %w", spotID, err)
	}
	return result.DeletedCount, nil
}
