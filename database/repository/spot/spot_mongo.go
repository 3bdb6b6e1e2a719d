package spotRepo

import (
	"context"
	"fmt"
	"time"

	"musa/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoSpotRepo implements SpotRepository using MongoDB.
type MongoSpotRepo struct {
	coll *mongo.Collection
}

// NewMongoSpotRepo creates a new instance of SpotRepository using MongoDB.
func NewMongoSpotRepo(dbName string) SpotRepository {
	coll := database.Database(dbName).Collection("spots")
	repo := &MongoSpotRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create spot indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
