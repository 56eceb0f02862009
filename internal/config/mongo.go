package config

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var (
	Mongo       *mongo.Database
	mongoClient *mongo.Client
	mongoMu     sync.Mutex
)

// ConnectMongo opens the document store client and selects the database.
func ConnectMongo(uri, database string) (*mongo.Database, error) {
	mongoMu.Lock()
	defer mongoMu.Unlock()

	if Mongo != nil {
		return Mongo, nil
	}

	opts := options.Client().ApplyURI(uri).SetMaxPoolSize(25)
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)
	ensureBlogIndexes(ctx, db)

	mongoClient = client
	Mongo = db
	return Mongo, nil
}

func ensureBlogIndexes(ctx context.Context, db *mongo.Database) {
	_, _ = db.Collection("blogs").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "project_id", Value: 1}}},
	})
}

func CloseMongo() {
	mongoMu.Lock()
	defer mongoMu.Unlock()

	if mongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(ctx)
		mongoClient = nil
		Mongo = nil
	}
}
