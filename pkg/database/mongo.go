package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"sathee-backend/pkg/config"
)

// NewMongoConnection connects to MongoDB and returns a handle to the
// configured database. The connection is verified with a ping before
// the handle is returned.
func NewMongoConnection(ctx context.Context, cfg *config.Config) (*mongo.Database, error) {
	client, err := mongo.Connect(
		options.Client().
			ApplyURI(cfg.MongoURI).
			SetConnectTimeout(10 * time.Second).
			SetRetryWrites(true).
			SetRetryReads(true),
	)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return client.Database(cfg.MongoDatabase), nil
}

// EnsureIndexes creates the indexes the credential store relies on.
// The unique email index backs the one-user-per-email invariant.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
