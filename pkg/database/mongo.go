package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"
)

// NewMongoClient connects to MongoDB and verifies the connection.
func NewMongoClient(ctx context.Context, uri string, logger *zap.Logger) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(50).
		SetMinPoolSize(10).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	logger.Info("MongoDB connection established")
	return client, nil
}

// EnsureIndexes creates the indexes the listing, filter, and search paths rely on.
// Safe to run on every startup; CreateMany is idempotent for identical specs.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	type spec struct {
		collection string
		models     []mongo.IndexModel
	}

	postedAtDesc := mongo.IndexModel{Keys: bson.D{{Key: "posted_at", Value: -1}}}

	specs := []spec{
		{"users", []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		}},
		{"jobs_internships", []mongo.IndexModel{
			postedAtDesc,
			{Keys: bson.D{{Key: "job_type", Value: 1}, {Key: "posted_at", Value: -1}}},
			{Keys: bson.D{{Key: "location", Value: 1}, {Key: "posted_at", Value: -1}}},
			{Keys: bson.D{{Key: "company_name", Value: "text"}, {Key: "role", Value: "text"}, {Key: "description", Value: "text"}}},
		}},
		{"workshops", []mongo.IndexModel{
			postedAtDesc,
			{Keys: bson.D{{Key: "name", Value: "text"}, {Key: "organizer", Value: "text"}}},
		}},
		{"courses", []mongo.IndexModel{
			postedAtDesc,
			{Keys: bson.D{{Key: "name", Value: "text"}, {Key: "instructor", Value: "text"}}},
		}},
		{"hackathons", []mongo.IndexModel{
			postedAtDesc,
			{Keys: bson.D{{Key: "name", Value: "text"}, {Key: "organizer", Value: "text"}}},
		}},
		{"advertisements", []mongo.IndexModel{
			{Keys: bson.D{{Key: "active", Value: 1}, {Key: "clicks", Value: 1}}},
			{Keys: bson.D{{Key: "content_reference", Value: 1}}},
		}},
	}

	for _, s := range specs {
		if _, err := db.Collection(s.collection).Indexes().CreateMany(ctx, s.models); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", s.collection, err)
		}
	}
	return nil
}
