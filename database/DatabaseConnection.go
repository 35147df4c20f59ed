package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	UserCollection         = "users"
	EventCollection        = "events"
	HobbyCollection        = "hobbies"
	MessageCollection      = "messages"
	NotificationCollection = "notifications"
	RatingCollection       = "ratings"
	RequestCollection      = "requests"
)

const opTimeout = 10 * time.Second

// Connect dials MongoDB and pings the primary before returning.
func Connect(ctx context.Context, uri string, log zerolog.Logger) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	log.Info().Msg("connected to MongoDB")
	return client, nil
}

func OpenCollection(db *mongo.Database, collectionName string) *mongo.Collection {
	return db.Collection(collectionName)
}

// EnsureIndexes creates the unique and geo indexes the application relies on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		UserCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
		},
		HobbyCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		EventCollection: {
			{Keys: bson.D{{Key: "creator", Value: 1}, {Key: "time", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
			{Keys: bson.D{{Key: "acceptedParticipants", Value: 1}}},
		},
		MessageCollection: {
			{Keys: bson.D{{Key: "recipient", Value: 1}}},
		},
		NotificationCollection: {
			{Keys: bson.D{{Key: "recipient", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		RatingCollection: {
			{Keys: bson.D{{Key: "to", Value: 1}}},
		},
		RequestCollection: {
			{Keys: bson.D{{Key: "from", Value: 1}}},
			{Keys: bson.D{{Key: "to", Value: 1}}},
		},
	}

	for name, idx := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}
