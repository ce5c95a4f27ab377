package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on. Username and
// email are unique; clerk_user_id is unique but sparse so local-only accounts
// (which have none) do not collide on the missing value.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("username_1"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_1"),
		},
		{
			Keys:    bson.D{{Key: "clerk_user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("clerk_user_id_1"),
		},
	}
	if _, err := db.Collection(userCollection).Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}

	eventRef := mongo.IndexModel{Keys: bson.D{{Key: "event_id", Value: 1}}}
	if _, err := db.Collection(speakerCollection).Indexes().CreateOne(ctx, eventRef); err != nil {
		return fmt.Errorf("create speaker indexes: %w", err)
	}
	if _, err := db.Collection(attendeeCollection).Indexes().CreateOne(ctx, eventRef); err != nil {
		return fmt.Errorf("create attendee indexes: %w", err)
	}
	return nil
}
