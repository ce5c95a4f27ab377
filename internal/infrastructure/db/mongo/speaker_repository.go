package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eventsphere/events-api/internal/core/domain"
)

const speakerCollection = "speakers"

type MongoSpeakerRepository struct {
	coll *mongo.Collection
}

func NewSpeakerRepository(db *mongo.Database) *MongoSpeakerRepository {
	return &MongoSpeakerRepository{coll: db.Collection(speakerCollection)}
}

func (r *MongoSpeakerRepository) Create(ctx context.Context, speaker *domain.Speaker) (*domain.Speaker, error) {
	doc := *speaker
	doc.ID = primitive.NewObjectID().Hex()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert speaker: %w", err)
	}
	return &doc, nil
}

func (r *MongoSpeakerRepository) FindByID(ctx context.Context, id string) (*domain.Speaker, error) {
	var speaker domain.Speaker
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&speaker); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrSpeakerNotFound
		}
		return nil, fmt.Errorf("find speaker: %w", err)
	}
	return &speaker, nil
}

func (r *MongoSpeakerRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Speaker, error) {
	return r.list(ctx, bson.M{"event_id": eventID})
}

func (r *MongoSpeakerRepository) List(ctx context.Context) ([]*domain.Speaker, error) {
	return r.list(ctx, bson.M{})
}

func (r *MongoSpeakerRepository) list(ctx context.Context, filter bson.M) ([]*domain.Speaker, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list speakers: %w", err)
	}
	defer cur.Close(ctx)

	var speakers []*domain.Speaker
	for cur.Next(ctx) {
		var speaker domain.Speaker
		if err := cur.Decode(&speaker); err != nil {
			return nil, fmt.Errorf("decode speaker: %w", err)
		}
		speakers = append(speakers, &speaker)
	}
	return speakers, cur.Err()
}

func (r *MongoSpeakerRepository) Update(ctx context.Context, speaker *domain.Speaker) (*domain.Speaker, error) {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": speaker.ID}, speaker)
	if err != nil {
		return nil, fmt.Errorf("update speaker: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrSpeakerNotFound
	}
	return speaker, nil
}

func (r *MongoSpeakerRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete speaker: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSpeakerNotFound
	}
	return nil
}
