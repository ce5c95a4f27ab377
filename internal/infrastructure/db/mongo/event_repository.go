package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eventsphere/events-api/internal/core/domain"
)

const eventCollection = "events"

// Resource collections store their ids as client-generated hex strings so the
// domain structs round-trip through bson without mapper types.
type MongoEventRepository struct {
	coll *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *MongoEventRepository {
	return &MongoEventRepository{coll: db.Collection(eventCollection)}
}

func (r *MongoEventRepository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	doc := *event
	doc.ID = primitive.NewObjectID().Hex()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return &doc, nil
}

func (r *MongoEventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	var event domain.Event
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&event); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return &event, nil
}

func (r *MongoEventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cur.Close(ctx)

	var events []*domain.Event
	for cur.Next(ctx) {
		var event domain.Event
		if err := cur.Decode(&event); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		events = append(events, &event)
	}
	return events, cur.Err()
}

func (r *MongoEventRepository) Update(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": event.ID}, event)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

func (r *MongoEventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}
