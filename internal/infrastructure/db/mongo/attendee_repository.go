package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eventsphere/events-api/internal/core/domain"
)

const attendeeCollection = "attendees"

type MongoAttendeeRepository struct {
	coll *mongo.Collection
}

func NewAttendeeRepository(db *mongo.Database) *MongoAttendeeRepository {
	return &MongoAttendeeRepository{coll: db.Collection(attendeeCollection)}
}

func (r *MongoAttendeeRepository) Create(ctx context.Context, attendee *domain.Attendee) (*domain.Attendee, error) {
	doc := *attendee
	doc.ID = primitive.NewObjectID().Hex()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert attendee: %w", err)
	}
	return &doc, nil
}

func (r *MongoAttendeeRepository) FindByID(ctx context.Context, id string) (*domain.Attendee, error) {
	var attendee domain.Attendee
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&attendee); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAttendeeNotFound
		}
		return nil, fmt.Errorf("find attendee: %w", err)
	}
	return &attendee, nil
}

func (r *MongoAttendeeRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Attendee, error) {
	return r.list(ctx, bson.M{"event_id": eventID})
}

func (r *MongoAttendeeRepository) List(ctx context.Context) ([]*domain.Attendee, error) {
	return r.list(ctx, bson.M{})
}

func (r *MongoAttendeeRepository) list(ctx context.Context, filter bson.M) ([]*domain.Attendee, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	defer cur.Close(ctx)

	var attendees []*domain.Attendee
	for cur.Next(ctx) {
		var attendee domain.Attendee
		if err := cur.Decode(&attendee); err != nil {
			return nil, fmt.Errorf("decode attendee: %w", err)
		}
		attendees = append(attendees, &attendee)
	}
	return attendees, cur.Err()
}

func (r *MongoAttendeeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete attendee: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAttendeeNotFound
	}
	return nil
}
