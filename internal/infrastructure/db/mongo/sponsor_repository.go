package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eventsphere/events-api/internal/core/domain"
)

const sponsorCollection = "sponsors"

type MongoSponsorRepository struct {
	coll *mongo.Collection
}

func NewSponsorRepository(db *mongo.Database) *MongoSponsorRepository {
	return &MongoSponsorRepository{coll: db.Collection(sponsorCollection)}
}

func (r *MongoSponsorRepository) Create(ctx context.Context, sponsor *domain.Sponsor) (*domain.Sponsor, error) {
	doc := *sponsor
	doc.ID = primitive.NewObjectID().Hex()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert sponsor: %w", err)
	}
	return &doc, nil
}

func (r *MongoSponsorRepository) FindByID(ctx context.Context, id string) (*domain.Sponsor, error) {
	var sponsor domain.Sponsor
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&sponsor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrSponsorNotFound
		}
		return nil, fmt.Errorf("find sponsor: %w", err)
	}
	return &sponsor, nil
}

func (r *MongoSponsorRepository) List(ctx context.Context) ([]*domain.Sponsor, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list sponsors: %w", err)
	}
	defer cur.Close(ctx)

	var sponsors []*domain.Sponsor
	for cur.Next(ctx) {
		var sponsor domain.Sponsor
		if err := cur.Decode(&sponsor); err != nil {
			return nil, fmt.Errorf("decode sponsor: %w", err)
		}
		sponsors = append(sponsors, &sponsor)
	}
	return sponsors, cur.Err()
}

func (r *MongoSponsorRepository) Update(ctx context.Context, sponsor *domain.Sponsor) (*domain.Sponsor, error) {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": sponsor.ID}, sponsor)
	if err != nil {
		return nil, fmt.Errorf("update sponsor: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrSponsorNotFound
	}
	return sponsor, nil
}

func (r *MongoSponsorRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete sponsor: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSponsorNotFound
	}
	return nil
}
