package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eventsphere/events-api/internal/core/domain"
	"github.com/eventsphere/events-api/internal/core/ports"
)

const userCollection = "users"

type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(userCollection)}
}

type mongoUser struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Username        string             `bson:"username"`
	Email           string             `bson:"email"`
	PasswordHash    string             `bson:"password_hash,omitempty"`
	Age             int                `bson:"age,omitempty"`
	Gender          string             `bson:"gender,omitempty"`
	Role            string             `bson:"role"`
	IsActive        bool               `bson:"is_active"`
	IsEmailVerified bool               `bson:"is_email_verified"`
	OTPCode         string             `bson:"otp_code,omitempty"`
	OTPCreatedAt    *time.Time         `bson:"otp_created_at,omitempty"`
	ClerkUserID     string             `bson:"clerk_user_id,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:              mu.ID.Hex(),
		Username:        mu.Username,
		Email:           mu.Email,
		PasswordHash:    mu.PasswordHash,
		Age:             mu.Age,
		Gender:          mu.Gender,
		Role:            mu.Role,
		IsActive:        mu.IsActive,
		IsEmailVerified: mu.IsEmailVerified,
		OTPCode:         mu.OTPCode,
		OTPCreatedAt:    mu.OTPCreatedAt,
		ClerkUserID:     mu.ClerkUserID,
		CreatedAt:       mu.CreatedAt,
		UpdatedAt:       mu.UpdatedAt,
	}
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := mongoUser{
		Username:        user.Username,
		Email:           user.Email,
		PasswordHash:    user.PasswordHash,
		Age:             user.Age,
		Gender:          user.Gender,
		Role:            user.Role,
		IsActive:        user.IsActive,
		IsEmailVerified: user.IsEmailVerified,
		OTPCode:         user.OTPCode,
		OTPCreatedAt:    user.OTPCreatedAt,
		ClerkUserID:     user.ClerkUserID,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), "email_1") {
				return nil, domain.ErrEmailExists
			}
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) FindByClerkID(ctx context.Context, clerkUserID string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"clerk_user_id": clerkUserID})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *MongoUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []*domain.User
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, mu.toDomain())
	}
	return users, cur.Err()
}

// SetOTP stamps a fresh one-time code and issue time on the user.
func (r *MongoUserRepository) SetOTP(ctx context.Context, userID, code string, issuedAt time.Time) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"otp_code":       code,
		"otp_created_at": issuedAt,
		"updated_at":     time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("set otp: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ConsumeOTP redeems a one-time code with a single conditional update: the
// filter matches only a fresh, exact code and the update clears it, so two
// concurrent attempts can never both succeed.
func (r *MongoUserRepository) ConsumeOTP(ctx context.Context, in ports.ConsumeOTPInput) (*domain.User, error) {
	filter := bson.M{
		"otp_code":       in.Code,
		"otp_created_at": bson.M{"$gte": in.IssuedAfter},
	}
	if in.Username != "" {
		filter["username"] = in.Username
	} else {
		filter["email"] = in.Email
	}

	set := bson.M{
		"is_active":         true,
		"is_email_verified": true,
		"updated_at":        time.Now().UTC(),
	}
	if in.NewPasswordHash != "" {
		set["password_hash"] = in.NewPasswordHash
	}
	update := bson.M{
		"$set":   set,
		"$unset": bson.M{"otp_code": "", "otp_created_at": ""},
	}

	var mu mongoUser
	err := r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mu)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrInvalidOTP
		}
		return nil, fmt.Errorf("consume otp: %w", err)
	}
	return mu.toDomain(), nil
}

// UpsertFederated links the Clerk identity onto the account owning the email,
// creating an active, email-verified account with no local password when none
// exists yet.
func (r *MongoUserRepository) UpsertFederated(ctx context.Context, in ports.FederatedUpsertInput) (*domain.User, error) {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"clerk_user_id":     in.ClerkUserID,
			"username":          in.Username,
			"is_active":         true,
			"is_email_verified": true,
			"updated_at":        now,
		},
		"$setOnInsert": bson.M{
			"role":       domain.RoleMember,
			"created_at": now,
		},
	}

	var mu mongoUser
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"email": in.Email}, update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&mu)
	if err != nil {
		return nil, fmt.Errorf("upsert federated user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *MongoUserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	update := bson.M{"$set": bson.M{
		"username":   user.Username,
		"age":        user.Age,
		"gender":     user.Gender,
		"updated_at": time.Now().UTC(),
	}}

	var mu mongoUser
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mu)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *MongoUserRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
