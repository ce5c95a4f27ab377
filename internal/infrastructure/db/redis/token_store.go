package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eventsphere/events-api/internal/core/domain"
)

const refreshPrefix = "refresh:"

// TokenStore keeps refresh-token sessions in Redis.
// Key format: refresh:<token_id> → user id, expiring after the session TTL.
type TokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTokenStore(client *redis.Client, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, ttl: ttl}
}

func (s *TokenStore) Save(ctx context.Context, tokenID, userID string) error {
	if err := s.client.Set(ctx, refreshPrefix+tokenID, userID, s.ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// Consume returns the owning user id and deletes the token in a single
// round-trip, so a refresh token can only be redeemed once.
func (s *TokenStore) Consume(ctx context.Context, tokenID string) (string, error) {
	userID, err := s.client.GetDel(ctx, refreshPrefix+tokenID).Result()
	if err == redis.Nil {
		return "", domain.ErrInvalidToken
	}
	if err != nil {
		return "", fmt.Errorf("consume refresh token: %w", err)
	}
	return userID, nil
}

func (s *TokenStore) Revoke(ctx context.Context, tokenID string) error {
	if err := s.client.Del(ctx, refreshPrefix+tokenID).Err(); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}
