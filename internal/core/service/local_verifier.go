package service

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eventsphere/events-api/internal/core/domain"
	"github.com/eventsphere/events-api/internal/core/ports"
)

// LocalVerifier authenticates the HS256 session tokens minted by AuthService.
// It is the self-hosted counterpart of the Clerk verifier; deployment
// configuration decides which of the two guards the API.
type LocalVerifier struct {
	users     ports.UserRepository
	jwtSecret string
}

func NewLocalVerifier(users ports.UserRepository, jwtSecret string) *LocalVerifier {
	return &LocalVerifier{users: users, jwtSecret: jwtSecret}
}

func (v *LocalVerifier) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(v.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, domain.ErrInvalidToken
	}

	user, err := v.users.FindByID(ctx, sub)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, domain.ErrAccountNotVerified
	}
	return user, nil
}
