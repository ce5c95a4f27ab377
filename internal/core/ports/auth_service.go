package ports

import (
	"context"

	"github.com/eventsphere/events-api/internal/core/domain"
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Age      int
	Gender   string
}

// TokenPair is the session credential pair issued on successful authentication.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService drives the self-hosted OTP authentication flows.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	VerifyRegistration(ctx context.Context, username, otp string) (*TokenPair, error)
	// Login accepts a username or an email as identifier.
	Login(ctx context.Context, identifier, password string) (*TokenPair, *domain.User, error)
	// RequestPasswordReset never reveals whether the email exists.
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, email, otp, newPassword string) error
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

// IdentityVerifier resolves a bearer token to a local principal. The local
// variant checks HS256 session tokens; the federated variant delegates to
// Clerk. Deployment configuration selects which one guards the API.
type IdentityVerifier interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// Notifier delivers a message out-of-band. Notify returns immediately;
// delivery is best-effort and failures are never surfaced to the caller.
type Notifier interface {
	Notify(recipient, subject, body string)
}

// TokenStore persists refresh-token sessions.
type TokenStore interface {
	Save(ctx context.Context, tokenID, userID string) error
	// Consume returns the owning user id and invalidates the token in one
	// step. Returns domain.ErrInvalidToken for unknown or expired tokens.
	Consume(ctx context.Context, tokenID string) (string, error)
	Revoke(ctx context.Context, tokenID string) error
}

// OTPLimiter throttles how often a one-time code may be requested per email.
type OTPLimiter interface {
	Allow(ctx context.Context, email string) (bool, error)
}
