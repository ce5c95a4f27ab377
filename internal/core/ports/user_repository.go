package ports

import (
	"context"
	"time"

	"github.com/eventsphere/events-api/internal/core/domain"
)

// ConsumeOTPInput describes an atomic one-time-code redemption. Exactly one of
// Username or Email selects the user. The code is redeemed only if it matches
// and was issued at or after IssuedAfter; redemption clears it, activates the
// account and marks the email verified in the same write. NewPasswordHash,
// when non-empty, replaces the stored credential as part of that write.
type ConsumeOTPInput struct {
	Username        string
	Email           string
	Code            string
	IssuedAfter     time.Time
	NewPasswordHash string
}

// FederatedUpsertInput reconciles a verified Clerk identity with the local
// store, keyed by email so accounts created under the self-hosted flow are
// adopted without duplication.
type FederatedUpsertInput struct {
	Email       string
	Username    string
	ClerkUserID string
}

// UserRepository persists identity records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByEmail matches the normalised (lowercased) email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByClerkID(ctx context.Context, clerkUserID string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)

	// SetOTP stamps a fresh one-time code and its issue time on the user.
	SetOTP(ctx context.Context, userID, code string, issuedAt time.Time) error
	// ConsumeOTP performs an atomic check-and-clear of the pending code.
	// Returns domain.ErrInvalidOTP when no record matches.
	ConsumeOTP(ctx context.Context, in ConsumeOTPInput) (*domain.User, error)
	// UpsertFederated links or creates a user for a verified external identity.
	UpsertFederated(ctx context.Context, in FederatedUpsertInput) (*domain.User, error)

	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
