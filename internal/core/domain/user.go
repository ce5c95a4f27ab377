package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// OTPValidity is the window during which an issued one-time code can be redeemed.
const OTPValidity = 10 * time.Minute

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username already taken")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidOTP         = errors.New("invalid or expired code")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotVerified = errors.New("account not verified")
	ErrInvalidToken       = errors.New("invalid token")
	ErrValidation         = errors.New("validation failed")
)

// User is the shared identity record. An account carries exactly one
// authoritative credential: a local password digest (self-hosted mode) or a
// Clerk identity (federated mode). OTPCode and OTPCreatedAt are always set or
// cleared together.
type User struct {
	ID              string     `json:"id"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	PasswordHash    string     `json:"-"`
	Age             int        `json:"age,omitempty"`
	Gender          string     `json:"gender,omitempty"`
	Role            string     `json:"role"`
	IsActive        bool       `json:"is_active"`
	IsEmailVerified bool       `json:"is_email_verified"`
	OTPCode         string     `json:"-"`
	OTPCreatedAt    *time.Time `json:"-"`
	ClerkUserID     string     `json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// OTPValid reports whether code matches the stored one-time code and the
// validity window has not elapsed at now. A user with no pending code never
// validates. Persistence layers redeem codes with an atomic check-and-clear;
// this helper exists for in-memory stores and tests.
func (u *User) OTPValid(code string, now time.Time) bool {
	if u.OTPCode == "" || u.OTPCreatedAt == nil {
		return false
	}
	if code != u.OTPCode {
		return false
	}
	return now.Sub(*u.OTPCreatedAt) <= OTPValidity
}
