package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventsphere/events-api/internal/core/domain"
	"github.com/eventsphere/events-api/internal/core/ports"
)

const minPasswordLength = 8

// AuthService implements the self-hosted OTP flows: registration, activation,
// login, password reset and session refresh.
type AuthService struct {
	users     ports.UserRepository
	tokens    ports.TokenStore
	limiter   ports.OTPLimiter
	notifier  ports.Notifier
	jwtSecret string
	accessTTL time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	tokens ports.TokenStore,
	limiter ports.OTPLimiter,
	notifier ports.Notifier,
	jwtSecret string,
	accessTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	return &AuthService{
		users:     users,
		tokens:    tokens,
		limiter:   limiter,
		notifier:  notifier,
		jwtSecret: jwtSecret,
		accessTTL: accessTTL,
		log:       log,
	}
}

// Register creates an inactive account with a fresh one-time code and
// schedules the verification email. The account stays unusable until the code
// is redeemed.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	email := normalizeEmail(in.Email)
	if username == "" || email == "" {
		return nil, fmt.Errorf("%w: username and email are required", domain.ErrValidation)
	}
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	otp := generateOTP()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Age:          in.Age,
		Gender:       in.Gender,
		Role:         domain.RoleMember,
		IsActive:     false,
		OTPCode:      otp,
		OTPCreatedAt: &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(email, "Verify your account", verificationEmailBody(username, otp))
	s.log.Info().Str("username", username).Msg("user registered, verification code sent")
	return created, nil
}

// VerifyRegistration redeems the registration code and activates the account.
// Redemption is a single atomic check-and-clear in the store, so a code can
// only ever be spent once even under concurrent attempts.
func (s *AuthService) VerifyRegistration(ctx context.Context, username, otp string) (*ports.TokenPair, error) {
	if _, err := s.users.FindByUsername(ctx, strings.TrimSpace(username)); err != nil {
		return nil, err
	}

	user, err := s.users.ConsumeOTP(ctx, ports.ConsumeOTPInput{
		Username:    strings.TrimSpace(username),
		Code:        otp,
		IssuedAfter: time.Now().UTC().Add(-domain.OTPValidity),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", user.Username).Msg("registration verified")
	return s.issueTokens(ctx, user)
}

// Login authenticates by username or email. Unknown identifiers and wrong
// passwords fail identically to avoid account enumeration; an unverified
// account is reported as such only after the credential checks out.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*ports.TokenPair, *domain.User, error) {
	var (
		user *domain.User
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = s.users.FindByEmail(ctx, normalizeEmail(identifier))
	} else {
		user, err = s.users.FindByUsername(ctx, strings.TrimSpace(identifier))
	}
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	// Federated-only accounts have no usable local password.
	if user.PasswordHash == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, domain.ErrAccountNotVerified
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// RequestPasswordReset issues a reset code when the email matches an account.
// The caller always receives the same acknowledgment, so the response leaks
// nothing about which emails are registered.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	if ok, err := s.limiter.Allow(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("otp cooldown check failed, proceeding")
	} else if !ok {
		s.log.Debug().Str("email", email).Msg("reset request throttled")
		return nil
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}

	now := time.Now().UTC()
	otp := generateOTP()
	if err := s.users.SetOTP(ctx, user.ID, otp, now); err != nil {
		return err
	}

	s.notifier.Notify(email, "Reset your password", resetEmailBody(user.Username, otp))
	s.log.Info().Str("username", user.Username).Msg("password reset code sent")
	return nil
}

// ConfirmPasswordReset redeems the reset code and replaces the credential.
// Redeeming a code proves control of the mailbox, so the account is activated
// and its email marked verified in the same write.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, email, otp, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user, err := s.users.ConsumeOTP(ctx, ports.ConsumeOTPInput{
		Email:           normalizeEmail(email),
		Code:            otp,
		IssuedAfter:     time.Now().UTC().Add(-domain.OTPValidity),
		NewPasswordHash: string(hash),
	})
	if err != nil {
		return err
	}

	s.log.Info().Str("username", user.Username).Msg("password reset confirmed")
	return nil
}

// Refresh rotates a refresh token: the presented token is invalidated and a
// fresh pair is issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	userID, err := s.tokens.Consume(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

// Logout revokes the refresh token. Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.Revoke(ctx, refreshToken)
}

func (s *AuthService) issueTokens(ctx context.Context, user *domain.User) (*ports.TokenPair, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(s.accessTTL).Unix(),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	refresh := uuid.NewString()
	if err := s.tokens.Save(ctx, refresh, user.ID); err != nil {
		return nil, err
	}

	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func verificationEmailBody(username, otp string) string {
	return fmt.Sprintf("<p>Hi %s,</p><p>Your verification code is <strong>%s</strong>. It expires in 10 minutes.</p>", username, otp)
}

func resetEmailBody(username, otp string) string {
	return fmt.Sprintf("<p>Hi %s,</p><p>Your password reset code is <strong>%s</strong>. It expires in 10 minutes.</p>", username, otp)
}
