package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventsphere/events-api/internal/core/domain"
	"github.com/eventsphere/events-api/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
		if u.Email == user.Email {
			return nil, domain.ErrEmailExists
		}
	}
	r.nextID++
	cp := *user
	cp.ID = strconv.Itoa(r.nextID)
	r.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByClerkID(_ context.Context, clerkUserID string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ClerkUserID == clerkUserID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubUserRepo) SetOTP(_ context.Context, userID, code string, issuedAt time.Time) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.OTPCode = code
	u.OTPCreatedAt = &issuedAt
	return nil
}

func (r *stubUserRepo) ConsumeOTP(_ context.Context, in ports.ConsumeOTPInput) (*domain.User, error) {
	for _, u := range r.users {
		if in.Username != "" && u.Username != in.Username {
			continue
		}
		if in.Email != "" && u.Email != in.Email {
			continue
		}
		if u.OTPCode == "" || u.OTPCode != in.Code {
			return nil, domain.ErrInvalidOTP
		}
		if u.OTPCreatedAt == nil || u.OTPCreatedAt.Before(in.IssuedAfter) {
			return nil, domain.ErrInvalidOTP
		}
		u.OTPCode = ""
		u.OTPCreatedAt = nil
		u.IsActive = true
		u.IsEmailVerified = true
		if in.NewPasswordHash != "" {
			u.PasswordHash = in.NewPasswordHash
		}
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrInvalidOTP
}

func (r *stubUserRepo) UpsertFederated(_ context.Context, in ports.FederatedUpsertInput) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == in.Email {
			u.ClerkUserID = in.ClerkUserID
			u.IsActive = true
			u.IsEmailVerified = true
			cp := *u
			return &cp, nil
		}
	}
	r.nextID++
	u := &domain.User{
		ID:              strconv.Itoa(r.nextID),
		Username:        in.Username,
		Email:           in.Email,
		ClerkUserID:     in.ClerkUserID,
		Role:            domain.RoleMember,
		IsActive:        true,
		IsEmailVerified: true,
	}
	r.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	out := cp
	return &out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubTokenStore struct {
	sessions map[string]string
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{sessions: make(map[string]string)}
}

func (s *stubTokenStore) Save(_ context.Context, tokenID, userID string) error {
	s.sessions[tokenID] = userID
	return nil
}

func (s *stubTokenStore) Consume(_ context.Context, tokenID string) (string, error) {
	userID, ok := s.sessions[tokenID]
	if !ok {
		return "", domain.ErrInvalidToken
	}
	delete(s.sessions, tokenID)
	return userID, nil
}

func (s *stubTokenStore) Revoke(_ context.Context, tokenID string) error {
	delete(s.sessions, tokenID)
	return nil
}

type stubLimiter struct {
	allow bool
	err   error
}

func (l *stubLimiter) Allow(context.Context, string) (bool, error) {
	return l.allow, l.err
}

type sentMessage struct {
	Recipient string
	Subject   string
	Body      string
}

type stubNotifier struct {
	sent []sentMessage
}

func (n *stubNotifier) Notify(recipient, subject, body string) {
	n.sent = append(n.sent, sentMessage{Recipient: recipient, Subject: subject, Body: body})
}

type authFixture struct {
	svc      *AuthService
	repo     *stubUserRepo
	tokens   *stubTokenStore
	notifier *stubNotifier
}

func newAuthFixture() *authFixture {
	repo := newStubUserRepo()
	tokens := newStubTokenStore()
	notifier := &stubNotifier{}
	svc := NewAuthService(repo, tokens, &stubLimiter{allow: true}, notifier, "test-secret", time.Minute, zerolog.Nop())
	return &authFixture{svc: svc, repo: repo, tokens: tokens, notifier: notifier}
}

func (f *authFixture) register(t *testing.T, username, email, password string) *domain.User {
	t.Helper()
	user, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return user
}

// storedOTP reads the code straight from the stub store; the service only
// ever hands it to the notifier.
func (f *authFixture) storedOTP(t *testing.T, userID string) string {
	t.Helper()
	u, ok := f.repo.users[userID]
	if !ok || u.OTPCode == "" {
		t.Fatalf("no pending code for user %s", userID)
	}
	return u.OTPCode
}

func TestRegisterCreatesInactiveUserWithCode(t *testing.T) {
	f := newAuthFixture()

	user := f.register(t, "alice", "Alice@Example.com", "supersecret")

	if user.IsActive {
		t.Error("expected new account to be inactive")
	}
	if user.Email != "alice@example.com" {
		t.Errorf("expected normalised email, got %q", user.Email)
	}
	if len(user.OTPCode) != 6 {
		t.Errorf("expected 6-digit code, got %q", user.OTPCode)
	}
	if user.OTPCreatedAt == nil || time.Since(*user.OTPCreatedAt) > time.Second {
		t.Error("expected code issue time to be stamped at registration")
	}

	if len(f.notifier.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(f.notifier.sent))
	}
	msg := f.notifier.sent[0]
	if msg.Recipient != "alice@example.com" {
		t.Errorf("notification sent to %q", msg.Recipient)
	}
	if !strings.Contains(msg.Body, user.OTPCode) {
		t.Error("expected notification body to contain the code")
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "short",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestVerifyRegistrationActivatesOnce(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "alice", "alice@example.com", "supersecret")
	code := f.storedOTP(t, user.ID)

	pair, err := f.svc.VerifyRegistration(context.Background(), "alice", code)
	if err != nil {
		t.Fatalf("VerifyRegistration: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Error("expected a full token pair")
	}

	activated := f.repo.users[user.ID]
	if !activated.IsActive || !activated.IsEmailVerified {
		t.Error("expected account to be active and email verified")
	}
	if activated.OTPCode != "" || activated.OTPCreatedAt != nil {
		t.Error("expected code to be cleared on redemption")
	}

	// The same code must not be redeemable twice.
	if _, err := f.svc.VerifyRegistration(context.Background(), "alice", code); !errors.Is(err, domain.ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP on replay, got %v", err)
	}
}

func TestVerifyRegistrationExpiredCode(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "alice", "alice@example.com", "supersecret")
	code := f.storedOTP(t, user.ID)

	stale := time.Now().UTC().Add(-domain.OTPValidity - time.Minute)
	f.repo.users[user.ID].OTPCreatedAt = &stale

	if _, err := f.svc.VerifyRegistration(context.Background(), "alice", code); !errors.Is(err, domain.ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP for expired code, got %v", err)
	}
}

func TestVerifyRegistrationWrongCode(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "alice", "alice@example.com", "supersecret")
	code := f.storedOTP(t, user.ID)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	if _, err := f.svc.VerifyRegistration(context.Background(), "alice", wrong); !errors.Is(err, domain.ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP, got %v", err)
	}
}

func TestVerifyRegistrationUnknownUser(t *testing.T) {
	f := newAuthFixture()

	if _, err := f.svc.VerifyRegistration(context.Background(), "ghost", "123456"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func (f *authFixture) registerVerified(t *testing.T, username, email, password string) *domain.User {
	t.Helper()
	user := f.register(t, username, email, password)
	if _, err := f.svc.VerifyRegistration(context.Background(), username, f.storedOTP(t, user.ID)); err != nil {
		t.Fatalf("VerifyRegistration: %v", err)
	}
	return f.repo.users[user.ID]
}

func TestLoginByUsernameAndByEmail(t *testing.T) {
	f := newAuthFixture()
	f.registerVerified(t, "alice", "alice@example.com", "supersecret")

	for _, identifier := range []string{"alice", "alice@example.com", "ALICE@example.com"} {
		pair, user, err := f.svc.Login(context.Background(), identifier, "supersecret")
		if err != nil {
			t.Fatalf("Login(%q): %v", identifier, err)
		}
		if pair.AccessToken == "" {
			t.Errorf("Login(%q): empty access token", identifier)
		}
		if user.Username != "alice" {
			t.Errorf("Login(%q): resolved user %q", identifier, user.Username)
		}
	}
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture()
	f.registerVerified(t, "alice", "alice@example.com", "supersecret")

	if _, _, err := f.svc.Login(context.Background(), "alice", "wrongpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownIdentifier(t *testing.T) {
	f := newAuthFixture()

	if _, _, err := f.svc.Login(context.Background(), "ghost", "whatever1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnverifiedAccount(t *testing.T) {
	f := newAuthFixture()
	f.register(t, "alice", "alice@example.com", "supersecret")

	// The password is correct, so the failure names the real cause.
	if _, _, err := f.svc.Login(context.Background(), "alice", "supersecret"); !errors.Is(err, domain.ErrAccountNotVerified) {
		t.Fatalf("expected ErrAccountNotVerified, got %v", err)
	}
}

func TestLoginFederatedOnlyAccount(t *testing.T) {
	f := newAuthFixture()
	if _, err := f.repo.UpsertFederated(context.Background(), ports.FederatedUpsertInput{
		Email:       "alice@example.com",
		Username:    "alice",
		ClerkUserID: "usr_1",
	}); err != nil {
		t.Fatalf("UpsertFederated: %v", err)
	}

	if _, _, err := f.svc.Login(context.Background(), "alice", "anything1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for passwordless account, got %v", err)
	}
}

func TestRequestPasswordResetUnknownEmailIsSilent(t *testing.T) {
	f := newAuthFixture()

	if err := f.svc.RequestPasswordReset(context.Background(), "ghost@example.com"); err != nil {
		t.Fatalf("expected silent success for unknown email, got %v", err)
	}
	if len(f.notifier.sent) != 0 {
		t.Errorf("expected no notification, got %d", len(f.notifier.sent))
	}
}

func TestRequestPasswordResetThrottled(t *testing.T) {
	repo := newStubUserRepo()
	notifier := &stubNotifier{}
	svc := NewAuthService(repo, newStubTokenStore(), &stubLimiter{allow: false}, notifier, "test-secret", time.Minute, zerolog.Nop())

	if _, err := repo.Create(context.Background(), &domain.User{Username: "alice", Email: "alice@example.com", IsActive: true}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.RequestPasswordReset(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("expected throttled request to succeed silently, got %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Errorf("expected no notification while throttled, got %d", len(notifier.sent))
	}
}

func TestConfirmPasswordResetReplacesCredential(t *testing.T) {
	f := newAuthFixture()
	user := f.registerVerified(t, "alice", "alice@example.com", "supersecret")

	if err := f.svc.RequestPasswordReset(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	code := f.storedOTP(t, user.ID)

	if err := f.svc.ConfirmPasswordReset(context.Background(), "alice@example.com", code, "brandnewpass"); err != nil {
		t.Fatalf("ConfirmPasswordReset: %v", err)
	}

	stored := f.repo.users[user.ID]
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("brandnewpass")) != nil {
		t.Error("expected new password to be stored")
	}

	// Old password no longer works, new one does.
	if _, _, err := f.svc.Login(context.Background(), "alice", "supersecret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected old password to be rejected, got %v", err)
	}
	if _, _, err := f.svc.Login(context.Background(), "alice", "brandnewpass"); err != nil {
		t.Errorf("Login with new password: %v", err)
	}
}

func TestConfirmPasswordResetActivatesAccount(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "alice", "alice@example.com", "supersecret")
	code := f.storedOTP(t, user.ID)

	// Redeeming the emailed code proves mailbox control, so an account that
	// never completed registration comes out active and verified.
	if err := f.svc.ConfirmPasswordReset(context.Background(), "alice@example.com", code, "brandnewpass"); err != nil {
		t.Fatalf("ConfirmPasswordReset: %v", err)
	}
	stored := f.repo.users[user.ID]
	if !stored.IsActive || !stored.IsEmailVerified {
		t.Error("expected reset confirmation to activate the account")
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	f := newAuthFixture()
	f.registerVerified(t, "alice", "alice@example.com", "supersecret")

	pair, _, err := f.svc.Login(context.Background(), "alice", "supersecret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	rotated, err := f.svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Error("expected a new refresh token")
	}

	// The consumed token must not be usable again.
	if _, err := f.svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken on reuse, got %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newAuthFixture()
	f.registerVerified(t, "alice", "alice@example.com", "supersecret")

	pair, _, err := f.svc.Login(context.Background(), "alice", "supersecret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := f.svc.Logout(context.Background(), pair.RefreshToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := f.svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after logout, got %v", err)
	}
}
