package clerk

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/eventsphere/events-api/internal/api/metrics"
	"github.com/eventsphere/events-api/internal/core/domain"
	"github.com/eventsphere/events-api/internal/core/ports"
)

// Config controls JWKS caching and token validation.
type Config struct {
	APIURL       string
	SecretKey    string
	JWKSCacheTTL time.Duration // default 5m
	Leeway       time.Duration // clock-skew tolerance, default 5s
}

// Verifier validates Clerk session tokens and provisions local users
// just-in-time. The key set is cached in-process and refreshed on a TTL;
// a token referencing an unknown kid forces one extra refresh before failing.
type Verifier struct {
	client *Client
	users  ports.UserRepository
	jwks   *keyfunc.JWKS
	parser *jwt.Parser
	log    zerolog.Logger
}

func NewVerifier(cfg Config, users ports.UserRepository, log zerolog.Logger) (*Verifier, error) {
	client := NewClient(cfg.APIURL, cfg.SecretKey)

	ttl := cfg.JWKSCacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	leeway := cfg.Leeway
	if leeway <= 0 {
		leeway = 5 * time.Second
	}

	jwks, err := keyfunc.Get(client.JWKSURL(), keyfunc.Options{
		RequestFactory:    client.RequestFactory,
		RefreshInterval:   ttl,
		RefreshRateLimit:  time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			log.Warn().Err(err).Msg("jwks refresh failed")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("clerk: fetch jwks: %w", err)
	}

	// The audience claim is deliberately not pinned: Clerk session tokens
	// identify the requesting party via azp rather than a stable aud, so
	// enforcing one would reject valid sessions.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithLeeway(leeway),
		jwt.WithExpirationRequired(),
	)

	return &Verifier{
		client: client,
		users:  users,
		jwks:   jwks,
		parser: parser,
		log:    log,
	}, nil
}

// Close stops the background key-set refresh.
func (v *Verifier) Close() {
	v.jwks.EndBackground()
}

// Authenticate verifies the bearer token signature and time claims, extracts
// the subject and resolves it to a local user, provisioning one on first
// sight. Every failure surfaces as domain.ErrInvalidToken.
func (v *Verifier) Authenticate(ctx context.Context, bearer string) (*domain.User, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := v.parser.ParseWithClaims(bearer, claims, v.jwks.Keyfunc)
	if err != nil {
		metrics.FederatedAuthTotal.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidToken, err)
	}
	if !token.Valid {
		metrics.FederatedAuthTotal.WithLabelValues("rejected").Inc()
		return nil, domain.ErrInvalidToken
	}
	if claims.Subject == "" {
		metrics.FederatedAuthTotal.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: subject claim missing", domain.ErrInvalidToken)
	}

	user, err := v.resolveOrProvision(ctx, claims.Subject)
	if err != nil {
		metrics.FederatedAuthTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}
	return user, nil
}

// resolveOrProvision looks the subject up by Clerk id and, on a miss, fetches
// the profile and upserts by primary email. Keying the upsert on email lets
// accounts created under the self-hosted flow migrate into federation without
// duplicates.
func (v *Verifier) resolveOrProvision(ctx context.Context, clerkUserID string) (*domain.User, error) {
	user, err := v.users.FindByClerkID(ctx, clerkUserID)
	if err == nil {
		metrics.FederatedAuthTotal.WithLabelValues("resolved").Inc()
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	profile, err := v.client.User(ctx, clerkUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch profile: %s", domain.ErrInvalidToken, err)
	}

	email, ok := profile.PrimaryEmail()
	if !ok {
		return nil, fmt.Errorf("%w: profile has no primary email", domain.ErrInvalidToken)
	}

	username := profile.Username
	if username == "" {
		username = strings.SplitN(email, "@", 2)[0]
	}

	linked, err := v.users.UpsertFederated(ctx, ports.FederatedUpsertInput{
		Email:       strings.ToLower(email),
		Username:    username,
		ClerkUserID: clerkUserID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: provision user: %s", domain.ErrInvalidToken, err)
	}

	metrics.FederatedAuthTotal.WithLabelValues("provisioned").Inc()
	v.log.Info().Str("clerk_user_id", clerkUserID).Str("username", linked.Username).Msg("federated user resolved")
	return linked, nil
}
