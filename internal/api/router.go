package api

import (
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/eventsphere/events-api/docs"
	"github.com/eventsphere/events-api/internal/api/handler"
	apimw "github.com/eventsphere/events-api/internal/api/middleware"
	"github.com/eventsphere/events-api/internal/core/domain"
	"github.com/eventsphere/events-api/internal/core/ports"
	"github.com/eventsphere/events-api/internal/core/service"
	"github.com/eventsphere/events-api/internal/identity/clerk"
	"github.com/eventsphere/events-api/internal/infrastructure/config"
	mongodb "github.com/eventsphere/events-api/internal/infrastructure/db/mongo"
	redisdb "github.com/eventsphere/events-api/internal/infrastructure/db/redis"
)

// NewRouter wires repositories, services and handlers into an Echo instance.
func NewRouter(
	cfg *config.Config,
	db *mongo.Database,
	rdb *redis.Client,
	notifier ports.Notifier,
	log zerolog.Logger,
) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())
	e.Use(echoprometheus.NewMiddleware("events"))

	// Repositories and stores.
	userRepo := mongodb.NewUserRepository(db)
	eventRepo := mongodb.NewEventRepository(db)
	sponsorRepo := mongodb.NewSponsorRepository(db)
	speakerRepo := mongodb.NewSpeakerRepository(db)
	attendeeRepo := mongodb.NewAttendeeRepository(db)
	tokenStore := redisdb.NewTokenStore(rdb, cfg.RefreshTokenTTL)
	otpLimiter := redisdb.NewOTPLimiter(rdb, cfg.OTPCooldown)

	// Services.
	authService := service.NewAuthService(
		userRepo, tokenStore, otpLimiter, notifier,
		cfg.JWTSecret, cfg.AccessTokenTTL, log,
	)
	eventService := service.NewEventService(eventRepo, userRepo, sponsorRepo, log)
	sponsorService := service.NewSponsorService(sponsorRepo)
	speakerService := service.NewSpeakerService(speakerRepo, eventRepo)
	attendeeService := service.NewAttendeeService(attendeeRepo, eventRepo, userRepo)

	// The identity verifier guarding /api is selected at startup. Local mode
	// checks the service's own HS256 tokens; clerk mode validates Clerk
	// session tokens against a cached JWKS and provisions users on first use.
	var verifier ports.IdentityVerifier
	switch cfg.AuthMode {
	case config.AuthModeClerk:
		v, err := clerk.NewVerifier(clerk.Config{
			APIURL:       cfg.Clerk.APIURL,
			SecretKey:    cfg.Clerk.SecretKey,
			JWKSCacheTTL: cfg.Clerk.JWKSCacheTTL,
			Leeway:       cfg.Clerk.Leeway,
		}, userRepo, log)
		if err != nil {
			return nil, fmt.Errorf("initializing clerk verifier: %w", err)
		}
		verifier = v
	case config.AuthModeLocal:
		verifier = service.NewLocalVerifier(userRepo, cfg.JWTSecret)
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.AuthMode)
	}

	// Handlers.
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userRepo)
	eventHandler := handler.NewEventHandler(eventService)
	sponsorHandler := handler.NewSponsorHandler(sponsorService)
	speakerHandler := handler.NewSpeakerHandler(speakerService)
	attendeeHandler := handler.NewAttendeeHandler(attendeeService)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewHealthDependenciesHandler(db, rdb)

	// Public surface.
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/verify-registration", authHandler.VerifyRegistration)
	auth.POST("/login", authHandler.Login)
	auth.POST("/password-reset/request", authHandler.RequestPasswordReset)
	auth.POST("/password-reset/confirm", authHandler.ConfirmPasswordReset)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout)

	// Authenticated surface.
	api := e.Group("/api", apimw.Auth(verifier))

	api.GET("/users/me", userHandler.Me)
	api.GET("/users", userHandler.List, apimw.RBAC(domain.RoleAdmin))
	api.GET("/users/:id", userHandler.Get)
	api.PUT("/users/:id", userHandler.Update)
	api.DELETE("/users/:id", userHandler.Delete, apimw.RBAC(domain.RoleAdmin))

	api.POST("/events", eventHandler.Create)
	api.GET("/events", eventHandler.List)
	api.GET("/events/:id", eventHandler.Get)
	api.PUT("/events/:id", eventHandler.Update)
	api.DELETE("/events/:id", eventHandler.Delete)

	api.POST("/sponsors", sponsorHandler.Create, apimw.RBAC(domain.RoleAdmin))
	api.GET("/sponsors", sponsorHandler.List)
	api.GET("/sponsors/:id", sponsorHandler.Get)
	api.PUT("/sponsors/:id", sponsorHandler.Update, apimw.RBAC(domain.RoleAdmin))
	api.DELETE("/sponsors/:id", sponsorHandler.Delete, apimw.RBAC(domain.RoleAdmin))

	api.POST("/speakers", speakerHandler.Create, apimw.RBAC(domain.RoleAdmin))
	api.GET("/speakers", speakerHandler.List)
	api.GET("/speakers/:id", speakerHandler.Get)
	api.PUT("/speakers/:id", speakerHandler.Update, apimw.RBAC(domain.RoleAdmin))
	api.DELETE("/speakers/:id", speakerHandler.Delete, apimw.RBAC(domain.RoleAdmin))

	api.POST("/attendees", attendeeHandler.Create)
	api.GET("/attendees", attendeeHandler.List)
	api.GET("/attendees/:id", attendeeHandler.Get)
	api.DELETE("/attendees/:id", attendeeHandler.Delete)

	return e, nil
}
