package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Authentication modes. Local issues and checks its own session tokens;
// clerk delegates verification to Clerk's JWKS.
const (
	AuthModeLocal = "local"
	AuthModeClerk = "clerk"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	AuthMode        string        `env:"AUTH_MODE,         default=local"`
	JWTSecret       string        `env:"JWT_SECRET"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL,  default=15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL, default=168h"`
	OTPCooldown     time.Duration `env:"OTP_COOLDOWN,      default=60s"`

	Mongo MongoConfig
	Redis RedisConfig
	Clerk ClerkConfig
	Mail  MailConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=events_api"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type ClerkConfig struct {
	APIURL       string        `env:"CLERK_API_URL,        default=https://api.clerk.com"`
	SecretKey    string        `env:"CLERK_SECRET_KEY"`
	JWKSCacheTTL time.Duration `env:"CLERK_JWKS_CACHE_TTL, default=5m"`
	Leeway       time.Duration `env:"CLERK_LEEWAY,         default=5s"`
}

type MailConfig struct {
	Endpoint string `env:"MAIL_API_ENDPOINT, default=https://api.resend.com/emails"`
	APIKey   string `env:"MAIL_API_KEY"`
	Sender   string `env:"MAIL_SENDER,       default=no-reply@eventsphere.io"`
	Workers  int    `env:"MAIL_WORKERS,      default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
