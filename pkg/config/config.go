package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	StoreFirestore = "firestore"
	StoreMemory    = "memory"

	RatingAckStrict     = "strict"
	RatingAckOptimistic = "optimistic"
)

type Config struct {
	ServerPort      string `env:"SERVER_PORT" envDefault:"8080"`
	FirebaseProject string `env:"FIREBASE_PROJECT_ID"`
	Environment     string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`

	StoreBackend       string `env:"STORE_BACKEND" envDefault:"firestore"`
	ServiceAccountJSON string `env:"FIREBASE_SERVICE_ACCOUNT_JSON"`
	ServiceAccountPath string `env:"FIREBASE_SERVICE_ACCOUNT_PATH"`

	// JWTSecret signs development tokens; ignored outside development.
	JWTSecret string        `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	JWTExpiry time.Duration `env:"JWT_EXPIRY" envDefault:"24h"`

	// RedisURL switches rate limiting to a shared Redis window when set.
	RedisURL string `env:"REDIS_URL"`

	RequestRatePerMinute int `env:"REQUEST_RATE_PER_MINUTE" envDefault:"10"`
	MessageRatePerMinute int `env:"MESSAGE_RATE_PER_MINUTE" envDefault:"60"`
	HTTPRatePerMinute    int `env:"HTTP_RATE_PER_MINUTE" envDefault:"120"`

	RatingAckMode   string        `env:"RATING_ACK_MODE" envDefault:"strict"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// AllowedOrigins restricts CORS and websocket origins; empty allows all.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

func Load() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreFirestore:
		if c.FirebaseProject == "" {
			return fmt.Errorf("FIREBASE_PROJECT_ID is required for the %s store", StoreFirestore)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	switch c.RatingAckMode {
	case RatingAckStrict, RatingAckOptimistic:
	default:
		return fmt.Errorf("unknown RATING_ACK_MODE %q", c.RatingAckMode)
	}

	if c.RequestRatePerMinute <= 0 || c.MessageRatePerMinute <= 0 || c.HTTPRatePerMinute <= 0 {
		return fmt.Errorf("rate limits must be positive")
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
