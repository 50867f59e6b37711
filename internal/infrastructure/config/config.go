package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"JWT_TTL,    default=1h"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`

	Mongo     MongoConfig
	Redis     RedisConfig
	SMTP      SMTPConfig
	RateLimit RateLimitConfig
	Mail      MailConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=events_api"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	Host    string `env:"SMTP_HOST"`
	Port    int    `env:"SMTP_PORT, default=587"`
	User    string `env:"SMTP_USER"`
	Pass    string `env:"SMTP_PASS"`
	From    string `env:"SMTP_FROM"`
	Enabled bool   `env:"SMTP_ENABLED, default=false"`
}

// RateLimitConfig bounds the /auth endpoints: Max requests per Window per
// client IP.
type RateLimitConfig struct {
	Max    int           `env:"AUTH_RATE_MAX,    default=100"`
	Window time.Duration `env:"AUTH_RATE_WINDOW, default=15m"`
}

type MailConfig struct {
	Workers int `env:"MAIL_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
