package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`

	MenuSource   string        `env:"MENU_SOURCE" envDefault:"postgres" validate:"omitempty,oneof=postgres file"`
	MenuFile     string        `env:"MENU_FILE" validate:"required_if=MenuSource file"`
	MenuCacheTTL time.Duration `env:"MENU_CACHE_TTL" envDefault:"5m" validate:"gte=0"`

	CacheProvider         string `env:"CACHE_PROVIDER" envDefault:"memory" validate:"omitempty,oneof=memory redis"`
	CacheMemorySize       int    `env:"CACHE_MEMORY_SIZE" envDefault:"1000" validate:"gte=0"`
	CacheKeyPrefix        string `env:"CACHE_KEY_PREFIX" envDefault:"storefront:"`
	RedisConnectionString string `env:"REDIS_CONNECTION_STRING" validate:"required_if=CacheProvider redis"`

	StripeSecretKey string `env:"STRIPE_SECRET_KEY,required" validate:"required"`

	ResendAPIKey string `env:"RESEND_API_KEY"`
	EmailFrom    string `env:"EMAIL_FROM" envDefault:"onboarding@resend.dev" validate:"required,email"`

	BaseURL   string `env:"BASE_URL" validate:"omitempty,url"`
	SentryDSN string `env:"SENTRY_DSN" validate:"omitempty,url"`

	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFormat string     `env:"LOG_FORMAT" envDefault:"text" validate:"omitempty,oneof=text json"`
	Port      string     `env:"PORT" envDefault:"8080"`
}

var configValidator = validator.New()

func Load() (*Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if err := configValidator.Struct(c); err != nil {
		return err
	}

	baseURL := strings.TrimSpace(c.BaseURL)
	if baseURL != "" {
		parsed, err := url.Parse(baseURL)
		if err != nil || parsed.Hostname() == "" {
			return fmt.Errorf("BASE_URL must be a valid absolute URL")
		}
		if !isLocalHost(parsed.Hostname()) && !strings.EqualFold(parsed.Scheme, "https") {
			return fmt.Errorf("BASE_URL must use https outside local development")
		}
	}

	return nil
}

func isLocalHost(host string) bool {
	switch strings.ToLower(strings.TrimSpace(host)) {
	case "localhost", "127.0.0.1", "::1":
		return true
	default:
		return false
	}
}
