package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultBootstrapAdmin is seeded into the administrator list on first start.
const DefaultBootstrapAdmin int64 = 6486825926

var (
	errMissingDSN      = errors.New("POSTGRES_DSN (or DATABASE_URL) is required")
	errMissingToken    = errors.New("BOT_TOKEN (or API_TOKEN) is required")
	errMissingUsername = errors.New("BOT_USERNAME is required")
)

type Config struct {
	AppEnv         string `env:"APP_ENV" envDefault:"local"`
	PostgresDSN    string `env:"POSTGRES_DSN"`
	BotToken       string `env:"BOT_TOKEN"`
	BotUsername    string `env:"BOT_USERNAME"`
	BootstrapAdmin int64  `env:"BOOTSTRAP_ADMIN_ID" envDefault:"6486825926"`
	HealthPort     int    `env:"HEALTH_PORT" envDefault:"8080"`

	// Database pool
	DBMaxConnections     int32         `env:"DB_MAX_CONNECTIONS" envDefault:"10"`
	DBMinConnections     int32         `env:"DB_MIN_CONNECTIONS" envDefault:"1"`
	DBMaxConnIdleTime    time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBMaxConnLifetime    time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBHealthCheckPeriod  time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
	DBConnectRetries     int           `env:"DB_CONNECT_RETRIES" envDefault:"5"`
	DBConnectRetryDelay  time.Duration `env:"DB_CONNECT_RETRY_DELAY" envDefault:"2s"`
	DBStartupTimeout     time.Duration `env:"DB_STARTUP_TIMEOUT" envDefault:"2m"`
	RateLimitRPS         float64       `env:"RATE_LIMIT_RPS" envDefault:"25"`
	UpdateTimeoutSeconds int           `env:"UPDATE_TIMEOUT" envDefault:"60"`

	// Delivery and broadcast pacing
	PartSendDelay      time.Duration `env:"PART_SEND_DELAY" envDefault:"100ms"`
	BroadcastBatchSize int           `env:"BROADCAST_BATCH_SIZE" envDefault:"20"`
	BroadcastPause     time.Duration `env:"BROADCAST_PAUSE" envDefault:"1500ms"`

	// Administrator lookups
	AdminCacheTTL time.Duration `env:"ADMIN_CACHE_TTL" envDefault:"30s"`
}

func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional, error is expected when not present

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	applyLegacyAliases(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsLocal reports whether logs should be human readable.
func (c *Config) IsLocal() bool {
	return c.AppEnv == "local"
}

func (c *Config) validate() error {
	var errs []error

	if c.PostgresDSN == "" {
		errs = append(errs, errMissingDSN)
	}

	if c.BotToken == "" {
		errs = append(errs, errMissingToken)
	}

	if c.BotUsername == "" {
		errs = append(errs, errMissingUsername)
	}

	return errors.Join(errs...)
}

// applyLegacyAliases accepts the variable names older deployments used.
func applyLegacyAliases(cfg *Config) {
	if !hasEnv("POSTGRES_DSN") {
		setStringFromEnv("DATABASE_URL", &cfg.PostgresDSN)
	}

	if !hasEnv("BOT_TOKEN") {
		setStringFromEnv("API_TOKEN", &cfg.BotToken)
	}

	cfg.BotUsername = strings.TrimPrefix(strings.TrimSpace(cfg.BotUsername), "@")
}

func hasEnv(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

func setStringFromEnv(key string, target *string) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return
	}

	val = strings.TrimSpace(val)
	if val == "" {
		return
	}

	*target = val
}
