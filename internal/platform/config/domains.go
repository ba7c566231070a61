package config

import "time"

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	PostgresDSN       string
	MaxConnections    int32
	MinConnections    int32
	MaxConnIdleTime   time.Duration
	MaxConnLifetime   time.Duration
	HealthCheckPeriod time.Duration
	ConnectRetries    int
	ConnectRetryDelay time.Duration
	// StartupTimeout bounds connecting and migrating at boot.
	StartupTimeout time.Duration
	BootstrapAdmin int64
}

// TelegramBotConfig holds Telegram bot settings.
type TelegramBotConfig struct {
	Token         string
	Username      string
	RateLimitRPS  float64
	UpdateTimeout int
}

// DeliveryConfig holds content delivery pacing.
type DeliveryConfig struct {
	PartSendDelay time.Duration
}

// BroadcastConfig holds broadcast pacing.
type BroadcastConfig struct {
	BatchSize int
	Pause     time.Duration
}

// DatabaseCfg returns the database section.
func (c *Config) DatabaseCfg() DatabaseConfig {
	return DatabaseConfig{
		PostgresDSN:       c.PostgresDSN,
		MaxConnections:    c.DBMaxConnections,
		MinConnections:    c.DBMinConnections,
		MaxConnIdleTime:   c.DBMaxConnIdleTime,
		MaxConnLifetime:   c.DBMaxConnLifetime,
		HealthCheckPeriod: c.DBHealthCheckPeriod,
		ConnectRetries:    c.DBConnectRetries,
		ConnectRetryDelay: c.DBConnectRetryDelay,
		StartupTimeout:    c.DBStartupTimeout,
		BootstrapAdmin:    c.BootstrapAdmin,
	}
}

// TelegramBotCfg returns the bot section.
func (c *Config) TelegramBotCfg() TelegramBotConfig {
	return TelegramBotConfig{
		Token:         c.BotToken,
		Username:      c.BotUsername,
		RateLimitRPS:  c.RateLimitRPS,
		UpdateTimeout: c.UpdateTimeoutSeconds,
	}
}

// DeliveryCfg returns the delivery section.
func (c *Config) DeliveryCfg() DeliveryConfig {
	return DeliveryConfig{PartSendDelay: c.PartSendDelay}
}

// BroadcastCfg returns the broadcast section.
func (c *Config) BroadcastCfg() BroadcastConfig {
	return BroadcastConfig{BatchSize: c.BroadcastBatchSize, Pause: c.BroadcastPause}
}
