// Package app wires the bot's dependencies and runs it.
//
// The App type owns the storage handle and builds everything else at run
// time: the Telegram client, the channel registry, the subscription gate,
// the delivery pipeline, the broadcast engine and the administrator engine.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lueurxax/content-gate-bot/internal/access"
	"github.com/lueurxax/content-gate-bot/internal/admin"
	"github.com/lueurxax/content-gate-bot/internal/bot"
	"github.com/lueurxax/content-gate-bot/internal/broadcast"
	"github.com/lueurxax/content-gate-bot/internal/channels"
	"github.com/lueurxax/content-gate-bot/internal/conversation"
	"github.com/lueurxax/content-gate-bot/internal/delivery"
	"github.com/lueurxax/content-gate-bot/internal/gate"
	"github.com/lueurxax/content-gate-bot/internal/platform/config"
	"github.com/lueurxax/content-gate-bot/internal/platform/observability"
	"github.com/lueurxax/content-gate-bot/internal/platform/worker"
	db "github.com/lueurxax/content-gate-bot/internal/storage"
	"github.com/lueurxax/content-gate-bot/internal/telegram"
)

const errBotInit = "bot initialization failed: %w"

// App holds the application dependencies.
type App struct {
	cfg      *config.Config
	database *db.DB
	logger   *zerolog.Logger
}

// New creates a new App instance with the given dependencies.
func New(cfg *config.Config, database *db.DB, logger *zerolog.Logger) *App {
	return &App{
		cfg:      cfg,
		database: database,
		logger:   logger,
	}
}

// OpenDatabase connects, migrates and seeds the store within the configured
// startup timeout.
func OpenDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *zerolog.Logger) (*db.DB, error) {
	opts := db.PoolOptions{
		MaxConns:          cfg.MaxConnections,
		MinConns:          cfg.MinConnections,
		MaxConnIdleTime:   cfg.MaxConnIdleTime,
		MaxConnLifetime:   cfg.MaxConnLifetime,
		HealthCheckPeriod: cfg.HealthCheckPeriod,
		ConnectRetries:    cfg.ConnectRetries,
		ConnectRetryDelay: cfg.ConnectRetryDelay,
	}

	var database *db.DB

	err := worker.RunWithTimeout(ctx, cfg.StartupTimeout, func(ctx context.Context) error {
		var err error

		database, err = db.Connect(ctx, cfg.PostgresDSN, opts, cfg.BootstrapAdmin, logger)

		return err
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return database, nil
}

// StartHealthServer starts the health check and metrics server.
func (a *App) StartHealthServer(ctx context.Context) error {
	return observability.NewServer(a.database, a.cfg.HealthPort, a.logger).Start(ctx)
}

// RunBot polls Telegram and serves updates until ctx is canceled.
func (a *App) RunBot(ctx context.Context) error {
	a.logger.Info().Msg("Starting bot")

	tg := a.cfg.TelegramBotCfg()

	client, err := telegram.New(tg.Token, tg.RateLimitRPS, a.logger)
	if err != nil {
		return fmt.Errorf(errBotInit, err)
	}

	if client.Username() != tg.Username {
		a.logger.Warn().
			Str("configured", tg.Username).
			Str("actual", client.Username()).
			Msg("BOT_USERNAME differs from the authenticated bot, deep links use the configured value")
	}

	b := a.newBot(client, tg.Username)

	updates := client.Updates(tg.UpdateTimeout)

	go func() {
		<-ctx.Done()
		client.Stop()
	}()

	a.logger.Info().Str("username", client.Username()).Msg("Bot is polling for updates")

	if err := b.Run(ctx, updates); err != nil {
		return fmt.Errorf("bot run: %w", err)
	}

	return nil
}

func (a *App) newBot(client *telegram.Client, username string) *bot.Bot {
	states := conversation.NewStore()
	registry := channels.NewRegistry()
	gt := gate.New(registry, client, a.logger)

	pipeline := delivery.New(a.database, gt, client, a.cfg.DeliveryCfg().PartSendDelay, a.logger)

	bc := a.cfg.BroadcastCfg()
	broadcaster := broadcast.New(a.database, client, worker.ContextSleeper, broadcast.Config{
		BatchSize: bc.BatchSize,
		Pause:     bc.Pause,
	}, a.logger)

	engine := admin.New(admin.Deps{
		Store:       a.database,
		States:      states,
		Channels:    registry,
		Auth:        access.NewAuthorizer(a.database, a.cfg.AdminCacheTTL, a.logger),
		Messenger:   client,
		Broadcaster: broadcaster,
		BotUsername: username,
		Logger:      a.logger,
	})

	return bot.New(bot.Deps{
		Store:     a.database,
		Admin:     engine,
		Delivery:  pipeline,
		States:    states,
		Messenger: client,
		Logger:    a.logger,
	})
}
