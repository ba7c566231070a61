// Package db provides PostgreSQL access for the content gate bot.
//
// This package contains:
//   - DB: a self-healing connection pool wrapper
//   - Repository methods for users, catalog records, counters and administrators
//   - Migration support via goose
//
// Every operation goes through (*DB).do, which checks the pool before use and
// rebuilds it once when a query fails on a broken connection.
package db

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	apperrors "github.com/lueurxax/content-gate-bot/internal/core/errors"
	"github.com/lueurxax/content-gate-bot/internal/core/ports"
	"github.com/lueurxax/content-gate-bot/internal/platform/observability"
	"github.com/lueurxax/content-gate-bot/internal/platform/worker"
)

var _ ports.Repository = (*DB)(nil)

// DB wraps a PostgreSQL connection pool. The pool is replaced in place when it
// stops answering, so callers keep a single *DB for the life of the process.
type DB struct {
	config         *pgxpool.Config
	retries        int
	retryDelay     time.Duration
	bootstrapAdmin int64
	logger         *zerolog.Logger

	// open builds a ready pool; ping checks an existing one.
	open func(ctx context.Context) (*pgxpool.Pool, error)
	ping func(ctx context.Context, pool *pgxpool.Pool) error

	mu   sync.RWMutex
	pool *pgxpool.Pool
}

// PoolOptions configures the database connection pool.
type PoolOptions struct {
	MaxConns          int32
	MinConns          int32
	MaxConnIdleTime   time.Duration
	MaxConnLifetime   time.Duration
	HealthCheckPeriod time.Duration

	// ConnectRetries bounds pool creation attempts.
	ConnectRetries int
	// ConnectRetryDelay is the pause between attempts.
	ConnectRetryDelay time.Duration
}

// DefaultPoolOptions returns sensible default pool configuration.
func DefaultPoolOptions() PoolOptions {
	return PoolOptions{
		MaxConns:          defaultMaxConns,
		MinConns:          defaultMinConns,
		MaxConnIdleTime:   defaultMaxConnIdleTime,
		MaxConnLifetime:   defaultMaxConnLifetime,
		HealthCheckPeriod: defaultHealthCheckPeriod,
		ConnectRetries:    DefaultConnectRetries,
		ConnectRetryDelay: DefaultConnectRetryDelay,
	}
}

// Connect creates the pool, applies migrations and seeds bootstrapAdmin into
// the administrator set. It fails when the retries run out.
func Connect(ctx context.Context, dsn string, opts PoolOptions, bootstrapAdmin int64, logger *zerolog.Logger) (*DB, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	applyPoolOptions(config, opts)

	db := &DB{
		config:         config,
		retries:        opts.ConnectRetries,
		retryDelay:     opts.ConnectRetryDelay,
		bootstrapAdmin: bootstrapAdmin,
		logger:         logger,
	}
	db.open = db.init
	db.ping = pingPool

	pool, err := db.open(ctx)
	if err != nil {
		return nil, err
	}

	db.pool = pool

	return db, nil
}

// applyPoolOptions applies non-zero pool options to the config.
func applyPoolOptions(config *pgxpool.Config, opts PoolOptions) {
	if opts.MaxConns > 0 {
		config.MaxConns = opts.MaxConns
	}

	if opts.MinConns > 0 {
		config.MinConns = opts.MinConns
	}

	if opts.MaxConnIdleTime > 0 {
		config.MaxConnIdleTime = opts.MaxConnIdleTime
	}

	if opts.MaxConnLifetime > 0 {
		config.MaxConnLifetime = opts.MaxConnLifetime
	}

	if opts.HealthCheckPeriod > 0 {
		config.HealthCheckPeriod = opts.HealthCheckPeriod
	}
}

// init runs the full initialization sequence: connect, migrate, seed.
func (db *DB) init(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := db.connectWithRetries(ctx)
	if err != nil {
		return nil, err
	}

	if err := migrate(ctx, pool, db.logger); err != nil {
		pool.Close()

		return nil, err
	}

	if db.bootstrapAdmin != 0 {
		if _, err := pool.Exec(ctx, `INSERT INTO admins (user_id) VALUES ($1) ON CONFLICT DO NOTHING`, db.bootstrapAdmin); err != nil {
			pool.Close()

			return nil, fmt.Errorf("seed bootstrap admin: %w", err)
		}
	}

	return pool, nil
}

// connectWithRetries attempts to connect to the database with retries.
func (db *DB) connectWithRetries(ctx context.Context) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool

	err := worker.Retry(ctx, worker.RetryConfig{
		Name:     "connect to database",
		Attempts: db.retries,
		Delay:    db.retryDelay,
		Logger:   db.logger,
	}, func(ctx context.Context) error {
		p, err := pgxpool.NewWithConfig(ctx, db.config.Copy())
		if err != nil {
			return fmt.Errorf("create pool: %w", err)
		}

		if err := p.Ping(ctx); err != nil {
			p.Close()

			return fmt.Errorf("ping: %w", err)
		}

		pool = p

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrPersistenceUnavailable, err)
	}

	return pool, nil
}

func pingPool(ctx context.Context, pool *pgxpool.Pool) error {
	return pool.Ping(ctx)
}

// Close closes the database connection pool.
func (db *DB) Close() {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.pool != nil {
		db.pool.Close()
		db.pool = nil
	}
}

// healthyPool returns the current pool if it answers a ping, rebuilding it otherwise.
func (db *DB) healthyPool(ctx context.Context) (*pgxpool.Pool, error) {
	db.mu.RLock()
	pool := db.pool
	db.mu.RUnlock()

	if pool != nil {
		if err := db.ping(ctx, pool); err == nil {
			return pool, nil
		} else if !isConnectivityError(err) {
			return nil, fmt.Errorf("ping: %w", err)
		}
	}

	return db.rebuild(ctx, pool)
}

// rebuild replaces broken with a fresh pool. Concurrent callers that saw the
// same broken pool share one rebuild.
func (db *DB) rebuild(ctx context.Context, broken *pgxpool.Pool) (*pgxpool.Pool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.pool != broken && db.pool != nil {
		return db.pool, nil
	}

	db.logger.Warn().Msg("database pool unhealthy, reconnecting")
	observability.StorageReconnects.Inc()

	if broken != nil {
		broken.Close()
	}

	db.pool = nil

	pool, err := db.open(ctx)
	if err != nil {
		return nil, err
	}

	db.pool = pool

	return pool, nil
}

// do runs fn against a healthy pool. A connectivity failure triggers one
// rebuild and one more attempt; any other error is returned as is.
func (db *DB) do(ctx context.Context, fn func(ctx context.Context, pool *pgxpool.Pool) error) error {
	pool, err := db.healthyPool(ctx)
	if err != nil {
		return err
	}

	err = fn(ctx, pool)
	if !isConnectivityError(err) {
		return err
	}

	db.logger.Warn().Err(err).Msg("query failed on a broken connection, retrying once")

	pool, rerr := db.rebuild(ctx, pool)
	if rerr != nil {
		return rerr
	}

	return fn(ctx, pool)
}

// Ping measures a round trip to the database.
func (db *DB) Ping(ctx context.Context) (time.Duration, error) {
	var latency time.Duration

	err := db.do(ctx, func(ctx context.Context, pool *pgxpool.Pool) error {
		start := time.Now()

		if err := pool.Ping(ctx); err != nil {
			return fmt.Errorf("ping: %w", err)
		}

		latency = time.Since(start)

		return nil
	})

	return latency, err
}

// isConnectivityError reports whether err means the connection is gone
// rather than the statement being rejected.
func isConnectivityError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08 is connection exception, 57P0x are shutdown codes.
		return strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57P0")
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	return pgconn.SafeToRetry(err)
}

// SanitizeUTF8 removes invalid UTF-8 sequences from a string.
func SanitizeUTF8(s string) string {
	if s == "" || utf8.ValidString(s) {
		return s
	}

	return strings.ToValidUTF8(s, "")
}
