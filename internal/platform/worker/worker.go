// Package worker provides the small blocking helpers shared by the bot's
// long-running loops: cancellable waits, bounded retries and panic recovery.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

const (
	logFieldOperation = "operation"
	logFieldAttempt   = "attempt"
)

// Sleeper pauses the caller. Engines that pace outbound traffic take a
// Sleeper so tests can record pauses instead of waiting.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SleeperFunc adapts a function to Sleeper.
type SleeperFunc func(ctx context.Context, d time.Duration) error

// Sleep calls f.
func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}

// ContextSleeper is the real Sleeper backed by Wait.
var ContextSleeper Sleeper = SleeperFunc(Wait)

// Wait blocks until duration elapses or context is canceled.
// Returns a wrapped context error if context is canceled.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("wait interrupted: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

// RetryConfig bounds Retry.
type RetryConfig struct {
	// Name identifies the operation for logging.
	Name string

	// Attempts is the maximum number of calls to fn. Values below 1 mean 1.
	Attempts int

	// Delay is the pause between attempts.
	Delay time.Duration

	// Sleeper defaults to ContextSleeper.
	Sleeper Sleeper

	// Logger for the retry. Nil means no logging.
	Logger *zerolog.Logger
}

// Retry calls fn until it succeeds, the attempts run out or ctx is canceled.
// It returns the last error from fn, wrapped with the operation name.
func Retry(ctx context.Context, cfg RetryConfig, fn func(ctx context.Context) error) error {
	logger := getLogger(cfg.Logger)

	sleeper := cfg.Sleeper
	if sleeper == nil {
		sleeper = ContextSleeper
	}

	attempts := cfg.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var err error

	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}

		logger.Warn().Err(err).
			Str(logFieldOperation, cfg.Name).
			Int(logFieldAttempt, attempt).
			Msg("attempt failed")

		if attempt == attempts {
			break
		}

		if waitErr := sleeper.Sleep(ctx, cfg.Delay); waitErr != nil {
			return fmt.Errorf("%s: %w", cfg.Name, waitErr)
		}
	}

	return fmt.Errorf("%s: %d attempts: %w", cfg.Name, attempts, err)
}

// RunWithTimeout runs fn with a timeout derived from the parent context.
// The function receives a context that will be canceled after timeout.
func RunWithTimeout(ctx context.Context, timeout time.Duration, fn func(ctx context.Context) error) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return fn(timeoutCtx)
}

// RecoverPanic recovers from panics and logs them.
// Use as: defer worker.RecoverPanic(logger, "operation name")
func RecoverPanic(logger *zerolog.Logger, operation string) {
	if r := recover(); r != nil {
		logger.Error().
			Interface("panic", r).
			Str(logFieldOperation, operation).
			Msg("recovered from panic")
	}
}

// getLogger returns the provided logger or a nop logger if nil.
func getLogger(logger *zerolog.Logger) *zerolog.Logger {
	if logger == nil {
		nop := zerolog.Nop()

		return &nop
	}

	return logger
}
