// Package broadcast forwards one message to every known user.
package broadcast

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apperrors "github.com/lueurxax/content-gate-bot/internal/core/errors"
	"github.com/lueurxax/content-gate-bot/internal/core/ports"
	"github.com/lueurxax/content-gate-bot/internal/platform/observability"
	"github.com/lueurxax/content-gate-bot/internal/platform/worker"
)

const (
	logFieldRunID   = "run_id"
	logFieldUserID  = "user_id"
	logFieldSource  = "source"
	logFieldMessage = "message_id"

	DefaultBatchSize = 20
	DefaultPause     = 1500 * time.Millisecond
)

// Recipients lists every known user id.
type Recipients interface {
	ListUserIDs(ctx context.Context) ([]int64, error)
}

// Config tunes pacing.
type Config struct {
	// BatchSize is the number of sends between pauses.
	BatchSize int
	Pause     time.Duration
}

// Result summarizes a run. Success+Failure equals the recipient count.
type Result struct {
	RunID   string
	Success int
	Failure int
	Pauses  int
}

// Total is the number of recipients attempted.
func (r Result) Total() int {
	return r.Success + r.Failure
}

// Engine runs broadcasts sequentially on the caller's goroutine.
type Engine struct {
	users     Recipients
	messenger ports.Messenger
	sleeper   worker.Sleeper
	cfg       Config
	logger    *zerolog.Logger
	now       func() time.Time
}

// New creates an engine. A nil sleeper uses worker.ContextSleeper.
func New(users Recipients, messenger ports.Messenger, sleeper worker.Sleeper, cfg Config, logger *zerolog.Logger) *Engine {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}

	if cfg.Pause < 0 {
		cfg.Pause = DefaultPause
	}

	if sleeper == nil {
		sleeper = worker.ContextSleeper
	}

	return &Engine{
		users:     users,
		messenger: messenger,
		sleeper:   sleeper,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// Run forwards messageID from source to every user known at call time.
// Failed recipients are counted and skipped. The error is non-nil only when
// the recipient list cannot be read.
func (e *Engine) Run(ctx context.Context, source string, messageID int) (Result, error) {
	res := Result{RunID: uuid.NewString()}
	started := e.now()

	recipients, err := e.users.ListUserIDs(ctx)
	if err != nil {
		return res, fmt.Errorf("list recipients: %w", err)
	}

	e.logger.Info().
		Str(logFieldRunID, res.RunID).
		Str(logFieldSource, source).
		Int(logFieldMessage, messageID).
		Int("recipients", len(recipients)).
		Msg("broadcast started")

	for i, userID := range recipients {
		if err := e.messenger.Forward(ctx, userID, source, messageID); err != nil {
			res.Failure++
			e.logFailure(res.RunID, userID, err)
		} else {
			res.Success++

			observability.BroadcastMessages.WithLabelValues(observability.StatusSent).Inc()
		}

		sent := i + 1
		if sent%e.cfg.BatchSize == 0 && sent < len(recipients) {
			res.Pauses++

			// A canceled wait only shortens the pause; the run itself is not cancellable.
			_ = e.sleeper.Sleep(ctx, e.cfg.Pause)
		}
	}

	observability.BroadcastDuration.Observe(e.now().Sub(started).Seconds())

	e.logger.Info().
		Str(logFieldRunID, res.RunID).
		Int("success", res.Success).
		Int("failure", res.Failure).
		Msg("broadcast finished")

	return res, nil
}

func (e *Engine) logFailure(runID string, userID int64, err error) {
	if apperrors.Is(err, apperrors.ErrRecipientUnreachable) {
		observability.BroadcastMessages.WithLabelValues(observability.StatusUnreachable).Inc()
		e.logger.Warn().Err(err).Str(logFieldRunID, runID).Int64(logFieldUserID, userID).Msg("recipient unreachable")

		return
	}

	observability.BroadcastMessages.WithLabelValues(observability.StatusFailed).Inc()

	event := e.logger.Warn()
	if apperrors.Is(err, apperrors.ErrMalformedRequest) {
		event = e.logger.Error()
	}

	event.Err(err).Str(logFieldRunID, runID).Int64(logFieldUserID, userID).Msg("broadcast forward failed")
}
