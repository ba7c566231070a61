package admin

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/lueurxax/content-gate-bot/internal/conversation"
	apperrors "github.com/lueurxax/content-gate-bot/internal/core/errors"
	"github.com/lueurxax/content-gate-bot/internal/intent"
)

func (e *Engine) startBroadcast(ctx context.Context, actor int64) error {
	return e.advance(ctx, actor, conversation.State{Step: conversation.StepBroadcastInput}, MsgBroadcastAsk, controlKeyboard())
}

// ParseBroadcastInput splits "<source> <message id>". The source is an
// @username or a signed numeric chat id.
func ParseBroadcastInput(text string) (string, int, error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return "", 0, fmt.Errorf("want 2 fields, got %d: %w", len(fields), apperrors.ErrInvalidBroadcastInput)
	}

	if !validSource(fields[0]) {
		return "", 0, fmt.Errorf("source %q: %w", fields[0], apperrors.ErrInvalidBroadcastInput)
	}

	if !intent.IsNumeric(fields[1]) {
		return "", 0, fmt.Errorf("message id %q: %w", fields[1], apperrors.ErrInvalidID)
	}

	id, err := strconv.Atoi(fields[1])
	if err != nil {
		return "", 0, fmt.Errorf("message id %q: %w", fields[1], apperrors.ErrInvalidID)
	}

	return fields[0], id, nil
}

func validSource(s string) bool {
	if name, ok := strings.CutPrefix(s, "@"); ok {
		return name != ""
	}

	_, err := strconv.ParseInt(s, 10, 64)

	return err == nil
}

func (e *Engine) broadcastInput(ctx context.Context, actor int64, _ conversation.State, in intent.Intent) error {
	source, messageID, err := ParseBroadcastInput(in.Text)

	switch {
	case apperrors.Is(err, apperrors.ErrInvalidID):
		return e.say(ctx, actor, MsgBroadcastBadID)
	case err != nil:
		return e.say(ctx, actor, MsgBroadcastFormat)
	}

	res, err := e.broadcaster.Run(ctx, source, messageID)
	if err != nil {
		return fmt.Errorf("broadcast: %w", err)
	}

	e.logger.Info().
		Int64(logFieldUserID, actor).
		Str(logFieldRunID, res.RunID).
		Int("success", res.Success).
		Int("failure", res.Failure).
		Msg("broadcast completed")

	return e.finish(ctx, actor, e.printer.Sprintf(MsgBroadcastDoneFmt, res.Success, res.Failure))
}
