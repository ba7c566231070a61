package admin

import (
	"context"
	"fmt"
	"strconv"

	"github.com/lueurxax/content-gate-bot/internal/conversation"
	"github.com/lueurxax/content-gate-bot/internal/core/ports"
	"github.com/lueurxax/content-gate-bot/internal/intent"
)

func messageTo(chatID int64, text string) ports.Message {
	return ports.Message{ChatID: chatID, Text: text}
}

func (e *Engine) onReplyToUser(ctx context.Context, actor int64, _ conversation.State, in intent.Intent) error {
	defer e.answer(ctx, in.CallbackID, "")

	userID, err := strconv.ParseInt(in.Arg, 10, 64)
	if err != nil {
		return nil
	}

	return e.advance(ctx, actor, conversation.State{
		Step:  conversation.StepReplyText,
		Draft: conversation.Draft{ReplyTo: userID},
	}, MsgReplyAsk, controlKeyboard())
}

func (e *Engine) replyText(ctx context.Context, actor int64, st conversation.State, in intent.Intent) error {
	if in.Kind == intent.KindMedia || in.Text == "" {
		return e.say(ctx, actor, MsgReplyEmpty)
	}

	if _, err := e.messenger.Send(ctx, messageTo(st.Draft.ReplyTo, fmt.Sprintf(MsgReplyToUserFmt, in.Text))); err != nil {
		e.logger.Warn().Err(err).Int64(logFieldUserID, st.Draft.ReplyTo).Msg("failed to deliver admin reply")

		return e.finish(ctx, actor, fmt.Sprintf(MsgReplyFailedFmt, err))
	}

	return e.finish(ctx, actor, MsgReplySent)
}
