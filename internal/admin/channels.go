package admin

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/lueurxax/content-gate-bot/internal/conversation"
	"github.com/lueurxax/content-gate-bot/internal/core/domain"
	"github.com/lueurxax/content-gate-bot/internal/intent"
)

// linkPrefix is required at the start of every join link.
const linkPrefix = "http"

func (e *Engine) startChannels(ctx context.Context, actor int64) error {
	e.states.Clear(actor)

	if _, err := e.messenger.Send(ctx, channelTypeMessage(actor)); err != nil {
		return fmt.Errorf("send channel menu: %w", err)
	}

	return nil
}

func (e *Engine) onChannelType(ctx context.Context, actor int64, _ conversation.State, in intent.Intent) error {
	defer e.answer(ctx, in.CallbackID, "")

	kind, ok := domain.ParseChannelKind(in.Arg)
	if !ok {
		return nil
	}

	text := MsgChannelMenuRequired
	if kind == domain.ChannelAnnouncement {
		text = MsgChannelMenuAnnounce
	}

	if err := e.messenger.EditText(ctx, actor, in.MessageID, text, channelActionButtons()); err != nil {
		return fmt.Errorf("show channel actions: %w", err)
	}

	e.states.Set(actor, conversation.State{
		Step:  conversation.StepChannelAction,
		Draft: conversation.Draft{ChannelKind: kind},
	})

	return nil
}

func (e *Engine) onChannelAction(ctx context.Context, actor int64, st conversation.State, in intent.Intent) error {
	defer e.answer(ctx, in.CallbackID, "")

	kind := st.Draft.ChannelKind
	if st.Step.Flow() != conversation.FlowChannels || kind == "" {
		return e.say(ctx, actor, MsgChannelChooseTypeFirst)
	}

	switch in.Arg {
	case intent.ChannelActionAdd:
		return e.advance(ctx, actor, st.With(conversation.StepChannelID), MsgChannelAskID, controlKeyboard())
	case intent.ChannelActionList:
		return e.say(ctx, actor, channelListText(kind, e.channels.List(kind)))
	case intent.ChannelActionDelete:
		list := e.channels.List(kind)
		if len(list) == 0 {
			return e.say(ctx, actor, MsgChannelsEmpty)
		}

		if _, err := e.messenger.Send(ctx, channelDeleteMessage(actor, kind, list)); err != nil {
			return fmt.Errorf("send channel delete menu: %w", err)
		}

		return nil
	case intent.ChannelActionBack:
		e.states.Clear(actor)

		if err := e.messenger.EditText(ctx, actor, in.MessageID, MsgChannelTypeAsk, channelTypeButtons()); err != nil {
			return fmt.Errorf("show channel types: %w", err)
		}

		return nil
	default:
		return nil
	}
}

// channelAction handles typed input while the channel action buttons are shown.
func (e *Engine) channelAction(ctx context.Context, actor int64, _ conversation.State, _ intent.Intent) error {
	return e.say(ctx, actor, MsgUseButtons)
}

func (e *Engine) channelID(ctx context.Context, actor int64, st conversation.State, in intent.Intent) error {
	id, err := strconv.ParseInt(strings.TrimSpace(in.Text), 10, 64)
	if err != nil {
		return e.say(ctx, actor, MsgChannelInvalidID)
	}

	next := st.With(conversation.StepChannelLink)
	next.Draft.ChannelID = id

	return e.advance(ctx, actor, next, MsgChannelAskLink, nil)
}

func (e *Engine) channelLink(ctx context.Context, actor int64, st conversation.State, in intent.Intent) error {
	link := strings.TrimSpace(in.Text)
	if !strings.HasPrefix(link, linkPrefix) {
		return e.say(ctx, actor, MsgChannelInvalidLink)
	}

	ch := domain.Channel{ID: st.Draft.ChannelID, Link: link}
	if !e.channels.Add(st.Draft.ChannelKind, ch) {
		return e.finish(ctx, actor, MsgChannelExists)
	}

	e.logger.Info().
		Int64(logFieldUserID, actor).
		Int64(logFieldChannelID, ch.ID).
		Str("kind", string(st.Draft.ChannelKind)).
		Msg("channel added")

	return e.finish(ctx, actor, fmt.Sprintf(MsgChannelAddedFmt, ch.ID, ch.Link))
}

func (e *Engine) onChannelDelete(ctx context.Context, actor int64, _ conversation.State, in intent.Intent) error {
	kind := domain.ChannelRequired
	if in.Action == intent.ActionDeleteAnnouncement {
		kind = domain.ChannelAnnouncement
	}

	id, err := strconv.ParseInt(in.Arg, 10, 64)
	if err != nil || !e.channels.Remove(kind, id) {
		e.answer(ctx, in.CallbackID, "")

		return e.say(ctx, actor, MsgChannelMissing)
	}

	e.answer(ctx, in.CallbackID, MsgCallbackDeleted)
	e.logger.Info().Int64(logFieldUserID, actor).Int64(logFieldChannelID, id).Str("kind", string(kind)).Msg("channel removed")

	return e.say(ctx, actor, fmt.Sprintf(MsgChannelDeletedFmt, id))
}

func channelListText(kind domain.ChannelKind, list []domain.Channel) string {
	if len(list) == 0 {
		return MsgChannelsEmpty
	}

	header := MsgChannelMenuRequired
	if kind == domain.ChannelAnnouncement {
		header = MsgChannelMenuAnnounce
	}

	lines := make([]string, 0, len(list))
	for i, ch := range list {
		lines = append(lines, fmt.Sprintf(MsgChannelLineFmt, i+1, ch.ID, ch.Link))
	}

	return header + "\n\n" + strings.Join(lines, "\n")
}
