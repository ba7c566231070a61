package admin

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/lueurxax/content-gate-bot/internal/conversation"
	"github.com/lueurxax/content-gate-bot/internal/intent"
)

func (e *Engine) showAdminsMenu(ctx context.Context, actor int64) error {
	e.states.Clear(actor)

	return e.reply(ctx, actor, MsgAdminsMenu, adminsKeyboard())
}

func (e *Engine) startAdminAdd(ctx context.Context, actor int64) error {
	return e.advance(ctx, actor, conversation.State{Step: conversation.StepAdminAddID}, MsgAdminAskAddID, controlKeyboard())
}

func (e *Engine) startAdminRemove(ctx context.Context, actor int64) error {
	return e.advance(ctx, actor, conversation.State{Step: conversation.StepAdminRemoveID}, MsgAdminAskRemoveID, controlKeyboard())
}

func parseUserID(text string) (int64, bool) {
	if !intent.IsNumeric(text) {
		return 0, false
	}

	id, err := strconv.ParseInt(text, 10, 64)

	return id, err == nil
}

func (e *Engine) adminAddID(ctx context.Context, actor int64, _ conversation.State, in intent.Intent) error {
	id, ok := parseUserID(in.Text)
	if !ok {
		return e.say(ctx, actor, MsgAdminInvalidID)
	}

	if e.auth.IsAdministrator(ctx, id) {
		return e.finish(ctx, actor, MsgAdminExists)
	}

	if err := e.store.AddAdmin(ctx, id); err != nil {
		return fmt.Errorf("add admin %d: %w", id, err)
	}

	e.auth.Invalidate()
	e.logger.Info().Int64(logFieldUserID, actor).Int64("admin_id", id).Msg("administrator added")

	if _, err := e.messenger.Send(ctx, messageTo(id, MsgAdminWelcome)); err != nil {
		e.logger.Warn().Err(err).Int64("admin_id", id).Msg("failed to notify new administrator")
	}

	return e.finish(ctx, actor, fmt.Sprintf(MsgAdminAddedFmt, id))
}

func (e *Engine) adminRemoveID(ctx context.Context, actor int64, _ conversation.State, in intent.Intent) error {
	id, ok := parseUserID(in.Text)
	if !ok {
		return e.say(ctx, actor, MsgAdminInvalidID)
	}

	if !e.auth.IsAdministrator(ctx, id) {
		return e.finish(ctx, actor, MsgAdminMissing)
	}

	if err := e.store.RemoveAdmin(ctx, id); err != nil {
		return fmt.Errorf("remove admin %d: %w", id, err)
	}

	e.auth.Invalidate()
	e.logger.Info().Int64(logFieldUserID, actor).Int64("admin_id", id).Msg("administrator removed")

	return e.finish(ctx, actor, fmt.Sprintf(MsgAdminRemovedFmt, id))
}

func (e *Engine) listAdmins(ctx context.Context, actor int64) error {
	ids, err := e.store.ListAdmins(ctx)
	if err != nil {
		return fmt.Errorf("list admins: %w", err)
	}

	if len(ids) == 0 {
		return e.reply(ctx, actor, MsgAdminsEmpty, adminsKeyboard())
	}

	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		lines = append(lines, fmt.Sprintf(MsgAdminListEntryFmt, id))
	}

	return e.reply(ctx, actor, MsgAdminsListHeader+"\n\n"+strings.Join(lines, "\n"), adminsKeyboard())
}
