package bot

import (
	"context"
	"fmt"

	"github.com/lueurxax/content-gate-bot/internal/admin"
	"github.com/lueurxax/content-gate-bot/internal/core/ports"
	"github.com/lueurxax/content-gate-bot/internal/intent"
)

// contactText handles input while a user is writing to the administrators.
func (b *Bot) contactText(ctx context.Context, from sender, it intent.Intent) error {
	switch {
	case it.Kind == intent.KindControl || (it.Kind == intent.KindMenu && it.Menu == intent.MenuCancel):
		b.states.Clear(from.ID)

		return b.showMenu(ctx, from.ID, msgMainMenu)
	case it.Kind == intent.KindMedia || it.Kind == intent.KindCallback || it.Text == "":
		return b.reply(ctx, from.ID, msgContactNeedTxt, cancelKeyboard())
	}

	admins, err := b.store.ListAdmins(ctx)
	if err != nil {
		return fmt.Errorf("list admins: %w", err)
	}

	text := fmt.Sprintf(msgContactFmt, from.Name, from.ID, it.Text)

	for _, id := range admins {
		msg := ports.Message{ChatID: id, Text: text, Inline: admin.ReplyButton(btnReplyToUser, from.ID)}
		if _, err := b.messenger.Send(ctx, msg); err != nil {
			b.logger.Warn().Err(err).Int64("admin_id", id).Int64(LogFieldUserID, from.ID).Msg("failed to forward message to administrator")
		}
	}

	b.states.Clear(from.ID)

	return b.showMenu(ctx, from.ID, msgContactSent)
}
