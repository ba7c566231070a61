package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/lueurxax/content-gate-bot/internal/conversation"
	"github.com/lueurxax/content-gate-bot/internal/core/ports"
	"github.com/lueurxax/content-gate-bot/internal/delivery"
	"github.com/lueurxax/content-gate-bot/internal/intent"
)

type helpPage struct {
	key   string
	label string
	body  string
}

// helpPages is the administrator guide in display order. Bodies may contain
// {bot} which is replaced with the bot username.
var helpPages = []helpPage{
	{
		key:   "add",
		label: "📥 1. Adding a title",
		body: "📥 Adding a title\n\n" +
			"1. Press ➕ Add content and send a numeric code.\n" +
			"2. Send the title.\n" +
			"3. Send the promo post: a photo with a caption.\n" +
			"4. Send every part as a video or file, in order.\n" +
			"5. Send /done to save.",
	},
	{
		key:   "channel",
		label: "📡 2. Channels",
		body: "📡 Channels\n\n" +
			"• Required subscription: users must join these before getting a title.\n" +
			"• Announcement channels: 📤 Post sends promo posts there.\n\n" +
			"Make the bot an administrator of every channel. Lists reset when the bot restarts.",
	},
	{
		key:   "broadcast",
		label: "📢 3. Broadcast",
		body: "📢 Broadcast\n\n" +
			"1. Publish the message in a channel the bot can read.\n" +
			"2. Open the post → Share → Copy link.\n" +
			"3. Send the channel and the number at the end of the link.\n\n" +
			"Example: t.me/MyChannel/4 → @MyChannel 4",
	},
	{
		key:   "code",
		label: "🔁 4. How codes work",
		body: "🔁 How codes work\n\n" +
			"1. A user sends a code (for example 91).\n" +
			"2. Subscriptions are checked, then the promo post is sent.\n" +
			"3. The button under the post sends all parts.",
	},
	{
		key:   "faq",
		label: "❓ 5. FAQ",
		body: "❓ FAQ\n\n" +
			"• How do I share a code?\n  {bot}\n\n" +
			"• Can I edit or delete a code?\n  Yes, use ✏️ / ❌ in the admin menu.\n\n" +
			"• How many users joined on a date?\n  /users 2024-05-01",
	},
}

func helpIndexButtons() [][]ports.Button {
	rows := make([][]ports.Button, 0, len(helpPages))
	for _, p := range helpPages {
		rows = append(rows, []ports.Button{{Text: p.label, Data: intent.CallbackData(intent.ActionHelp, p.key)}})
	}

	return rows
}

func (e *Engine) helpBody(key string) (string, bool) {
	for _, p := range helpPages {
		if p.key == key {
			return strings.ReplaceAll(p.body, "{bot}", delivery.DeepLink(e.botUsername, "91")), true
		}
	}

	return "", false
}

func (e *Engine) showHelp(ctx context.Context, actor int64) error {
	if _, err := e.messenger.Send(ctx, ports.Message{ChatID: actor, Text: MsgHelpIndex, Inline: helpIndexButtons()}); err != nil {
		return fmt.Errorf("send help index: %w", err)
	}

	return nil
}

func (e *Engine) onHelpPage(ctx context.Context, actor int64, _ conversation.State, in intent.Intent) error {
	defer e.answer(ctx, in.CallbackID, "")

	body, ok := e.helpBody(in.Arg)
	if !ok {
		body = MsgHelpNotFound
	}

	back := [][]ports.Button{{{Text: BtnHelpBack, Data: intent.ActionHelpBack}}}

	return e.replace(ctx, actor, in.MessageID, body, back)
}

func (e *Engine) onHelpBack(ctx context.Context, actor int64, _ conversation.State, in intent.Intent) error {
	defer e.answer(ctx, in.CallbackID, "")

	return e.replace(ctx, actor, in.MessageID, MsgHelpIndex, helpIndexButtons())
}

// replace edits messageID in place, falling back to a new message when the edit fails.
func (e *Engine) replace(ctx context.Context, actor int64, messageID int, text string, inline [][]ports.Button) error {
	if err := e.messenger.EditText(ctx, actor, messageID, text, inline); err == nil {
		return nil
	}

	if _, err := e.messenger.Send(ctx, ports.Message{ChatID: actor, Text: text, Inline: inline}); err != nil {
		return fmt.Errorf("send help page: %w", err)
	}

	if err := e.messenger.Delete(ctx, actor, messageID); err != nil {
		e.logger.Debug().Err(err).Msg("failed to delete old help page")
	}

	return nil
}
