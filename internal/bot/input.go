package bot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/lueurxax/content-gate-bot/internal/intent"
)

// sender identifies the actor behind an update.
type sender struct {
	ID   int64
	Name string
}

// parseUpdate extracts the actor and the transport-neutral input. Updates
// that are not private messages or button presses are skipped.
func parseUpdate(update tgbotapi.Update) (sender, intent.Input, bool) {
	switch {
	case update.CallbackQuery != nil:
		return parseCallback(update.CallbackQuery)
	case update.Message != nil:
		return parseMessage(update.Message)
	default:
		return sender{}, intent.Input{}, false
	}
}

func parseCallback(q *tgbotapi.CallbackQuery) (sender, intent.Input, bool) {
	if q.From == nil {
		return sender{}, intent.Input{}, false
	}

	in := intent.Input{CallbackID: q.ID, CallbackData: q.Data}
	if q.Message != nil {
		in.MessageID = q.Message.MessageID
	}

	return senderOf(q.From), in, true
}

func parseMessage(msg *tgbotapi.Message) (sender, intent.Input, bool) {
	if msg.From == nil || msg.Chat == nil || !msg.Chat.IsPrivate() {
		return sender{}, intent.Input{}, false
	}

	in := intent.Input{
		Text:      msg.Text,
		Caption:   msg.Caption,
		MessageID: msg.MessageID,
	}

	if msg.IsCommand() {
		in.Command = msg.Command()
		in.CommandArgs = msg.CommandArguments()
	}

	if n := len(msg.Photo); n > 0 {
		// Telegram lists sizes smallest first.
		in.PhotoRef = msg.Photo[n-1].FileID
	}

	if msg.Video != nil {
		in.VideoRef = msg.Video.FileID
	}

	if msg.Document != nil {
		in.DocumentRef = msg.Document.FileID
	}

	return senderOf(msg.From), in, true
}

func senderOf(u *tgbotapi.User) sender {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.UserName
	}

	return sender{ID: u.ID, Name: name}
}
