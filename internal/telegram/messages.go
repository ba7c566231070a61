package telegram

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	apperrors "github.com/lueurxax/content-gate-bot/internal/core/errors"
	"github.com/lueurxax/content-gate-bot/internal/core/ports"
	"github.com/lueurxax/content-gate-bot/internal/platform/tgtext"
)

// chattable builds the API request for msg. Photo and document messages
// carry the text as their caption, trimmed to the caption limit.
func chattable(msg ports.Message) tgbotapi.Chattable {
	markup := replyMarkup(msg)

	switch {
	case msg.Photo != "":
		photo := tgbotapi.NewPhoto(msg.ChatID, tgbotapi.FileID(msg.Photo))
		photo.Caption = tgtext.Truncate(msg.Text, tgtext.MaxCaptionLen)
		photo.ReplyMarkup = markup

		return photo
	case msg.Document != "":
		doc := tgbotapi.NewDocument(msg.ChatID, tgbotapi.FileID(msg.Document))
		doc.Caption = tgtext.Truncate(msg.Text, tgtext.MaxCaptionLen)
		doc.ReplyMarkup = markup

		return doc
	default:
		text := tgbotapi.NewMessage(msg.ChatID, msg.Text)
		text.DisableWebPagePreview = true
		text.ReplyMarkup = markup

		return text
	}
}

func replyMarkup(msg ports.Message) interface{} {
	switch {
	case len(msg.Inline) > 0:
		return inlineMarkup(msg.Inline)
	case len(msg.Keyboard) > 0:
		return replyKeyboard(msg.Keyboard)
	case msg.RemoveKeyboard:
		return tgbotapi.NewRemoveKeyboard(true)
	default:
		return nil
	}
}

func inlineMarkup(rows [][]ports.Button) tgbotapi.InlineKeyboardMarkup {
	out := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))

	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))

		for _, b := range row {
			if b.URL != "" {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonURL(b.Text, b.URL))

				continue
			}

			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
		}

		out = append(out, buttons)
	}

	return tgbotapi.NewInlineKeyboardMarkup(out...)
}

func replyKeyboard(rows [][]string) tgbotapi.ReplyKeyboardMarkup {
	out := make([][]tgbotapi.KeyboardButton, 0, len(rows))

	for _, row := range rows {
		buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, label := range row {
			buttons = append(buttons, tgbotapi.NewKeyboardButton(label))
		}

		out = append(out, buttons)
	}

	kb := tgbotapi.NewReplyKeyboard(out...)
	kb.ResizeKeyboard = true

	return kb
}

// forwardConfig builds a forward from source, an @username or a numeric chat id.
func forwardConfig(chatID int64, source string, messageID int) (tgbotapi.ForwardConfig, error) {
	source = strings.TrimSpace(source)

	if strings.HasPrefix(source, "@") && len(source) > 1 {
		cfg := tgbotapi.NewForward(chatID, 0, messageID)
		cfg.FromChannelUsername = source

		return cfg, nil
	}

	fromID, err := strconv.ParseInt(source, 10, 64)
	if err != nil {
		return tgbotapi.ForwardConfig{}, fmt.Errorf("forward source %q: %w: %w", source, apperrors.ErrMalformedRequest, err)
	}

	return tgbotapi.NewForward(chatID, fromID, messageID), nil
}
