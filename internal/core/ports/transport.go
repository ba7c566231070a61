package ports

import (
	"context"

	"github.com/lueurxax/content-gate-bot/internal/core/domain"
)

// Button is an inline keyboard button. Exactly one of Data or URL is set.
type Button struct {
	Text string
	Data string
	URL  string
}

// Message is an outbound message. When Photo or Document is set the text is sent as its caption.
type Message struct {
	ChatID   int64
	Text     string
	Photo    string
	Document string

	// Inline attaches an inline keyboard.
	Inline [][]Button
	// Keyboard attaches a reply keyboard of button labels.
	Keyboard [][]string
	// RemoveKeyboard hides the reply keyboard. Ignored when Keyboard is set.
	RemoveKeyboard bool
}

// Messenger is the outbound side of the transport. Any call can fail;
// implementations wrap errors with errors.ErrRecipientUnreachable or
// errors.ErrMalformedRequest where they can tell the two apart.
type Messenger interface {
	Send(ctx context.Context, msg Message) (int, error)
	EditText(ctx context.Context, chatID int64, messageID int, text string, inline [][]Button) error
	Delete(ctx context.Context, chatID int64, messageID int) error
	AnswerCallback(ctx context.Context, callbackID, text string) error
	// Forward copies messageID from source (an @username or a numeric chat id) to chatID.
	Forward(ctx context.Context, chatID int64, source string, messageID int) error
}

// MembershipChecker queries external group membership.
type MembershipChecker interface {
	MemberStatus(ctx context.Context, channelID, userID int64) (domain.MemberStatus, error)
	ChatTitle(ctx context.Context, channelID int64) (string, error)
}
