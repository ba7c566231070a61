// Package telegram adapts the Telegram Bot API to the messaging ports used by
// the engines. Every outbound call passes through one shared rate limiter and
// every API error is classified into the transport error taxonomy.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/lueurxax/content-gate-bot/internal/core/domain"
	apperrors "github.com/lueurxax/content-gate-bot/internal/core/errors"
	"github.com/lueurxax/content-gate-bot/internal/core/ports"
)

const (
	logFieldChatID = "chat_id"
	logFieldMethod = "method"
)

var (
	_ ports.Messenger         = (*Client)(nil)
	_ ports.MembershipChecker = (*Client)(nil)
)

const notModifiedMarker = "message is not modified"

// unreachableMarkers are fragments of 400 descriptions that mean the chat is
// gone rather than the request being wrong.
var unreachableMarkers = []string{
	"chat not found",
	"user is deactivated",
	"bot was blocked",
	"bot was kicked",
	"user not found",
	"peer_id_invalid",
}

// Client is the rate-limited Telegram transport.
type Client struct {
	api     *tgbotapi.BotAPI
	limiter *rate.Limiter
	logger  *zerolog.Logger
}

// New authenticates with token and creates a client allowing rps calls per second.
func New(token string, rps float64, logger *zerolog.Logger) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating bot API: %w", err)
	}

	return NewWithAPI(api, rps, logger), nil
}

// NewWithAPI wraps an existing API handle. A non-positive rps disables limiting.
func NewWithAPI(api *tgbotapi.BotAPI, rps float64, logger *zerolog.Logger) *Client {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}

	return &Client{
		api:     api,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}
}

// Username returns the bot's public handle.
func (c *Client) Username() string {
	return c.api.Self.UserName
}

// Updates starts long polling with the given timeout in seconds.
func (c *Client) Updates(timeout int) tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeout

	return c.api.GetUpdatesChan(u)
}

// Stop ends long polling.
func (c *Client) Stop() {
	c.api.StopReceivingUpdates()
}

// Send delivers msg and returns the id of the created message.
func (c *Client) Send(ctx context.Context, msg ports.Message) (int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limit: %w", err)
	}

	sent, err := c.api.Send(chattable(msg))
	if err != nil {
		return 0, classify(fmt.Sprintf("send to %d", msg.ChatID), err)
	}

	return sent.MessageID, nil
}

// EditText replaces the text and inline keyboard of a sent message.
func (c *Client) EditText(ctx context.Context, chatID int64, messageID int, text string, inline [][]ports.Button) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if len(inline) > 0 {
		markup := inlineMarkup(inline)
		edit.ReplyMarkup = &markup
	}

	return c.request(ctx, "edit", chatID, edit)
}

// Delete removes a message.
func (c *Client) Delete(ctx context.Context, chatID int64, messageID int) error {
	return c.request(ctx, "delete", chatID, tgbotapi.NewDeleteMessage(chatID, messageID))
}

// AnswerCallback acknowledges an inline button press, optionally with a toast.
func (c *Client) AnswerCallback(ctx context.Context, callbackID, text string) error {
	return c.request(ctx, "answer callback", 0, tgbotapi.NewCallback(callbackID, text))
}

// Forward copies messageID from source into chatID. Source is either an
// @username or a numeric chat id.
func (c *Client) Forward(ctx context.Context, chatID int64, source string, messageID int) error {
	cfg, err := forwardConfig(chatID, source, messageID)
	if err != nil {
		return err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	if _, err := c.api.Send(cfg); err != nil {
		return classify(fmt.Sprintf("forward to %d", chatID), err)
	}

	return nil
}

// MemberStatus returns the user's membership status in a channel.
func (c *Client) MemberStatus(ctx context.Context, channelID, userID int64) (domain.MemberStatus, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	member, err := c.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{ChatID: channelID, UserID: userID},
	})
	if err != nil {
		return "", classify(fmt.Sprintf("get member %d of %d", userID, channelID), err)
	}

	return domain.MemberStatus(member.Status), nil
}

// ChatTitle returns a channel's display title.
func (c *Client) ChatTitle(ctx context.Context, channelID int64) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	chat, err := c.api.GetChat(tgbotapi.ChatInfoConfig{ChatConfig: tgbotapi.ChatConfig{ChatID: channelID}})
	if err != nil {
		return "", classify(fmt.Sprintf("get chat %d", channelID), err)
	}

	return chat.Title, nil
}

func (c *Client) request(ctx context.Context, method string, chatID int64, cfg tgbotapi.Chattable) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	if _, err := c.api.Request(cfg); err != nil {
		c.logger.Debug().Err(err).Str(logFieldMethod, method).Int64(logFieldChatID, chatID).Msg("telegram request failed")

		return classify(method, err)
	}

	return nil
}

// classify wraps err with the transport sentinel that matches the API error.
func classify(op string, err error) error {
	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %w", op, err)
	}

	switch {
	case apiErr.Code == 403:
		return fmt.Errorf("%s: %w: %w", op, apperrors.ErrRecipientUnreachable, err)
	case apiErr.Code == 400 && isUnreachable(apiErr.Message):
		return fmt.Errorf("%s: %w: %w", op, apperrors.ErrRecipientUnreachable, err)
	case apiErr.Code == 400 && strings.Contains(strings.ToLower(apiErr.Message), notModifiedMarker):
		return fmt.Errorf("%s: %w: %w", op, apperrors.ErrMessageNotModified, err)
	case apiErr.Code == 400:
		return fmt.Errorf("%s: %w: %w", op, apperrors.ErrMalformedRequest, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func isUnreachable(description string) bool {
	lower := strings.ToLower(description)

	for _, marker := range unreachableMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}

	return false
}
