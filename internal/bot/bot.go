// Package bot is the front of the service: it reads updates from Telegram,
// classifies them and routes each one to the administrator engine, the
// delivery pipeline or the user menu.
package bot

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/lueurxax/content-gate-bot/internal/admin"
	"github.com/lueurxax/content-gate-bot/internal/conversation"
	"github.com/lueurxax/content-gate-bot/internal/core/ports"
	"github.com/lueurxax/content-gate-bot/internal/intent"
	"github.com/lueurxax/content-gate-bot/internal/platform/observability"
	"github.com/lueurxax/content-gate-bot/internal/platform/worker"
)

// Log field names.
const (
	LogFieldUserID = "user_id"
	LogFieldIntent = "intent"
)

// Store is the slice of persistence the front needs.
type Store interface {
	PutUser(ctx context.Context, id int64) error
	ListAdmins(ctx context.Context) ([]int64, error)
}

// AdminEngine runs administrator dialogues.
type AdminEngine interface {
	Handle(ctx context.Context, actor int64, in intent.Intent) (bool, error)
}

// Delivery serves content to users.
type Delivery interface {
	HandleRequest(ctx context.Context, userID int64, code string) error
	HandleRecheck(ctx context.Context, userID int64, code string, promptID int) error
	HandleDownload(ctx context.Context, userID int64, code, callbackID string) error
	HandleCatalog(ctx context.Context, userID int64) error
}

// Deps are the collaborators of the bot.
type Deps struct {
	Store     Store
	Admin     AdminEngine
	Delivery  Delivery
	States    *conversation.Store
	Messenger ports.Messenger
	Logger    *zerolog.Logger
}

// Bot routes classified updates.
type Bot struct {
	store      Store
	admin      AdminEngine
	delivery   Delivery
	states     *conversation.Store
	messenger  ports.Messenger
	classifier *intent.Classifier
	logger     *zerolog.Logger

	wg sync.WaitGroup
}

// New creates a bot.
func New(d Deps) *Bot {
	return &Bot{
		store:      d.Store,
		admin:      d.Admin,
		delivery:   d.Delivery,
		states:     d.States,
		messenger:  d.Messenger,
		classifier: intent.NewClassifier(),
		logger:     d.Logger,
	}
}

// Run consumes updates until ctx is canceled or the channel closes. Every
// update is handled on its own goroutine; updates from the same actor are
// serialized by the actor lock. Run waits for in-flight handlers before returning.
func (b *Bot) Run(ctx context.Context, updates <-chan tgbotapi.Update) error {
	defer b.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("bot run context canceled: %w", ctx.Err())
		case update, ok := <-updates:
			if !ok {
				return nil
			}

			b.wg.Add(1)

			go func() {
				defer b.wg.Done()

				b.HandleUpdate(ctx, update)
			}()
		}
	}
}

// HandleUpdate processes one update synchronously.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer worker.RecoverPanic(b.logger, "handle update")

	from, in, ok := parseUpdate(update)
	if !ok {
		return
	}

	unlock := b.states.Lock(from.ID)
	defer unlock()

	it := b.classifier.Classify(in)
	observability.UpdatesHandled.WithLabelValues(it.Kind.String()).Inc()

	if err := b.route(ctx, from, it); err != nil {
		b.logger.Error().Err(err).Int64(LogFieldUserID, from.ID).Str(LogFieldIntent, it.Kind.String()).Msg("failed to handle update")
		b.reportFailure(ctx, from.ID)
	}
}

func (b *Bot) route(ctx context.Context, from sender, it intent.Intent) error {
	if err := b.store.PutUser(ctx, from.ID); err != nil {
		b.logger.Error().Err(err).Int64(LogFieldUserID, from.ID).Msg("failed to record user")
	}

	handled, err := b.admin.Handle(ctx, from.ID, it)
	if handled {
		return err
	}

	if st, ok := b.states.Get(from.ID); ok && st.Step == conversation.StepContactText {
		return b.contactText(ctx, from, it)
	}

	switch it.Kind {
	case intent.KindCallback:
		return b.routeCallback(ctx, from.ID, it)
	case intent.KindStart:
		if intent.IsNumeric(it.Text) {
			return b.delivery.HandleRequest(ctx, from.ID, it.Text)
		}

		return b.showMenu(ctx, from.ID, msgWelcome)
	case intent.KindCode:
		return b.delivery.HandleRequest(ctx, from.ID, it.Text)
	case intent.KindMenu:
		return b.routeMenu(ctx, from.ID, it.Menu)
	case intent.KindControl:
		b.states.Clear(from.ID)

		return b.showMenu(ctx, from.ID, msgMainMenu)
	default:
		return b.showMenu(ctx, from.ID, msgSendCode)
	}
}

func (b *Bot) routeCallback(ctx context.Context, userID int64, it intent.Intent) error {
	switch it.Action {
	case intent.ActionCheckSub:
		return b.delivery.HandleRecheck(ctx, userID, it.Arg, it.MessageID)
	case intent.ActionDownload:
		return b.delivery.HandleDownload(ctx, userID, it.Arg, it.CallbackID)
	default:
		if err := b.messenger.AnswerCallback(ctx, it.CallbackID, ""); err != nil {
			b.logger.Debug().Err(err).Msg("failed to answer callback")
		}

		return nil
	}
}

func (b *Bot) routeMenu(ctx context.Context, userID int64, m intent.Menu) error {
	switch m {
	case intent.MenuCatalog:
		return b.delivery.HandleCatalog(ctx, userID)
	case intent.MenuContact:
		if err := b.reply(ctx, userID, msgContactAsk, cancelKeyboard()); err != nil {
			return err
		}

		b.states.Set(userID, conversation.State{Step: conversation.StepContactText})

		return nil
	case intent.MenuCancel:
		b.states.Clear(userID)

		return b.showMenu(ctx, userID, msgMainMenu)
	default:
		return b.showMenu(ctx, userID, msgSendCode)
	}
}

func (b *Bot) showMenu(ctx context.Context, userID int64, text string) error {
	return b.reply(ctx, userID, text, userKeyboard())
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string, keyboard [][]string) error {
	if _, err := b.messenger.Send(ctx, ports.Message{ChatID: chatID, Text: text, Keyboard: keyboard}); err != nil {
		return fmt.Errorf("reply to %d: %w", chatID, err)
	}

	return nil
}

// reportFailure tells the actor the step failed. State is left as it was so
// the actor can retry.
func (b *Bot) reportFailure(ctx context.Context, chatID int64) {
	if _, err := b.messenger.Send(ctx, ports.Message{ChatID: chatID, Text: admin.MsgGenericFailed}); err != nil {
		b.logger.Warn().Err(err).Int64(LogFieldUserID, chatID).Msg("failed to report failure")
	}
}

func userKeyboard() [][]string {
	return [][]string{intent.Row(intent.MenuCatalog, intent.MenuContact)}
}

func cancelKeyboard() [][]string {
	return [][]string{intent.Row(intent.MenuCancel)}
}
