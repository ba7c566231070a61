// Package admin implements the administrator dialogues: catalog maintenance,
// channel lists, the administrator set, broadcasts and reporting.
//
// Every dialogue is a set of steps from package conversation. Engine.Handle
// looks up the actor's current step in a transition table and runs the
// handler registered for it with the classified intent. A handler either
// re-prompts and leaves the state alone, advances to the next step, or commits
// and returns the actor to idle. Commits are always the last thing a handler
// does, so a failed commit leaves the dialogue where it was.
package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lueurxax/content-gate-bot/internal/broadcast"
	"github.com/lueurxax/content-gate-bot/internal/channels"
	"github.com/lueurxax/content-gate-bot/internal/conversation"
	"github.com/lueurxax/content-gate-bot/internal/core/ports"
	"github.com/lueurxax/content-gate-bot/internal/intent"
	"github.com/lueurxax/content-gate-bot/internal/platform/observability"
)

const (
	logFieldUserID    = "user_id"
	logFieldCode      = "code"
	logFieldFlow      = "flow"
	logFieldStep      = "state"
	logFieldChannelID = "channel_id"
	logFieldRunID     = "run_id"
)

// Authorizer is the single authority on administrator membership.
type Authorizer interface {
	IsAdministrator(ctx context.Context, id int64) bool
	Invalidate()
}

// Broadcaster forwards a message to every known user.
type Broadcaster interface {
	Run(ctx context.Context, source string, messageID int) (broadcast.Result, error)
}

// Deps are the collaborators of the engine.
type Deps struct {
	Store       ports.Repository
	States      *conversation.Store
	Channels    *channels.Registry
	Auth        Authorizer
	Messenger   ports.Messenger
	Broadcaster Broadcaster
	// BotUsername builds deep links in channel posts.
	BotUsername string
	Logger      *zerolog.Logger
}

type (
	stepHandler     func(ctx context.Context, actor int64, st conversation.State, in intent.Intent) error
	menuHandler     func(ctx context.Context, actor int64) error
	callbackHandler func(ctx context.Context, actor int64, st conversation.State, in intent.Intent) error
)

// Engine runs the administrator dialogues. Administrators talk to the bot in
// private chats, so an actor id is also the chat id replies go to.
type Engine struct {
	store       ports.Repository
	states      *conversation.Store
	channels    *channels.Registry
	auth        Authorizer
	messenger   ports.Messenger
	broadcaster Broadcaster
	botUsername string
	logger      *zerolog.Logger
	printer     *message.Printer
	now         func() time.Time

	steps     map[conversation.Step]stepHandler
	menus     map[intent.Menu]menuHandler
	callbacks map[string]callbackHandler
}

// New creates an engine.
func New(d Deps) *Engine {
	e := &Engine{
		store:       d.Store,
		states:      d.States,
		channels:    d.Channels,
		auth:        d.Auth,
		messenger:   d.Messenger,
		broadcaster: d.Broadcaster,
		botUsername: d.BotUsername,
		logger:      d.Logger,
		printer:     message.NewPrinter(language.English),
		now:         time.Now,
	}

	e.steps = map[conversation.Step]stepHandler{
		conversation.StepAddCode:        e.addCode,
		conversation.StepAddTitle:       e.addTitle,
		conversation.StepAddPoster:      e.addPoster,
		conversation.StepAddParts:       e.addParts,
		conversation.StepEditCode:       e.editCode,
		conversation.StepEditMenu:       e.editMenu,
		conversation.StepEditTitle:      e.editTitle,
		conversation.StepEditPart:       e.editPart,
		conversation.StepEditIndex:      e.editIndex,
		conversation.StepDeleteCode:     e.deleteCode,
		conversation.StepChannelAction:  e.channelAction,
		conversation.StepChannelID:      e.channelID,
		conversation.StepChannelLink:    e.channelLink,
		conversation.StepAdminAddID:     e.adminAddID,
		conversation.StepAdminRemoveID:  e.adminRemoveID,
		conversation.StepBroadcastInput: e.broadcastInput,
		conversation.StepStatsCode:      e.statsCode,
		conversation.StepPostCode:       e.postCode,
		conversation.StepReplyText:      e.replyText,
	}

	e.menus = map[intent.Menu]menuHandler{
		intent.MenuAddContent:    e.startAddContent,
		intent.MenuEditContent:   e.startEditContent,
		intent.MenuDeleteContent: e.startDeleteContent,
		intent.MenuCodeStats:     e.startCodeStats,
		intent.MenuPost:          e.startPost,
		intent.MenuBroadcast:     e.startBroadcast,
		intent.MenuChannels:      e.startChannels,
		intent.MenuAdmins:        e.showAdminsMenu,
		intent.MenuAdminAdd:      e.startAdminAdd,
		intent.MenuAdminRemove:   e.startAdminRemove,
		intent.MenuAdminList:     e.listAdmins,
		intent.MenuBack:          e.Abort,
		intent.MenuListCodes:     e.listCodes,
		intent.MenuStats:         e.showStats,
		intent.MenuHelp:          e.showHelp,
	}

	e.callbacks = map[string]callbackHandler{
		intent.ActionChannelType:        e.onChannelType,
		intent.ActionChannelAction:      e.onChannelAction,
		intent.ActionDeleteRequired:     e.onChannelDelete,
		intent.ActionDeleteAnnouncement: e.onChannelDelete,
		intent.ActionReplyToUser:        e.onReplyToUser,
		intent.ActionHelp:               e.onHelpPage,
		intent.ActionHelpBack:           e.onHelpBack,
	}

	return e
}

// Handle processes one intent from actor. It reports false when the actor is
// not an administrator or the intent is not an administrator action, in which
// case the caller treats it as ordinary user input. Non-administrators never
// get a state created here.
func (e *Engine) Handle(ctx context.Context, actor int64, in intent.Intent) (bool, error) {
	if !e.auth.IsAdministrator(ctx, actor) {
		return false, nil
	}

	st, active := e.states.Get(actor)
	if active && st.Step.Flow() == conversation.FlowContactAdmin {
		return false, nil
	}

	switch in.Kind {
	case intent.KindCallback:
		h, ok := e.callbacks[in.Action]
		if !ok {
			return false, nil
		}

		return true, h(ctx, actor, st, in)
	case intent.KindControl:
		return true, e.Abort(ctx, actor)
	case intent.KindStart:
		if in.Text != "" {
			return false, nil
		}

		return true, e.Abort(ctx, actor)
	case intent.KindCommand:
		if in.Action == intent.CmdUsers {
			return true, e.usersOn(ctx, actor, in.Arg)
		}
	case intent.KindMenu:
		if h, ok := e.menus[in.Menu]; ok {
			return true, h(ctx, actor)
		}
	}

	if !active {
		return false, nil
	}

	return true, e.dispatch(ctx, actor, st, in)
}

func (e *Engine) dispatch(ctx context.Context, actor int64, st conversation.State, in intent.Intent) error {
	h, ok := e.steps[st.Step]
	if !ok {
		e.logger.Warn().Int64(logFieldUserID, actor).Str(logFieldStep, string(st.Step)).Msg("no handler for step")

		return e.Abort(ctx, actor)
	}

	observability.DialogueTransitions.WithLabelValues(string(st.Step.Flow())).Inc()

	e.logger.Debug().
		Int64(logFieldUserID, actor).
		Str(logFieldFlow, string(st.Step.Flow())).
		Str(logFieldStep, string(st.Step)).
		Str("intent", in.Kind.String()).
		Msg("dialogue step")

	return h(ctx, actor, st, in)
}

// ShowRoot sends the administrator root menu.
func (e *Engine) ShowRoot(ctx context.Context, actor int64) error {
	return e.reply(ctx, actor, MsgPanel, RootKeyboard())
}

// Abort drops the actor's dialogue without committing anything and shows the root menu.
func (e *Engine) Abort(ctx context.Context, actor int64) error {
	e.states.Clear(actor)

	return e.ShowRoot(ctx, actor)
}

// advance sends the prompt for the next step, then records the step.
func (e *Engine) advance(ctx context.Context, actor int64, next conversation.State, text string, keyboard [][]string) error {
	if err := e.reply(ctx, actor, text, keyboard); err != nil {
		return err
	}

	e.states.Set(actor, next)

	return nil
}

// finish ends the dialogue after a commit and reports the outcome with the root menu.
func (e *Engine) finish(ctx context.Context, actor int64, text string) error {
	e.states.Clear(actor)

	return e.reply(ctx, actor, text, RootKeyboard())
}

func (e *Engine) reply(ctx context.Context, actor int64, text string, keyboard [][]string) error {
	if _, err := e.messenger.Send(ctx, ports.Message{ChatID: actor, Text: text, Keyboard: keyboard}); err != nil {
		return fmt.Errorf("reply to %d: %w", actor, err)
	}

	return nil
}

func (e *Engine) say(ctx context.Context, actor int64, text string) error {
	return e.reply(ctx, actor, text, nil)
}

func (e *Engine) answer(ctx context.Context, callbackID, text string) {
	if callbackID == "" {
		return
	}

	if err := e.messenger.AnswerCallback(ctx, callbackID, text); err != nil {
		e.logger.Debug().Err(err).Msg("failed to answer callback")
	}
}
