package admin

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/content-gate-bot/internal/access"
	"github.com/lueurxax/content-gate-bot/internal/broadcast"
	"github.com/lueurxax/content-gate-bot/internal/channels"
	"github.com/lueurxax/content-gate-bot/internal/conversation"
	"github.com/lueurxax/content-gate-bot/internal/core/domain"
	apperrors "github.com/lueurxax/content-gate-bot/internal/core/errors"
	"github.com/lueurxax/content-gate-bot/internal/core/ports"
	"github.com/lueurxax/content-gate-bot/internal/core/ports/mocks"
	"github.com/lueurxax/content-gate-bot/internal/intent"
)

const (
	admin    int64 = 1000
	stranger int64 = 2000
)

type stubBroadcaster struct {
	source    string
	messageID int
	calls     int
	result    broadcast.Result
	err       error
}

func (s *stubBroadcaster) Run(_ context.Context, source string, messageID int) (broadcast.Result, error) {
	s.calls++
	s.source = source
	s.messageID = messageID

	return s.result, s.err
}

type harness struct {
	store       *mocks.Store
	states      *conversation.Store
	registry    *channels.Registry
	messenger   *mocks.Messenger
	broadcaster *stubBroadcaster
	engine      *Engine
	classifier  *intent.Classifier
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	logger := zerolog.Nop()
	h := &harness{
		store:       mocks.NewStore(),
		states:      conversation.NewStore(),
		registry:    channels.NewRegistry(),
		messenger:   mocks.NewMessenger(),
		broadcaster: &stubBroadcaster{},
		classifier:  intent.NewClassifier(),
	}

	require.NoError(t, h.store.AddAdmin(context.Background(), admin))

	h.engine = New(Deps{
		Store:       h.store,
		States:      h.states,
		Channels:    h.registry,
		Auth:        access.NewAuthorizer(h.store, 0, &logger),
		Messenger:   h.messenger,
		Broadcaster: h.broadcaster,
		BotUsername: "gate_bot",
		Logger:      &logger,
	})

	return h
}

func (h *harness) handle(t *testing.T, in intent.Intent) {
	t.Helper()

	handled, err := h.engine.Handle(context.Background(), admin, in)
	require.NoError(t, err)
	require.True(t, handled)
}

func (h *harness) text(t *testing.T, s string) {
	t.Helper()
	h.handle(t, h.classifier.Classify(intent.Input{Text: s}))
}

func (h *harness) menu(t *testing.T, m intent.Menu) {
	t.Helper()
	h.text(t, intent.Label(m))
}

func (h *harness) done(t *testing.T) {
	t.Helper()
	h.handle(t, h.classifier.Classify(intent.Input{Text: "/done", Command: intent.CmdDone}))
}

func (h *harness) media(t *testing.T, ref string, kind intent.MediaKind, caption string) {
	t.Helper()
	h.handle(t, intent.Intent{Kind: intent.KindMedia, Media: ref, MediaKind: kind, Caption: caption})
}

func (h *harness) callback(t *testing.T, action, arg string) {
	t.Helper()
	h.handle(t, h.classifier.Classify(intent.Input{
		CallbackData: intent.CallbackData(action, arg),
		CallbackID:   "cb",
		MessageID:    77,
	}))
}

func (h *harness) step() conversation.Step {
	st, _ := h.states.Get(admin)

	return st.Step
}

func (h *harness) addContent(t *testing.T, code, title, poster string, parts ...string) {
	t.Helper()

	h.menu(t, intent.MenuAddContent)
	h.text(t, code)
	h.text(t, title)
	h.media(t, poster, intent.MediaPhoto, title+" promo")

	for _, p := range parts {
		h.media(t, p, intent.MediaDocument, "")
	}

	h.done(t)
}

func TestNonAdministratorIsIgnored(t *testing.T) {
	h := newHarness(t)
	classifier := intent.NewClassifier()

	inputs := []intent.Input{
		{Text: intent.Label(intent.MenuAddContent)},
		{Text: "/start", Command: intent.CmdStart},
		{Text: intent.Label(intent.MenuControl)},
		{CallbackData: "channel_type:required"},
		{Text: "/users today", Command: intent.CmdUsers},
	}

	for _, in := range inputs {
		handled, err := h.engine.Handle(context.Background(), stranger, classifier.Classify(in))
		require.NoError(t, err)
		assert.False(t, handled)
	}

	_, active := h.states.Get(stranger)
	assert.False(t, active)
	assert.Empty(t, h.messenger.Sent())
}

func TestAddContentRoundTrip(t *testing.T) {
	h := newHarness(t)

	h.menu(t, intent.MenuAddContent)
	assert.Equal(t, conversation.StepAddCode, h.step())

	h.text(t, "91")
	assert.Equal(t, conversation.StepAddTitle, h.step())

	h.text(t, "Naruto")
	assert.Equal(t, conversation.StepAddPoster, h.step())

	h.media(t, "P", intent.MediaPhoto, "Naruto promo")
	assert.Equal(t, conversation.StepAddParts, h.step())

	h.media(t, "A", intent.MediaVideo, "")
	h.media(t, "B", intent.MediaDocument, "")
	assert.Equal(t, fmt.Sprintf(MsgPartAddedFmt, 2), h.messenger.Last().Text)

	_, err := h.store.GetContent(context.Background(), "91")
	require.ErrorIs(t, err, apperrors.ErrContentNotFound, "nothing is committed before /done")

	h.done(t)

	got, err := h.store.GetContent(context.Background(), "91")
	require.NoError(t, err)
	assert.Equal(t, &domain.Content{
		Code:      "91",
		Title:     "Naruto",
		PosterRef: "P",
		Caption:   "Naruto promo",
		Parts:     []string{"A", "B"},
	}, got)

	st, err := h.store.GetStat(context.Background(), "91")
	require.NoError(t, err)
	assert.Zero(t, st.Searched)
	assert.Zero(t, st.Viewed)

	assert.Equal(t, conversation.StepIdle, h.step())
	assert.Equal(t, RootKeyboard(), h.messenger.Last().Keyboard)
}

func TestAddContentReplacesExistingCode(t *testing.T) {
	h := newHarness(t)

	h.addContent(t, "91", "Naruto", "P", "A", "B")
	h.addContent(t, "91", "Naruto Shippuden", "P2", "C")

	got, err := h.store.GetContent(context.Background(), "91")
	require.NoError(t, err)
	assert.Equal(t, "Naruto Shippuden", got.Title)
	assert.Equal(t, "P2", got.PosterRef)
	assert.Equal(t, []string{"C"}, got.Parts)

	items, err := h.store.ListContent(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestAddContentValidation(t *testing.T) {
	h := newHarness(t)

	h.menu(t, intent.MenuAddContent)

	h.text(t, "abc")
	assert.Equal(t, conversation.StepAddCode, h.step())
	assert.Equal(t, MsgInvalidCode, h.messenger.Last().Text)

	h.text(t, "91")
	h.media(t, "X", intent.MediaPhoto, "")
	assert.Equal(t, conversation.StepAddTitle, h.step())
	assert.Equal(t, MsgEmptyTitle, h.messenger.Last().Text)

	h.text(t, "Naruto")
	h.media(t, "V", intent.MediaVideo, "")
	assert.Equal(t, conversation.StepAddPoster, h.step())

	h.text(t, "caption only")
	assert.Equal(t, conversation.StepAddParts, h.step())

	h.text(t, "not a part")
	assert.Equal(t, conversation.StepAddParts, h.step())
	assert.Equal(t, MsgNeedPartMedia, h.messenger.Last().Text)

	h.media(t, "IMG", intent.MediaPhoto, "")
	assert.Equal(t, MsgNeedPartMedia, h.messenger.Last().Text)

	h.done(t)

	got, err := h.store.GetContent(context.Background(), "91")
	require.NoError(t, err)
	assert.False(t, got.HasPoster())
	assert.Equal(t, "caption only", got.Caption)
	assert.Empty(t, got.Parts)
}

func TestControlAbortsWithoutCommit(t *testing.T) {
	tests := []struct {
		name  string
		abort intent.Input
	}{
		{name: "control button", abort: intent.Input{Text: intent.Label(intent.MenuControl)}},
		{name: "cancel command", abort: intent.Input{Text: "/cancel", Command: intent.CmdCancel}},
		{name: "start", abort: intent.Input{Text: "/start", Command: intent.CmdStart}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)

			h.menu(t, intent.MenuAddContent)
			h.text(t, "91")
			h.text(t, "Naruto")
			h.media(t, "P", intent.MediaPhoto, "")
			h.media(t, "A", intent.MediaDocument, "")

			h.handle(t, h.classifier.Classify(tt.abort))

			assert.Equal(t, conversation.StepIdle, h.step())
			assert.Equal(t, MsgPanel, h.messenger.Last().Text)

			_, err := h.store.GetContent(context.Background(), "91")
			assert.ErrorIs(t, err, apperrors.ErrContentNotFound)
			assert.False(t, h.store.HasStats("91"))
		})
	}
}

func TestFailedCommitKeepsState(t *testing.T) {
	h := newHarness(t)

	h.menu(t, intent.MenuAddContent)
	h.text(t, "91")
	h.text(t, "Naruto")
	h.media(t, "P", intent.MediaPhoto, "")
	h.media(t, "A", intent.MediaDocument, "")

	h.store.PutContentFn = func(context.Context, *domain.Content) error {
		return apperrors.ErrPersistenceUnavailable
	}

	handled, err := h.engine.Handle(context.Background(), admin, h.classifier.Classify(intent.Input{Text: "/done", Command: intent.CmdDone}))
	assert.True(t, handled)
	require.ErrorIs(t, err, apperrors.ErrPersistenceUnavailable)

	st, ok := h.states.Get(admin)
	require.True(t, ok)
	assert.Equal(t, conversation.StepAddParts, st.Step)
	assert.Equal(t, []string{"A"}, st.Draft.Parts)

	h.store.PutContentFn = nil
	h.done(t)

	got, err := h.store.GetContent(context.Background(), "91")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, got.Parts)
}

func TestEditThenDelete(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.addContent(t, "91", "Naruto", "P", "A", "B")

	h.menu(t, intent.MenuEditContent)
	h.text(t, "91")
	assert.Equal(t, conversation.StepEditMenu, h.step())
	assert.Equal(t, editKeyboard(), h.messenger.Last().Keyboard)

	h.menu(t, intent.MenuEditDeletePart)
	assert.Equal(t, conversation.StepEditIndex, h.step())

	h.text(t, "1")
	assert.Equal(t, conversation.StepIdle, h.step())

	got, err := h.store.GetContent(ctx, "91")
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, got.Parts)
	assert.Equal(t, "Naruto", got.Title)

	h.menu(t, intent.MenuDeleteContent)
	h.text(t, "91")
	assert.Equal(t, fmt.Sprintf(MsgDeletedFmt, "91"), h.messenger.Last().Text)

	_, err = h.store.GetContent(ctx, "91")
	assert.ErrorIs(t, err, apperrors.ErrContentNotFound)
	assert.False(t, h.store.HasStats("91"))

	h.menu(t, intent.MenuDeleteContent)
	h.text(t, "91")
	assert.Equal(t, MsgDeleteNotFound, h.messenger.Last().Text)
	assert.Equal(t, conversation.StepIdle, h.step())
}

func TestEditContent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.addContent(t, "91", "Naruto", "P", "A", "B")

	t.Run("unknown code re-prompts", func(t *testing.T) {
		h.menu(t, intent.MenuEditContent)
		h.text(t, "92")

		assert.Equal(t, conversation.StepEditCode, h.step())
		assert.Equal(t, MsgCodeNotFound, h.messenger.Last().Text)
	})

	t.Run("rename", func(t *testing.T) {
		h.text(t, "91")
		h.menu(t, intent.MenuEditRename)
		h.text(t, "Naruto: Shippuden")

		got, err := h.store.GetContent(ctx, "91")
		require.NoError(t, err)
		assert.Equal(t, "Naruto: Shippuden", got.Title)
		assert.Equal(t, []string{"A", "B"}, got.Parts)
		assert.Equal(t, conversation.StepIdle, h.step())
	})

	t.Run("append part", func(t *testing.T) {
		h.menu(t, intent.MenuEditContent)
		h.text(t, "91")
		h.menu(t, intent.MenuEditAddPart)

		h.text(t, "not media")
		assert.Equal(t, conversation.StepEditPart, h.step())

		h.media(t, "C", intent.MediaVideo, "")

		got, err := h.store.GetContent(ctx, "91")
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, got.Parts)
		assert.Equal(t, "P", got.PosterRef)
	})

	t.Run("out of range index keeps state", func(t *testing.T) {
		h.menu(t, intent.MenuEditContent)
		h.text(t, "91")
		h.menu(t, intent.MenuEditDeletePart)

		h.text(t, "9")
		assert.Equal(t, conversation.StepEditIndex, h.step())
		assert.Equal(t, MsgIndexOutOfRange, h.messenger.Last().Text)

		h.text(t, "0")
		assert.Equal(t, conversation.StepEditIndex, h.step())

		h.text(t, "x")
		assert.Equal(t, MsgInvalidIndex, h.messenger.Last().Text)

		h.text(t, "3")
		assert.Equal(t, conversation.StepIdle, h.step())

		got, err := h.store.GetContent(ctx, "91")
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, got.Parts)
	})

	t.Run("back", func(t *testing.T) {
		h.menu(t, intent.MenuEditContent)
		h.text(t, "91")
		h.menu(t, intent.MenuEditBack)

		assert.Equal(t, conversation.StepIdle, h.step())
		assert.Equal(t, MsgPanel, h.messenger.Last().Text)
	})
}

func TestDeleteContentValidation(t *testing.T) {
	h := newHarness(t)

	h.menu(t, intent.MenuDeleteContent)
	h.text(t, "abc")

	assert.Equal(t, conversation.StepDeleteCode, h.step())
	assert.Equal(t, MsgInvalidCode, h.messenger.Last().Text)
}

func TestRootMenuRestartsFlow(t *testing.T) {
	h := newHarness(t)

	h.menu(t, intent.MenuAddContent)
	h.text(t, "91")
	h.menu(t, intent.MenuDeleteContent)

	st, ok := h.states.Get(admin)
	require.True(t, ok)
	assert.Equal(t, conversation.StepDeleteCode, st.Step)
	assert.Empty(t, st.Draft.Code)
}

func TestIdleInputFallsThrough(t *testing.T) {
	h := newHarness(t)

	for _, in := range []intent.Input{
		{Text: "91"},
		{Text: "/start 91", Command: intent.CmdStart, CommandArgs: "91"},
		{Text: intent.Label(intent.MenuCatalog)},
		{CallbackData: "download:91"},
		{CallbackData: "checksub:91"},
	} {
		handled, err := h.engine.Handle(context.Background(), admin, h.classifier.Classify(in))
		require.NoError(t, err)
		assert.False(t, handled, in.Text+in.CallbackData)
	}
}

func TestEveryStepHasHandler(t *testing.T) {
	h := newHarness(t)

	for _, step := range conversation.Steps() {
		if step.Flow() == conversation.FlowContactAdmin {
			continue
		}

		_, ok := h.engine.steps[step]
		assert.True(t, ok, string(step))
	}
}

func TestCodeStats(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.addContent(t, "91", "Naruto", "P", "A")
	require.NoError(t, h.store.IncrementStat(ctx, "91", domain.StatSearched))
	require.NoError(t, h.store.IncrementStat(ctx, "91", domain.StatViewed))

	h.menu(t, intent.MenuCodeStats)
	h.text(t, "91")
	assert.Equal(t, fmt.Sprintf(MsgCodeStatsFmt, "91", 1, 1), h.messenger.Last().Text)
	assert.Equal(t, conversation.StepIdle, h.step())

	h.menu(t, intent.MenuCodeStats)
	h.text(t, "5")
	assert.Equal(t, MsgStatsNotFound, h.messenger.Last().Text)
}

func TestListCodes(t *testing.T) {
	h := newHarness(t)

	h.menu(t, intent.MenuListCodes)
	assert.Equal(t, MsgCodesEmpty, h.messenger.Last().Text)

	h.addContent(t, "10", "Bleach", "P")
	h.addContent(t, "9", "One Piece", "P")

	h.menu(t, intent.MenuListCodes)
	assert.Equal(t, MsgCodesHeader+"\n\n9. One Piece\n10. Bleach", h.messenger.Last().Text)
}

func TestStatsOverview(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	day := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	h.engine.now = func() time.Time { return day }
	h.store.Now = func() time.Time { return day }

	require.NoError(t, h.store.PutUser(ctx, 1))
	require.NoError(t, h.store.PutUser(ctx, 2))

	h.store.Now = func() time.Time { return day.AddDate(0, 0, -1) }
	require.NoError(t, h.store.PutUser(ctx, 3))

	h.addContent(t, "91", "Naruto", "P")

	h.menu(t, intent.MenuStats)
	assert.Equal(t, fmt.Sprintf(MsgStatsOverviewFmt, 1.0, 3, 1, 2), h.messenger.Last().Text)

	h.handle(t, h.classifier.Classify(intent.Input{Text: "/users 2026-02-28", Command: intent.CmdUsers, CommandArgs: "2026-02-28"}))
	assert.Equal(t, fmt.Sprintf(MsgUsersOnFmt, "2026-02-28", 1), h.messenger.Last().Text)

	h.handle(t, h.classifier.Classify(intent.Input{Text: "/users", Command: intent.CmdUsers}))
	assert.Equal(t, MsgUsersUsage, h.messenger.Last().Text)

	h.handle(t, h.classifier.Classify(intent.Input{Text: "/users soon", Command: intent.CmdUsers, CommandArgs: "soon"}))
	assert.Equal(t, MsgUsersUsage, h.messenger.Last().Text)
}

func TestPost(t *testing.T) {
	h := newHarness(t)

	h.addContent(t, "91", "Naruto", "P", "A")
	h.registry.Add(domain.ChannelAnnouncement, domain.Channel{ID: -1001, Link: "https://t.me/a"})
	h.registry.Add(domain.ChannelAnnouncement, domain.Channel{ID: -1002, Link: "https://t.me/b"})

	h.messenger.SendFn = func(_ context.Context, msg ports.Message) (int, error) {
		if msg.ChatID == -1002 {
			return 0, apperrors.ErrRecipientUnreachable
		}

		return 0, nil
	}

	h.menu(t, intent.MenuPost)
	h.text(t, "abc")
	assert.Equal(t, conversation.StepPostCode, h.step())

	h.text(t, "92")
	assert.Equal(t, MsgCodeNotFound, h.messenger.Last().Text)
	assert.Equal(t, conversation.StepPostCode, h.step())

	h.messenger.Reset()
	h.text(t, "91")

	sent := h.messenger.Sent()
	require.Len(t, sent, 2)

	post := sent[0]
	assert.Equal(t, int64(-1001), post.ChatID)
	assert.Equal(t, "P", post.Photo)
	assert.Equal(t, "https://t.me/gate_bot?start=91", post.Inline[0][0].URL)
	assert.Equal(t, fmt.Sprintf(MsgPostDoneFmt, 1, 1), sent[1].Text)
	assert.Equal(t, conversation.StepIdle, h.step())
}

func TestChannelManagement(t *testing.T) {
	h := newHarness(t)

	h.menu(t, intent.MenuChannels)
	assert.Equal(t, MsgChannelTypeAsk, h.messenger.Last().Text)

	t.Run("action before type", func(t *testing.T) {
		h.callback(t, intent.ActionChannelAction, intent.ChannelActionAdd)
		assert.Equal(t, MsgChannelChooseTypeFirst, h.messenger.Last().Text)
	})

	t.Run("add required channel", func(t *testing.T) {
		h.callback(t, intent.ActionChannelType, string(domain.ChannelRequired))
		assert.Equal(t, conversation.StepChannelAction, h.step())
		assert.Equal(t, 77, h.messenger.Edited()[0].MessageID)

		h.callback(t, intent.ActionChannelAction, intent.ChannelActionAdd)
		assert.Equal(t, conversation.StepChannelID, h.step())

		h.text(t, "not-an-id")
		assert.Equal(t, MsgChannelInvalidID, h.messenger.Last().Text)

		h.text(t, "-1001234")
		assert.Equal(t, conversation.StepChannelLink, h.step())

		h.text(t, "t.me/x")
		assert.Equal(t, MsgChannelInvalidLink, h.messenger.Last().Text)
		assert.Equal(t, conversation.StepChannelLink, h.step())

		h.text(t, "https://t.me/+x")
		assert.Equal(t, conversation.StepIdle, h.step())
		assert.Equal(t, []domain.Channel{{ID: -1001234, Link: "https://t.me/+x"}}, h.registry.Required())
		assert.Empty(t, h.registry.Announcement())
	})

	t.Run("duplicate is skipped", func(t *testing.T) {
		h.callback(t, intent.ActionChannelType, string(domain.ChannelRequired))
		h.callback(t, intent.ActionChannelAction, intent.ChannelActionAdd)
		h.text(t, "-1001234")
		h.text(t, "https://t.me/+other")

		assert.Equal(t, MsgChannelExists, h.messenger.Last().Text)
		assert.Len(t, h.registry.Required(), 1)
	})

	t.Run("list", func(t *testing.T) {
		h.callback(t, intent.ActionChannelType, string(domain.ChannelRequired))
		h.callback(t, intent.ActionChannelAction, intent.ChannelActionList)

		assert.Contains(t, h.messenger.Last().Text, "https://t.me/+x")
	})

	t.Run("delete", func(t *testing.T) {
		h.callback(t, intent.ActionChannelAction, intent.ChannelActionDelete)
		assert.Equal(t, "delete_required:-1001234", h.messenger.Last().Inline[0][0].Data)

		h.callback(t, intent.ActionDeleteRequired, "-1001234")
		assert.Empty(t, h.registry.Required())
		assert.Equal(t, fmt.Sprintf(MsgChannelDeletedFmt, -1001234), h.messenger.Last().Text)

		h.callback(t, intent.ActionDeleteRequired, "-1001234")
		assert.Equal(t, MsgChannelMissing, h.messenger.Last().Text)
	})

	t.Run("back", func(t *testing.T) {
		h.callback(t, intent.ActionChannelAction, intent.ChannelActionBack)

		assert.Equal(t, conversation.StepIdle, h.step())
		edits := h.messenger.Edited()
		assert.Equal(t, MsgChannelTypeAsk, edits[len(edits)-1].Text)
	})
}

func TestAdminManagement(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	t.Run("add", func(t *testing.T) {
		h.menu(t, intent.MenuAdmins)
		h.menu(t, intent.MenuAdminAdd)

		h.text(t, "12ab")
		assert.Equal(t, MsgAdminInvalidID, h.messenger.Last().Text)
		assert.Equal(t, conversation.StepAdminAddID, h.step())

		h.messenger.Reset()
		h.text(t, "3000")

		sent := h.messenger.Sent()
		require.Len(t, sent, 2)
		assert.Equal(t, int64(3000), sent[0].ChatID)
		assert.Equal(t, MsgAdminWelcome, sent[0].Text)
		assert.Equal(t, fmt.Sprintf(MsgAdminAddedFmt, 3000), sent[1].Text)

		ids, err := h.store.ListAdmins(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int64{admin, 3000}, ids)

		handled, err := h.engine.Handle(ctx, 3000, h.classifier.Classify(intent.Input{Text: intent.Label(intent.MenuStats)}))
		require.NoError(t, err)
		assert.True(t, handled, "new administrator is recognized")
	})

	t.Run("add existing", func(t *testing.T) {
		h.menu(t, intent.MenuAdminAdd)
		h.text(t, "3000")

		assert.Equal(t, MsgAdminExists, h.messenger.Last().Text)
		assert.Equal(t, conversation.StepIdle, h.step())
	})

	t.Run("notify failure still adds", func(t *testing.T) {
		h.messenger.SendFn = func(_ context.Context, msg ports.Message) (int, error) {
			if msg.ChatID == 4000 {
				return 0, apperrors.ErrRecipientUnreachable
			}

			return 0, nil
		}
		defer func() { h.messenger.SendFn = nil }()

		h.menu(t, intent.MenuAdminAdd)
		h.text(t, "4000")

		assert.Equal(t, fmt.Sprintf(MsgAdminAddedFmt, 4000), h.messenger.Last().Text)
	})

	t.Run("remove unknown", func(t *testing.T) {
		h.menu(t, intent.MenuAdminRemove)
		h.text(t, "5555")

		assert.Equal(t, MsgAdminMissing, h.messenger.Last().Text)
	})

	t.Run("remove", func(t *testing.T) {
		h.menu(t, intent.MenuAdminRemove)
		h.text(t, "3000")

		assert.Equal(t, fmt.Sprintf(MsgAdminRemovedFmt, 3000), h.messenger.Last().Text)

		handled, err := h.engine.Handle(ctx, 3000, h.classifier.Classify(intent.Input{Text: intent.Label(intent.MenuStats)}))
		require.NoError(t, err)
		assert.False(t, handled)
	})

	t.Run("list", func(t *testing.T) {
		h.menu(t, intent.MenuAdminList)

		last := h.messenger.Last()
		assert.Contains(t, last.Text, "• 1000")
		assert.Contains(t, last.Text, "• 4000")
		assert.Equal(t, adminsKeyboard(), last.Keyboard)
	})
}

func TestBroadcastFlow(t *testing.T) {
	h := newHarness(t)
	h.broadcaster.result = broadcast.Result{RunID: "r1", Success: 40, Failure: 2}

	h.menu(t, intent.MenuBroadcast)

	for _, bad := range []string{"@src", "@src 1 2", "@src abc", "kanal 123", "@ 5", "-100x 5"} {
		h.text(t, bad)
		assert.Equal(t, conversation.StepBroadcastInput, h.step(), bad)
	}

	assert.Zero(t, h.broadcaster.calls)

	h.text(t, "@src 123")

	assert.Equal(t, 1, h.broadcaster.calls)
	assert.Equal(t, "@src", h.broadcaster.source)
	assert.Equal(t, 123, h.broadcaster.messageID)
	assert.Equal(t, fmt.Sprintf(MsgBroadcastDoneFmt, 40, 2), h.messenger.Last().Text)
	assert.Equal(t, conversation.StepIdle, h.step())
}

func TestParseBroadcastInput(t *testing.T) {
	tests := []struct {
		in      string
		source  string
		id      int
		wantErr error
	}{
		{in: "@chan 12", source: "@chan", id: 12},
		{in: "  -100123   7 ", source: "-100123", id: 7},
		{in: "@chan", wantErr: apperrors.ErrInvalidBroadcastInput},
		{in: "", wantErr: apperrors.ErrInvalidBroadcastInput},
		{in: "@chan x", wantErr: apperrors.ErrInvalidID},
		{in: "@chan -1", wantErr: apperrors.ErrInvalidID},
		{in: "kanal 123", wantErr: apperrors.ErrInvalidBroadcastInput},
		{in: "@ 123", wantErr: apperrors.ErrInvalidBroadcastInput},
		{in: "12ab 3", wantErr: apperrors.ErrInvalidBroadcastInput},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			source, id, err := ParseBroadcastInput(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.source, source)
			assert.Equal(t, tt.id, id)
		})
	}
}

func TestReplyToUser(t *testing.T) {
	h := newHarness(t)

	h.callback(t, intent.ActionReplyToUser, "777")
	assert.Equal(t, conversation.StepReplyText, h.step())

	h.messenger.Reset()
	h.text(t, "Hello there")

	sent := h.messenger.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, int64(777), sent[0].ChatID)
	assert.Equal(t, fmt.Sprintf(MsgReplyToUserFmt, "Hello there"), sent[0].Text)
	assert.Equal(t, MsgReplySent, sent[1].Text)
	assert.Equal(t, conversation.StepIdle, h.step())
}

func TestHelpPages(t *testing.T) {
	h := newHarness(t)

	h.menu(t, intent.MenuHelp)
	index := h.messenger.Last()
	require.Len(t, index.Inline, len(helpPages))
	assert.Equal(t, "help:add", index.Inline[0][0].Data)

	h.callback(t, intent.ActionHelp, "faq")
	page := h.messenger.Edited()[0]
	assert.Contains(t, page.Text, "https://t.me/gate_bot?start=91")
	assert.Equal(t, intent.ActionHelpBack, page.Inline[0][0].Data)

	h.callback(t, intent.ActionHelpBack, "")
	assert.Equal(t, MsgHelpIndex, h.messenger.Edited()[1].Text)
}
