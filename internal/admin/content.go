package admin

import (
	"context"
	"fmt"
	"strconv"

	"github.com/lueurxax/content-gate-bot/internal/conversation"
	"github.com/lueurxax/content-gate-bot/internal/core/domain"
	apperrors "github.com/lueurxax/content-gate-bot/internal/core/errors"
	"github.com/lueurxax/content-gate-bot/internal/core/ports"
	"github.com/lueurxax/content-gate-bot/internal/delivery"
	"github.com/lueurxax/content-gate-bot/internal/intent"
)

func isPartMedia(in intent.Intent) bool {
	return in.Kind == intent.KindMedia && (in.MediaKind == intent.MediaVideo || in.MediaKind == intent.MediaDocument)
}

// Add content: code, title, promo post, then parts until /done.

func (e *Engine) startAddContent(ctx context.Context, actor int64) error {
	return e.advance(ctx, actor, conversation.State{Step: conversation.StepAddCode}, MsgAskCode, controlKeyboard())
}

func (e *Engine) addCode(ctx context.Context, actor int64, st conversation.State, in intent.Intent) error {
	if !intent.IsNumeric(in.Text) {
		return e.say(ctx, actor, MsgInvalidCode)
	}

	next := st.With(conversation.StepAddTitle)
	next.Draft.Code = in.Text

	return e.advance(ctx, actor, next, MsgAskTitle, nil)
}

func (e *Engine) addTitle(ctx context.Context, actor int64, st conversation.State, in intent.Intent) error {
	if in.Kind == intent.KindMedia || in.Text == "" {
		return e.say(ctx, actor, MsgEmptyTitle)
	}

	next := st.With(conversation.StepAddPoster)
	next.Draft.Title = in.Text

	return e.advance(ctx, actor, next, MsgAskPoster, nil)
}

func (e *Engine) addPoster(ctx context.Context, actor int64, st conversation.State, in intent.Intent) error {
	next := st.With(conversation.StepAddParts)
	next.Draft.Parts = nil

	switch {
	case in.Kind == intent.KindMedia && in.MediaKind == intent.MediaPhoto:
		next.Draft.PosterRef = in.Media
		next.Draft.Caption = in.Caption
	case in.Kind != intent.KindMedia && in.Text != "":
		next.Draft.PosterRef = ""
		next.Draft.Caption = in.Text
	default:
		return e.say(ctx, actor, MsgAskPoster)
	}

	return e.advance(ctx, actor, next, MsgAskParts, nil)
}

func (e *Engine) addParts(ctx context.Context, actor int64, st conversation.State, in intent.Intent) error {
	if in.Kind == intent.KindDone {
		return e.commitContent(ctx, actor, st.Draft)
	}

	if !isPartMedia(in) {
		return e.say(ctx, actor, MsgNeedPartMedia)
	}

	next := st.With(conversation.StepAddParts)
	next.Draft.Parts = append(next.Draft.Parts, in.Media)

	return e.advance(ctx, actor, next, fmt.Sprintf(MsgPartAddedFmt, len(next.Draft.Parts)), nil)
}

func (e *Engine) commitContent(ctx context.Context, actor int64, d conversation.Draft) error {
	c := &domain.Content{
		Code:      d.Code,
		Title:     d.Title,
		PosterRef: d.PosterRef,
		Caption:   d.Caption,
		Parts:     d.Parts,
	}

	if err := e.store.PutContent(ctx, c); err != nil {
		return fmt.Errorf("save content %s: %w", d.Code, err)
	}

	if err := e.store.EnsureStatRow(ctx, d.Code); err != nil {
		return fmt.Errorf("init stats for %s: %w", d.Code, err)
	}

	e.logger.Info().Int64(logFieldUserID, actor).Str(logFieldCode, d.Code).Int("parts", len(d.Parts)).Msg("content saved")

	return e.finish(ctx, actor, fmt.Sprintf(MsgContentSavedFmt, d.Code, d.Title, d.Caption, len(d.Parts)))
}

// Edit content: pick a code, then rename, append a part or delete a part.

func (e *Engine) startEditContent(ctx context.Context, actor int64) error {
	return e.advance(ctx, actor, conversation.State{Step: conversation.StepEditCode}, MsgEditAskCode, controlKeyboard())
}

func (e *Engine) editCode(ctx context.Context, actor int64, st conversation.State, in intent.Intent) error {
	if !intent.IsNumeric(in.Text) {
		return e.say(ctx, actor, MsgInvalidCode)
	}

	content, err := e.store.GetContent(ctx, in.Text)
	if apperrors.Is(err, apperrors.ErrContentNotFound) {
		return e.say(ctx, actor, MsgCodeNotFound)
	}

	if err != nil {
		return fmt.Errorf("get content %s: %w", in.Text, err)
	}

	next := st.With(conversation.StepEditMenu)
	next.Draft.Code = content.Code

	return e.advance(ctx, actor, next, fmt.Sprintf(MsgEditMenuFmt, content.Code, content.Title, len(content.Parts)), editKeyboard())
}

func (e *Engine) editMenu(ctx context.Context, actor int64, st conversation.State, in intent.Intent) error {
	if in.Kind != intent.KindMenu {
		return e.reply(ctx, actor, MsgUseButtons, editKeyboard())
	}

	switch in.Menu {
	case intent.MenuEditRename:
		return e.advance(ctx, actor, st.With(conversation.StepEditTitle), MsgEditAskTitle, controlKeyboard())
	case intent.MenuEditAddPart:
		return e.advance(ctx, actor, st.With(conversation.StepEditPart), MsgEditAskPart, controlKeyboard())
	case intent.MenuEditDeletePart:
		content, err := e.store.GetContent(ctx, st.Draft.Code)
		if apperrors.Is(err, apperrors.ErrContentNotFound) {
			return e.finish(ctx, actor, MsgCodeNotFound)
		}

		if err != nil {
			return fmt.Errorf("get content %s: %w", st.Draft.Code, err)
		}

		return e.advance(ctx, actor, st.With(conversation.StepEditIndex), fmt.Sprintf(MsgEditAskIndexFmt, len(content.Parts)), controlKeyboard())
	case intent.MenuEditBack:
		return e.Abort(ctx, actor)
	default:
		return e.reply(ctx, actor, MsgUseButtons, editKeyboard())
	}
}

func (e *Engine) editTitle(ctx context.Context, actor int64, st conversation.State, in intent.Intent) error {
	if in.Kind == intent.KindMedia || in.Text == "" {
		return e.say(ctx, actor, MsgEmptyTitle)
	}

	err := e.store.UpdateTitle(ctx, st.Draft.Code, in.Text)
	if apperrors.Is(err, apperrors.ErrContentNotFound) {
		return e.finish(ctx, actor, MsgCodeNotFound)
	}

	if err != nil {
		return fmt.Errorf("update title %s: %w", st.Draft.Code, err)
	}

	e.logger.Info().Int64(logFieldUserID, actor).Str(logFieldCode, st.Draft.Code).Msg("title updated")

	return e.finish(ctx, actor, MsgTitleUpdated)
}

func (e *Engine) editPart(ctx context.Context, actor int64, st conversation.State, in intent.Intent) error {
	if !isPartMedia(in) {
		return e.say(ctx, actor, MsgEditAskPart)
	}

	err := e.store.AppendPart(ctx, st.Draft.Code, in.Media)
	if apperrors.Is(err, apperrors.ErrContentNotFound) {
		return e.finish(ctx, actor, MsgCodeNotFound)
	}

	if err != nil {
		return fmt.Errorf("append part to %s: %w", st.Draft.Code, err)
	}

	e.logger.Info().Int64(logFieldUserID, actor).Str(logFieldCode, st.Draft.Code).Msg("part appended")

	return e.finish(ctx, actor, MsgPartAppended)
}

func (e *Engine) editIndex(ctx context.Context, actor int64, st conversation.State, in intent.Intent) error {
	if !intent.IsNumeric(in.Text) {
		return e.say(ctx, actor, MsgInvalidIndex)
	}

	index, err := strconv.Atoi(in.Text)
	if err != nil {
		return e.say(ctx, actor, MsgInvalidIndex)
	}

	err = e.store.RemovePart(ctx, st.Draft.Code, index)

	switch {
	case apperrors.Is(err, apperrors.ErrPartIndexOutOfRange):
		return e.say(ctx, actor, MsgIndexOutOfRange)
	case apperrors.Is(err, apperrors.ErrContentNotFound):
		return e.finish(ctx, actor, MsgCodeNotFound)
	case err != nil:
		return fmt.Errorf("remove part %d of %s: %w", index, st.Draft.Code, err)
	}

	e.logger.Info().Int64(logFieldUserID, actor).Str(logFieldCode, st.Draft.Code).Int("part", index).Msg("part removed")

	return e.finish(ctx, actor, MsgPartRemoved)
}

// Delete content.

func (e *Engine) startDeleteContent(ctx context.Context, actor int64) error {
	return e.advance(ctx, actor, conversation.State{Step: conversation.StepDeleteCode}, MsgDeleteAskCode, controlKeyboard())
}

func (e *Engine) deleteCode(ctx context.Context, actor int64, _ conversation.State, in intent.Intent) error {
	if !intent.IsNumeric(in.Text) {
		return e.say(ctx, actor, MsgInvalidCode)
	}

	deleted, err := e.store.DeleteContent(ctx, in.Text)
	if err != nil {
		return fmt.Errorf("delete content %s: %w", in.Text, err)
	}

	if !deleted {
		return e.finish(ctx, actor, MsgDeleteNotFound)
	}

	e.logger.Info().Int64(logFieldUserID, actor).Str(logFieldCode, in.Text).Msg("content deleted")

	return e.finish(ctx, actor, fmt.Sprintf(MsgDeletedFmt, in.Text))
}

// Code statistics.

func (e *Engine) startCodeStats(ctx context.Context, actor int64) error {
	return e.advance(ctx, actor, conversation.State{Step: conversation.StepStatsCode}, MsgStatsAskCode, controlKeyboard())
}

func (e *Engine) statsCode(ctx context.Context, actor int64, _ conversation.State, in intent.Intent) error {
	if in.Kind == intent.KindMedia || in.Text == "" {
		return e.say(ctx, actor, MsgStatsAskCode)
	}

	st, err := e.store.GetStat(ctx, in.Text)
	if apperrors.Is(err, apperrors.ErrStatsNotFound) {
		return e.finish(ctx, actor, MsgStatsNotFound)
	}

	if err != nil {
		return fmt.Errorf("get stats %s: %w", in.Text, err)
	}

	return e.finish(ctx, actor, e.printer.Sprintf(MsgCodeStatsFmt, st.Code, st.Searched, st.Viewed))
}

// Code list.

func (e *Engine) listCodes(ctx context.Context, actor int64) error {
	items, err := e.store.ListContent(ctx)
	if err != nil {
		return fmt.Errorf("list content: %w", err)
	}

	if len(items) == 0 {
		return e.say(ctx, actor, MsgCodesEmpty)
	}

	for _, page := range delivery.CatalogPages(MsgCodesHeader, items, delivery.CatalogPageSize) {
		if err := e.say(ctx, actor, page); err != nil {
			return err
		}
	}

	return nil
}

// Post a record to the announcement channels.

func (e *Engine) startPost(ctx context.Context, actor int64) error {
	return e.advance(ctx, actor, conversation.State{Step: conversation.StepPostCode}, MsgPostAskCode, controlKeyboard())
}

func (e *Engine) postCode(ctx context.Context, actor int64, _ conversation.State, in intent.Intent) error {
	if !intent.IsNumeric(in.Text) {
		return e.say(ctx, actor, MsgInvalidCode)
	}

	content, err := e.store.GetContent(ctx, in.Text)
	if apperrors.Is(err, apperrors.ErrContentNotFound) {
		return e.say(ctx, actor, MsgCodeNotFound)
	}

	if err != nil {
		return fmt.Errorf("get content %s: %w", in.Text, err)
	}

	targets := e.channels.Announcement()
	if len(targets) == 0 {
		return e.finish(ctx, actor, MsgPostNoChannels)
	}

	button := [][]ports.Button{{{Text: BtnPostDownload, URL: delivery.DeepLink(e.botUsername, content.Code)}}}

	var delivered, failed int

	for _, ch := range targets {
		msg := ports.Message{ChatID: ch.ID, Text: content.Caption, Photo: content.PosterRef, Inline: button}
		if msg.Photo == "" && msg.Text == "" {
			msg.Text = content.Title
		}

		if _, err := e.messenger.Send(ctx, msg); err != nil {
			failed++

			e.logger.Warn().Err(err).Int64(logFieldChannelID, ch.ID).Str(logFieldCode, content.Code).Msg("failed to post to channel")

			continue
		}

		delivered++
	}

	return e.finish(ctx, actor, fmt.Sprintf(MsgPostDoneFmt, delivered, failed))
}
