// Package delivery resolves a code to a catalog record, applies the
// subscription gate and sends the record's promo post and parts.
package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/lueurxax/content-gate-bot/internal/core/domain"
	apperrors "github.com/lueurxax/content-gate-bot/internal/core/errors"
	"github.com/lueurxax/content-gate-bot/internal/core/ports"
	"github.com/lueurxax/content-gate-bot/internal/gate"
	"github.com/lueurxax/content-gate-bot/internal/intent"
	"github.com/lueurxax/content-gate-bot/internal/platform/observability"
)

const (
	logFieldUserID = "user_id"
	logFieldCode   = "code"
	logFieldPart   = "part"

	// DefaultPartDelay spaces consecutive parts sent to one user.
	DefaultPartDelay = 100 * time.Millisecond
)

// Catalog is the part of the persistence gateway the pipeline reads and counts on.
type Catalog interface {
	GetContent(ctx context.Context, code string) (*domain.Content, error)
	ListContent(ctx context.Context) ([]domain.Content, error)
	EnsureStatRow(ctx context.Context, code string) error
	IncrementStat(ctx context.Context, code string, field domain.StatField) error
}

// Gate reports the required channels a user has not joined.
type Gate interface {
	Evaluate(ctx context.Context, userID int64) []domain.Channel
	Label(ctx context.Context, channels []domain.Channel) []gate.Labeled
}

// Pipeline serves content requests. Users are addressed in their private chat,
// so a user id doubles as the chat id.
type Pipeline struct {
	catalog   Catalog
	gate      Gate
	messenger ports.Messenger
	partDelay time.Duration
	logger    *zerolog.Logger
}

// New creates a pipeline. partDelay is the pause between consecutive parts.
func New(catalog Catalog, g Gate, messenger ports.Messenger, partDelay time.Duration, logger *zerolog.Logger) *Pipeline {
	return &Pipeline{
		catalog:   catalog,
		gate:      g,
		messenger: messenger,
		partDelay: partDelay,
		logger:    logger,
	}
}

// HandleRequest serves a code sent by a user. Nothing about the record is
// revealed until the gate passes.
func (p *Pipeline) HandleRequest(ctx context.Context, userID int64, code string) error {
	if err := p.catalog.EnsureStatRow(ctx, code); err != nil {
		return fmt.Errorf("init stats for %s: %w", code, err)
	}

	if unresolved := p.gate.Evaluate(ctx, userID); len(unresolved) > 0 {
		observability.GateRequests.WithLabelValues(observability.ResultBlocked).Inc()

		_, err := p.messenger.Send(ctx, ports.Message{
			ChatID: userID,
			Text:   msgJoinRequired,
			Inline: p.joinKeyboard(ctx, unresolved, code, btnCheck),
		})
		if err != nil {
			return fmt.Errorf("send join prompt: %w", err)
		}

		return nil
	}

	return p.serve(ctx, userID, code)
}

// HandleRecheck re-runs the gate for a pending request. promptID is the join
// prompt the check button was attached to.
func (p *Pipeline) HandleRecheck(ctx context.Context, userID int64, code string, promptID int) error {
	if unresolved := p.gate.Evaluate(ctx, userID); len(unresolved) > 0 {
		observability.GateRequests.WithLabelValues(observability.ResultBlocked).Inc()

		keyboard := p.joinKeyboard(ctx, unresolved, code, btnCheckAgain)
		err := p.messenger.EditText(ctx, userID, promptID, msgStillNotJoined, keyboard)
		if err != nil && !apperrors.Is(err, apperrors.ErrMessageNotModified) {
			// The prompt is gone; a fresh one is equivalent.
			if _, sendErr := p.messenger.Send(ctx, ports.Message{ChatID: userID, Text: msgStillNotJoined, Inline: keyboard}); sendErr != nil {
				return fmt.Errorf("send join prompt: %w", sendErr)
			}
		}

		return nil
	}

	if err := p.messenger.Delete(ctx, userID, promptID); err != nil {
		p.logger.Debug().Err(err).Int64(logFieldUserID, userID).Msg("failed to delete join prompt")
	}

	return p.serve(ctx, userID, code)
}

// serve runs once the gate has passed: counts the search and sends the promo post.
func (p *Pipeline) serve(ctx context.Context, userID int64, code string) error {
	observability.GateRequests.WithLabelValues(observability.ResultPassed).Inc()

	if err := p.catalog.IncrementStat(ctx, code, domain.StatSearched); err != nil {
		return fmt.Errorf("count search for %s: %w", code, err)
	}

	content, err := p.catalog.GetContent(ctx, code)
	if apperrors.Is(err, apperrors.ErrContentNotFound) {
		return p.notify(ctx, userID, msgCodeNotFound)
	}

	if err != nil {
		return fmt.Errorf("get content %s: %w", code, err)
	}

	return p.sendPromo(ctx, userID, content)
}

func (p *Pipeline) sendPromo(ctx context.Context, userID int64, c *domain.Content) error {
	msg := ports.Message{
		ChatID: userID,
		Text:   c.Caption,
		Inline: [][]ports.Button{{{Text: btnWatch, Data: intent.CallbackData(intent.ActionDownload, c.Code)}}},
	}

	if c.HasPoster() {
		msg.Photo = c.PosterRef
	} else if msg.Text == "" {
		msg.Text = msgPromoFallback
	}

	if _, err := p.messenger.Send(ctx, msg); err != nil {
		p.logger.Warn().Err(err).Int64(logFieldUserID, userID).Str(logFieldCode, c.Code).Msg("failed to send promo post")

		return p.notify(ctx, userID, msgPromoFailed)
	}

	return nil
}

// HandleDownload sends every part of the record in order. A part that fails
// to send is logged and skipped.
func (p *Pipeline) HandleDownload(ctx context.Context, userID int64, code, callbackID string) error {
	content, err := p.catalog.GetContent(ctx, code)
	if apperrors.Is(err, apperrors.ErrContentNotFound) {
		return p.notify(ctx, userID, msgCodeNotFound)
	}

	if err != nil {
		return fmt.Errorf("get content %s: %w", code, err)
	}

	if len(content.Parts) == 0 {
		return p.notify(ctx, userID, msgNoParts)
	}

	if callbackID != "" {
		if err := p.messenger.AnswerCallback(ctx, callbackID, msgLoading); err != nil {
			p.logger.Debug().Err(err).Msg("failed to answer callback")
		}
	}

	if err := p.catalog.IncrementStat(ctx, code, domain.StatViewed); err != nil {
		p.logger.Error().Err(err).Str(logFieldCode, code).Msg("failed to count view")
	}

	pacer := rate.NewLimiter(rate.Every(p.partDelay), 1)

	for i, ref := range content.Parts {
		if err := pacer.Wait(ctx); err != nil {
			return fmt.Errorf("pace parts: %w", err)
		}

		if _, err := p.messenger.Send(ctx, ports.Message{ChatID: userID, Document: ref}); err != nil {
			observability.DeliveryParts.WithLabelValues(observability.StatusFailed).Inc()
			p.logger.Warn().Err(err).
				Int64(logFieldUserID, userID).
				Str(logFieldCode, code).
				Int(logFieldPart, i+1).
				Msg("failed to deliver part")

			continue
		}

		observability.DeliveryParts.WithLabelValues(observability.StatusSent).Inc()
	}

	return nil
}

// HandleCatalog sends every code with its title, numerically ordered, in pages.
func (p *Pipeline) HandleCatalog(ctx context.Context, userID int64) error {
	items, err := p.catalog.ListContent(ctx)
	if err != nil {
		return fmt.Errorf("list content: %w", err)
	}

	if len(items) == 0 {
		return p.notify(ctx, userID, msgCatalogEmpty)
	}

	for _, page := range CatalogPages(msgCatalogHeader, items, CatalogPageSize) {
		if err := p.notify(ctx, userID, page); err != nil {
			return err
		}
	}

	return nil
}

func (p *Pipeline) joinKeyboard(ctx context.Context, unresolved []domain.Channel, code, checkLabel string) [][]ports.Button {
	labeled := p.gate.Label(ctx, unresolved)
	rows := make([][]ports.Button, 0, len(labeled)+1)

	for _, ch := range labeled {
		rows = append(rows, []ports.Button{{Text: btnJoinPrefix + ch.Name, URL: ch.Link}})
	}

	rows = append(rows, []ports.Button{{Text: checkLabel, Data: intent.CallbackData(intent.ActionCheckSub, code)}})

	return rows
}

func (p *Pipeline) notify(ctx context.Context, userID int64, text string) error {
	if _, err := p.messenger.Send(ctx, ports.Message{ChatID: userID, Text: text}); err != nil {
		return fmt.Errorf("notify user %d: %w", userID, err)
	}

	return nil
}
