package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lueurxax/content-gate-bot/internal/core/domain"
	apperrors "github.com/lueurxax/content-gate-bot/internal/core/errors"
)

const contentColumns = `code, title, poster_ref, caption, parts`

// PutContent inserts the record or fully replaces the one with the same code.
func (db *DB) PutContent(ctx context.Context, c *domain.Content) error {
	parts := c.Parts
	if parts == nil {
		parts = []string{}
	}

	return db.do(ctx, func(ctx context.Context, pool *pgxpool.Pool) error {
		_, err := pool.Exec(ctx, `
			INSERT INTO content (code, title, poster_ref, caption, parts)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (code) DO UPDATE SET
				title = EXCLUDED.title,
				poster_ref = EXCLUDED.poster_ref,
				caption = EXCLUDED.caption,
				parts = EXCLUDED.parts`,
			c.Code, SanitizeUTF8(c.Title), c.PosterRef, SanitizeUTF8(c.Caption), parts)
		if err != nil {
			return fmt.Errorf("put content %s: %w", c.Code, err)
		}

		return nil
	})
}

// GetContent returns the record for code.
func (db *DB) GetContent(ctx context.Context, code string) (*domain.Content, error) {
	var c domain.Content

	err := db.do(ctx, func(ctx context.Context, pool *pgxpool.Pool) error {
		row := pool.QueryRow(ctx, `SELECT `+contentColumns+` FROM content WHERE code = $1`, code)

		err := scanContent(row, &c)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("get content %s: %w", code, apperrors.ErrContentNotFound)
		}

		if err != nil {
			return fmt.Errorf("get content %s: %w", code, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// ListContent returns every record. Numeric codes come first in numeric order,
// followed by any other codes in lexical order.
func (db *DB) ListContent(ctx context.Context) ([]domain.Content, error) {
	var items []domain.Content

	err := db.do(ctx, func(ctx context.Context, pool *pgxpool.Pool) error {
		rows, err := pool.Query(ctx, `
			SELECT `+contentColumns+` FROM content
			ORDER BY
				code !~ '^[0-9]+$',
				CASE WHEN code ~ '^[0-9]+$' THEN code::numeric END,
				code`)
		if err != nil {
			return fmt.Errorf("list content: %w", err)
		}

		items, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Content, error) {
			var c domain.Content
			err := scanContent(row, &c)

			return c, err
		})
		if err != nil {
			return fmt.Errorf("scan content: %w", err)
		}

		return nil
	})

	return items, err
}

// DeleteContent removes the counters and the record in one transaction.
// It reports whether a record existed.
func (db *DB) DeleteContent(ctx context.Context, code string) (bool, error) {
	var deleted bool

	err := db.do(ctx, func(ctx context.Context, pool *pgxpool.Pool) error {
		return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, `DELETE FROM stats WHERE code = $1`, code); err != nil {
				return fmt.Errorf("delete stats %s: %w", code, err)
			}

			tag, err := tx.Exec(ctx, `DELETE FROM content WHERE code = $1`, code)
			if err != nil {
				return fmt.Errorf("delete content %s: %w", code, err)
			}

			deleted = tag.RowsAffected() == 1

			return nil
		})
	})

	return deleted, err
}

// UpdateTitle changes the title of an existing record.
func (db *DB) UpdateTitle(ctx context.Context, code, title string) error {
	return db.do(ctx, func(ctx context.Context, pool *pgxpool.Pool) error {
		tag, err := pool.Exec(ctx, `UPDATE content SET title = $2 WHERE code = $1`, code, SanitizeUTF8(title))
		if err != nil {
			return fmt.Errorf("update title %s: %w", code, err)
		}

		if tag.RowsAffected() == 0 {
			return fmt.Errorf("update title %s: %w", code, apperrors.ErrContentNotFound)
		}

		return nil
	})
}

// AppendPart adds ref to the end of the record's parts.
func (db *DB) AppendPart(ctx context.Context, code, ref string) error {
	return db.do(ctx, func(ctx context.Context, pool *pgxpool.Pool) error {
		tag, err := pool.Exec(ctx, `UPDATE content SET parts = array_append(parts, $2) WHERE code = $1`, code, ref)
		if err != nil {
			return fmt.Errorf("append part to %s: %w", code, err)
		}

		if tag.RowsAffected() == 0 {
			return fmt.Errorf("append part to %s: %w", code, apperrors.ErrContentNotFound)
		}

		return nil
	})
}

// RemovePart removes the part at the 1-based index, keeping the order of the rest.
func (db *DB) RemovePart(ctx context.Context, code string, index int) error {
	return db.do(ctx, func(ctx context.Context, pool *pgxpool.Pool) error {
		return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
			var parts []string

			err := tx.QueryRow(ctx, `SELECT parts FROM content WHERE code = $1 FOR UPDATE`, code).Scan(&parts)
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("remove part %s: %w", code, apperrors.ErrContentNotFound)
			}

			if err != nil {
				return fmt.Errorf("remove part %s: %w", code, err)
			}

			rest, err := removeAt(parts, index)
			if err != nil {
				return fmt.Errorf("remove part %d of %s: %w", index, code, err)
			}

			if _, err := tx.Exec(ctx, `UPDATE content SET parts = $2 WHERE code = $1`, code, rest); err != nil {
				return fmt.Errorf("remove part %d of %s: %w", index, code, err)
			}

			return nil
		})
	})
}

func scanContent(row pgx.Row, c *domain.Content) error {
	if err := row.Scan(&c.Code, &c.Title, &c.PosterRef, &c.Caption, &c.Parts); err != nil {
		return err //nolint:wrapcheck // callers wrap with the code
	}

	return nil
}

// removeAt returns a copy of parts without the element at the 1-based index.
func removeAt(parts []string, index int) ([]string, error) {
	if index < 1 || index > len(parts) {
		return nil, apperrors.ErrPartIndexOutOfRange
	}

	rest := make([]string, 0, len(parts)-1)
	rest = append(rest, parts[:index-1]...)
	rest = append(rest, parts[index:]...)

	return rest, nil
}
