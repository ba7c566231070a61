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

var incrementQueries = map[domain.StatField]string{
	domain.StatSearched: `UPDATE stats SET searched = searched + 1 WHERE code = $1`,
	domain.StatViewed:   `UPDATE stats SET viewed = viewed + 1 WHERE code = $1`,
}

// EnsureStatRow creates a zeroed counter row for code if none exists.
func (db *DB) EnsureStatRow(ctx context.Context, code string) error {
	return db.do(ctx, func(ctx context.Context, pool *pgxpool.Pool) error {
		if _, err := pool.Exec(ctx, `INSERT INTO stats (code, searched, viewed) VALUES ($1, 0, 0) ON CONFLICT DO NOTHING`, code); err != nil {
			return fmt.Errorf("ensure stats %s: %w", code, err)
		}

		return nil
	})
}

// IncrementStat bumps one counter of an existing row. Fields other than
// searched and viewed are ignored, as are codes without a row.
func (db *DB) IncrementStat(ctx context.Context, code string, field domain.StatField) error {
	query, ok := incrementQueries[field]
	if !ok {
		db.logger.Debug().Str(logFieldCode, code).Str("field", string(field)).Msg("ignoring unknown stat field")

		return nil
	}

	return db.do(ctx, func(ctx context.Context, pool *pgxpool.Pool) error {
		if _, err := pool.Exec(ctx, query, code); err != nil {
			return fmt.Errorf("increment %s for %s: %w", field, code, err)
		}

		return nil
	})
}

// GetStat returns the counters for code.
func (db *DB) GetStat(ctx context.Context, code string) (*domain.Stats, error) {
	st := domain.Stats{Code: code}

	err := db.do(ctx, func(ctx context.Context, pool *pgxpool.Pool) error {
		err := pool.QueryRow(ctx, `SELECT searched, viewed FROM stats WHERE code = $1`, code).Scan(&st.Searched, &st.Viewed)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("get stats %s: %w", code, apperrors.ErrStatsNotFound)
		}

		if err != nil {
			return fmt.Errorf("get stats %s: %w", code, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &st, nil
}
