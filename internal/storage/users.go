package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PutUser records the user once. Repeated calls are no-ops.
func (db *DB) PutUser(ctx context.Context, id int64) error {
	return db.do(ctx, func(ctx context.Context, pool *pgxpool.Pool) error {
		if _, err := pool.Exec(ctx, `INSERT INTO users (user_id) VALUES ($1) ON CONFLICT DO NOTHING`, id); err != nil {
			return fmt.Errorf("put user %d: %w", id, err)
		}

		return nil
	})
}

// CountUsers returns the number of recorded users.
func (db *DB) CountUsers(ctx context.Context) (int, error) {
	var n int

	err := db.do(ctx, func(ctx context.Context, pool *pgxpool.Pool) error {
		if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
			return fmt.Errorf("count users: %w", err)
		}

		return nil
	})

	return n, err
}

// CountUsersCreatedOn counts users first seen on the calendar day of day,
// in day's location.
func (db *DB) CountUsersCreatedOn(ctx context.Context, day time.Time) (int, error) {
	from, to := dayBounds(day)

	var n int

	err := db.do(ctx, func(ctx context.Context, pool *pgxpool.Pool) error {
		err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE created_at >= $1 AND created_at < $2`, from, to).Scan(&n)
		if err != nil {
			return fmt.Errorf("count users on %s: %w", from.Format(time.DateOnly), err)
		}

		return nil
	})

	return n, err
}

// ListUserIDs returns every recorded user id in ascending order.
func (db *DB) ListUserIDs(ctx context.Context) ([]int64, error) {
	var ids []int64

	err := db.do(ctx, func(ctx context.Context, pool *pgxpool.Pool) error {
		rows, err := pool.Query(ctx, `SELECT user_id FROM users ORDER BY user_id`)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}

		ids, err = pgx.CollectRows(rows, pgx.RowTo[int64])
		if err != nil {
			return fmt.Errorf("scan users: %w", err)
		}

		return nil
	})

	return ids, err
}

// dayBounds returns the half-open interval covering day's calendar date.
func dayBounds(day time.Time) (time.Time, time.Time) {
	y, m, d := day.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, day.Location())

	return from, from.AddDate(0, 0, 1)
}
