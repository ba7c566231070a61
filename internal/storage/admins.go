package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ListAdmins returns the administrator ids in ascending order.
func (db *DB) ListAdmins(ctx context.Context) ([]int64, error) {
	var ids []int64

	err := db.do(ctx, func(ctx context.Context, pool *pgxpool.Pool) error {
		rows, err := pool.Query(ctx, `SELECT user_id FROM admins ORDER BY user_id`)
		if err != nil {
			return fmt.Errorf("list admins: %w", err)
		}

		ids, err = pgx.CollectRows(rows, pgx.RowTo[int64])
		if err != nil {
			return fmt.Errorf("scan admins: %w", err)
		}

		return nil
	})

	return ids, err
}

// AddAdmin inserts id into the administrator set if absent.
func (db *DB) AddAdmin(ctx context.Context, id int64) error {
	return db.do(ctx, func(ctx context.Context, pool *pgxpool.Pool) error {
		if _, err := pool.Exec(ctx, `INSERT INTO admins (user_id) VALUES ($1) ON CONFLICT DO NOTHING`, id); err != nil {
			return fmt.Errorf("add admin %d: %w", id, err)
		}

		return nil
	})
}

// RemoveAdmin deletes id from the administrator set.
func (db *DB) RemoveAdmin(ctx context.Context, id int64) error {
	return db.do(ctx, func(ctx context.Context, pool *pgxpool.Pool) error {
		if _, err := pool.Exec(ctx, `DELETE FROM admins WHERE user_id = $1`, id); err != nil {
			return fmt.Errorf("remove admin %d: %w", id, err)
		}

		return nil
	})
}
