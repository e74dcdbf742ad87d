package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// insertBatch queues every statement on one transaction and sends them in a
// single round-trip. Any failing statement rolls back the whole batch.
func insertBatch(ctx context.Context, pool *pgxpool.Pool, batch *pgx.Batch) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		br := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return err
			}
		}
		return br.Close()
	})
}
