// Package postgres implements the storage.Repository sink on Postgres via
// pgx, using COPY for the bulk load.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"orderetl/internal/schema"
	"orderetl/internal/storage"
)

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return open(ctx, cfg)
	})
}

type repo struct {
	conn *pgx.Conn
	cfg  storage.Config
}

func open(ctx context.Context, cfg storage.Config) (*repo, error) {
	conn, err := pgx.Connect(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}
	return &repo{conn: conn, cfg: cfg}, nil
}

func (r *repo) EnsureTable(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		customer_id INT NOT NULL,
		customer_name TEXT NOT NULL,
		registration_date TIMESTAMP,
		is_vip BOOLEAN NOT NULL,
		order_id INT NOT NULL,
		order_date TIMESTAMP,
		product_id INT,
		product_name TEXT,
		category TEXT,
		unit_price DOUBLE PRECISION,
		item_quantity INT,
		total_item_price DOUBLE PRECISION,
		total_order_value_percentage DOUBLE PRECISION
	)`, r.cfg.Table)
	if _, err := r.conn.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("postgres: create table %s: %w", r.cfg.Table, err)
	}
	return nil
}

func (r *repo) CopyRows(ctx context.Context, rows []schema.Row) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	src := make([][]any, len(rows))
	for i, row := range rows {
		src[i] = row.Values()
	}
	n, err := r.conn.CopyFrom(ctx, pgx.Identifier{r.cfg.Table}, schema.Columns, pgx.CopyFromRows(src))
	if err != nil {
		return n, fmt.Errorf("postgres: copy into %s: %w", r.cfg.Table, err)
	}
	return n, nil
}

func (r *repo) Close(ctx context.Context) error { return r.conn.Close(ctx) }
