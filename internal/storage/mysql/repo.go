// Package mysql implements the storage.Repository sink on MySQL/MariaDB
// via database/sql and go-sql-driver. Shares the batched multi-value
// INSERT strategy with the sqlite backend.
package mysql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"orderetl/internal/schema"
	"orderetl/internal/storage"
)

func init() {
	storage.Register("mysql", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return open(ctx, cfg)
	})
}

type repo struct {
	db  *sql.DB
	cfg storage.Config
}

func open(ctx context.Context, cfg storage.Config) (*repo, error) {
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("mysql: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql: ping: %w", err)
	}
	return &repo{db: db, cfg: cfg}, nil
}

func (r *repo) EnsureTable(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		customer_id INT NOT NULL,
		customer_name TEXT NOT NULL,
		registration_date DATETIME NULL,
		is_vip BOOLEAN NOT NULL,
		order_id INT NOT NULL,
		order_date DATETIME NULL,
		product_id INT NULL,
		product_name TEXT NULL,
		category TEXT NULL,
		unit_price DOUBLE NULL,
		item_quantity INT NULL,
		total_item_price DOUBLE NULL,
		total_order_value_percentage DOUBLE NULL
	)`, r.cfg.Table)
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("mysql: create table %s: %w", r.cfg.Table, err)
	}
	return nil
}

func (r *repo) CopyRows(ctx context.Context, rows []schema.Row) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("mysql: begin: %w", err)
	}
	defer tx.Rollback()

	var written int64
	for _, batch := range storage.Batches(rows) {
		stmt := storage.InsertSQL(r.cfg.Table, schema.Columns, len(batch), Placeholder)
		if _, err := tx.ExecContext(ctx, stmt, storage.Args(batch)...); err != nil {
			return written, fmt.Errorf("mysql: insert batch: %w", err)
		}
		written += int64(len(batch))
	}
	if err := tx.Commit(); err != nil {
		return written, fmt.Errorf("mysql: commit: %w", err)
	}
	return written, nil
}

func (r *repo) Close(context.Context) error { return r.db.Close() }

// Placeholder is MySQL's positional marker; the ordinal is unused.
func Placeholder(int) string { return "?" }
