// Package sqlite implements the storage.Repository sink on SQLite via
// database/sql. SQLite has no bulk-load API, so rows go in as batched
// multi-value INSERTs inside one transaction.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"orderetl/internal/schema"
	"orderetl/internal/storage"
)

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return open(ctx, cfg)
	})
}

type repo struct {
	db  *sql.DB
	cfg storage.Config
}

func open(ctx context.Context, cfg storage.Config) (*repo, error) {
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	return &repo{db: db, cfg: cfg}, nil
}

func (r *repo) EnsureTable(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		customer_id INTEGER NOT NULL,
		customer_name TEXT NOT NULL,
		registration_date TIMESTAMP,
		is_vip BOOLEAN NOT NULL,
		order_id INTEGER NOT NULL,
		order_date TIMESTAMP,
		product_id INTEGER,
		product_name TEXT,
		category TEXT,
		unit_price REAL,
		item_quantity INTEGER,
		total_item_price REAL,
		total_order_value_percentage REAL
	)`, r.cfg.Table)
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("sqlite: create table %s: %w", r.cfg.Table, err)
	}
	return nil
}

func (r *repo) CopyRows(ctx context.Context, rows []schema.Row) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	var written int64
	for _, batch := range storage.Batches(rows) {
		stmt := storage.InsertSQL(r.cfg.Table, schema.Columns, len(batch), Placeholder)
		res, err := tx.ExecContext(ctx, stmt, storage.Args(batch)...)
		if err != nil {
			return written, fmt.Errorf("sqlite: insert batch: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			written += n
		} else {
			written += int64(len(batch))
		}
	}
	if err := tx.Commit(); err != nil {
		return written, fmt.Errorf("sqlite: commit: %w", err)
	}
	return written, nil
}

func (r *repo) Close(context.Context) error { return r.db.Close() }

// Placeholder is SQLite's positional marker; the ordinal is unused.
func Placeholder(int) string { return "?" }
