// Package mssql implements the storage.Repository sink on SQL Server via
// database/sql. SQL Server caps a statement at 2100 parameters, so the
// batch size is derived from the column count instead of the shared
// default.
package mssql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/microsoft/go-mssqldb"

	"orderetl/internal/schema"
	"orderetl/internal/storage"
)

func init() {
	storage.Register("mssql", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return open(ctx, cfg)
	})
}

type repo struct {
	db  *sql.DB
	cfg storage.Config
}

func open(ctx context.Context, cfg storage.Config) (*repo, error) {
	db, err := sql.Open("sqlserver", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("mssql: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mssql: ping: %w", err)
	}
	return &repo{db: db, cfg: cfg}, nil
}

func (r *repo) EnsureTable(ctx context.Context) error {
	ddl := fmt.Sprintf(`IF OBJECT_ID(N'%s', N'U') IS NULL
	CREATE TABLE %s (
		customer_id INT NOT NULL,
		customer_name NVARCHAR(MAX) NOT NULL,
		registration_date DATETIME2 NULL,
		is_vip BIT NOT NULL,
		order_id INT NOT NULL,
		order_date DATETIME2 NULL,
		product_id INT NULL,
		product_name NVARCHAR(MAX) NULL,
		category NVARCHAR(256) NULL,
		unit_price FLOAT NULL,
		item_quantity INT NULL,
		total_item_price FLOAT NULL,
		total_order_value_percentage FLOAT NULL
	)`, r.cfg.Table, r.cfg.Table)
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("mssql: create table %s: %w", r.cfg.Table, err)
	}
	return nil
}

// maxBatch keeps each statement under SQL Server's 2100-parameter limit.
func maxBatch() int {
	return 2000 / len(schema.Columns)
}

func (r *repo) CopyRows(ctx context.Context, rows []schema.Row) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("mssql: begin: %w", err)
	}
	defer tx.Rollback()

	limit := maxBatch()
	var written int64
	for len(rows) > 0 {
		n := limit
		if len(rows) < n {
			n = len(rows)
		}
		batch := rows[:n]
		rows = rows[n:]

		stmt := storage.InsertSQL(r.cfg.Table, schema.Columns, len(batch), Placeholder)
		if _, err := tx.ExecContext(ctx, stmt, storage.Args(batch)...); err != nil {
			return written, fmt.Errorf("mssql: insert batch: %w", err)
		}
		written += int64(len(batch))
	}
	if err := tx.Commit(); err != nil {
		return written, fmt.Errorf("mssql: commit: %w", err)
	}
	return written, nil
}

func (r *repo) Close(context.Context) error { return r.db.Close() }

// Placeholder renders SQL Server's named ordinal markers (@p1, @p2, ...).
func Placeholder(ordinal int) string { return fmt.Sprintf("@p%d", ordinal) }
