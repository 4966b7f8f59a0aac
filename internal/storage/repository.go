// Package storage abstracts the optional database sink for the flattened
// table. Concrete backends register themselves by kind from their init
// functions; importing storage/all (usually as a blank import in the
// wiring layer) makes every built-in backend available.
package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"orderetl/internal/schema"
)

// Config selects and parameterizes a backend.
type Config struct {
	Kind  string // registered backend name, e.g. "sqlite"
	DSN   string // driver-specific connection string
	Table string // destination table
}

// Repository is a destination for the final table. Implementations own a
// connection and are not safe for concurrent use.
type Repository interface {
	// EnsureTable creates the destination table when missing.
	EnsureTable(ctx context.Context) error
	// CopyRows bulk-loads rows and reports how many were written.
	CopyRows(ctx context.Context, rows []schema.Row) (int64, error)
	Close(ctx context.Context) error
}

// Factory mints a connected Repository for one backend kind.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var factories = map[string]Factory{}

// Register installs a backend factory under kind. Called from backend
// init functions; duplicate registration is a programming error.
func Register(kind string, f Factory) {
	if _, dup := factories[kind]; dup {
		panic(fmt.Sprintf("storage: duplicate backend %q", kind))
	}
	factories[kind] = f
}

// Open connects the backend selected by cfg.Kind.
func Open(ctx context.Context, cfg Config) (Repository, error) {
	if strings.TrimSpace(cfg.Table) == "" {
		return nil, fmt.Errorf("storage: table name required")
	}
	f, ok := factories[cfg.Kind]
	if !ok {
		return nil, fmt.Errorf("storage: unknown backend %q (known: %s)", cfg.Kind, strings.Join(Kinds(), ", "))
	}
	return f(ctx, cfg)
}

// Kinds lists the registered backend names, sorted.
func Kinds() []string {
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// InsertSQL builds a multi-row INSERT for the given placeholder dialect.
// placeholder receives the 1-based argument ordinal.
func InsertSQL(table string, columns []string, rowCount int, placeholder func(ordinal int) string) string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString(") VALUES ")
	arg := 1
	for r := 0; r < rowCount; r++ {
		if r > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for c := range columns {
			if c > 0 {
				b.WriteString(", ")
			}
			b.WriteString(placeholder(arg))
			arg++
		}
		b.WriteByte(')')
	}
	return b.String()
}

// Args flattens rows into driver arguments matching InsertSQL's ordering.
func Args(rows []schema.Row) []any {
	out := make([]any, 0, len(rows)*len(schema.Columns))
	for _, r := range rows {
		out = append(out, r.Values()...)
	}
	return out
}

// BatchSize is the number of rows per INSERT statement for the
// database/sql backends.
const BatchSize = 500

// Batches splits rows into BatchSize chunks.
func Batches(rows []schema.Row) [][]schema.Row {
	var out [][]schema.Row
	for len(rows) > 0 {
		n := BatchSize
		if len(rows) < n {
			n = len(rows)
		}
		out = append(out, rows[:n])
		rows = rows[n:]
	}
	return out
}
