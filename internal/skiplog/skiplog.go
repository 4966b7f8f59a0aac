// Package skiplog accumulates per-entity skip decisions made during
// validation and flattening. Entries are append-only; the same log is
// consumed twice, once to write the per-level skipped CSVs and once by the
// quality reporter for its reason tallies.
package skiplog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Level identifies which entity in the hierarchy was skipped.
type Level string

const (
	LevelCustomer Level = "customer"
	LevelOrder    Level = "order"
	LevelItem     Level = "item"
)

// Entry is one skip decision. Identifier fields hold the raw input values
// rendered as strings, so unparseable ids stay diagnosable. RecordIndex is
// the zero-based position of the customer record in the input file.
type Entry struct {
	Level       Level
	RecordIndex int
	CustomerID  string
	OrderID     string
	ItemID      string
	Reason      string
}

// Log is an in-memory skip accumulator. Not safe for concurrent use; the
// pipeline is single-threaded.
type Log struct {
	entries []Entry
	reasons map[Level]map[string]int
}

func New() *Log {
	return &Log{reasons: map[Level]map[string]int{}}
}

// Add appends an entry and bumps its reason tally.
func (l *Log) Add(e Entry) {
	l.entries = append(l.entries, e)
	m := l.reasons[e.Level]
	if m == nil {
		m = map[string]int{}
		l.reasons[e.Level] = m
	}
	m[e.Reason]++
}

// Entries returns all recorded entries in append order.
func (l *Log) Entries() []Entry { return l.entries }

// Count returns the number of skips recorded at level.
func (l *Log) Count(level Level) int {
	n := 0
	for _, c := range l.reasons[level] {
		n += c
	}
	return n
}

// Reasons returns a copy of the reason tally for level.
func (l *Log) Reasons(level Level) map[string]int {
	out := make(map[string]int, len(l.reasons[level]))
	for k, v := range l.reasons[level] {
		out[k] = v
	}
	return out
}

// File names for the per-level skipped CSVs, relative to the skipped dir.
const (
	CustomersFile = "skipped_customers.csv"
	OrdersFile    = "skipped_orders.csv"
	ItemsFile     = "skipped_items.csv"
)

// WriteFiles writes the three per-level skip CSVs under dir, creating it
// if needed. Files are written even when empty so downstream consumers can
// rely on their presence.
func (l *Log) WriteFiles(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create skipped dir %s: %w", dir, err)
	}

	write := func(name string, header []string, row func(Entry) []string, level Level) error {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("create %s: %w", name, err)
		}
		defer f.Close()
		w := csv.NewWriter(f)
		defer w.Flush()
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write %s header: %w", name, err)
		}
		for _, e := range l.entries {
			if e.Level != level {
				continue
			}
			if err := w.Write(row(e)); err != nil {
				return fmt.Errorf("write %s row: %w", name, err)
			}
		}
		w.Flush()
		return w.Error()
	}

	if err := write(CustomersFile,
		[]string{"record_index", "customer_id", "reason"},
		func(e Entry) []string {
			return []string{fmt.Sprint(e.RecordIndex), e.CustomerID, e.Reason}
		}, LevelCustomer); err != nil {
		return err
	}
	if err := write(OrdersFile,
		[]string{"customer_id", "order_id", "reason"},
		func(e Entry) []string {
			return []string{e.CustomerID, e.OrderID, e.Reason}
		}, LevelOrder); err != nil {
		return err
	}
	return write(ItemsFile,
		[]string{"customer_id", "order_id", "item_id", "reason"},
		func(e Entry) []string {
			return []string{e.CustomerID, e.OrderID, e.ItemID, e.Reason}
		}, LevelItem)
}
