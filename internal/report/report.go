// Package report aggregates the run's data-quality accounting: what was
// processed, what was skipped and why, and how the output distributes over
// categories. The Report value is the programmatic surface; Render turns
// it into the human-readable summary file.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"orderetl/internal/domain"
	"orderetl/internal/schema"
	"orderetl/internal/skiplog"
)

// CategoryShare is one slice of the category distribution.
type CategoryShare struct {
	Name    string
	Count   int
	Percent float64
}

// Report is the structured quality summary for one pipeline run.
type Report struct {
	CustomersProcessed int
	CustomersSkipped   int
	OrdersProcessed    int
	OrdersSkipped      int
	ItemsProcessed     int
	ItemsSkipped       int

	SkipReasons map[skiplog.Level]map[string]int

	VIPCustomers   int
	ZeroItemOrders int
	TotalRows      int

	Categories []CategoryShare
}

// Build derives the report from the validated tree, the final table, the
// skip log and the flattener's zero-item count. The customer count comes
// from the tree, so a kept customer with no orders still counts as
// processed; order and item counts are distinct entities observed in the
// output, so they can never disagree with the table.
func Build(customers []domain.Customer, rows []schema.Row, log *skiplog.Log, zeroItemOrders int) Report {
	r := Report{
		CustomersSkipped: log.Count(skiplog.LevelCustomer),
		OrdersSkipped:    log.Count(skiplog.LevelOrder),
		ItemsSkipped:     log.Count(skiplog.LevelItem),
		SkipReasons: map[skiplog.Level]map[string]int{
			skiplog.LevelCustomer: log.Reasons(skiplog.LevelCustomer),
			skiplog.LevelOrder:    log.Reasons(skiplog.LevelOrder),
			skiplog.LevelItem:     log.Reasons(skiplog.LevelItem),
		},
		ZeroItemOrders: zeroItemOrders,
		TotalRows:      len(rows),
	}

	vips := map[int]struct{}{}
	type orderKey struct{ c, o int }
	orders := map[orderKey]struct{}{}
	categories := map[string]int{}
	itemRows := 0

	for _, row := range rows {
		if row.IsVIP {
			vips[row.CustomerID] = struct{}{}
		}
		orders[orderKey{row.CustomerID, row.OrderID}] = struct{}{}
		if row.ProductID != nil {
			itemRows++
		}
		if row.Category != nil {
			categories[*row.Category]++
		}
	}

	r.CustomersProcessed = len(customers)
	r.OrdersProcessed = len(orders)
	r.ItemsProcessed = itemRows
	r.VIPCustomers = len(vips)

	for name, count := range categories {
		share := CategoryShare{Name: name, Count: count}
		if itemRows > 0 {
			share.Percent = round2(100 * float64(count) / float64(itemRows))
		}
		r.Categories = append(r.Categories, share)
	}
	// Largest bucket first; names break ties so output is stable.
	sort.Slice(r.Categories, func(i, j int) bool {
		if r.Categories[i].Count != r.Categories[j].Count {
			return r.Categories[i].Count > r.Categories[j].Count
		}
		return r.Categories[i].Name < r.Categories[j].Name
	})
	return r
}

// Render formats the report as the plain-text summary written next to the
// output CSV.
func (r Report) Render() string {
	var b strings.Builder
	b.WriteString("DATA QUALITY REPORT\n")
	b.WriteString("===================\n\n")

	fmt.Fprintf(&b, "Customers: processed=%d skipped=%d\n", r.CustomersProcessed, r.CustomersSkipped)
	fmt.Fprintf(&b, "Orders:    processed=%d skipped=%d\n", r.OrdersProcessed, r.OrdersSkipped)
	fmt.Fprintf(&b, "Items:     processed=%d skipped=%d\n\n", r.ItemsProcessed, r.ItemsSkipped)

	fmt.Fprintf(&b, "VIP customers:    %d\n", r.VIPCustomers)
	fmt.Fprintf(&b, "Zero-item orders: %d\n", r.ZeroItemOrders)
	fmt.Fprintf(&b, "Output rows:      %d\n", r.TotalRows)

	for _, level := range []skiplog.Level{skiplog.LevelCustomer, skiplog.LevelOrder, skiplog.LevelItem} {
		reasons := r.SkipReasons[level]
		if len(reasons) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\nSkip reasons (%s):\n", level)
		for _, k := range sortedKeys(reasons) {
			fmt.Fprintf(&b, "  %s: %d\n", k, reasons[k])
		}
	}

	if len(r.Categories) > 0 {
		b.WriteString("\nCategory distribution:\n")
		for _, c := range r.Categories {
			fmt.Fprintf(&b, "  %-12s %6d  (%.2f%%)\n", c.Name, c.Count, c.Percent)
		}
	}
	return b.String()
}

// Summary is the one-line run log convention used across our importers,
// e.g. "rows=42 skipped=3 (invalid_order_id=2, ...)".
func (r Report) Summary() string {
	var parts []string
	for _, level := range []skiplog.Level{skiplog.LevelCustomer, skiplog.LevelOrder, skiplog.LevelItem} {
		for _, k := range sortedKeys(r.SkipReasons[level]) {
			parts = append(parts, fmt.Sprintf("%s=%d", k, r.SkipReasons[level][k]))
		}
	}
	skipped := r.CustomersSkipped + r.OrdersSkipped + r.ItemsSkipped
	if len(parts) == 0 {
		return fmt.Sprintf("rows=%d skipped=%d", r.TotalRows, skipped)
	}
	return fmt.Sprintf("rows=%d skipped=%d (%s)", r.TotalRows, skipped, strings.Join(parts, ", "))
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
