// Package schema fixes the output contract of the pipeline: the exact
// column set, per-column nullability, the row sort order and the CSV
// rendering of each type. Nullable columns are pointer fields; is_vip is
// plain bool and is never null.
package schema

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"orderetl/internal/domain"
)

// Columns is the authoritative output column order. The CSV header and
// every database sink use this list verbatim.
var Columns = []string{
	"customer_id",
	"customer_name",
	"registration_date",
	"is_vip",
	"order_id",
	"order_date",
	"product_id",
	"product_name",
	"category",
	"unit_price",
	"item_quantity",
	"total_item_price",
	"total_order_value_percentage",
}

// Row is one output record. Item-level fields are nil exactly when the row
// represents a zero-item order.
type Row struct {
	CustomerID       int
	CustomerName     string
	RegistrationDate *time.Time
	IsVIP            bool
	OrderID          int
	OrderDate        *time.Time

	ProductID                 *int
	ProductName               *string
	Category                  *string
	UnitPrice                 *float64
	ItemQuantity              *int
	TotalItemPrice            *float64
	TotalOrderValuePercentage *float64
}

// Sort orders rows ascending by (customer_id, order_id, product_id), with
// a nil product_id sorting after any concrete id within its order group.
func Sort(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.CustomerID != b.CustomerID {
			return a.CustomerID < b.CustomerID
		}
		if a.OrderID != b.OrderID {
			return a.OrderID < b.OrderID
		}
		switch {
		case a.ProductID == nil:
			return false
		case b.ProductID == nil:
			return true
		default:
			return *a.ProductID < *b.ProductID
		}
	})
}

// Values renders the row as driver-ready arguments in Columns order.
// Nil pointers pass through as NULLs.
func (r Row) Values() []any {
	return []any{
		r.CustomerID,
		r.CustomerName,
		timeVal(r.RegistrationDate),
		r.IsVIP,
		r.OrderID,
		timeVal(r.OrderDate),
		intVal(r.ProductID),
		strVal(r.ProductName),
		strVal(r.Category),
		floatVal(r.UnitPrice),
		intVal(r.ItemQuantity),
		floatVal(r.TotalItemPrice),
		floatVal(r.TotalOrderValuePercentage),
	}
}

// CSVRecord renders the row as CSV fields in Columns order. Nulls render
// as empty fields, dates as calendar days, floats with two decimals.
func (r Row) CSVRecord() []string {
	return []string{
		strconv.Itoa(r.CustomerID),
		r.CustomerName,
		csvTime(r.RegistrationDate),
		strconv.FormatBool(r.IsVIP),
		strconv.Itoa(r.OrderID),
		csvTime(r.OrderDate),
		csvInt(r.ProductID),
		csvStr(r.ProductName),
		csvStr(r.Category),
		csvFloat(r.UnitPrice),
		csvInt(r.ItemQuantity),
		csvFloat(r.TotalItemPrice),
		csvFloat(r.TotalOrderValuePercentage),
	}
}

// WriteCSV writes the header and all rows to w. Callers sort first; this
// function does not reorder.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range rows {
		if err := cw.Write(r.CSVRecord()); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(domain.DateLayout)
}

func csvInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func csvStr(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func csvFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

// The *Val helpers exist because database drivers understand nil any
// values but not all of them understand typed nil pointers.
func timeVal(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func intVal(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func strVal(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatVal(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
