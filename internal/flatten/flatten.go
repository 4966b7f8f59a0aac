// Package flatten expands the kept customer/order/item tree into output
// rows, one per item, with a single placeholder row for each zero-item
// order. All value-field sanitization happens here, so the per-row numbers
// and the per-order total are guaranteed to come from the same coercions.
package flatten

import (
	"fmt"
	"math"

	"github.com/zeebo/xxh3"

	"orderetl/internal/domain"
	"orderetl/internal/sanitize"
	"orderetl/internal/schema"
	"orderetl/internal/skiplog"
)

// ReasonDuplicateRow marks rows dropped by the unique-key guard.
const ReasonDuplicateRow = "duplicate_row"

// Result carries the flattened rows plus the counters the quality reporter
// needs that are only observable during expansion.
type Result struct {
	Rows           []schema.Row
	ZeroItemOrders int
}

// Rows flattens customers into output rows. VIP membership is looked up by
// sanitized customer id; absence means false. Duplicate
// (customer, order, product) keys keep their first occurrence and log the
// rest, so the output key invariant holds even for dirty input.
func Rows(customers []domain.Customer, vip map[int]struct{}, log *skiplog.Log) Result {
	var res Result
	seen := make(map[uint64]struct{})

	for _, c := range customers {
		_, isVIP := vip[c.ID]
		base := schema.Row{
			CustomerID:       c.ID,
			CustomerName:     c.Name,
			RegistrationDate: sanitize.Date(c.RegistrationDate),
			IsVIP:            isVIP,
		}

		for _, o := range c.Orders {
			row := base
			row.OrderID = o.ID
			row.OrderDate = sanitize.Date(o.OrderDate)

			if len(o.Items) == 0 {
				if !claim(seen, c.ID, o.ID, nil) {
					log.Add(skiplog.Entry{
						Level:      skiplog.LevelOrder,
						CustomerID: fmt.Sprint(c.ID),
						OrderID:    fmt.Sprint(o.ID),
						Reason:     ReasonDuplicateRow,
					})
					continue
				}
				res.ZeroItemOrders++
				res.Rows = append(res.Rows, row)
				continue
			}

			// Duplicates are resolved before the denominator is summed,
			// so a dropped row's value cannot dilute the surviving
			// percentages.
			items := make([]domain.Item, 0, len(o.Items))
			for _, it := range o.Items {
				if !claim(seen, c.ID, o.ID, &it.ID) {
					log.Add(skiplog.Entry{
						Level:      skiplog.LevelItem,
						CustomerID: fmt.Sprint(c.ID),
						OrderID:    fmt.Sprint(o.ID),
						ItemID:     fmt.Sprint(it.ID),
						Reason:     ReasonDuplicateRow,
					})
					continue
				}
				items = append(items, it)
			}

			// The denominator is recomputed from the same sanitized
			// values used per row; no reconciliation with any upstream
			// order total.
			orderTotal := 0.0
			for _, it := range items {
				orderTotal += sanitize.Price(it.Price) * float64(sanitize.Quantity(it.Quantity))
			}

			for _, it := range items {
				res.Rows = append(res.Rows, itemRow(row, it, orderTotal))
			}
		}
	}
	return res
}

func itemRow(base schema.Row, it domain.Item, orderTotal float64) schema.Row {
	unitPrice := sanitize.Price(it.Price)
	quantity := sanitize.Quantity(it.Quantity)
	lineTotal := unitPrice * float64(quantity)

	pct := 0.0
	if orderTotal > 0 {
		pct = round2(100 * lineTotal / orderTotal)
	}

	row := base
	row.ProductID = &it.ID
	name := it.ProductName
	row.ProductName = &name
	category := sanitize.Category(it.Category)
	row.Category = &category
	row.UnitPrice = &unitPrice
	row.ItemQuantity = &quantity
	total := round2(lineTotal)
	row.TotalItemPrice = &total
	row.TotalOrderValuePercentage = &pct
	return row
}

// claim registers the composite row key and reports whether it was free.
// Zero-item rows use a sentinel so a duplicated empty order cannot emit a
// second null-item row.
func claim(seen map[uint64]struct{}, customerID, orderID int, productID *int) bool {
	p := "null"
	if productID != nil {
		p = fmt.Sprint(*productID)
	}
	key := xxh3.HashString(fmt.Sprintf("%d\x1f%d\x1f%s", customerID, orderID, p))
	if _, dup := seen[key]; dup {
		return false
	}
	seen[key] = struct{}{}
	return true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
