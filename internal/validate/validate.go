// Package validate partitions raw customer records into a kept, typed
// customer/order/item tree and a skip log. Only identity-critical fields
// can cause a skip; malformed value fields are left raw for the sanitizers
// to coerce later.
package validate

import (
	"fmt"

	"orderetl/internal/domain"
	"orderetl/internal/records"
	"orderetl/internal/sanitize"
	"orderetl/internal/skiplog"
)

// Skip reason codes, one per identity check.
const (
	ReasonInvalidCustomerID  = "invalid_customer_id"
	ReasonMissingName        = "missing_customer_name"
	ReasonMalformedOrders    = "malformed_orders"
	ReasonOrderNotObject     = "order_not_an_object"
	ReasonInvalidOrderID     = "invalid_order_id"
	ReasonItemNotObject      = "item_not_an_object"
	ReasonInvalidItemID      = "invalid_item_id"
	ReasonMissingProductName = "missing_product_name"
)

// Customers walks the raw records and returns the kept tree. Every
// exclusion is logged to log; nothing is dropped silently.
//
// The acceptance rules are deliberately asymmetric: ids and names decide
// keep/skip, while prices, quantities, categories and dates never do.
func Customers(raw []records.Record, log *skiplog.Log) []domain.Customer {
	kept := make([]domain.Customer, 0, len(raw))
	for idx, rec := range raw {
		c, ok := customer(idx, rec, log)
		if !ok {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

func customer(idx int, rec records.Record, log *skiplog.Log) (domain.Customer, bool) {
	rawID, _ := rec.Field("id")
	id, ok := sanitize.ID(rawID)
	if !ok {
		log.Add(skiplog.Entry{
			Level:       skiplog.LevelCustomer,
			RecordIndex: idx,
			CustomerID:  render(rawID),
			Reason:      ReasonInvalidCustomerID,
		})
		return domain.Customer{}, false
	}

	name := sanitize.Name(stringOf(rec["name"]))
	if name == "" {
		log.Add(skiplog.Entry{
			Level:       skiplog.LevelCustomer,
			RecordIndex: idx,
			CustomerID:  render(rawID),
			Reason:      ReasonMissingName,
		})
		return domain.Customer{}, false
	}

	// A present-but-non-list orders field means the record structure is
	// broken beyond per-order recovery; missing or null just means no
	// orders.
	rawOrders, listOK := rec.List("orders")
	if !listOK {
		log.Add(skiplog.Entry{
			Level:       skiplog.LevelCustomer,
			RecordIndex: idx,
			CustomerID:  render(rawID),
			Reason:      ReasonMalformedOrders,
		})
		return domain.Customer{}, false
	}

	c := domain.Customer{
		ID:               id,
		Name:             name,
		RegistrationDate: rec["registration_date"],
		Orders:           make([]domain.Order, 0, len(rawOrders)),
	}
	for _, rawOrder := range rawOrders {
		o, ok := order(c.ID, rawOrder, log)
		if !ok {
			continue
		}
		c.Orders = append(c.Orders, o)
	}
	return c, true
}

func order(customerID int, raw any, log *skiplog.Log) (domain.Order, bool) {
	rec, isObj := records.Object(raw)
	if !isObj {
		log.Add(skiplog.Entry{
			Level:      skiplog.LevelOrder,
			CustomerID: render(customerID),
			OrderID:    render(raw),
			Reason:     ReasonOrderNotObject,
		})
		return domain.Order{}, false
	}

	rawID, _ := rec.Field("order_id")
	id, ok := sanitize.ID(rawID)
	if !ok {
		log.Add(skiplog.Entry{
			Level:      skiplog.LevelOrder,
			CustomerID: render(customerID),
			OrderID:    render(rawID),
			Reason:     ReasonInvalidOrderID,
		})
		return domain.Order{}, false
	}

	o := domain.Order{ID: id, OrderDate: rec["order_date"]}

	// A malformed items field degrades to a zero-item order rather than
	// losing the order.
	rawItems, listOK := rec.List("items")
	if !listOK {
		rawItems = nil
	}
	o.Items = make([]domain.Item, 0, len(rawItems))
	for _, rawItem := range rawItems {
		it, ok := item(customerID, id, rawItem, log)
		if !ok {
			continue
		}
		o.Items = append(o.Items, it)
	}
	return o, true
}

func item(customerID, orderID int, raw any, log *skiplog.Log) (domain.Item, bool) {
	entry := skiplog.Entry{
		Level:      skiplog.LevelItem,
		CustomerID: render(customerID),
		OrderID:    render(orderID),
	}

	rec, isObj := records.Object(raw)
	if !isObj {
		entry.ItemID = render(raw)
		entry.Reason = ReasonItemNotObject
		log.Add(entry)
		return domain.Item{}, false
	}

	rawID, _ := rec.Field("item_id")
	entry.ItemID = render(rawID)
	id, ok := sanitize.ID(rawID)
	if !ok {
		entry.Reason = ReasonInvalidItemID
		log.Add(entry)
		return domain.Item{}, false
	}

	name := sanitize.Name(stringOf(rec["product_name"]))
	if name == "" {
		entry.Reason = ReasonMissingProductName
		log.Add(entry)
		return domain.Item{}, false
	}

	return domain.Item{
		ID:          id,
		ProductName: name,
		Category:    rec["category"],
		Price:       rec["price"],
		Quantity:    rec["quantity"],
	}, true
}

func stringOf(v any) string {
	s, _ := v.(string)
	return s
}

// render formats a raw identifier for the skip log. Nil renders empty so
// "field missing" is distinguishable from a junk value.
func render(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
