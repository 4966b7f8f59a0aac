// Package domain holds the validated customer/order/item tree. Identity
// fields are sanitized integers; value fields stay raw until the flattener
// runs them through the sanitizers.
package domain

// DateLayout is the calendar format used in all file output.
const DateLayout = "2006-01-02"

// Item is one purchasable line inside an order. Category, Price and
// Quantity carry the raw input values.
type Item struct {
	ID          int
	ProductName string
	Category    any
	Price       any
	Quantity    any
}

// Order belongs to exactly one customer. An order with no items is a valid
// zero-item order, not an error.
type Order struct {
	ID        int
	OrderDate any
	Items     []Item
}

// Customer owns its orders exclusively; the tree is strict, no sharing.
type Customer struct {
	ID               int
	Name             string
	RegistrationDate any
	Orders           []Order
}
