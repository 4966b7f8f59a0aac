package report

import (
	"reflect"
	"strings"
	"testing"

	"orderetl/internal/domain"
	"orderetl/internal/schema"
	"orderetl/internal/skiplog"
)

func ip(v int) *int         { return &v }
func sp(v string) *string   { return &v }

func sampleCustomers() []domain.Customer {
	return []domain.Customer{
		{ID: 1, Name: "Alice"},
		{ID: 2, Name: "Bob"},
	}
}

func sampleRows() []schema.Row {
	return []schema.Row{
		{CustomerID: 1, IsVIP: true, OrderID: 1, ProductID: ip(1), Category: sp("Electronics")},
		{CustomerID: 1, IsVIP: true, OrderID: 1, ProductID: ip(2), Category: sp("Books")},
		{CustomerID: 1, IsVIP: true, OrderID: 2, ProductID: ip(3), Category: sp("Electronics")},
		{CustomerID: 2, OrderID: 3, ProductID: ip(4), Category: sp("Electronics")},
		{CustomerID: 2, OrderID: 4}, // zero-item order row
	}
}

func sampleLog() *skiplog.Log {
	l := skiplog.New()
	l.Add(skiplog.Entry{Level: skiplog.LevelCustomer, CustomerID: "junk", Reason: "invalid_customer_id"})
	l.Add(skiplog.Entry{Level: skiplog.LevelItem, CustomerID: "1", OrderID: "1", ItemID: "x", Reason: "invalid_item_id"})
	l.Add(skiplog.Entry{Level: skiplog.LevelItem, CustomerID: "2", OrderID: "3", ItemID: "y", Reason: "invalid_item_id"})
	return l
}

func TestBuild_Counts(t *testing.T) {
	t.Parallel()

	r := Build(sampleCustomers(), sampleRows(), sampleLog(), 1)

	if r.CustomersProcessed != 2 || r.CustomersSkipped != 1 {
		t.Fatalf("customers = %d/%d, want 2/1", r.CustomersProcessed, r.CustomersSkipped)
	}
	if r.OrdersProcessed != 4 || r.OrdersSkipped != 0 {
		t.Fatalf("orders = %d/%d, want 4/0", r.OrdersProcessed, r.OrdersSkipped)
	}
	if r.ItemsProcessed != 4 || r.ItemsSkipped != 2 {
		t.Fatalf("items = %d/%d, want 4/2", r.ItemsProcessed, r.ItemsSkipped)
	}
	if r.VIPCustomers != 1 {
		t.Fatalf("vip customers = %d, want 1", r.VIPCustomers)
	}
	if r.ZeroItemOrders != 1 || r.TotalRows != 5 {
		t.Fatalf("zero-item=%d rows=%d, want 1/5", r.ZeroItemOrders, r.TotalRows)
	}
	if got := r.SkipReasons[skiplog.LevelItem]["invalid_item_id"]; got != 2 {
		t.Fatalf("item reason tally = %d, want 2", got)
	}
}

func TestBuild_CategoryDistribution(t *testing.T) {
	t.Parallel()

	r := Build(sampleCustomers(), sampleRows(), skiplog.New(), 1)

	want := []CategoryShare{
		{Name: "Electronics", Count: 3, Percent: 75.0},
		{Name: "Books", Count: 1, Percent: 25.0},
	}
	if !reflect.DeepEqual(r.Categories, want) {
		t.Fatalf("categories = %#v, want %#v", r.Categories, want)
	}
}

func TestBuild_EmptyTable(t *testing.T) {
	t.Parallel()

	r := Build(nil, nil, skiplog.New(), 0)
	if r.TotalRows != 0 || r.CustomersProcessed != 0 || len(r.Categories) != 0 {
		t.Fatalf("report from empty table = %+v", r)
	}
}

func TestBuild_CustomerWithNoOrdersCountsAsProcessed(t *testing.T) {
	t.Parallel()

	customers := []domain.Customer{{ID: 9, Name: "Quiet"}}
	r := Build(customers, nil, skiplog.New(), 0)
	if r.CustomersProcessed != 1 {
		t.Fatalf("customers processed = %d, want 1", r.CustomersProcessed)
	}
	if r.CustomersSkipped != 0 || r.TotalRows != 0 {
		t.Fatalf("report = %+v, want no skips and no rows", r)
	}
}

func TestRender_ContainsSections(t *testing.T) {
	t.Parallel()

	text := Build(sampleCustomers(), sampleRows(), sampleLog(), 1).Render()
	for _, want := range []string{
		"DATA QUALITY REPORT",
		"Customers: processed=2 skipped=1",
		"Zero-item orders: 1",
		"Skip reasons (customer):",
		"invalid_customer_id: 1",
		"Skip reasons (item):",
		"invalid_item_id: 2",
		"Category distribution:",
		"Electronics",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("report text missing %q:\n%s", want, text)
		}
	}
}

func TestSummary_Line(t *testing.T) {
	t.Parallel()

	got := Build(sampleCustomers(), sampleRows(), sampleLog(), 1).Summary()
	want := "rows=5 skipped=3 (invalid_customer_id=1, invalid_item_id=2)"
	if got != want {
		t.Fatalf("summary = %q, want %q", got, want)
	}
}
