package sanitize

import (
	"encoding/json"
	"testing"
	"time"
)

func TestID(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  any
		want int
		ok   bool
	}{
		{"int passthrough", 84, 84, true},
		{"float truncates", 12.9, 12, true},
		{"prefixed string", "ORD84", 84, true},
		{"suffixed string", "84b", 84, true},
		{"embedded run", "C-0123-x9", 123, true},
		{"json number", json.Number("42"), 42, true},
		{"json float", json.Number("42.7"), 42, true},
		{"no digits", "abc", 0, false},
		{"empty string", "", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ID(tc.raw)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("ID(%#v) = (%d, %v), want (%d, %v)", tc.raw, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestPrice(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  any
		want float64
	}{
		{"dollar sign", "$377.96", 377.96},
		{"thousands separator", "$1,299.50", 1299.50},
		{"euro symbol", "€10.00", 10.0},
		{"whitespace", "  25.5 ", 25.5},
		{"free token", "FREE", 0.0},
		{"invalid token", "INVALID", 0.0},
		{"none token", "none", 0.0},
		{"empty", "", 0.0},
		{"garbage", "ten dollars", 0.0},
		{"negative passes through", "-4.20", -4.20},
		{"plain number", 19.99, 19.99},
		{"json number", json.Number("7.25"), 7.25},
		{"nil", nil, 0.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Price(tc.raw); got != tc.want {
				t.Fatalf("Price(%#v) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestQuantity(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  any
		want int
	}{
		{"int passthrough", 3, 3},
		{"float truncates", 2.9, 2},
		{"string int", "2", 2},
		{"string float truncates", "3.7", 3},
		{"free token", "FREE", 0},
		{"garbage", "two", 0},
		{"empty", "", 0},
		{"json number", json.Number("5"), 5},
		{"nil", nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Quantity(tc.raw); got != tc.want {
				t.Fatalf("Quantity(%#v) = %d, want %d", tc.raw, got, tc.want)
			}
		})
	}
}

func TestCategory(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  any
		want string
	}{
		{"electronics", 1, "Electronics"},
		{"apparel", 2, "Apparel"},
		{"books", 3, "Books"},
		{"home goods", 4, "Home Goods"},
		{"unmapped code", 99, CategoryMisc},
		{"integral float maps", 1.0, "Electronics"},
		{"fractional float", 1.5, CategoryMisc},
		{"json number", json.Number("3"), "Books"},
		{"string digits do not map", "1", CategoryMisc},
		{"free text", "electronics", CategoryMisc},
		{"nil", nil, CategoryMisc},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Category(tc.raw); got != tc.want {
				t.Fatalf("Category(%#v) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		raw  any
		want *time.Time
	}{
		{"iso date", "2021-05-10", tp(2021, 5, 10)},
		{"iso datetime", "2021-05-10 08:30:00", timePtr(time.Date(2021, 5, 10, 8, 30, 0, 0, time.UTC))},
		{"czech layout", "10.05.2021", tp(2021, 5, 10)},
		{"far future", "3000-01-01", nil},
		{"far past", "1850-03-01", nil},
		{"unparseable", "not a date", nil},
		{"empty", "", nil},
		{"nil", nil, nil},
		{"numeric junk", json.Number("20210510"), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := dateAt(tc.raw, now)
			switch {
			case got == nil && tc.want == nil:
			case got == nil || tc.want == nil:
				t.Fatalf("dateAt(%#v) = %v, want %v", tc.raw, got, tc.want)
			case !got.Equal(*tc.want):
				t.Fatalf("dateAt(%#v) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"trims space", "  Alice  ", "Alice"},
		{"nbsp to space", "Alice Smith", "Alice Smith"},
		{"mojibake space", "BobÂ Jones", "Bob Jones"},
		{"control runes dropped", "Eve\x00\x1fAdams", "EveAdams"},
		{"accents preserved", "Renée", "Renée"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Name(tc.in); got != tc.want {
				t.Fatalf("Name(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func tp(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func timePtr(t time.Time) *time.Time { return &t }
