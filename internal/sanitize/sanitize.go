// Package sanitize converts raw, possibly malformed scalar values into
// canonical typed values. All functions are pure and never fail; identity
// fields (ids) report invalidity through a second return value, value
// fields (price, quantity, category, date) degrade to a safe default.
package sanitize

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// categoryNames maps raw integer category codes to display names. Codes
// outside the map, and non-integer raw values, resolve to CategoryMisc.
var categoryNames = map[int]string{
	1: "Electronics",
	2: "Apparel",
	3: "Books",
	4: "Home Goods",
}

// CategoryMisc is the fallback bucket for unrecognized category codes.
const CategoryMisc = "Misc"

// Tokens that mean "no price/quantity" in the source system. Compared
// after uppercasing and symbol stripping.
var zeroTokens = map[string]struct{}{
	"": {}, "FREE": {}, "INVALID": {}, "NONE": {},
}

// Plausibility window for registration and order dates. Anything outside
// [dateFloor, now] is treated as junk and becomes null.
var dateFloor = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

// Date layouts accepted by Date, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02.01.2006",
}

// ID extracts an integer identifier from raw. Integers pass through,
// floats truncate, and strings contribute their first contiguous run of
// digits. Everything else is invalid.
func ID(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i), true
		}
		if f, err := v.Float64(); err == nil {
			return int(f), true
		}
		return firstInt(v.String())
	case string:
		return firstInt(v)
	default:
		return 0, false
	}
}

// firstInt scans s for the first contiguous digit run and parses it.
func firstInt(s string) (int, bool) {
	start := -1
	for i, r := range s {
		if unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return parseRun(s[start:i])
		}
	}
	if start >= 0 {
		return parseRun(s[start:])
	}
	return 0, false
}

func parseRun(run string) (int, bool) {
	n, err := strconv.Atoi(run)
	if err != nil {
		// Out-of-range digit run; treat the whole value as invalid.
		return 0, false
	}
	return n, true
}

// Price converts raw to a float amount. Currency symbols, thousands
// separators and whitespace are stripped before parsing; junk values
// (FREE, INVALID, NONE, empty, unparseable) become 0.0. Negative amounts
// pass through untouched.
func Price(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
		return 0.0
	case string:
		s := stripAmount(v)
		if _, zero := zeroTokens[strings.ToUpper(s)]; zero {
			return 0.0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0.0
		}
		return f
	default:
		return 0.0
	}
}

// Quantity converts raw to an integer count using the same strategy as
// Price; fractional values truncate toward zero.
func Quantity(raw any) int {
	switch v := raw.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i)
		}
		if f, err := v.Float64(); err == nil {
			return int(f)
		}
		return 0
	case string:
		s := stripAmount(v)
		if _, zero := zeroTokens[strings.ToUpper(s)]; zero {
			return 0
		}
		if i, err := strconv.Atoi(s); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
		return 0
	default:
		return 0
	}
}

// stripAmount removes currency symbols, separators and whitespace that
// commonly pollute money/quantity fields.
func stripAmount(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '$' || r == ',' || unicode.IsSpace(r):
			return -1
		case unicode.IsSymbol(r): // €, £ and friends
			return -1
		}
		return r
	}, s)
}

// Category resolves a raw category code to its display name. Only integer
// codes (including integral floats, which the source system emits
// interchangeably) can map; any other value is CategoryMisc.
func Category(raw any) string {
	switch v := raw.(type) {
	case int:
		return categoryName(v)
	case int64:
		return categoryName(int(v))
	case float64:
		if v == float64(int(v)) {
			return categoryName(int(v))
		}
		return CategoryMisc
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return categoryName(int(i))
		}
		if f, err := v.Float64(); err == nil && f == float64(int(f)) {
			return categoryName(int(f))
		}
		return CategoryMisc
	default:
		return CategoryMisc
	}
}

func categoryName(code int) string {
	if name, ok := categoryNames[code]; ok {
		return name
	}
	return CategoryMisc
}

// Date parses raw into a calendar timestamp. Unparseable values, dates in
// the future relative to the processing time, and dates before 1900 all
// become null rather than failing the record.
func Date(raw any) *time.Time {
	return dateAt(raw, time.Now())
}

func dateAt(raw any, now time.Time) *time.Time {
	var t time.Time
	switch v := raw.(type) {
	case time.Time:
		t = v
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		parsed := false
		for _, layout := range dateLayouts {
			if p, err := time.Parse(layout, s); err == nil {
				t = p
				parsed = true
				break
			}
		}
		if !parsed {
			return nil
		}
	default:
		return nil
	}
	if t.Before(dateFloor) || t.After(now) {
		return nil
	}
	return &t
}

// nameCleaner recomposes to NFC and drops control runes. Upstream exports
// occasionally ship mojibake ("Â ") and NBSP instead of plain spaces.
var nameCleaner = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Cc)),
	norm.NFC,
)

// Name scrubs a display name: mojibake and NBSP become regular spaces,
// control runes are removed, the result is NFC-normalized and trimmed.
func Name(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.ReplaceAll(s, "Â ", " ")
	cleaned, _, err := transform.String(nameCleaner, s)
	if err != nil {
		cleaned = s
	}
	return strings.TrimSpace(cleaned)
}
