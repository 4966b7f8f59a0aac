package loader

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDecodeRecords_TopLevelArray(t *testing.T) {
	t.Parallel()

	in := `[{"id": "C1", "name": "Alice"}, {"id": 2, "name": "Bob"}]`
	recs, err := decodeRecords(strings.NewReader(in))
	if err != nil {
		t.Fatalf("decodeRecords: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2", len(recs))
	}
	if recs[0]["id"] != "C1" {
		t.Fatalf("first id = %#v", recs[0]["id"])
	}
	// Numbers must survive as json.Number, not float64.
	if _, ok := recs[1]["id"].(json.Number); !ok {
		t.Fatalf("second id = %#v, want json.Number", recs[1]["id"])
	}
}

func TestDecodeRecords_NDJSONStream(t *testing.T) {
	t.Parallel()

	in := "{\"id\":1}\n{\"id\":2}\n{\"id\":3}\n"
	recs, err := decodeRecords(strings.NewReader(in))
	if err != nil {
		t.Fatalf("decodeRecords: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("records = %d, want 3", len(recs))
	}
}

func TestDecodeRecords_Fatal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
	}{
		{"not json", "customer_id;name\n1;Alice"},
		{"top-level scalar", `"hello"`},
		{"array of scalars", `[1, 2, 3]`},
		{"truncated", `[{"id": 1},`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := decodeRecords(strings.NewReader(tc.in)); err == nil {
				t.Fatalf("decodeRecords(%q) should fail", tc.in)
			}
		})
	}
}

func TestDecodeRecords_EmptyInputIsValid(t *testing.T) {
	t.Parallel()

	recs, err := decodeRecords(strings.NewReader(""))
	if err != nil {
		t.Fatalf("decodeRecords: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("records = %d, want 0", len(recs))
	}
}

func TestScanVIPIDs(t *testing.T) {
	t.Parallel()

	in := "1\nC7\n  42  \n\nnot-an-id\n808\n"
	ids, dropped, err := scanVIPIDs(strings.NewReader(in))
	if err != nil {
		t.Fatalf("scanVIPIDs: %v", err)
	}

	want := map[int]struct{}{1: {}, 7: {}, 42: {}, 808: {}}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("ids = %#v, want %#v", ids, want)
	}
	if dropped != 1 {
		t.Fatalf("dropped = %d, want 1", dropped)
	}
}

func TestScanVIPIDs_OverlongLineIsError(t *testing.T) {
	t.Parallel()

	// A single line past the scanner's token limit must surface as an
	// error, not as a silently truncated id set.
	in := strings.Repeat("9", 2*bufio.MaxScanTokenSize)
	if _, _, err := scanVIPIDs(strings.NewReader(in)); err == nil {
		t.Fatal("overlong line should be an error")
	}
}

func TestCustomers_MissingFileIsError(t *testing.T) {
	t.Parallel()

	if _, err := Customers(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("missing file should be an error")
	}
}

func TestCustomers_ReadsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "customers.json")
	if err := os.WriteFile(path, []byte(`[{"id":1,"name":"A"}]`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	recs, err := Customers(path)
	if err != nil {
		t.Fatalf("Customers: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("records = %d, want 1", len(recs))
	}
}
