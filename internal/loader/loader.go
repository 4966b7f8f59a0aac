// Package loader reads the two run inputs: the serialized customer
// records and the VIP id list. Record decoding accepts either a top-level
// JSON array of customer objects or a stream of objects (NDJSON); numbers
// are kept as json.Number so the sanitizers decide their typing.
package loader

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"orderetl/internal/records"
	"orderetl/internal/sanitize"
)

// Customers reads and decodes the customer records file. Any structural
// problem (unreadable file, not JSON, top level not a record sequence) is
// fatal to the run and reported as an error; per-record dirt is left for
// the validator.
func Customers(path string) ([]records.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open customer records %s: %w", path, err)
	}
	defer f.Close()

	recs, err := decodeRecords(f)
	if err != nil {
		return nil, fmt.Errorf("decode customer records %s: %w", path, err)
	}
	log.Printf("Loaded %d customer records from %s", len(recs), path)
	return recs, nil
}

func decodeRecords(r io.Reader) ([]records.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode root: %w", err)
	}

	var out []records.Record
	switch v := root.(type) {
	case []any:
		for i, elem := range v {
			obj, ok := records.Object(elem)
			if !ok {
				return nil, fmt.Errorf("element %d is not an object", i)
			}
			out = append(out, obj)
		}
	case map[string]any:
		out = append(out, records.Record(v))
	default:
		return nil, fmt.Errorf("unsupported top-level JSON type %T", v)
	}

	// NDJSON: keep decoding objects until the stream ends.
	for {
		var next any
		if err := dec.Decode(&next); err != nil {
			if err == io.EOF {
				return out, nil
			}
			return nil, fmt.Errorf("decode stream: %w", err)
		}
		obj, ok := records.Object(next)
		if !ok {
			return nil, fmt.Errorf("stream element %d is not an object", len(out))
		}
		out = append(out, obj)
	}
}

// VIPIDs reads the VIP membership file, one id per line. Ids may carry the
// same prefixes seen elsewhere ("C123"), so each line goes through the id
// sanitizer; lines with no usable id are logged and dropped, never fatal.
func VIPIDs(path string) (map[int]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vip file %s: %w", path, err)
	}
	defer f.Close()

	ids, dropped, err := scanVIPIDs(f)
	if err != nil {
		return nil, fmt.Errorf("read vip file %s: %w", path, err)
	}
	if dropped > 0 {
		log.Printf("vip file %s: dropped %d unusable lines", path, dropped)
	}
	log.Printf("Loaded %d VIP customer IDs from %s", len(ids), path)
	return ids, nil
}

func scanVIPIDs(r io.Reader) (map[int]struct{}, int, error) {
	ids := make(map[int]struct{})
	dropped := 0
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		id, ok := sanitize.ID(line)
		if !ok {
			dropped++
			continue
		}
		ids[id] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, 0, err
	}
	return ids, dropped, nil
}
