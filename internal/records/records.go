// Package records defines the generic, pre-validation record shape produced
// by the JSON loader. A Record is an untyped field map; the validator and
// sanitizers are responsible for turning its values into typed data.
package records

// Record is one raw input object, field name -> raw value. Numeric values
// decoded from JSON arrive as json.Number (the loader decodes with
// UseNumber), everything else as string, bool, nil, []any or nested maps.
type Record map[string]any

// Field returns the raw value for name and whether the field exists at all.
// A present-but-null field returns (nil, true).
func (r Record) Field(name string) (any, bool) {
	v, ok := r[name]
	return v, ok
}

// List interprets the field as a slice. Missing and null both yield an
// empty list with ok=true; a present value of any non-slice type yields
// ok=false so callers can treat it as malformed.
func (r Record) List(name string) ([]any, bool) {
	v, present := r[name]
	if !present || v == nil {
		return nil, true
	}
	l, isList := v.([]any)
	if !isList {
		return nil, false
	}
	return l, true
}

// Object interprets v as a nested record. JSON object values decode to
// map[string]any, which converts directly.
func Object(v any) (Record, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	return Record(m), true
}
