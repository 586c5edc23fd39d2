// Package flatten converts raw WMS records into flat rows with stable column
// sets and database-ready value types.
package flatten

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Row is a flattened record keyed by column name.
type Row = map[string]any

// Sub-keys of a nested object that keep the parent name as prefix with their
// own suffix: {"facility": {"id": 5, "key": "F1", "url": "..."}} becomes
// facility_id, facility_key, facility_url.
var refSuffixes = []string{"id", "key", "url"}

// One flattens a record one level deep. Nested objects expand into
// {name}_{subkey} columns; every other value passes through untouched.
// Nested nulls produce no columns, so Conform fills the gaps with nil.
func One(rec map[string]any) Row {
	row := make(Row, len(rec))
	for k, v := range rec {
		nested, ok := v.(map[string]any)
		if !ok {
			row[k] = v
			continue
		}
		for _, suffix := range refSuffixes {
			if sub, present := nested[suffix]; present {
				row[k+"_"+suffix] = sub
			}
		}
		for subKey, sub := range nested {
			if isRefSuffix(subKey) {
				continue
			}
			row[k+"_"+subKey] = sub
		}
	}
	return row
}

func isRefSuffix(key string) bool {
	for _, s := range refSuffixes {
		if key == s {
			return true
		}
	}
	return false
}

// Kind describes the target type of a column.
type Kind int

const (
	// String passes values through as-is.
	String Kind = iota

	// Float parses numerics; unparseable or empty values become nil.
	Float

	// FloatZero is Float with nil mapped to 0.0, for quantity columns that
	// must never be null.
	FloatZero

	// Int parses whole numbers; fractional or unparseable values become nil.
	Int

	// Bool parses common truthy spellings.
	Bool

	// Timestamp parses RFC 3339 or the WMS "2006-01-02T15:04:05" layout.
	Timestamp

	// Date parses "2006-01-02", truncating datetimes to the day.
	Date

	// Array serializes list values to a JSON string.
	Array
)

const (
	wmsTimestampLayout = "2006-01-02T15:04:05"
	wmsDateLayout      = "2006-01-02"
)

// Schema maps column names to their target kinds. Columns absent from the
// schema are left untouched by Apply.
type Schema map[string]Kind

// Apply coerces every schema column present in row, in place, and returns row.
func (s Schema) Apply(row Row) Row {
	for col, kind := range s {
		v, ok := row[col]
		if !ok {
			if kind == FloatZero {
				row[col] = 0.0
			}
			continue
		}
		row[col] = Coerce(v, kind)
	}
	return row
}

// Conform projects row onto exactly the given columns, missing values
// becoming nil. The output is safe to feed into positional SQL arguments.
func Conform(row Row, columns []string) Row {
	out := make(Row, len(columns))
	for _, col := range columns {
		if v, ok := row[col]; ok {
			out[col] = v
		} else {
			out[col] = nil
		}
	}
	return out
}

// Coerce converts a single raw value to the given kind. Values that cannot be
// represented come back as nil (or 0.0 for FloatZero), never as an error:
// dirty upstream data must not abort a load.
func Coerce(v any, kind Kind) any {
	switch kind {
	case String:
		return v
	case Float:
		return coerceFloat(v)
	case FloatZero:
		if f := coerceFloat(v); f != nil {
			return f
		}
		return 0.0
	case Int:
		return coerceInt(v)
	case Bool:
		return coerceBool(v)
	case Timestamp:
		return coerceTimestamp(v)
	case Date:
		return coerceDate(v)
	case Array:
		return coerceArray(v)
	default:
		return v
	}
}

func coerceFloat(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		return x
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case string:
		s := strings.TrimSpace(x)
		if s == "" || strings.EqualFold(s, "null") {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return f
	default:
		return nil
	}
}

func coerceInt(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case int:
		return int64(x)
	case int64:
		return x
	case float64:
		// JSON numbers decode as float64; only whole values are ints.
		if x == float64(int64(x)) {
			return int64(x)
		}
		return nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil
		}
		return n
	default:
		return nil
	}
}

func coerceBool(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case bool:
		return x
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "t", "1", "yes", "y":
			return true
		default:
			return false
		}
	case float64:
		return x != 0
	case int:
		return x != 0
	default:
		return nil
	}
}

func coerceTimestamp(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case time.Time:
		return x
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
		if t, err := time.Parse(wmsTimestampLayout, s); err == nil {
			return t
		}
		return nil
	default:
		return nil
	}
}

func coerceDate(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case time.Time:
		return time.Date(x.Year(), x.Month(), x.Day(), 0, 0, 0, 0, x.Location())
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil
		}
		if t, err := time.Parse(wmsDateLayout, s); err == nil {
			return t
		}
		if ts := coerceTimestamp(s); ts != nil {
			t := ts.(time.Time)
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		}
		return nil
	default:
		return nil
	}
}

func coerceArray(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case []any:
		b, err := json.Marshal(x)
		if err != nil {
			return nil
		}
		return string(b)
	case string:
		return x
	default:
		return nil
	}
}
