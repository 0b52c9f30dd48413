// Package floats provides fallible float extraction from loosely typed cells.
// It is intended for reshaping tasks where a numeric field may arrive as a
// string, a JSON number, empty, or missing entirely, and where malformed
// values must be surfaced rather than silently dropped.
package floats

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Parse extracts a float from a cell.
//
// Absent values (nil, empty or whitespace-only strings) return ok=false with
// a nil error: the cell is null, not broken. Non-empty values that fail to
// parse return an error; callers decide whether to abort or to null the cell
// and tally the failure. A zero value ("0", 0) is a value, never null.
func Parse(v any) (float64, bool, error) {
	switch x := v.(type) {
	case nil:
		return 0, false, nil
	case float64:
		return x, true, nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false, fmt.Errorf("number %q: %w", x.String(), err)
		}
		return f, true, nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false, fmt.Errorf("value %q is not numeric", x)
		}
		return f, true, nil
	default:
		return 0, false, fmt.Errorf("value %v (%T) is not numeric", v, v)
	}
}

// SplitPair splits a compound cell of the form "<a><sep><b>" and parses both
// sides as floats.
//
// Absent cells (nil, empty string) return ok=false, err=nil: both derived
// values are null. Anything else must produce exactly two parseable parts;
// otherwise an error describes the offending value and both results are null.
func SplitPair(v any, sep string) (a, b float64, ok bool, err error) {
	var s string
	switch x := v.(type) {
	case nil:
		return 0, 0, false, nil
	case string:
		s = x
	case json.Number:
		s = x.String()
	default:
		return 0, 0, false, fmt.Errorf("value %v (%T) is not splittable", v, v)
	}
	if strings.TrimSpace(s) == "" {
		return 0, 0, false, nil
	}

	parts := strings.Split(s, sep)
	if len(parts) != 2 {
		return 0, 0, false, fmt.Errorf("value %q: want 2 parts separated by %q, got %d", s, sep, len(parts))
	}
	a, aok, aerr := Parse(parts[0])
	if aerr != nil || !aok {
		return 0, 0, false, fmt.Errorf("value %q: left part %q is not numeric", s, parts[0])
	}
	b, bok, berr := Parse(parts[1])
	if berr != nil || !bok {
		return 0, 0, false, fmt.Errorf("value %q: right part %q is not numeric", s, parts[1])
	}
	return a, b, true, nil
}
