package dataprocessing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"feedcli/pkg/contracts/domain"
)

// ValueKind is the inferred type of a column
type ValueKind int

const (
	KindInt ValueKind = iota
	KindFloat
	KindString
)

// String returns the kind name
func (k ValueKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "string"
	}
}

// Value is one typed cell of a column. Missing cells are empty in the source.
type Value struct {
	Raw     string
	Kind    ValueKind
	Num     float64
	Int     int64
	Missing bool
}

// String renders the value for output. Missing values render empty; floats
// that are whole numbers keep one decimal place ("2.0").
func (v Value) String() string {
	if v.Missing {
		return ""
	}
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		if v.Num == math.Trunc(v.Num) && !math.IsInf(v.Num, 0) && math.Abs(v.Num) < 1e16 {
			return strconv.FormatFloat(v.Num, 'f', 1, 64)
		}
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	default:
		return v.Raw
	}
}

// key identifies a value for comparison: numbers compare by value regardless
// of kind, all missing values are equal to each other.
func (v Value) key() string {
	if v.Missing {
		return "nan"
	}
	if v.Kind == KindString {
		return "s:" + v.Raw
	}
	if v.Kind == KindInt {
		return "n:" + strconv.FormatInt(v.Int, 10)
	}
	if v.Num == math.Trunc(v.Num) && math.Abs(v.Num) < 1<<53 {
		return "n:" + strconv.FormatInt(int64(v.Num), 10)
	}
	return "n:" + strconv.FormatFloat(v.Num, 'g', -1, 64)
}

// ReadColumn returns the typed values of column col from a table whose first
// row is a header. Rows too short to have the column yield missing values.
// Cells keep their surrounding whitespace.
func ReadColumn(table domain.Table, col int) ([]Value, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("table has no header row")
	}
	if col < 0 || col >= len(table[0]) {
		return nil, fmt.Errorf("column index %d out of range for %d column(s)", col, len(table[0]))
	}

	data := table[1:]
	raw := make([]string, len(data))
	for i, rec := range data {
		if v, ok := rec.Field(col); ok {
			raw[i] = v
		}
	}
	return TypeColumn(raw), nil
}

// TypeColumn infers one kind for the whole column: int when every present
// value is an integer, float when every present value is numeric, string
// otherwise. Only empty cells are missing. Numbers may be padded with
// whitespace; string values are kept exactly as given.
// An int column with missing values is promoted to float.
func TypeColumn(raw []string) []Value {
	kind := KindInt
	missing := false
	for _, s := range raw {
		if s == "" {
			missing = true
			continue
		}
		s = strings.TrimSpace(s)
		if _, err := strconv.ParseInt(s, 10, 64); err == nil {
			continue
		}
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			if kind == KindInt {
				kind = KindFloat
			}
			continue
		}
		kind = KindString
		break
	}
	if kind == KindInt && missing {
		kind = KindFloat
	}

	values := make([]Value, len(raw))
	for i, s := range raw {
		v := Value{Raw: s, Kind: kind, Missing: s == ""}
		if !v.Missing && kind != KindString {
			num := strings.TrimSpace(s)
			v.Num, _ = strconv.ParseFloat(num, 64)
			if kind == KindInt {
				v.Int, _ = strconv.ParseInt(num, 10, 64)
			}
		}
		values[i] = v
	}
	return values
}

// Difference returns the values of a absent from b, deduplicated, in a's
// first-occurrence order.
func Difference(a, b []Value) []Value {
	exclude := make(map[string]bool, len(b))
	for _, v := range b {
		exclude[v.key()] = true
	}

	seen := make(map[string]bool, len(a))
	var out []Value
	for _, v := range a {
		k := v.key()
		if exclude[k] || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, v)
	}
	return out
}

// Union returns the values of a followed by b, deduplicated, keeping
// first-occurrence order across the concatenation.
func Union(a, b []Value) []Value {
	seen := make(map[string]bool, len(a)+len(b))
	var out []Value
	for _, list := range [][]Value{a, b} {
		for _, v := range list {
			k := v.key()
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, v)
		}
	}
	return out
}

// Strings renders values for output
func Strings(values []Value) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}
