package dataprocessing

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Default lookup workbook header names
const (
	DefaultKeyColumn   = "File Name"
	DefaultValueColumn = "Add in File"
)

// LookupTable maps normalized file names to augmentation values
type LookupTable struct {
	entries map[string]string
}

// NewLookupTable builds a table from key/value pairs in order. Keys are
// normalized; blank keys are ignored and the first value for a key wins.
func NewLookupTable(pairs [][2]string) *LookupTable {
	lt := &LookupTable{entries: make(map[string]string, len(pairs))}
	for _, p := range pairs {
		lt.add(p[0], p[1])
	}
	return lt
}

func (lt *LookupTable) add(key, value string) {
	k := Normalize(key)
	if k == "" {
		return
	}
	if _, exists := lt.entries[k]; exists {
		return
	}
	lt.entries[k] = value
}

// Len returns the number of distinct keys
func (lt *LookupTable) Len() int {
	return len(lt.entries)
}

// Match looks up the base name of fileName by exact normalized key
func (lt *LookupTable) Match(fileName string) (string, bool) {
	v, ok := lt.entries[Normalize(filepath.Base(fileName))]
	return v, ok
}

// LoadLookupTable reads the first sheet of the workbook at path. The header
// row must contain keyColumn and valueColumn, matched ignoring case and
// surrounding whitespace.
func LoadLookupTable(path, keyColumn, valueColumn string) (*LookupTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lookup workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("lookup workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	keyIdx := headerIndex(rows[0], keyColumn)
	valueIdx := headerIndex(rows[0], valueColumn)
	if keyIdx < 0 {
		return nil, fmt.Errorf("column %q not found in sheet %q", keyColumn, sheets[0])
	}
	if valueIdx < 0 {
		return nil, fmt.Errorf("column %q not found in sheet %q", valueColumn, sheets[0])
	}

	pairs := make([][2]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if keyIdx >= len(row) {
			continue
		}
		var value string
		if valueIdx < len(row) {
			value = formatLookupValue(row[valueIdx])
		}
		pairs = append(pairs, [2]string{row[keyIdx], value})
	}
	return NewLookupTable(pairs), nil
}

func headerIndex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(name)) {
			return i
		}
	}
	return -1
}

// formatLookupValue renders whole numbers written with a fraction or exponent
// ("42.0", "4.2E1") as integers. Anything else is returned trimmed.
func formatLookupValue(v string) string {
	v = strings.TrimSpace(v)
	if !strings.ContainsAny(v, ".eE") {
		return v
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return v
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
