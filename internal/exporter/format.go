package exporter

import (
	"fmt"
	"math"
	"strconv"
)

// formatFloat renders whole numbers with one decimal place ("3.0") and
// everything else in the shortest form that round-trips ("0.1", "1e+20").
func formatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e16 {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// formatInt formats an int64 value for output
func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

// displayText is the text a cell value shows, used to size columns
func displayText(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return formatInt(int64(val))
	case int64:
		return formatInt(val)
	case float64:
		return formatFloat(val)
	default:
		return fmt.Sprint(val)
	}
}
