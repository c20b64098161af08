package dataprocessing

import (
	"strings"
	"unicode"
)

// Normalize turns a file name into a lookup key: lowercased, with all
// whitespace removed and the "sales_" token canonicalized to "sale_".
func Normalize(name string) string {
	lowered := strings.ToLower(name)
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, lowered)
	return strings.ReplaceAll(stripped, "sales_", "sale_")
}
