package dataprocessing

import (
	"strings"

	"feedcli/pkg/contracts/domain"
)

// minCleanFields is the shortest row the cleaner keeps
const minCleanFields = 3

// CleanTable filters and reshapes one member table for the clean operation.
//
// Header and footer rows are dropped when the table has more than two rows.
// Every field is passed through CleanField. Rows with fewer than three fields
// are dropped, as are rows whose second and third fields are equal ignoring
// case. Surviving rows get label appended as a trailing field.
func CleanTable(table domain.Table, label string) []domain.Record {
	body := table.Body()
	out := make([]domain.Record, 0, len(body))

	for _, rec := range body {
		cleaned := make(domain.Record, len(rec), len(rec)+1)
		for i, field := range rec {
			cleaned[i] = CleanField(field)
		}
		if len(cleaned) < minCleanFields {
			continue
		}
		if strings.EqualFold(cleaned[1], cleaned[2]) {
			continue
		}
		out = append(out, append(cleaned, label))
	}
	return out
}
