package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"feedcli/pkg/contracts/domain"
)

// Column width bounds for the summary workbook
const (
	minColumnWidth = 12
	maxColumnWidth = 60
	widthFactor    = 1.2
)

// WorkbookWriter writes the verify summary table
type WorkbookWriter interface {
	WriteSummary(filePath, sheet string, rows []domain.SummaryRow) (string, error)
}

// ExcelWriter writes workbooks with excelize
type ExcelWriter struct {
	csv *CSVWriter
}

// NewExcelWriter creates a workbook writer resolving paths like w
func NewExcelWriter(w *CSVWriter) *ExcelWriter {
	return &ExcelWriter{csv: w}
}

// WriteSummary writes a header row and one row per summary to a new
// workbook with a single sheet, sizing each column to its longest value.
func (e *ExcelWriter) WriteSummary(filePath, sheet string, rows []domain.SummaryRow) (string, error) {
	fullPath := e.csv.resolvePath(filePath)

	slog.Debug("Writing summary workbook",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("row_count", len(rows)))

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return "", fmt.Errorf("failed to name sheet %q: %w", sheet, err)
	}

	table := make([][]interface{}, 0, len(rows)+1)
	header := make([]interface{}, len(domain.SummaryHeader))
	for i, h := range domain.SummaryHeader {
		header[i] = h
	}
	table = append(table, header)
	for _, r := range rows {
		table = append(table, r.Cells())
	}

	for i := range table {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return "", err
		}
		if err := f.SetSheetRow(sheet, cell, &table[i]); err != nil {
			return "", fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	for col, width := range columnWidths(table) {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return "", err
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return "", fmt.Errorf("failed to size column %s: %w", name, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	if err := f.SaveAs(fullPath); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return fullPath, nil
}

// columnWidths returns max(12, min(60, int(longest*1.2))) per column
func columnWidths(table [][]interface{}) []float64 {
	var longest []int
	for _, row := range table {
		for col, v := range row {
			for len(longest) <= col {
				longest = append(longest, 0)
			}
			if n := utf8.RuneCountInString(displayText(v)); n > longest[col] {
				longest[col] = n
			}
		}
	}

	widths := make([]float64, len(longest))
	for i, n := range longest {
		w := int(float64(n) * widthFactor)
		if w > maxColumnWidth {
			w = maxColumnWidth
		}
		if w < minColumnWidth {
			w = minColumnWidth
		}
		widths[i] = float64(w)
	}
	return widths
}
