package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// columnRow is one value of a single-column output table
type columnRow struct {
	Value string `csv:"value"`
}

// emptyField is a lone empty value. Written bare it would be a blank line,
// which csv readers skip.
const emptyField = "\"\"\n"

// WriteColumn writes a single-column table with the given header label and
// returns the full path written. Values are quoted as needed and empty values
// are written as "".
func (w *CSVWriter) WriteColumn(filePath, header string, values []string) (string, error) {
	fullPath := w.resolvePath(filePath)

	slog.Debug("Writing column file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.String("header", header),
		slog.Int("value_count", len(values)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	// The header label is runtime configuration, so it is written ahead of
	// the tagged rows rather than taken from the struct tag.
	hw := csv.NewWriter(file)
	if err := hw.Write([]string{header}); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}
	hw.Flush()
	if err := hw.Error(); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}

	rows := make([]columnRow, 0, len(values))
	flush := func() error {
		if len(rows) == 0 {
			return nil
		}
		err := gocsv.MarshalWithoutHeaders(&rows, file)
		rows = rows[:0]
		return err
	}
	for _, v := range values {
		if v != "" {
			rows = append(rows, columnRow{Value: v})
			continue
		}
		if err := flush(); err != nil {
			return "", fmt.Errorf("failed to write values: %w", err)
		}
		if _, err := file.WriteString(emptyField); err != nil {
			return "", fmt.Errorf("failed to write values: %w", err)
		}
	}
	if err := flush(); err != nil {
		return "", fmt.Errorf("failed to write values: %w", err)
	}
	return fullPath, file.Close()
}
