package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// WriteText writes content as-is and returns the full path written
func (w *CSVWriter) WriteText(filePath, content string) (string, error) {
	fullPath := w.resolvePath(filePath)

	slog.Debug("Writing text file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("size_bytes", len(content)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", fullPath, err)
	}
	return fullPath, nil
}
