package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"feedcli/internal/config"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter writes delimited output files. Relative paths land in the
// configured output directory.
type CSVWriter struct {
	paths *config.Paths
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(paths *config.Paths) *CSVWriter {
	return &CSVWriter{paths: paths}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Records [][]string
	// Append adds to an existing file instead of replacing it
	Append bool
	// BOMPrefix starts a new or empty file with a UTF-8 BOM so Excel detects the encoding
	BOMPrefix bool
	UseCRLF   bool
}

// WriteCSV writes data to a CSV file with the given options and returns the
// full path written.
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) (string, error) {
	fullPath := w.resolvePath(filePath)

	slog.Debug("Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)),
		slog.Bool("append", options.Append))

	stream, err := w.openStream(fullPath, options)
	if err != nil {
		return "", err
	}

	for i, record := range options.Records {
		if err := stream.WriteRecord(record); err != nil {
			stream.Close()
			return "", fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	if err := stream.Close(); err != nil {
		return "", fmt.Errorf("failed to finish %s: %w", fullPath, err)
	}
	return fullPath, nil
}

// StreamWriter writes records to one open CSV file
type StreamWriter struct {
	path   string
	file   *os.File
	writer *csv.Writer
}

// CreateStreamWriter opens filePath for record-by-record writing;
// options.Records is ignored.
func (w *CSVWriter) CreateStreamWriter(filePath string, options WriteOptions) (*StreamWriter, error) {
	fullPath := w.resolvePath(filePath)

	slog.Debug("Creating CSV stream writer",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Bool("append", options.Append))

	return w.openStream(fullPath, options)
}

func (w *CSVWriter) openStream(fullPath string, options WriteOptions) (*StreamWriter, error) {
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if options.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(fullPath, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	if options.BOMPrefix {
		info, err := file.Stat()
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to stat file: %w", err)
		}
		if info.Size() == 0 {
			if _, err := file.Write(utf8BOM); err != nil {
				file.Close()
				return nil, fmt.Errorf("failed to write BOM: %w", err)
			}
		}
	}

	writer := csv.NewWriter(file)
	writer.UseCRLF = options.UseCRLF

	return &StreamWriter{path: fullPath, file: file, writer: writer}, nil
}

// Path returns the full path of the file being written
func (s *StreamWriter) Path() string {
	return s.path
}

// WriteRecord writes a single record to the stream
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// WriteRecords writes several records to the stream
func (s *StreamWriter) WriteRecords(records [][]string) error {
	for i, record := range records {
		if err := s.writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	return nil
}

// Close flushes and closes the stream writer
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

// resolvePath resolves a relative path against the output directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.paths == nil {
		return filePath
	}
	return filepath.Join(w.paths.OutputDir, filePath)
}
