package validation

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("test"), 0644))
	return path
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	validator := NewFileValidator(slog.Default())

	existing := t.TempDir()
	assert.NoError(t, validator.ValidateOutputDirectory(existing))

	nested := filepath.Join(t.TempDir(), "new", "nested", "dir")
	require.NoError(t, validator.ValidateOutputDirectory(nested))
	assert.DirExists(t, nested)
	assert.NoFileExists(t, filepath.Join(nested, ".write_test"))

	blocker := touch(t, "file")
	assert.Error(t, validator.ValidateOutputDirectory(filepath.Join(blocker, "sub")))
}

func TestFileValidator_ByKind(t *testing.T) {
	validator := NewFileValidator(nil)

	tests := []struct {
		name          string
		check         func(string) error
		path          func(t *testing.T) string
		errorContains string
	}{
		{"xlsx workbook", validator.ValidateExcelFile, func(t *testing.T) string { return touch(t, "lookup.xlsx") }, ""},
		{"xls workbook", validator.ValidateExcelFile, func(t *testing.T) string { return touch(t, "lookup.XLS") }, ""},
		{"temp workbook", validator.ValidateExcelFile, func(t *testing.T) string { return touch(t, "~$lookup.xlsx") }, "temporary"},
		{"not a workbook", validator.ValidateExcelFile, func(t *testing.T) string { return touch(t, "lookup.txt") }, "not an Excel file"},
		{"zip archive", validator.ValidateArchiveFile, func(t *testing.T) string { return touch(t, "feed.zip") }, ""},
		{"not an archive", validator.ValidateArchiveFile, func(t *testing.T) string { return touch(t, "feed.tar") }, "not a zip archive"},
		{"missing file", validator.ValidateFile, func(t *testing.T) string { return "/non/existent/file.csv" }, "does not exist"},
		{"directory", validator.ValidateFile, func(t *testing.T) string { return t.TempDir() }, "is a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(tt.path(t))
			if tt.errorContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}
