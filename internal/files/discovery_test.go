package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("test,csv,content"), 0644))
	}
}

func TestNewDiscovery(t *testing.T) {
	discovery := NewDiscovery("/test/path")
	assert.NotNil(t, discovery)
	assert.Equal(t, "/test/path", discovery.basePath)
}

func TestFindFiles(t *testing.T) {
	tests := []struct {
		name          string
		files         []string
		expectedNames []string
	}{
		{
			name:          "case-insensitive extension",
			files:         []string{"data1.csv", "data2.CSV", "report.csv"},
			expectedNames: []string{"data1.csv", "data2.CSV", "report.csv"},
		},
		{
			name:          "mixed file types",
			files:         []string{"data.csv", "report.xlsx", "doc.pdf"},
			expectedNames: []string{"data.csv"},
		},
		{
			name:          "nested directories in lexical order",
			files:         []string{"b/z.csv", "a/y.csv", "x.csv", "a/deep/w.csv"},
			expectedNames: []string{"w.csv", "y.csv", "z.csv", "x.csv"},
		},
		{
			name:          "empty directory",
			files:         []string{},
			expectedNames: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			discovery := NewDiscovery(tmpDir)

			testDir := "csv_test"
			require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, testDir), 0755))
			writeFiles(t, filepath.Join(tmpDir, testDir), tt.files...)

			files, err := discovery.FindFiles(testDir, CSVExt)
			require.NoError(t, err)

			var names []string
			for _, f := range files {
				names = append(names, f.Name)
				assert.True(t, filepath.IsAbs(f.Path) || filepath.IsAbs(tmpDir))
				assert.Equal(t, int64(len("test,csv,content")), f.Size)
			}
			assert.Equal(t, tt.expectedNames, names)
		})
	}
}

func TestFindFiles_MissingDirectory(t *testing.T) {
	_, err := NewDiscovery(t.TempDir()).FindFiles("nope", ".csv")
	assert.Error(t, err)
}

func TestExpandInputs(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "dir/a.csv", "dir/b.txt", "dir/sub/c.csv", "single.csv")

	discovery := NewDiscovery(tmpDir)
	got, err := discovery.ExpandInputs([]string{"single.csv", "dir", "missing.csv"}, ".csv")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(tmpDir, "single.csv"),
		filepath.Join(tmpDir, "dir", "a.csv"),
		filepath.Join(tmpDir, "dir", "sub", "c.csv"),
		filepath.Join(tmpDir, "missing.csv"),
	}, got)
}
