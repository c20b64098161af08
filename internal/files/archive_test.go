package files

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeZip creates an archive whose entries map names to contents
func writeZip(t *testing.T, path string, entries [][2]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e[0])
		require.NoError(t, err)
		_, err = w.Write([]byte(e[1]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func TestExtractor_Extract(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "Feed March.zip")
	writeZip(t, archive, [][2]string{
		{"b.csv", "1,2,3"},
		{"nested/a.CSV", "4,5,6"},
		{"readme.txt", "ignore me"},
		{"nested/", ""},
	})

	extractor := NewExtractor(".csv", nil)
	extractor.TempDir = t.TempDir()

	ws, err := extractor.Extract(context.Background(), archive)
	require.NoError(t, err)
	assert.Equal(t, "Feed March", ws.ArchiveBase)

	members, err := ws.Members()
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "b.csv", members[0].Name)
	assert.Equal(t, "a.CSV", members[1].Name)
	for _, m := range members {
		assert.Equal(t, "Feed March", m.ArchiveBase)
		assert.FileExists(t, m.Path)
	}

	require.NoError(t, ws.Close())
	assert.NoDirExists(t, ws.Dir)
}

func TestExtractor_RejectsZipSlip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.zip")
	writeZip(t, archive, [][2]string{
		{"ok.csv", "1,2,3"},
		{"../../escape.csv", "x"},
	})

	parent := t.TempDir()
	extractor := NewExtractor("", nil)
	extractor.TempDir = parent

	_, err := extractor.Extract(context.Background(), archive)
	require.Error(t, err)

	entries, err := os.ReadDir(parent)
	require.NoError(t, err)
	assert.Empty(t, entries, "failed extraction leaves no workspace behind")
}

func TestExtractor_NotAnArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.zip")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0644))

	_, err := NewExtractor("", nil).Extract(context.Background(), path)
	assert.Error(t, err)
}

func TestSafeJoin(t *testing.T) {
	base := t.TempDir()
	tests := []struct {
		name    string
		entry   string
		wantErr bool
	}{
		{"plain", "a.csv", false},
		{"nested", "x/y/z.csv", false},
		{"dot segments inside", "x/../y.csv", false},
		{"parent escape", "../a.csv", true},
		{"deep escape", "x/../../a.csv", true},
		{"absolute", "/etc/passwd", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := safeJoin(base, tt.entry)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestArchiveBase(t *testing.T) {
	assert.Equal(t, "feed", ArchiveBase("/a/b/feed.zip"))
	assert.Equal(t, "my.feed", ArchiveBase("my.feed.zip"))
}

func TestWorkspace_CloseNil(t *testing.T) {
	var ws *Workspace
	assert.NoError(t, ws.Close())
}
