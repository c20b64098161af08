package files

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Input file extensions
const (
	CSVExt     = ".csv"
	ArchiveExt = ".zip"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindFiles walks dir recursively and returns every regular file whose name
// ends in ext, ignoring case, in lexical walk order.
func (d *Discovery) FindFiles(dir, ext string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)
	ext = strings.ToLower(ext)

	var files []FileInfo
	err := filepath.WalkDir(fullPath, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !entry.Type().IsRegular() {
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(entry.Name()), ext) {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return nil
		}
		files = append(files, FileInfo{
			Path:    path,
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", fullPath, err)
	}
	return files, nil
}

// ExpandInputs replaces every directory in paths with the files under it
// ending in ext. Plain files are kept as given, in order.
func (d *Discovery) ExpandInputs(paths []string, ext string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		full := d.resolve(p)
		info, err := os.Stat(full)
		if err != nil || !info.IsDir() {
			out = append(out, full)
			continue
		}
		found, err := d.FindFiles(full, ext)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			out = append(out, f.Path)
		}
	}
	return out, nil
}

func (d *Discovery) resolve(dir string) string {
	if filepath.IsAbs(dir) || d.basePath == "" {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}
