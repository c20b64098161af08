package files

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Member is a delimited file found inside an extracted archive
type Member struct {
	Path        string
	Name        string
	ArchiveBase string
}

// Workspace is the scoped temporary directory an archive was extracted into.
// Close removes it.
type Workspace struct {
	Dir         string
	ArchivePath string
	ArchiveBase string
	memberExt   string
}

// Members returns the files under the workspace whose names end in the
// member extension, ignoring case, in lexical walk order.
func (w *Workspace) Members() ([]Member, error) {
	found, err := NewDiscovery("").FindFiles(w.Dir, w.memberExt)
	if err != nil {
		return nil, err
	}
	members := make([]Member, len(found))
	for i, f := range found {
		members[i] = Member{Path: f.Path, Name: f.Name, ArchiveBase: w.ArchiveBase}
	}
	return members, nil
}

// Close removes the workspace and everything extracted into it
func (w *Workspace) Close() error {
	if w == nil || w.Dir == "" {
		return nil
	}
	return os.RemoveAll(w.Dir)
}

// Extractor unpacks zip archives into temporary workspaces
type Extractor struct {
	// TempDir is the parent for workspaces. Empty means os.TempDir.
	TempDir   string
	MemberExt string
	logger    *slog.Logger
}

// NewExtractor creates an extractor that looks for members ending in memberExt
func NewExtractor(memberExt string, logger *slog.Logger) *Extractor {
	if memberExt == "" {
		memberExt = CSVExt
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{MemberExt: memberExt, logger: logger}
}

// ArchiveBase returns the archive file name without directory or extension
func ArchiveBase(archivePath string) string {
	base := filepath.Base(archivePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Extract unpacks every entry of the archive at archivePath into a new
// workspace. On error nothing is left behind.
func (e *Extractor) Extract(ctx context.Context, archivePath string) (*Workspace, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer zr.Close()

	dir, err := os.MkdirTemp(e.TempDir, "feedcli-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	ws := &Workspace{
		Dir:         dir,
		ArchivePath: archivePath,
		ArchiveBase: ArchiveBase(archivePath),
		memberExt:   e.MemberExt,
	}

	for _, entry := range zr.File {
		if err := extractEntry(dir, entry); err != nil {
			ws.Close()
			return nil, err
		}
	}

	e.logger.DebugContext(ctx, "Archive extracted",
		slog.String("archive", archivePath),
		slog.String("workspace", dir),
		slog.Int("entries", len(zr.File)))
	return ws, nil
}

func extractEntry(dir string, entry *zip.File) error {
	target, err := safeJoin(dir, entry.Name)
	if err != nil {
		return err
	}

	if entry.FileInfo().IsDir() {
		return os.MkdirAll(target, 0755)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", entry.Name, err)
	}

	src, err := entry.Open()
	if err != nil {
		return fmt.Errorf("failed to open entry %s: %w", entry.Name, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("failed to extract entry %s: %w", entry.Name, err)
	}
	return dst.Close()
}

// safeJoin resolves an archive entry name inside dir, rejecting names that
// would land outside it.
func safeJoin(dir, name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(cleaned) || filepath.VolumeName(cleaned) != "" {
		return "", fmt.Errorf("archive entry %q has an absolute path", name)
	}
	target := filepath.Join(dir, cleaned)
	rel, err := filepath.Rel(dir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("archive entry %q escapes the workspace", name)
	}
	return target, nil
}
