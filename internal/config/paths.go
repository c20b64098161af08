package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths holds the directories a run reads from and writes to.
// Relative inputs are resolved against WorkDir.
type Paths struct {
	WorkDir   string
	OutputDir string
}

// ResolvePaths builds Paths from the --workdir and --out flags.
// An empty workDir means the current directory. An empty outDir leaves
// OutputDir empty so the operation reports the missing folder.
func ResolvePaths(workDir, outDir string) (*Paths, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		workDir = wd
	}
	workDir, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve working directory %s: %w", workDir, err)
	}

	p := &Paths{WorkDir: workDir}
	if outDir != "" {
		p.OutputDir = p.Resolve(outDir)
	}
	return p, nil
}

// Resolve returns path unchanged if absolute, otherwise joined to WorkDir.
func (p *Paths) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.WorkDir, path)
}

// ResolveAll resolves every path in paths.
func (p *Paths) ResolveAll(paths []string) []string {
	out := make([]string, len(paths))
	for i, path := range paths {
		out[i] = p.Resolve(path)
	}
	return out
}
