package probe

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// LocalProber checks files below a directory of a (possibly virtual) filesystem.
type LocalProber struct {
	fs     afero.Fs
	root   string
	logger *zap.Logger
}

// NewLocalProber creates a prober rooted at root on fsys.
func NewLocalProber(fsys afero.Fs, root string, logger *zap.Logger) *LocalProber {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalProber{fs: fsys, root: root, logger: logger}
}

// Exists reports whether path is a regular file below the root. Directories
// and unreadable paths, permission errors included, count as missing.
func (p *LocalProber) Exists(ctx context.Context, path string) bool {
	rel := cleanRelative(path)
	if rel == "" {
		return false
	}
	full := filepath.Join(p.root, filepath.FromSlash(rel))

	info, err := p.fs.Stat(full)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			// Not a plain "missing": surfaced in logs, still reported as missing.
			p.logger.Warn("Cannot stat file, treating it as missing", zap.String("path", full), zap.Error(err))
		}
		return false
	}
	return info.Mode().IsRegular()
}
