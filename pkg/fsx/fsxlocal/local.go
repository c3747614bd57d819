package fsxlocal

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/easilyhq/easily/pkg/fsx"
)

// LocalFileSystem stores files under a root directory on disk.
type LocalFileSystem struct {
	root string
}

// NewLocalFileSystem creates a disk-backed file system rooted at dir.
// The directory is created if missing.
func NewLocalFileSystem(dir string) (*LocalFileSystem, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalFileSystem{root: dir}, nil
}

func (l *LocalFileSystem) Join(parts ...string) string {
	return path.Join(parts...)
}

func (l *LocalFileSystem) WriteFile(ctx context.Context, p string, data []byte) error {
	full := filepath.Join(l.root, filepath.FromSlash(p))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}

func (l *LocalFileSystem) ReadFile(ctx context.Context, p string) ([]byte, error) {
	return os.ReadFile(filepath.Join(l.root, filepath.FromSlash(p)))
}

func (l *LocalFileSystem) ReadFileStream(ctx context.Context, p string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(l.root, filepath.FromSlash(p)))
}

func (l *LocalFileSystem) DeleteFile(ctx context.Context, p string) error {
	return os.Remove(filepath.Join(l.root, filepath.FromSlash(p)))
}

var _ fsx.FileSystem = (*LocalFileSystem)(nil)
