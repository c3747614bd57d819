package fsx

import (
	"context"
	"io"
)

// FileReader is the read-only slice of FileSystem
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)
}

// FileSystem abstracts where uploaded files (logos, resumes) live so the
// services don't care whether the backend is local disk or S3.
type FileSystem interface {
	FileReader

	WriteFile(ctx context.Context, path string, data []byte) error
	DeleteFile(ctx context.Context, path string) error

	// Join builds a backend-appropriate path from segments
	Join(parts ...string) string
}
