package loader

import (
	"context"
	"os"
	"path/filepath"
)

// FileSource reads a dataset from a local file.
type FileSource struct {
	Path string
}

// ID is the cleaned absolute path, prefixed with "file:".
func (f FileSource) ID() string {
	p, err := filepath.Abs(f.Path)
	if err != nil {
		p = filepath.Clean(f.Path)
	}
	return "file:" + p
}

// Open reads the whole file.
func (f FileSource) Open(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(f.Path)
}

// BytesSource serves an in-memory dataset, e.g. an uploaded file.
type BytesSource struct {
	Name string
	Data []byte
}

// ID is the name prefixed with "mem:".
func (b BytesSource) ID() string { return "mem:" + b.Name }

// Open returns the bytes.
func (b BytesSource) Open(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return b.Data, nil
}
