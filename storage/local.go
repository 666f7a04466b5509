package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local stores objects as plain files in a single directory. Keys are
// generated by the caller so there is no path traversal surface here,
// but Base strips any separators anyway.
type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory, %w", err)
	}

	return &Local{dir: dir}, nil
}

func (l *Local) path(key string) string {
	return filepath.Join(l.dir, filepath.Base(key))
}

func (l *Local) Save(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	dst, err := os.Create(l.path(key))
	if err != nil {
		return fmt.Errorf("failed to create file, %w", err)
	}

	_, err = io.Copy(dst, r)
	if err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return fmt.Errorf("failed to write file, %w", err)
	}

	return dst.Close()
}

func (l *Local) Open(_ context.Context, key string) (io.ReadCloser, int64, error) {
	f, err := os.Open(l.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, ErrNotFound
		}

		return nil, 0, err
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}

	return f, stat.Size(), nil
}

func (l *Local) Delete(_ context.Context, key string) error {
	err := os.Remove(l.path(key))
	if os.IsNotExist(err) {
		return ErrNotFound
	}

	return err
}
