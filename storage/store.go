// Package storage holds the file content stores. Report bytes are
// kept under generated opaque keys, never under the user supplied
// file name.
package storage

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/viper"
)

// ErrNotFound is returned when a key has no stored object behind it
var ErrNotFound = errors.New("object not found")

type Store interface {
	// Save writes the object under key. A failed save must not leave
	// partial data behind.
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// Open returns a reader over the object and its size. The caller
	// closes the reader.
	Open(ctx context.Context, key string) (io.ReadCloser, int64, error)

	Delete(ctx context.Context, key string) error
}

// New builds the store configured under storage.type
func New() (Store, error) {
	switch viper.GetString("storage.type") {
	case "s3":
		return NewS3()
	default:
		return NewLocal(viper.GetString("storage.path"))
	}
}
