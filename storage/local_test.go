package storage

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalRoundtrip(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	content := []byte("hello object")
	err = store.Save(context.Background(), "abc123.pdf", bytes.NewReader(content), int64(len(content)), "application/pdf")
	require.NoError(t, err)

	rc, size, err := store.Open(context.Background(), "abc123.pdf")
	require.NoError(t, err)
	defer rc.Close()

	assert.EqualValues(t, len(content), size)

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	require.NoError(t, store.Delete(context.Background(), "abc123.pdf"))

	_, _, err = store.Open(context.Background(), "abc123.pdf")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalMissingKey(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	_, _, err = store.Open(context.Background(), "nope.pdf")
	assert.ErrorIs(t, err, ErrNotFound)

	err = store.Delete(context.Background(), "nope.pdf")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalKeyIsFlattened(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir)
	require.NoError(t, err)

	// Path separators in a key must not escape the store directory
	content := []byte("x")
	err = store.Save(context.Background(), "../escape.pdf", bytes.NewReader(content), 1, "application/pdf")
	require.NoError(t, err)

	rc, _, err := store.Open(context.Background(), "escape.pdf")
	require.NoError(t, err)
	rc.Close()
}
