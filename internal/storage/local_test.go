package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IslamGh2004/sawtlib/internal/config"
)

func TestLocalStorePutAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/media")
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "audio/test.mp3", "audio/mpeg",
		strings.NewReader("fake audio bytes"), 16)
	require.NoError(t, err)
	assert.Equal(t, "/media/audio/test.mp3", url)

	data, err := os.ReadFile(filepath.Join(dir, "audio", "test.mp3"))
	require.NoError(t, err)
	assert.Equal(t, "fake audio bytes", string(data))

	require.NoError(t, store.Delete(context.Background(), "audio/test.mp3"))
	_, err = os.Stat(filepath.Join(dir, "audio", "test.mp3"))
	assert.True(t, os.IsNotExist(err))

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete(context.Background(), "audio/test.mp3"))
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/media")
	require.NoError(t, err)

	// Path traversal is confined to the media directory.
	url, err := store.Put(context.Background(), "../escape.mp3", "audio/mpeg",
		strings.NewReader("x"), 1)
	require.NoError(t, err)
	assert.Equal(t, "/media/escape.mp3", url)

	_, err = os.Stat(filepath.Join(dir, "escape.mp3"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(filepath.Dir(dir), "escape.mp3"))
	assert.True(t, os.IsNotExist(err))
}

func TestNewStoreUnknownBackend(t *testing.T) {
	_, err := NewStore(config.Storage{Backend: "ftp"})
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
