package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/IslamGh2004/sawtlib/internal/config"
)

var (
	ErrEmptyKey       = errors.New("object key cannot be empty")
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Store persists uploaded media (audio files and cover images) and
// serves back public URLs for them. Keys are slash-separated paths
// such as "audio/<uuid>.mp3".
type Store interface {
	// Put writes the object and returns its public URL.
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error
	// URL returns the public URL for an already-stored key.
	URL(key string) string
}

// NewStore builds the store named by the configuration.
func NewStore(cfg config.Storage) (Store, error) {
	switch cfg.Backend {
	case config.StorageBackendLocal, "":
		return NewLocalStore(cfg.MediaDir, cfg.PublicBase)
	case config.StorageBackendS3:
		return NewS3Store(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
