package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStore writes objects under a directory on disk. The directory
// is expected to be served by the HTTP layer under the public base
// path (default "/media").
type LocalStore struct {
	dir        string
	publicBase string
}

func NewLocalStore(dir, publicBase string) (*LocalStore, error) {
	if dir == "" {
		dir = "./media"
	}
	if publicBase == "" {
		publicBase = "/media"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &LocalStore{dir: dir, publicBase: strings.TrimSuffix(publicBase, "/")}, nil
}

func (s *LocalStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	cleaned, err := s.cleanKey(key)
	if err != nil {
		return "", err
	}

	dest := filepath.Join(s.dir, filepath.FromSlash(cleaned))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("failed to create object directory: %w", err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create object file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("failed to write object: %w", err)
	}

	return s.URL(cleaned), nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	cleaned, err := s.cleanKey(key)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.dir, filepath.FromSlash(cleaned)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (s *LocalStore) URL(key string) string {
	return s.publicBase + "/" + strings.TrimPrefix(key, "/")
}

// cleanKey rejects keys that would escape the media directory.
func (s *LocalStore) cleanKey(key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	cleaned := path.Clean("/" + key)
	if cleaned == "/" {
		return "", ErrEmptyKey
	}
	return strings.TrimPrefix(cleaned, "/"), nil
}
