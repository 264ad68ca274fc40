package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"

	"github.com/fortune-cookies-ai/fc-backend/internal/adapter"
)

var blobKeyRe = regexp.MustCompile(`^[a-z0-9_.-]+$`)

// FSBlobStore implements BlobStore on a local directory. Writes go through a
// temp file and rename so readers never observe a partial blob.
type FSBlobStore struct {
	fs      adapter.FileSystem
	dataDir string
}

// NewFSBlobStore creates a filesystem-backed blob store rooted at dataDir
func NewFSBlobStore(filesystem adapter.FileSystem, dataDir string) (*FSBlobStore, error) {
	if err := filesystem.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FSBlobStore{fs: filesystem, dataDir: dataDir}, nil
}

func (s *FSBlobStore) path(key string) (string, error) {
	if !blobKeyRe.MatchString(key) {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(s.dataDir, key+".json"), nil
}

// Read returns the blob stored under key, or ErrBlobNotFound
func (s *FSBlobStore) Read(_ context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := s.fs.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to read blob %s: %w", key, err)
	}
	return data, nil
}

// Write durably replaces the blob stored under key
func (s *FSBlobStore) Write(_ context.Context, key string, data []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	tmp := p + ".tmp"
	if err := s.fs.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write blob %s: %w", key, err)
	}
	if err := s.fs.Rename(tmp, p); err != nil {
		return fmt.Errorf("failed to commit blob %s: %w", key, err)
	}
	return nil
}
