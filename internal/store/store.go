package store

import (
	"context"
	"errors"
)

// ErrBlobNotFound is returned when a blob key has never been written
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore defines the interface for durable JSON blob persistence to enable mocking
//
//go:generate mockgen -source=store.go -destination=../mocks/blob_store.go -package=mocks -mock_names=BlobStore=MockBlobStore
type BlobStore interface {
	// Read returns the blob stored under key, or ErrBlobNotFound
	Read(ctx context.Context, key string) ([]byte, error)

	// Write durably replaces the blob stored under key
	Write(ctx context.Context, key string, data []byte) error
}
