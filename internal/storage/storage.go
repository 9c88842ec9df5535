package storage

import (
	"context"
	"errors"
)

// FileStorage defines the interface for blob storage operations. The core
// never interprets the bytes it stores; avatars and any future media are
// opaque objects addressed by key.
type FileStorage interface {
	// Put stores data under objectKey, replacing any previous object.
	Put(ctx context.Context, objectKey string, data []byte) error

	// Get returns the object's bytes, or ErrObjectNotFound.
	Get(ctx context.Context, objectKey string) ([]byte, error)

	// Delete removes the object. Deleting a missing object is a no-op.
	Delete(ctx context.Context, objectKey string) error
}

// Error constants for storage layer
var (
	ErrObjectNotFound = errors.New("object not found in storage")
)
