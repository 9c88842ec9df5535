package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"
)

// localStorage implements the FileStorage interface on the local
// filesystem, rooted at a single directory.
type localStorage struct {
	root string
}

// NewLocalStorage creates a filesystem-backed storage service rooted at
// root, creating the directory if needed.
func NewLocalStorage(root string) (FileStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	log.Printf("Local storage service initialized at: %s", root)
	return &localStorage{root: root}, nil
}

// resolve maps an object key onto a path under root. Keys are cleaned so
// they cannot escape the root directory.
func (s *localStorage) resolve(objectKey string) string {
	clean := path.Clean("/" + objectKey)
	return filepath.Join(s.root, filepath.FromSlash(clean))
}

func (s *localStorage) Put(_ context.Context, objectKey string, data []byte) error {
	target := s.resolve(objectKey)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create object directory: %w", err)
	}
	// Write-then-rename so readers never see a partial object.
	tmp, err := os.CreateTemp(filepath.Dir(target), ".put-*")
	if err != nil {
		return fmt.Errorf("stage object %s: %w", objectKey, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write object %s: %w", objectKey, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write object %s: %w", objectKey, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store object %s: %w", objectKey, err)
	}
	return nil
}

func (s *localStorage) Get(_ context.Context, objectKey string) ([]byte, error) {
	data, err := os.ReadFile(s.resolve(objectKey))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", objectKey, err)
	}
	return data, nil
}

func (s *localStorage) Delete(_ context.Context, objectKey string) error {
	err := os.Remove(s.resolve(objectKey))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete object %s: %w", objectKey, err)
	}
	return nil
}
