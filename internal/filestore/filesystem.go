// Package filestore provides domain.FileStore backends that live outside
// the SQLite database: a local directory tree and S3-compatible object
// storage.
package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/msomdec/flexbase/internal/domain"
)

// FileSystemStore keeps each media object as a file under root, mirroring
// the storage key as a relative path:
//
//	<root>/
//	  profiles/user_<id>.<ext>
//	  collections/<millis>_<uuid>_<name>
//	  posts/<millis>_<uuid>_<name>
type FileSystemStore struct {
	root string
}

// NewFileSystemStore creates the root directory if needed.
func NewFileSystemStore(root string) (*FileSystemStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve media directory: %w", err)
	}
	return &FileSystemStore{root: abs}, nil
}

// Save writes data atomically (temp file + rename), replacing any existing file.
func (s *FileSystemStore) Save(_ context.Context, key string, data []byte) error {
	destPath, err := s.path(key)
	if err != nil {
		return err
	}

	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

func (s *FileSystemStore) Get(_ context.Context, key string) ([]byte, error) {
	srcPath, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(srcPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// Delete is a no-op for a missing key.
func (s *FileSystemStore) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// path resolves key below root, rejecting anything that escapes it.
func (s *FileSystemStore) path(key string) (string, error) {
	p := filepath.Join(s.root, filepath.FromSlash(key))
	if key == "" || !strings.HasPrefix(p, s.root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: invalid media key %q", domain.ErrNotFound, key)
	}
	return p, nil
}
