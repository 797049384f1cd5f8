package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Veraticus/orderplace/internal/common"
	"github.com/Veraticus/orderplace/internal/service"
)

// FileStore keeps each document in its own file under a directory.
// Saves overwrite the whole file in place.
type FileStore struct {
	codec Codec
	dir   string
}

// NewFileStore creates a file store rooted at dir.
func NewFileStore(dir string, codec Codec) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: data directory is empty", common.ErrInvalidConfig)
	}
	if codec == nil {
		codec = JSONCodec{}
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("%w: failed to create data directory: %w", common.ErrIO, err)
	}

	return &FileStore{
		dir:   dir,
		codec: codec,
	}, nil
}

// Path returns the file backing the named document.
func (s *FileStore) Path(name service.DocumentName) string {
	return filepath.Join(s.dir, string(name)+s.codec.Extension())
}

// Exists reports whether the named document has been written.
func (s *FileStore) Exists(ctx context.Context, name service.DocumentName) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateDocument(name); err != nil {
		return false, err
	}

	_, err := os.Stat(s.Path(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("%w: failed to stat %s: %w", common.ErrIO, s.Path(name), err)
}

// Load decodes the named document into out.
func (s *FileStore) Load(ctx context.Context, name service.DocumentName, out any) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateDocument(name); err != nil {
		return err
	}

	path := s.Path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: failed to read %s: %w", common.ErrIO, path, err)
	}

	if err := s.codec.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrParse, path, err)
	}
	return nil
}

// Save encodes v and overwrites the named document.
func (s *FileStore) Save(ctx context.Context, name service.DocumentName, v any) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateDocument(name); err != nil {
		return err
	}

	data, err := s.codec.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	path := s.Path(name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", common.ErrIO, path, err)
	}
	return nil
}

// Close is a no-op; files are not held open between operations.
func (s *FileStore) Close() error {
	return nil
}
