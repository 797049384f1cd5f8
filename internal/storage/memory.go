package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/orderplace/internal/common"
	"github.com/Veraticus/orderplace/internal/service"
)

// MemoryStore keeps encoded documents in memory. Values are encoded on Save
// and decoded on Load, so callers never share state with the store.
type MemoryStore struct {
	docs  map[service.DocumentName][]byte
	codec Codec
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:  make(map[service.DocumentName][]byte),
		codec: JSONCodec{},
	}
}

// Exists reports whether the named document has been written.
func (s *MemoryStore) Exists(ctx context.Context, name service.DocumentName) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateDocument(name); err != nil {
		return false, err
	}
	_, ok := s.docs[name]
	return ok, nil
}

// Load decodes the named document into out.
func (s *MemoryStore) Load(ctx context.Context, name service.DocumentName, out any) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateDocument(name); err != nil {
		return err
	}

	data, ok := s.docs[name]
	if !ok {
		return fmt.Errorf("%w: document %s not found", common.ErrIO, name)
	}
	if err := s.codec.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrParse, name, err)
	}
	return nil
}

// Save encodes v and replaces the named document.
func (s *MemoryStore) Save(ctx context.Context, name service.DocumentName, v any) error {
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
	s.docs[name] = data
	return nil
}

// PutRaw stores raw bytes as the named document, bypassing encoding.
func (s *MemoryStore) PutRaw(name service.DocumentName, data []byte) {
	s.docs[name] = data
}

// Close implements service.Store.
func (s *MemoryStore) Close() error {
	return nil
}
