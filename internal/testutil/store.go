package testutil

import (
	"context"

	"github.com/Veraticus/orderplace/internal/service"
)

// FailingStore wraps a store and fails writes to selected documents.
type FailingStore struct {
	service.Store
	SaveErr error
	FailOn  map[service.DocumentName]bool
}

// Save fails with SaveErr when name is listed in FailOn.
func (s *FailingStore) Save(ctx context.Context, name service.DocumentName, v any) error {
	if s.FailOn[name] {
		return s.SaveErr
	}
	return s.Store.Save(ctx, name, v)
}
