package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/orderplace/internal/common"
	"github.com/Veraticus/orderplace/internal/model"
	"github.com/Veraticus/orderplace/internal/service"
)

// Repository gives typed access to the three ledger documents on top of a
// document store.
type Repository struct {
	store service.Store
}

// NewRepository wraps store.
func NewRepository(store service.Store) *Repository {
	return &Repository{store: store}
}

// HasConfig reports whether first-run setup has been completed.
func (r *Repository) HasConfig(ctx context.Context) (bool, error) {
	return r.store.Exists(ctx, service.DocumentConfig)
}

// EnsureSequences creates empty catalog and records documents when absent.
func (r *Repository) EnsureSequences(ctx context.Context) error {
	for _, name := range []service.DocumentName{service.DocumentCatalog, service.DocumentRecords} {
		ok, err := r.store.Exists(ctx, name)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		if err := r.store.Save(ctx, name, []any{}); err != nil {
			return fmt.Errorf("failed to create %s: %w", name, err)
		}
	}
	return nil
}

// LoadConfig reads the shop configuration.
func (r *Repository) LoadConfig(ctx context.Context) (model.ShopConfig, error) {
	var cfg model.ShopConfig
	if err := r.store.Load(ctx, service.DocumentConfig, &cfg); err != nil {
		return model.ShopConfig{}, err
	}
	return cfg, nil
}

// SaveConfig writes the shop configuration.
func (r *Repository) SaveConfig(ctx context.Context, cfg model.ShopConfig) error {
	return r.store.Save(ctx, service.DocumentConfig, cfg)
}

// LoadCatalog reads the catalog in insertion order.
func (r *Repository) LoadCatalog(ctx context.Context) ([]model.CatalogItem, error) {
	var items []model.CatalogItem
	if err := r.store.Load(ctx, service.DocumentCatalog, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveCatalog overwrites the catalog.
func (r *Repository) SaveCatalog(ctx context.Context, items []model.CatalogItem) error {
	if err := validateCatalog(items); err != nil {
		return err
	}
	if items == nil {
		items = []model.CatalogItem{}
	}
	return r.store.Save(ctx, service.DocumentCatalog, items)
}

// LoadRecords reads the records in insertion order.
func (r *Repository) LoadRecords(ctx context.Context) ([]model.Transaction, error) {
	var records []model.Transaction
	if err := r.store.Load(ctx, service.DocumentRecords, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// AppendRecord adds txn after the existing records. Only txn is validated;
// earlier entries are kept exactly as loaded.
func (r *Repository) AppendRecord(ctx context.Context, txn model.Transaction) error {
	if err := validateRecord(txn); err != nil {
		return fmt.Errorf("%w: %w", common.ErrParse, err)
	}

	records, err := r.LoadRecords(ctx)
	if err != nil {
		return err
	}
	records = append(records, txn)
	return r.store.Save(ctx, service.DocumentRecords, records)
}

// SaveRecords overwrites the records.
func (r *Repository) SaveRecords(ctx context.Context, records []model.Transaction) error {
	if err := validateRecords(records); err != nil {
		return err
	}
	if records == nil {
		records = []model.Transaction{}
	}
	return r.store.Save(ctx, service.DocumentRecords, records)
}
