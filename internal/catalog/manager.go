// Package catalog manages the item catalog.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/orderplace/internal/common"
	"github.com/Veraticus/orderplace/internal/model"
	"github.com/Veraticus/orderplace/internal/service"
	"github.com/shopspring/decimal"
)

// Manager appends items to the catalog.
type Manager struct {
	store  service.CatalogStore
	logger *slog.Logger
}

// NewManager creates a catalog manager.
func NewManager(store service.CatalogStore, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{store: store, logger: logger}
}

// AddItem appends an item. Names may repeat; the price must be non-negative.
// Nothing is written when validation fails.
func (m *Manager) AddItem(ctx context.Context, name string, price decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return common.Validationf("Item name cannot be empty")
	}
	if price.IsNegative() {
		return common.Validationf("Price cannot be negative (%s)", price)
	}

	items, err := m.store.LoadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	items = append(items, model.CatalogItem{Name: name, Price: price})
	if err := m.store.SaveCatalog(ctx, items); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}

	common.LogDebug(m.logger, "item added", common.Fields{
		"name":  name,
		"price": price.String(),
		"count": len(items),
	})
	return nil
}

// PromptAndAdd asks for a name and a price and adds the item.
func (m *Manager) PromptAndAdd(ctx context.Context, console service.Console) error {
	name, err := console.Ask(ctx, "Item name")
	if err != nil {
		return err
	}

	price, err := console.AskDecimal(ctx, "Item price")
	if err != nil {
		return err
	}

	if err := m.AddItem(ctx, name, price); err != nil {
		return err
	}

	console.Success("Item added")
	return nil
}
