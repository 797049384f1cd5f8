// Package recorder builds sales transactions from the catalog and appends
// them to the records document.
package recorder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/orderplace/internal/common"
	"github.com/Veraticus/orderplace/internal/model"
	"github.com/Veraticus/orderplace/internal/service"
)

// Store is the persistence the recorder needs.
type Store interface {
	service.CatalogStore
	service.RecordStore
}

// Recorder records sales.
type Recorder struct {
	store   Store
	console service.Console
	clock   service.Clock
	logger  *slog.Logger
}

// New creates a recorder. A nil clock uses time.Now.
func New(store Store, console service.Console, clock service.Clock, logger *slog.Logger) *Recorder {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		store:   store,
		console: console,
		clock:   clock,
		logger:  logger,
	}
}

// AddRecord interactively builds one transaction and appends it. Any invalid
// answer aborts the whole transaction; nothing is written unless every line
// item was entered.
func (r *Recorder) AddRecord(ctx context.Context, currency string) (model.Transaction, error) {
	items, err := r.store.LoadCatalog(ctx)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to load catalog: %w", err)
	}
	if len(items) == 0 {
		return model.Transaction{}, common.ErrEmptyCatalog
	}

	var lines []model.LineItem
	for {
		r.console.Print(formatCatalog(items, currency))

		line, err := r.promptLine(ctx, items)
		if err != nil {
			return model.Transaction{}, err
		}
		lines = append(lines, line)

		more, err := r.console.Menu(ctx, "Add more items?", []string{"Yes", "No"})
		if err != nil {
			return model.Transaction{}, err
		}
		if more == "2" {
			break
		}
	}

	txn := model.NewTransaction(lines, r.clock())

	if err := r.store.AppendRecord(ctx, txn); err != nil {
		return model.Transaction{}, fmt.Errorf("failed to save records: %w", err)
	}

	common.LogDebug(r.logger, "record saved", common.Fields{
		"date":        txn.Date,
		"time":        txn.Time,
		"items":       len(txn.Items),
		"grand_total": txn.GrandTotal.String(),
	})
	r.console.Success("Record saved")
	return txn, nil
}

// promptLine asks for an item number and a quantity, then resolves the item.
// Both answers are read before the item number is checked.
func (r *Recorder) promptLine(ctx context.Context, items []model.CatalogItem) (model.LineItem, error) {
	choice, err := r.console.AskInt(ctx, "Choose item number")
	if err != nil {
		return model.LineItem{}, err
	}

	qty, err := r.console.AskInt(ctx, "Quantity")
	if err != nil {
		return model.LineItem{}, err
	}

	if choice < 1 || choice > len(items) {
		return model.LineItem{}, common.Validationf("Item %d does not exist (choose 1-%d)", choice, len(items))
	}
	if qty <= 0 {
		return model.LineItem{}, common.Validationf("Quantity must be positive, got %d", qty)
	}

	return model.NewLineItem(items[choice-1], qty), nil
}

func formatCatalog(items []model.CatalogItem, currency string) string {
	var b strings.Builder
	b.WriteString("\nItems List:\n")
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s - %s%s\n", i+1, item.Name, currency, model.FormatMoney(item.Price))
	}
	return strings.TrimSuffix(b.String(), "\n")
}
