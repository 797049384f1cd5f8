// Package storage provides the document persistence layer for the ledger.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/orderplace/internal/common"
	"github.com/Veraticus/orderplace/internal/model"
	"github.com/Veraticus/orderplace/internal/service"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrUnknownDocument = errors.New("unknown document")
	ErrInvalidItem     = errors.New("invalid catalog item")
	ErrInvalidRecord   = errors.New("invalid record")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateDocument ensures name is one of the known documents.
func validateDocument(name service.DocumentName) error {
	switch name {
	case service.DocumentConfig, service.DocumentCatalog, service.DocumentRecords:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDocument, name)
	}
}

// validateCatalog validates every item of a catalog.
func validateCatalog(items []model.CatalogItem) error {
	for i, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("%w: %w at index %d: missing name", common.ErrParse, ErrInvalidItem, i)
		}
		if item.Price.IsNegative() {
			return fmt.Errorf("%w: %w at index %d: negative price %s", common.ErrParse, ErrInvalidItem, i, item.Price)
		}
	}
	return nil
}

// validateRecords validates every record before it is written.
func validateRecords(records []model.Transaction) error {
	for i, txn := range records {
		if err := validateRecord(txn); err != nil {
			return fmt.Errorf("%w: record at index %d: %w", common.ErrParse, i, err)
		}
	}
	return nil
}

// validateRecord validates a single transaction.
func validateRecord(txn model.Transaction) error {
	if _, err := time.Parse(model.DateLayout, txn.Date); err != nil {
		return fmt.Errorf("%w: date %q", ErrInvalidRecord, txn.Date)
	}
	if _, err := time.Parse(model.TimeLayout, txn.Time); err != nil {
		return fmt.Errorf("%w: time %q", ErrInvalidRecord, txn.Time)
	}
	if len(txn.Items) == 0 {
		return fmt.Errorf("%w: no line items", ErrInvalidRecord)
	}
	for _, it := range txn.Items {
		if it.Qty <= 0 {
			return fmt.Errorf("%w: quantity %d for %q", ErrInvalidRecord, it.Qty, it.Item)
		}
	}
	if !txn.GrandTotal.Equal(txn.SumItems()) {
		return fmt.Errorf("%w: grand total %s does not match line totals %s", ErrInvalidRecord, txn.GrandTotal, txn.SumItems())
	}
	return nil
}
