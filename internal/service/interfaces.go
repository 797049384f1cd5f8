// Package service defines the interfaces shared by the ledger components.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/orderplace/internal/model"
	"github.com/shopspring/decimal"
)

// DocumentName identifies one of the persisted documents.
type DocumentName string

// The three documents owned by the store.
const (
	DocumentConfig  DocumentName = "config"
	DocumentCatalog DocumentName = "items"
	DocumentRecords DocumentName = "records"
)

// Store persists whole documents. Every Save overwrites the previous
// snapshot; there is no partial update and no locking.
type Store interface {
	Exists(ctx context.Context, name DocumentName) (bool, error)
	Load(ctx context.Context, name DocumentName, out any) error
	Save(ctx context.Context, name DocumentName, v any) error
	Close() error
}

// ConfigStore reads and writes the shop configuration.
type ConfigStore interface {
	LoadConfig(ctx context.Context) (model.ShopConfig, error)
	SaveConfig(ctx context.Context, cfg model.ShopConfig) error
}

// CatalogStore reads and writes the item catalog.
type CatalogStore interface {
	LoadCatalog(ctx context.Context) ([]model.CatalogItem, error)
	SaveCatalog(ctx context.Context, items []model.CatalogItem) error
}

// RecordStore reads and writes the sales records.
type RecordStore interface {
	LoadRecords(ctx context.Context) ([]model.Transaction, error)
	SaveRecords(ctx context.Context, records []model.Transaction) error
	AppendRecord(ctx context.Context, txn model.Transaction) error
}

// InputProvider supplies one line of user input at a time.
type InputProvider interface {
	ReadLine(ctx context.Context) (string, error)
}

// Progress tracks a long-running operation.
type Progress interface {
	Add(n int) error
	Finish() error
}

// Console is the interactive terminal surface used by every operation.
type Console interface {
	Ask(ctx context.Context, label string) (string, error)
	AskInt(ctx context.Context, label string) (int, error)
	AskDecimal(ctx context.Context, label string) (decimal.Decimal, error)
	Menu(ctx context.Context, title string, options []string) (string, error)

	Print(text string)
	Success(msg string)
	Warn(msg string)
	Fail(msg string)
	StartProgress(total int, description string) Progress
}

// Clock returns the current local time.
type Clock func() time.Time
