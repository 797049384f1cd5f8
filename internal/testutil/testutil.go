// Package testutil provides fixtures shared by the ledger package tests:
// in-memory repositories, scripted consoles, fixed clocks and
// decimal-aware comparisons.
package testutil

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/orderplace/internal/cli"
	"github.com/Veraticus/orderplace/internal/model"
	"github.com/Veraticus/orderplace/internal/service"
	"github.com/Veraticus/orderplace/internal/storage"
	"github.com/shopspring/decimal"
)

// SetupRepository returns a repository over a fresh in-memory store with
// empty catalog and records documents.
//
// Example:
//
//	repo, store := testutil.SetupRepository(t)
//	testutil.SeedCatalog(t, repo, testutil.Item("Tea", "10"))
func SetupRepository(t *testing.T) (*storage.Repository, *storage.MemoryStore) {
	t.Helper()

	store := storage.NewMemoryStore()
	repo := storage.NewRepository(store)
	if err := repo.EnsureSequences(context.Background()); err != nil {
		t.Fatalf("failed to create empty documents: %v", err)
	}
	return repo, store
}

// SeedCatalog writes items as the catalog.
func SeedCatalog(t *testing.T, repo *storage.Repository, items ...model.CatalogItem) {
	t.Helper()
	if err := repo.SaveCatalog(context.Background(), items); err != nil {
		t.Fatalf("failed to seed catalog: %v", err)
	}
}

// SeedRecords writes records as the records document.
func SeedRecords(t *testing.T, repo *storage.Repository, records ...model.Transaction) {
	t.Helper()
	if err := repo.SaveRecords(context.Background(), records); err != nil {
		t.Fatalf("failed to seed records: %v", err)
	}
}

// Console returns a prompter that answers with lines, in order, and the
// buffer it writes to.
func Console(lines ...string) (*cli.Prompter, *bytes.Buffer) {
	var output bytes.Buffer
	input := strings.Join(lines, "\n")
	if len(lines) > 0 {
		input += "\n"
	}
	return cli.NewPrompter(cli.NewNonBlockingReader(strings.NewReader(input)), &output), &output
}

// FixedClock always returns at.
func FixedClock(at time.Time) service.Clock {
	return func() time.Time { return at }
}

// Date returns midnight of the given day in the local time zone.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// Dec parses a decimal literal, panicking on malformed input.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Item builds a catalog item.
func Item(name, price string) model.CatalogItem {
	return model.CatalogItem{Name: name, Price: Dec(price)}
}

// Record builds a transaction on date with one line item per (name, price,
// qty) entry and a recomputed grand total.
func Record(date, clock string, lines ...Line) model.Transaction {
	items := make([]model.LineItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, model.NewLineItem(Item(l.Name, l.Price), l.Qty))
	}
	txn := model.Transaction{Date: date, Time: clock, Items: items}
	txn.GrandTotal = txn.SumItems()
	return txn
}

// Line describes one line item for Record.
type Line struct {
	Name  string
	Price string
	Qty   int
}

// AssertCatalogEqual compares catalogs by name and decimal value.
func AssertCatalogEqual(t *testing.T, want, got []model.CatalogItem) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("catalog length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if want[i].Name != got[i].Name || !want[i].Price.Equal(got[i].Price) {
			t.Errorf("catalog[%d] = {%s %s}, want {%s %s}", i, got[i].Name, got[i].Price, want[i].Name, want[i].Price)
		}
	}
}

// AssertRecordsEqual compares records field by field using decimal equality.
func AssertRecordsEqual(t *testing.T, want, got []model.Transaction) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("records length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		w, g := want[i], got[i]
		if w.Date != g.Date || w.Time != g.Time {
			t.Errorf("records[%d] stamped %s %s, want %s %s", i, g.Date, g.Time, w.Date, w.Time)
		}
		if !w.GrandTotal.Equal(g.GrandTotal) {
			t.Errorf("records[%d] grand total = %s, want %s", i, g.GrandTotal, w.GrandTotal)
		}
		if len(w.Items) != len(g.Items) {
			t.Errorf("records[%d] has %d items, want %d", i, len(g.Items), len(w.Items))
			continue
		}
		for j := range w.Items {
			wi, gi := w.Items[j], g.Items[j]
			if wi.Item != gi.Item || wi.Qty != gi.Qty || !wi.Total.Equal(gi.Total) {
				t.Errorf("records[%d].items[%d] = {%s x%d %s}, want {%s x%d %s}",
					i, j, gi.Item, gi.Qty, gi.Total, wi.Item, wi.Qty, wi.Total)
			}
		}
	}
}
