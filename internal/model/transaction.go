package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Layouts of the stored date and time fields.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// LineItem is one catalog item sold within a transaction. The item name and
// total are copied at sale time so later catalog changes never alter it.
type LineItem struct {
	Item  string          `json:"item" yaml:"item"`
	Qty   int             `json:"qty" yaml:"qty"`
	Total decimal.Decimal `json:"total" yaml:"total"`
}

// Transaction represents a single completed sale.
type Transaction struct {
	Date       string          `json:"date" yaml:"date"`
	Time       string          `json:"time" yaml:"time"`
	Items      []LineItem      `json:"items" yaml:"items"`
	GrandTotal decimal.Decimal `json:"grand_total" yaml:"grand_total"`
}

// NewLineItem snapshots item at quantity qty.
func NewLineItem(item CatalogItem, qty int) LineItem {
	return LineItem{
		Item:  item.Name,
		Qty:   qty,
		Total: item.LineTotal(qty),
	}
}

// NewTransaction builds a transaction stamped with at. The grand total is
// computed from items.
func NewTransaction(items []LineItem, at time.Time) Transaction {
	txn := Transaction{
		Date:  at.Format(DateLayout),
		Time:  at.Format(TimeLayout),
		Items: items,
	}
	txn.GrandTotal = txn.SumItems()
	return txn
}

// SumItems recomputes the grand total from the line items.
func (t Transaction) SumItems() decimal.Decimal {
	total := decimal.Zero
	for _, it := range t.Items {
		total = total.Add(it.Total)
	}
	return total
}

// ParsedDate parses the stored date as a calendar date in loc.
func (t Transaction) ParsedDate(loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, t.Date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid record date %q: %w", t.Date, err)
	}
	return d, nil
}
