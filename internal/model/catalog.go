package model

import (
	"github.com/shopspring/decimal"
)

// CatalogItem is a purchasable item. Its position in the catalog (1-based)
// is the only identifier used during record entry.
type CatalogItem struct {
	Name  string          `json:"name" yaml:"name"`
	Price decimal.Decimal `json:"price" yaml:"price"`
}

// LineTotal returns the price of qty units of the item.
func (c CatalogItem) LineTotal(qty int) decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(qty)))
}
