// Package model defines the documents persisted by the ledger: the shop
// configuration, the item catalog and the sales records.
package model

import "github.com/shopspring/decimal"

func init() {
	// Prices and totals are stored as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}
