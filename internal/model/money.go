package model

import "github.com/shopspring/decimal"

// FormatMoney renders an amount the way the ledger has always printed it:
// whole amounts keep one decimal place ("30.0"), others use the shortest
// exact form ("12.5", "0.30000000000000004").
func FormatMoney(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return d.StringFixed(1)
	}
	return d.String()
}
