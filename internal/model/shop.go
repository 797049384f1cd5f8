package model

// ShopConfig is collected once on first run and read at every session start.
type ShopConfig struct {
	ShopName  string `json:"shop_name" yaml:"shop_name"`
	Currency  string `json:"currency" yaml:"currency"` // display symbol, substituted literally
	StartYear int    `json:"start_year" yaml:"start_year"`
}
