package models

import "github.com/shopspring/decimal"

// ProductPrice represents a row of the product_prices table.
// (product_id, currency_id) is unique.
type ProductPrice struct {
	ID         int64           `db:"id"`
	ProductID  int64           `db:"product_id"`  // FK -> products.id
	CurrencyID int64           `db:"currency_id"` // FK -> currencies.id
	Price      decimal.Decimal `db:"price"`
	AuditFields
}
