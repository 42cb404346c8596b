package models

import "github.com/shopspring/decimal"

// Currency represents a row of the currencies table.
type Currency struct {
	ID           int64           `db:"id"`
	Name         string          `db:"name"`   // e.g., "US Dollar"
	Symbol       string          `db:"symbol"` // e.g., "$"
	ExchangeRate decimal.Decimal `db:"exchange_rate"`
	AuditFields
}
