package domain

import "github.com/shopspring/decimal"

// Currency represents a supported currency in the domain.
// Currencies are reference data: seeded once and never deleted.
type Currency struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`          // e.g., "US Dollar"
	Symbol       string          `json:"symbol"`        // e.g., "$"
	ExchangeRate decimal.Decimal `json:"exchange_rate"` // stored only, never used in computation
	AuditFields
}
