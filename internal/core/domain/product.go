package domain

import "github.com/shopspring/decimal"

// MoneyScale is the number of decimal places a money amount may carry.
const MoneyScale int32 = 2

// MaxMoney is the largest amount a NUMERIC(10,2) money column holds.
var MaxMoney = decimal.New(9999999999, -MoneyScale)

// Product is a catalog entry. Price and CurrencyID form the product's base price,
// independent of its per-currency price set.
type Product struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	CurrencyID        int64           `json:"currency_id"` // FK -> currencies.id
	TaxCost           decimal.Decimal `json:"tax_cost"`
	ManufacturingCost decimal.Decimal `json:"manufacturing_cost"`
	AuditFields
}

// ProductWithPrices is a product together with its current price set.
type ProductWithPrices struct {
	Product
	Prices []ProductPrice `json:"prices"`
}
