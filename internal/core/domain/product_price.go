package domain

import "github.com/shopspring/decimal"

// ProductPrice is one currency-specific price point of a product.
// At most one ProductPrice exists per (ProductID, CurrencyID).
type ProductPrice struct {
	ID         int64           `json:"id"`
	ProductID  int64           `json:"product_id"`  // FK -> products.id
	CurrencyID int64           `json:"currency_id"` // FK -> currencies.id
	Price      decimal.Decimal `json:"price"`
	AuditFields
}

// PriceEntry is a requested (currency, price) pair.
type PriceEntry struct {
	CurrencyID int64
	Price      decimal.Decimal
}

// DesiredPrices is the price set a product should end up with after synchronization.
type DesiredPrices []PriceEntry

// Normalize collapses repeated currencies so each appears once. The last occurrence
// of a currency wins; the position of its first occurrence is kept.
func (d DesiredPrices) Normalize() DesiredPrices {
	if len(d) == 0 {
		return DesiredPrices{}
	}

	index := make(map[int64]int, len(d))
	out := make(DesiredPrices, 0, len(d))
	for _, e := range d {
		if i, seen := index[e.CurrencyID]; seen {
			out[i].Price = e.Price
			continue
		}
		index[e.CurrencyID] = len(out)
		out = append(out, e)
	}
	return out
}

// CurrencyIDs returns the distinct currency ids of the set in first-seen order.
func (d DesiredPrices) CurrencyIDs() []int64 {
	seen := make(map[int64]struct{}, len(d))
	ids := make([]int64, 0, len(d))
	for _, e := range d {
		if _, ok := seen[e.CurrencyID]; ok {
			continue
		}
		seen[e.CurrencyID] = struct{}{}
		ids = append(ids, e.CurrencyID)
	}
	return ids
}
