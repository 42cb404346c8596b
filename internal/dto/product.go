package dto

import (
	"time"

	"github.com/marioapg/cipher-test/internal/core/domain"
	"github.com/shopspring/decimal"
)

func init() {
	// Clients read prices as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// PriceInput is one (currency, price) pair of a product request.
type PriceInput struct {
	CurrencyID int64            `json:"currency_id" binding:"required"`
	Price      *decimal.Decimal `json:"price" binding:"required"`
}

// ProductRequest is the body of product create and update. Update uses full
// replacement: every field is resupplied and an absent prices list empties the
// product's price set.
type ProductRequest struct {
	Name              string           `json:"name" binding:"required,max=255"`
	Description       string           `json:"description" binding:"max=65535"`
	Price             *decimal.Decimal `json:"price" binding:"required"`
	CurrencyID        int64            `json:"currency_id" binding:"required"`
	TaxCost           *decimal.Decimal `json:"tax_cost"`
	ManufacturingCost *decimal.Decimal `json:"manufacturing_cost"`
	Prices            []PriceInput     `json:"prices" binding:"omitempty,dive"`
}

// TaxCostOrZero returns the tax cost, defaulting to 0 when omitted.
func (r ProductRequest) TaxCostOrZero() decimal.Decimal {
	if r.TaxCost == nil {
		return decimal.Zero
	}
	return *r.TaxCost
}

// ManufacturingCostOrZero returns the manufacturing cost, defaulting to 0 when omitted.
func (r ProductRequest) ManufacturingCostOrZero() decimal.Decimal {
	if r.ManufacturingCost == nil {
		return decimal.Zero
	}
	return *r.ManufacturingCost
}

// DesiredPrices converts the request's price list into the domain desired set.
func (r ProductRequest) DesiredPrices() domain.DesiredPrices {
	out := make(domain.DesiredPrices, 0, len(r.Prices))
	for _, p := range r.Prices {
		entry := domain.PriceEntry{CurrencyID: p.CurrencyID}
		if p.Price != nil {
			entry.Price = *p.Price
		}
		out = append(out, entry)
	}
	return out
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	CurrencyID        int64           `json:"currency_id"`
	TaxCost           decimal.Decimal `json:"tax_cost"`
	ManufacturingCost decimal.Decimal `json:"manufacturing_cost"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ProductDetailResponse is a product with its price set.
type ProductDetailResponse struct {
	ProductResponse
	Prices []ProductPriceResponse `json:"prices"`
}

// ToProductResponse converts a domain.Product to ProductResponse DTO
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		Price:             p.Price,
		CurrencyID:        p.CurrencyID,
		TaxCost:           p.TaxCost,
		ManufacturingCost: p.ManufacturingCost,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// ToListProductResponse converts a slice of domain.Product to a slice of ProductResponse DTOs
func ToListProductResponse(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i := range products {
		res[i] = ToProductResponse(&products[i])
	}
	return res
}

// ToProductDetailResponse converts a product with its prices to the detail DTO
func ToProductDetailResponse(p *domain.ProductWithPrices) ProductDetailResponse {
	return ProductDetailResponse{
		ProductResponse: ToProductResponse(&p.Product),
		Prices:          ToListProductPriceResponse(p.Prices),
	}
}
