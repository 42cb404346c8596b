package dto

import (
	"time"

	"github.com/marioapg/cipher-test/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AddPriceRequest is the body of the single-price endpoint.
type AddPriceRequest struct {
	CurrencyID int64            `json:"currency_id" binding:"required"`
	Price      *decimal.Decimal `json:"price" binding:"required"`
}

// ProductPriceResponse defines the data returned for a product price.
type ProductPriceResponse struct {
	ID         int64           `json:"id"`
	ProductID  int64           `json:"product_id"`
	CurrencyID int64           `json:"currency_id"`
	Price      decimal.Decimal `json:"price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ToProductPriceResponse converts a domain.ProductPrice to ProductPriceResponse DTO
func ToProductPriceResponse(p *domain.ProductPrice) ProductPriceResponse {
	return ProductPriceResponse{
		ID:         p.ID,
		ProductID:  p.ProductID,
		CurrencyID: p.CurrencyID,
		Price:      p.Price,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// ToListProductPriceResponse converts domain prices to DTOs. A nil input yields an
// empty, non-nil slice so it serializes as [].
func ToListProductPriceResponse(prices []domain.ProductPrice) []ProductPriceResponse {
	res := make([]ProductPriceResponse, len(prices))
	for i := range prices {
		res[i] = ToProductPriceResponse(&prices[i])
	}
	return res
}
