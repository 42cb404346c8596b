package repositories

import (
	"context"

	"github.com/marioapg/cipher-test/internal/core/domain"
)

// ProductPriceReader defines read operations for per-currency product prices
type ProductPriceReader interface {
	// FindPriceByProductAndCurrency retrieves the price of a product in one currency.
	FindPriceByProductAndCurrency(ctx context.Context, productID, currencyID int64) (*domain.ProductPrice, error)

	// FindPricesByProduct retrieves the whole price set of a product ordered by id.
	FindPricesByProduct(ctx context.Context, productID int64) ([]domain.ProductPrice, error)
}

// ProductPriceWriter defines write operations for per-currency product prices
type ProductPriceWriter interface {
	// SavePrice inserts a new price. A second price for the same
	// (product, currency) fails with apperrors.ErrDuplicate.
	SavePrice(ctx context.Context, price domain.ProductPrice) (*domain.ProductPrice, error)

	// UpdatePrice overwrites the amount of an existing price.
	UpdatePrice(ctx context.Context, price domain.ProductPrice) error

	// DeletePricesExcept removes every price of the product whose currency is not in
	// keepCurrencyIDs. An empty keep list removes the whole price set.
	DeletePricesExcept(ctx context.Context, productID int64, keepCurrencyIDs []int64) (int64, error)

	// DeletePricesByProduct removes the whole price set of a product.
	DeletePricesByProduct(ctx context.Context, productID int64) (int64, error)
}

// ProductPriceRepositoryFacade combines all price-related repository interfaces
type ProductPriceRepositoryFacade interface {
	ProductPriceReader
	ProductPriceWriter
}
