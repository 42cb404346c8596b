package repositories

import (
	"context"

	"github.com/marioapg/cipher-test/internal/core/domain"
)

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// ListCurrencies retrieves all currencies in insertion order.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)

	// CurrencyExists reports whether a currency with the id is registered.
	CurrencyExists(ctx context.Context, currencyID int64) (bool, error)
}

// CurrencyWriter defines write operations for currency data
type CurrencyWriter interface {
	// SaveCurrency persists a new currency and returns it with its assigned id.
	SaveCurrency(ctx context.Context, currency domain.Currency) (*domain.Currency, error)
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}
