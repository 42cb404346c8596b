package services

import (
	"context"

	"github.com/marioapg/cipher-test/internal/core/domain"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// ListCurrencies retrieves all registered currencies. An empty registry is
	// reported as apperrors.ErrNotFound.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)

	// CurrencyExists reports whether a currency id may be referenced by a price.
	CurrencyExists(ctx context.Context, currencyID int64) (bool, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
}
