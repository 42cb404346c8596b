package repositories

import (
	"context"
)

// TxRepositories exposes the repositories bound to one open transaction.
// Every call made through them commits or rolls back together.
type TxRepositories struct {
	Currencies CurrencyReader
	Products   ProductRepositoryFacade
	Prices     ProductPriceRepositoryFacade
}

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// WithinTransaction runs fn inside a single database transaction. The transaction
	// is committed when fn returns nil and rolled back otherwise.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}
