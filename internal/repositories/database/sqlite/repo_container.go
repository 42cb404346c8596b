package sqlite

import (
	"github.com/jmoiron/sqlx"

	portsrepo "github.com/marioapg/cipher-test/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every SQLite repository to the shared database.
func NewRepositoryProvider(db *sqlx.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo: newCurrencyRepository(db),
		ProductRepo:  newProductRepository(db),
		PriceRepo:    newProductPriceRepository(db),
		TxManager:    newTxManager(db),
	}
}
