package pgsql

import (
	portsrepo "github.com/marioapg/cipher-test/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every Postgres repository to the shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo: newPgxCurrencyRepository(dbPool),
		ProductRepo:  newPgxProductRepository(dbPool),
		PriceRepo:    newPgxProductPriceRepository(dbPool),
		TxManager:    newTxManager(dbPool),
	}
}
