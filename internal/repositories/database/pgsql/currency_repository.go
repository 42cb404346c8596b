package pgsql

import (
	"context"
	"fmt"

	"github.com/marioapg/cipher-test/internal/core/domain"
	portsrepo "github.com/marioapg/cipher-test/internal/core/ports/repositories"
	"github.com/marioapg/cipher-test/internal/models"
	"github.com/marioapg/cipher-test/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(pool *pgxpool.Pool) portsrepo.CurrencyRepositoryFacade {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{DB: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

const currencyColumns = `id, name, symbol, exchange_rate, created_at, updated_at`

func scanCurrency(row pgx.Row) (models.Currency, error) {
	var c models.Currency
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Symbol,
		&c.ExchangeRate,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

// SaveCurrency inserts a currency and returns it with its generated id.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) (*domain.Currency, error) {
	modelCurr := mapping.ToModelCurrency(currency)

	query := `
		INSERT INTO currencies (name, symbol, exchange_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
	`
	err := r.DB.QueryRow(ctx, query,
		modelCurr.Name,
		modelCurr.Symbol,
		modelCurr.ExchangeRate,
		modelCurr.CreatedAt,
		modelCurr.UpdatedAt,
	).Scan(&modelCurr.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to save currency %s: %w", modelCurr.Name, err)
	}

	domainCurr := mapping.ToDomainCurrency(modelCurr)
	return &domainCurr, nil
}

// ListCurrencies retrieves all currencies.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies ORDER BY id;`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	modelCurrencies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Currency, error) {
		return scanCurrency(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan currencies: %w", err)
	}

	return mapping.ToDomainCurrencySlice(modelCurrencies), nil
}

// CurrencyExists reports whether a currency with the id is registered.
func (r *PgxCurrencyRepository) CurrencyExists(ctx context.Context, currencyID int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM currencies WHERE id = $1);`, currencyID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check currency %d: %w", currencyID, err)
	}
	return exists, nil
}
