package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/marioapg/cipher-test/internal/core/domain"
	portsrepo "github.com/marioapg/cipher-test/internal/core/ports/repositories"
	"github.com/marioapg/cipher-test/internal/models"
	"github.com/marioapg/cipher-test/internal/utils/mapping"
)

type CurrencyRepository struct {
	BaseRepository
}

func newCurrencyRepository(db *sqlx.DB) portsrepo.CurrencyRepositoryFacade {
	return &CurrencyRepository{BaseRepository{DB: db}}
}

var _ portsrepo.CurrencyRepositoryFacade = (*CurrencyRepository)(nil)

const currencyColumns = `id, name, symbol, exchange_rate, created_at, updated_at`

func (r *CurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) (*domain.Currency, error) {
	m := mapping.ToModelCurrency(currency)

	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO currencies (name, symbol, exchange_rate, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		m.Name, m.Symbol, m.ExchangeRate, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save currency %s: %w", m.Name, err)
	}
	if m.ID, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("failed to read currency id: %w", err)
	}

	d := mapping.ToDomainCurrency(m)
	return &d, nil
}

func (r *CurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	var out []models.Currency
	if err := sqlx.SelectContext(ctx, r.DB, &out, `SELECT `+currencyColumns+` FROM currencies ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	return mapping.ToDomainCurrencySlice(out), nil
}

func (r *CurrencyRepository) CurrencyExists(ctx context.Context, currencyID int64) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, r.DB, &exists, `SELECT EXISTS (SELECT 1 FROM currencies WHERE id = ?)`, currencyID)
	if err != nil {
		return false, fmt.Errorf("failed to check currency %d: %w", currencyID, err)
	}
	return exists, nil
}
