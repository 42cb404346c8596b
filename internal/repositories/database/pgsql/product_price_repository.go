package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/marioapg/cipher-test/internal/apperrors"
	"github.com/marioapg/cipher-test/internal/core/domain"
	portsrepo "github.com/marioapg/cipher-test/internal/core/ports/repositories"
	"github.com/marioapg/cipher-test/internal/models"
	"github.com/marioapg/cipher-test/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxProductPriceRepository struct {
	BaseRepository
}

// newPgxProductPriceRepository creates a new repository for product prices.
func newPgxProductPriceRepository(pool *pgxpool.Pool) portsrepo.ProductPriceRepositoryFacade {
	return &PgxProductPriceRepository{
		BaseRepository: BaseRepository{DB: pool},
	}
}

var _ portsrepo.ProductPriceRepositoryFacade = (*PgxProductPriceRepository)(nil)

const priceColumns = `id, product_id, currency_id, price, created_at, updated_at`

func scanPrice(row pgx.Row) (models.ProductPrice, error) {
	var p models.ProductPrice
	err := row.Scan(
		&p.ID,
		&p.ProductID,
		&p.CurrencyID,
		&p.Price,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// SavePrice inserts a price. A second price for the same (product, currency) is
// reported as apperrors.ErrDuplicate.
func (r *PgxProductPriceRepository) SavePrice(ctx context.Context, price domain.ProductPrice) (*domain.ProductPrice, error) {
	modelPrice := mapping.ToModelProductPrice(price)

	query := `
		INSERT INTO product_prices (product_id, currency_id, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
	`
	err := r.DB.QueryRow(ctx, query,
		modelPrice.ProductID,
		modelPrice.CurrencyID,
		modelPrice.Price,
		modelPrice.CreatedAt,
		modelPrice.UpdatedAt,
	).Scan(&modelPrice.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: price for product %d in currency %d", apperrors.ErrDuplicate, modelPrice.ProductID, modelPrice.CurrencyID)
		}
		return nil, fmt.Errorf("failed to insert price for product %d: %w", modelPrice.ProductID, err)
	}

	domainPrice := mapping.ToDomainProductPrice(modelPrice)
	return &domainPrice, nil
}

// UpdatePrice overwrites the amount of an existing price.
func (r *PgxProductPriceRepository) UpdatePrice(ctx context.Context, price domain.ProductPrice) error {
	modelPrice := mapping.ToModelProductPrice(price)

	tag, err := r.DB.Exec(ctx,
		`UPDATE product_prices SET price = $2, updated_at = $3 WHERE id = $1;`,
		modelPrice.ID,
		modelPrice.Price,
		modelPrice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update price %d: %w", modelPrice.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindPriceByProductAndCurrency retrieves the price of a product in one currency.
func (r *PgxProductPriceRepository) FindPriceByProductAndCurrency(ctx context.Context, productID, currencyID int64) (*domain.ProductPrice, error) {
	query := `SELECT ` + priceColumns + ` FROM product_prices WHERE product_id = $1 AND currency_id = $2;`

	modelPrice, err := scanPrice(r.DB.QueryRow(ctx, query, productID, currencyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find price of product %d in currency %d: %w", productID, currencyID, err)
	}

	domainPrice := mapping.ToDomainProductPrice(modelPrice)
	return &domainPrice, nil
}

// FindPricesByProduct retrieves the price set of a product ordered by id.
func (r *PgxProductPriceRepository) FindPricesByProduct(ctx context.Context, productID int64) ([]domain.ProductPrice, error) {
	query := `SELECT ` + priceColumns + ` FROM product_prices WHERE product_id = $1 ORDER BY id;`

	rows, err := r.DB.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query prices of product %d: %w", productID, err)
	}
	defer rows.Close()

	modelPrices, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ProductPrice, error) {
		return scanPrice(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan prices of product %d: %w", productID, err)
	}

	return mapping.ToDomainProductPriceSlice(modelPrices), nil
}

// DeletePricesExcept removes the prices of a product whose currency is not kept.
func (r *PgxProductPriceRepository) DeletePricesExcept(ctx context.Context, productID int64, keepCurrencyIDs []int64) (int64, error) {
	if keepCurrencyIDs == nil {
		keepCurrencyIDs = []int64{}
	}
	tag, err := r.DB.Exec(ctx,
		`DELETE FROM product_prices WHERE product_id = $1 AND NOT (currency_id = ANY($2));`,
		productID, keepCurrencyIDs,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune prices of product %d: %w", productID, err)
	}
	return tag.RowsAffected(), nil
}

// DeletePricesByProduct removes the whole price set of a product.
func (r *PgxProductPriceRepository) DeletePricesByProduct(ctx context.Context, productID int64) (int64, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM product_prices WHERE product_id = $1;`, productID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete prices of product %d: %w", productID, err)
	}
	return tag.RowsAffected(), nil
}
