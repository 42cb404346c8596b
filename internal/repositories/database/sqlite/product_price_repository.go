package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/marioapg/cipher-test/internal/apperrors"
	"github.com/marioapg/cipher-test/internal/core/domain"
	portsrepo "github.com/marioapg/cipher-test/internal/core/ports/repositories"
	"github.com/marioapg/cipher-test/internal/models"
	"github.com/marioapg/cipher-test/internal/utils/mapping"
)

type ProductPriceRepository struct {
	BaseRepository
}

func newProductPriceRepository(db *sqlx.DB) portsrepo.ProductPriceRepositoryFacade {
	return &ProductPriceRepository{BaseRepository{DB: db}}
}

var _ portsrepo.ProductPriceRepositoryFacade = (*ProductPriceRepository)(nil)

const priceColumns = `id, product_id, currency_id, price, created_at, updated_at`

func (r *ProductPriceRepository) SavePrice(ctx context.Context, price domain.ProductPrice) (*domain.ProductPrice, error) {
	m := mapping.ToModelProductPrice(price)

	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO product_prices (product_id, currency_id, price, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		m.ProductID, m.CurrencyID, m.Price, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: price for product %d in currency %d", apperrors.ErrDuplicate, m.ProductID, m.CurrencyID)
		}
		return nil, fmt.Errorf("failed to insert price for product %d: %w", m.ProductID, err)
	}
	if m.ID, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("failed to read price id: %w", err)
	}

	d := mapping.ToDomainProductPrice(m)
	return &d, nil
}

func (r *ProductPriceRepository) UpdatePrice(ctx context.Context, price domain.ProductPrice) error {
	m := mapping.ToModelProductPrice(price)

	res, err := r.DB.ExecContext(ctx,
		`UPDATE product_prices SET price = ?, updated_at = ? WHERE id = ?`,
		m.Price, m.UpdatedAt, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update price %d: %w", m.ID, err)
	}
	return requireAffected(res)
}

func (r *ProductPriceRepository) FindPriceByProductAndCurrency(ctx context.Context, productID, currencyID int64) (*domain.ProductPrice, error) {
	var m models.ProductPrice
	err := sqlx.GetContext(ctx, r.DB, &m,
		`SELECT `+priceColumns+` FROM product_prices WHERE product_id = ? AND currency_id = ?`,
		productID, currencyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find price of product %d in currency %d: %w", productID, currencyID, err)
	}

	d := mapping.ToDomainProductPrice(m)
	return &d, nil
}

func (r *ProductPriceRepository) FindPricesByProduct(ctx context.Context, productID int64) ([]domain.ProductPrice, error) {
	var out []models.ProductPrice
	err := sqlx.SelectContext(ctx, r.DB, &out,
		`SELECT `+priceColumns+` FROM product_prices WHERE product_id = ? ORDER BY id`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query prices of product %d: %w", productID, err)
	}
	return mapping.ToDomainProductPriceSlice(out), nil
}

func (r *ProductPriceRepository) DeletePricesExcept(ctx context.Context, productID int64, keepCurrencyIDs []int64) (int64, error) {
	if len(keepCurrencyIDs) == 0 {
		return r.DeletePricesByProduct(ctx, productID)
	}

	query, args, err := sqlx.In(
		`DELETE FROM product_prices WHERE product_id = ? AND currency_id NOT IN (?)`,
		productID, keepCurrencyIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to build prune query: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("failed to prune prices of product %d: %w", productID, err)
	}
	return res.RowsAffected()
}

func (r *ProductPriceRepository) DeletePricesByProduct(ctx context.Context, productID int64) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM product_prices WHERE product_id = ?`, productID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete prices of product %d: %w", productID, err)
	}
	return res.RowsAffected()
}
