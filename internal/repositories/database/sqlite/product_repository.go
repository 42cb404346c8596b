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

type ProductRepository struct {
	BaseRepository
}

func newProductRepository(db *sqlx.DB) portsrepo.ProductRepositoryFacade {
	return &ProductRepository{BaseRepository{DB: db}}
}

var _ portsrepo.ProductRepositoryFacade = (*ProductRepository)(nil)

const productColumns = `id, name, description, price, currency_id, tax_cost, manufacturing_cost, created_at, updated_at`

func (r *ProductRepository) SaveProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	m := mapping.ToModelProduct(product)

	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO products (name, description, price, currency_id, tax_cost, manufacturing_cost, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Name, m.Description, m.Price, m.CurrencyID, m.TaxCost, m.ManufacturingCost, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product %q: %w", m.Name, err)
	}
	if m.ID, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("failed to read product id: %w", err)
	}

	d := mapping.ToDomainProduct(m)
	return &d, nil
}

func (r *ProductRepository) FindProductByID(ctx context.Context, productID int64) (*domain.Product, error) {
	var m models.Product
	err := sqlx.GetContext(ctx, r.DB, &m, `SELECT `+productColumns+` FROM products WHERE id = ?`, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by id %d: %w", productID, err)
	}

	d := mapping.ToDomainProduct(m)
	return &d, nil
}

// FindProductByIDForUpdate is a plain read: SQLite has no row locks and the single
// connection already serializes transactions.
func (r *ProductRepository) FindProductByIDForUpdate(ctx context.Context, productID int64) (*domain.Product, error) {
	return r.FindProductByID(ctx, productID)
}

func (r *ProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var out []models.Product
	if err := sqlx.SelectContext(ctx, r.DB, &out, `SELECT `+productColumns+` FROM products ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	return mapping.ToDomainProductSlice(out), nil
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)

	res, err := r.DB.ExecContext(ctx, `
		UPDATE products
		SET name = ?, description = ?, price = ?, currency_id = ?,
			tax_cost = ?, manufacturing_cost = ?, updated_at = ?
		WHERE id = ?`,
		m.Name, m.Description, m.Price, m.CurrencyID, m.TaxCost, m.ManufacturingCost, m.UpdatedAt, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update product %d: %w", m.ID, err)
	}
	return requireAffected(res)
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, productID int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", productID, err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
