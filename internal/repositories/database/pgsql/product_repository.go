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

type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new repository for product data.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{
		BaseRepository: BaseRepository{DB: pool},
	}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

const productColumns = `id, name, description, price, currency_id, tax_cost, manufacturing_cost, created_at, updated_at`

func scanProduct(row pgx.Row) (models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.CurrencyID,
		&p.TaxCost,
		&p.ManufacturingCost,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// SaveProduct inserts a product and returns it with its generated id.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	modelProd := mapping.ToModelProduct(product)

	query := `
		INSERT INTO products (name, description, price, currency_id, tax_cost, manufacturing_cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id;
	`
	err := r.DB.QueryRow(ctx, query,
		modelProd.Name,
		modelProd.Description,
		modelProd.Price,
		modelProd.CurrencyID,
		modelProd.TaxCost,
		modelProd.ManufacturingCost,
		modelProd.CreatedAt,
		modelProd.UpdatedAt,
	).Scan(&modelProd.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product %q: %w", modelProd.Name, err)
	}

	domainProd := mapping.ToDomainProduct(modelProd)
	return &domainProd, nil
}

// FindProductByID retrieves a product by id.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID int64) (*domain.Product, error) {
	return r.findProduct(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1;`, productID)
}

// FindProductByIDForUpdate retrieves a product and holds a row lock on it until the
// surrounding transaction ends.
func (r *PgxProductRepository) FindProductByIDForUpdate(ctx context.Context, productID int64) (*domain.Product, error) {
	return r.findProduct(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE;`, productID)
}

func (r *PgxProductRepository) findProduct(ctx context.Context, query string, productID int64) (*domain.Product, error) {
	modelProd, err := scanProduct(r.DB.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by id %d: %w", productID, err)
	}

	domainProd := mapping.ToDomainProduct(modelProd)
	return &domainProd, nil
}

// ListProducts retrieves all products ordered by id.
func (r *PgxProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	modelProducts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Product, error) {
		return scanProduct(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan products: %w", err)
	}

	return mapping.ToDomainProductSlice(modelProducts), nil
}

// UpdateProduct overwrites the mutable columns of a product.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	modelProd := mapping.ToModelProduct(product)

	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, currency_id = $5,
			tax_cost = $6, manufacturing_cost = $7, updated_at = $8
		WHERE id = $1;
	`
	tag, err := r.DB.Exec(ctx, query,
		modelProd.ID,
		modelProd.Name,
		modelProd.Description,
		modelProd.Price,
		modelProd.CurrencyID,
		modelProd.TaxCost,
		modelProd.ManufacturingCost,
		modelProd.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update product %d: %w", modelProd.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteProduct removes a product row.
func (r *PgxProductRepository) DeleteProduct(ctx context.Context, productID int64) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id = $1;`, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", productID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
