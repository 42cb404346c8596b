package repositories

import (
	"context"

	"github.com/marioapg/cipher-test/internal/core/domain"
)

// ProductReader defines read operations for product data
type ProductReader interface {
	// FindProductByID retrieves a product by id.
	FindProductByID(ctx context.Context, productID int64) (*domain.Product, error)

	// FindProductByIDForUpdate retrieves a product and locks its row until the
	// surrounding transaction ends.
	FindProductByIDForUpdate(ctx context.Context, productID int64) (*domain.Product, error)

	// ListProducts retrieves all products ordered by id.
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// ProductWriter defines write operations for product data
type ProductWriter interface {
	// SaveProduct inserts a new product and returns it with its assigned id.
	SaveProduct(ctx context.Context, product domain.Product) (*domain.Product, error)

	// UpdateProduct replaces every mutable column of an existing product.
	UpdateProduct(ctx context.Context, product domain.Product) error

	// DeleteProduct removes a product row. Its prices must be removed first.
	DeleteProduct(ctx context.Context, productID int64) error
}

// ProductRepositoryFacade combines all product-related repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}
