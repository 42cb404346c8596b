package services

import (
	"context"

	"github.com/marioapg/cipher-test/internal/core/domain"
	"github.com/marioapg/cipher-test/internal/dto"
)

// ProductReaderSvc defines read operations for products
type ProductReaderSvc interface {
	GetProduct(ctx context.Context, productID int64) (*domain.ProductWithPrices, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// ProductWriterSvc defines write operations for products
type ProductWriterSvc interface {
	// CreateProduct validates the request, then stores the product and its initial prices.
	CreateProduct(ctx context.Context, req dto.ProductRequest) (*domain.ProductWithPrices, error)

	// UpdateProduct replaces the product fields and synchronizes its price set to req.Prices.
	UpdateProduct(ctx context.Context, productID int64, req dto.ProductRequest) (*domain.ProductWithPrices, error)

	// DeleteProduct removes the product together with its price set.
	DeleteProduct(ctx context.Context, productID int64) error
}

// ProductPriceSvc defines the single-price operations of a product
type ProductPriceSvc interface {
	ListPrices(ctx context.Context, productID int64) ([]domain.ProductPrice, error)

	// AddPrice is strictly additive: an existing price for the currency yields apperrors.ErrDuplicate.
	AddPrice(ctx context.Context, productID int64, req dto.AddPriceRequest) (*domain.ProductPrice, error)
}

// ProductSvcFacade combines all product-related service interfaces
type ProductSvcFacade interface {
	ProductReaderSvc
	ProductWriterSvc
	ProductPriceSvc
}
