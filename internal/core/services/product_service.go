package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/marioapg/cipher-test/internal/apperrors"
	"github.com/marioapg/cipher-test/internal/core/domain"
	portsrepo "github.com/marioapg/cipher-test/internal/core/ports/repositories"
	portssvc "github.com/marioapg/cipher-test/internal/core/ports/services"
	"github.com/marioapg/cipher-test/internal/dto"
	"github.com/shopspring/decimal"
)

type productService struct {
	BaseService
	productRepo portsrepo.ProductRepositoryFacade
	priceRepo   portsrepo.ProductPriceRepositoryFacade
	txManager   portsrepo.TransactionManager
	syncer      *PriceSynchronizer
	now         func() time.Time
}

// ProductServiceOption is a functional option for configuring the product service
type ProductServiceOption func(*productService)

// WithClock overrides the clock used for audit timestamps.
func WithClock(now func() time.Time) ProductServiceOption {
	return func(s *productService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewProductService creates the product store service. Every write runs inside a
// transaction obtained from txManager, and request validation runs in that same
// transaction against its currency registry.
func NewProductService(
	productRepo portsrepo.ProductRepositoryFacade,
	priceRepo portsrepo.ProductPriceRepositoryFacade,
	txManager portsrepo.TransactionManager,
	options ...ProductServiceOption,
) portssvc.ProductSvcFacade {
	s := &productService{
		productRepo: productRepo,
		priceRepo:   priceRepo,
		txManager:   txManager,
		now:         time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	s.syncer = NewPriceSynchronizer(s.now)
	return s
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

func (s *productService) GetProduct(ctx context.Context, productID int64) (*domain.ProductWithPrices, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d in service: %w", productID, err)
	}

	prices, err := s.priceRepo.FindPricesByProduct(ctx, productID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load product prices", slog.Int64("product_id", productID))
		return nil, fmt.Errorf("failed to get prices of product %d in service: %w", productID, err)
	}
	if prices == nil {
		prices = []domain.ProductPrice{}
	}

	return &domain.ProductWithPrices{Product: *product, Prices: prices}, nil
}

func (s *productService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list products")
		return nil, fmt.Errorf("failed to list products in service: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (s *productService) CreateProduct(ctx context.Context, req dto.ProductRequest) (*domain.ProductWithPrices, error) {
	now := s.now()
	product := domain.Product{
		Name:              strings.TrimSpace(req.Name),
		Description:       req.Description,
		CurrencyID:        req.CurrencyID,
		TaxCost:           req.TaxCostOrZero(),
		ManufacturingCost: req.ManufacturingCostOrZero(),
		AuditFields:       domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	var result *domain.ProductWithPrices
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		if err := s.validateProductRequest(ctx, repos.Currencies, req); err != nil {
			return err
		}
		product.Price = *req.Price

		saved, err := repos.Products.SaveProduct(ctx, product)
		if err != nil {
			return fmt.Errorf("failed to save product: %w", err)
		}

		prices, err := s.syncer.InsertAll(ctx, repos.Prices, saved.ID, req.DesiredPrices())
		if err != nil {
			return err
		}

		result = &domain.ProductWithPrices{Product: *saved, Prices: prices}
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to create product", slog.String("name", product.Name))
		}
		return nil, fmt.Errorf("failed to create product in service: %w", err)
	}

	s.LogInfo(ctx, "Product created",
		slog.Int64("product_id", result.ID),
		slog.Int("price_count", len(result.Prices)))
	return result, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID int64, req dto.ProductRequest) (*domain.ProductWithPrices, error) {
	var result *domain.ProductWithPrices
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		existing, err := repos.Products.FindProductByIDForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if err := s.validateProductRequest(ctx, repos.Currencies, req); err != nil {
			return err
		}

		existing.Name = strings.TrimSpace(req.Name)
		existing.Description = req.Description
		existing.Price = *req.Price
		existing.CurrencyID = req.CurrencyID
		existing.TaxCost = req.TaxCostOrZero()
		existing.ManufacturingCost = req.ManufacturingCostOrZero()
		existing.UpdatedAt = s.now()

		if err := repos.Products.UpdateProduct(ctx, *existing); err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}

		prices, err := s.syncer.Synchronize(ctx, repos.Prices, productID, req.DesiredPrices())
		if err != nil {
			return err
		}

		result = &domain.ProductWithPrices{Product: *existing, Prices: prices}
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update product", slog.Int64("product_id", productID))
		}
		return nil, fmt.Errorf("failed to update product %d in service: %w", productID, err)
	}

	s.LogInfo(ctx, "Product updated",
		slog.Int64("product_id", productID),
		slog.Int("price_count", len(result.Prices)))
	return result, nil
}

func (s *productService) DeleteProduct(ctx context.Context, productID int64) error {
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		if _, err := repos.Products.FindProductByIDForUpdate(ctx, productID); err != nil {
			return err
		}
		if _, err := repos.Prices.DeletePricesByProduct(ctx, productID); err != nil {
			return fmt.Errorf("failed to delete prices: %w", err)
		}
		return repos.Products.DeleteProduct(ctx, productID)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete product", slog.Int64("product_id", productID))
		}
		return fmt.Errorf("failed to delete product %d in service: %w", productID, err)
	}

	s.LogInfo(ctx, "Product deleted", slog.Int64("product_id", productID))
	return nil
}

func (s *productService) ListPrices(ctx context.Context, productID int64) ([]domain.ProductPrice, error) {
	if _, err := s.productRepo.FindProductByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("failed to get product %d in service: %w", productID, err)
	}

	prices, err := s.priceRepo.FindPricesByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prices of product %d in service: %w", productID, err)
	}
	if prices == nil {
		prices = []domain.ProductPrice{}
	}
	return prices, nil
}

func (s *productService) AddPrice(ctx context.Context, productID int64, req dto.AddPriceRequest) (*domain.ProductPrice, error) {
	var created *domain.ProductPrice
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		if _, err := repos.Products.FindProductByIDForUpdate(ctx, productID); err != nil {
			return err
		}

		registry := NewCurrencyService(repos.Currencies)
		fields := apperrors.FieldErrors{}
		if err := checkCurrency(ctx, registry, fields, "currency_id", req.CurrencyID, nil); err != nil {
			return err
		}
		checkMoney(fields, "price", req.Price)
		if fields.HasErrors() {
			return apperrors.NewValidationError(fields)
		}

		_, err := repos.Prices.FindPriceByProductAndCurrency(ctx, productID, req.CurrencyID)
		if err == nil {
			return fmt.Errorf("%w: product %d already has a price in currency %d", apperrors.ErrDuplicate, productID, req.CurrencyID)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to look up existing price: %w", err)
		}

		now := s.now()
		created, err = repos.Prices.SavePrice(ctx, domain.ProductPrice{
			ProductID:   productID,
			CurrencyID:  req.CurrencyID,
			Price:       *req.Price,
			AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
		})
		return err
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) && !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to add product price", slog.Int64("product_id", productID))
		}
		return nil, fmt.Errorf("failed to add price to product %d in service: %w", productID, err)
	}

	s.LogInfo(ctx, "Product price added",
		slog.Int64("product_id", productID),
		slog.Int64("currency_id", req.CurrencyID))
	return created, nil
}

// validateProductRequest checks the rules binding tags cannot express. It is the first
// step of every write transaction, so a rejected request leaves the store untouched.
func (s *productService) validateProductRequest(ctx context.Context, currencies portsrepo.CurrencyReader, req dto.ProductRequest) error {
	registry := NewCurrencyService(currencies)
	fields := apperrors.FieldErrors{}
	known := make(map[int64]bool)

	if strings.TrimSpace(req.Name) == "" {
		fields.Add("name", "The name field is required.")
	}
	checkMoney(fields, "price", req.Price)
	checkMoney(fields, "tax_cost", req.TaxCost)
	checkMoney(fields, "manufacturing_cost", req.ManufacturingCost)

	if err := checkCurrency(ctx, registry, fields, "currency_id", req.CurrencyID, known); err != nil {
		return err
	}

	for i, p := range req.Prices {
		prefix := "prices." + strconv.Itoa(i) + "."
		if err := checkCurrency(ctx, registry, fields, prefix+"currency_id", p.CurrencyID, known); err != nil {
			return err
		}
		checkMoney(fields, prefix+"price", p.Price)
	}

	if fields.HasErrors() {
		return apperrors.NewValidationError(fields)
	}
	return nil
}

// checkCurrency records a field error when currencyID is not registered. known caches
// lookups across one request and may be nil.
func checkCurrency(ctx context.Context, registry portssvc.CurrencyReaderSvc, fields apperrors.FieldErrors, field string, currencyID int64, known map[int64]bool) error {
	exists, cached := known[currencyID]
	if !cached {
		var err error
		exists, err = registry.CurrencyExists(ctx, currencyID)
		if err != nil {
			return fmt.Errorf("failed to validate %s: %w", field, err)
		}
		if known != nil {
			known[currencyID] = exists
		}
	}
	if !exists {
		fields.Add(field, "The selected "+field+" is invalid.")
	}
	return nil
}

// checkMoney keeps amounts inside what the money columns can store exactly.
func checkMoney(fields apperrors.FieldErrors, field string, v *decimal.Decimal) {
	if v == nil {
		return
	}
	switch {
	case v.IsNegative():
		fields.Add(field, "The "+field+" must be at least 0.")
	case v.GreaterThan(domain.MaxMoney):
		fields.Add(field, "The "+field+" may not be greater than "+domain.MaxMoney.StringFixed(domain.MoneyScale)+".")
	case !v.Equal(v.Truncate(domain.MoneyScale)):
		fields.Add(field, "The "+field+" may not have more than "+strconv.Itoa(int(domain.MoneyScale))+" decimal places.")
	}
}
