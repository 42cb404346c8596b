package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/marioapg/cipher-test/internal/core/domain"
	portsrepo "github.com/marioapg/cipher-test/internal/core/ports/repositories"
)

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) CurrencyExists(ctx context.Context, currencyID int64) (bool, error) {
	args := m.Called(ctx, currencyID)
	if fn, ok := args.Get(0).(func(context.Context, int64) bool); ok {
		return fn(ctx, currencyID), args.Error(1)
	}
	return args.Bool(0), args.Error(1)
}

// --- Mock ProductRepository ---
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID int64) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindProductByIDForUpdate(ctx context.Context, productID int64) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteProduct(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

// --- Mock ProductPriceRepository ---
type MockPriceRepository struct {
	mock.Mock
}

func (m *MockPriceRepository) FindPriceByProductAndCurrency(ctx context.Context, productID, currencyID int64) (*domain.ProductPrice, error) {
	args := m.Called(ctx, productID, currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductPrice), args.Error(1)
}

func (m *MockPriceRepository) FindPricesByProduct(ctx context.Context, productID int64) ([]domain.ProductPrice, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductPrice), args.Error(1)
}

func (m *MockPriceRepository) SavePrice(ctx context.Context, price domain.ProductPrice) (*domain.ProductPrice, error) {
	args := m.Called(ctx, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductPrice), args.Error(1)
}

func (m *MockPriceRepository) UpdatePrice(ctx context.Context, price domain.ProductPrice) error {
	args := m.Called(ctx, price)
	return args.Error(0)
}

func (m *MockPriceRepository) DeletePricesExcept(ctx context.Context, productID int64, keepCurrencyIDs []int64) (int64, error) {
	args := m.Called(ctx, productID, keepCurrencyIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPriceRepository) DeletePricesByProduct(ctx context.Context, productID int64) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock TransactionManager ---

// MockTxManager runs fn directly against the mock repositories and counts calls.
type MockTxManager struct {
	Repos portsrepo.TxRepositories
	Calls int
}

func (m *MockTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	m.Calls++
	return fn(ctx, m.Repos)
}
