package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/marioapg/cipher-test/internal/apperrors"
	"github.com/marioapg/cipher-test/internal/core/domain"
	portsrepo "github.com/marioapg/cipher-test/internal/core/ports/repositories"
	portssvc "github.com/marioapg/cipher-test/internal/core/ports/services"
	"github.com/marioapg/cipher-test/internal/core/services"
	"github.com/marioapg/cipher-test/internal/dto"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

type ProductServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	now          time.Time
	currencyRepo *MockCurrencyRepository
	productRepo  *MockProductRepository
	priceRepo    *MockPriceRepository
	txManager    *MockTxManager
	service      portssvc.ProductSvcFacade
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	suite.currencyRepo = new(MockCurrencyRepository)
	suite.productRepo = new(MockProductRepository)
	suite.priceRepo = new(MockPriceRepository)
	suite.txManager = &MockTxManager{Repos: portsrepo.TxRepositories{
		Currencies: suite.currencyRepo,
		Products:   suite.productRepo,
		Prices:     suite.priceRepo,
	}}

	suite.service = services.NewProductService(
		suite.productRepo,
		suite.priceRepo,
		suite.txManager,
		services.WithClock(func() time.Time { return suite.now }),
	)
}

func (suite *ProductServiceTestSuite) knownCurrencies(ids ...int64) {
	known := make(map[int64]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}
	suite.currencyRepo.On("CurrencyExists", mock.Anything, mock.AnythingOfType("int64")).
		Return(func(_ context.Context, id int64) bool { return known[id] }, nil).Maybe()
}

func (suite *ProductServiceTestSuite) validRequest() dto.ProductRequest {
	return dto.ProductRequest{
		Name:       "Widget",
		Price:      dec("100.00"),
		CurrencyID: 1,
		Prices:     []dto.PriceInput{{CurrencyID: 2, Price: dec("120.00")}},
	}
}

func (suite *ProductServiceTestSuite) TestCreateProduct_Success() {
	suite.knownCurrencies(1, 2)
	req := suite.validRequest()

	saved := &domain.Product{ID: 7, Name: "Widget", Price: *req.Price, CurrencyID: 1,
		AuditFields: domain.AuditFields{CreatedAt: suite.now, UpdatedAt: suite.now}}
	suite.productRepo.On("SaveProduct", mock.Anything, mock.MatchedBy(func(p domain.Product) bool {
		return p.Name == "Widget" && p.TaxCost.IsZero() && p.ManufacturingCost.IsZero() && p.CreatedAt.Equal(suite.now)
	})).Return(saved, nil).Once()

	price := &domain.ProductPrice{ID: 1, ProductID: 7, CurrencyID: 2, Price: decimal.RequireFromString("120")}
	suite.priceRepo.On("SavePrice", mock.Anything, mock.MatchedBy(func(p domain.ProductPrice) bool {
		return p.ProductID == 7 && p.CurrencyID == 2 && p.Price.Equal(decimal.RequireFromString("120"))
	})).Return(price, nil).Once()
	suite.priceRepo.On("FindPricesByProduct", mock.Anything, int64(7)).Return([]domain.ProductPrice{*price}, nil).Once()

	result, err := suite.service.CreateProduct(suite.ctx, req)

	suite.Require().NoError(err)
	suite.Equal(int64(7), result.ID)
	suite.Require().Len(result.Prices, 1)
	suite.Equal(int64(2), result.Prices[0].CurrencyID)
	suite.Equal(1, suite.txManager.Calls)
	suite.priceRepo.AssertNotCalled(suite.T(), "DeletePricesExcept", mock.Anything, mock.Anything, mock.Anything)
	suite.productRepo.AssertExpectations(suite.T())
	suite.priceRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestCreateProduct_ValidationFailsBeforeAnyWrite() {
	suite.knownCurrencies(1)
	req := dto.ProductRequest{
		Name:       "   ",
		Price:      dec("-1"),
		CurrencyID: 1,
		TaxCost:    dec("-0.01"),
		Prices: []dto.PriceInput{
			{CurrencyID: 1, Price: dec("5")},
			{CurrencyID: 99, Price: dec("-5")},
		},
	}

	result, err := suite.service.CreateProduct(suite.ctx, req)

	suite.Nil(result)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	var vErr *apperrors.ValidationError
	suite.Require().True(errors.As(err, &vErr))
	suite.Contains(vErr.Fields, "name")
	suite.Contains(vErr.Fields, "price")
	suite.Contains(vErr.Fields, "tax_cost")
	suite.Contains(vErr.Fields, "prices.1.currency_id")
	suite.Contains(vErr.Fields, "prices.1.price")
	suite.NotContains(vErr.Fields, "currency_id")
	suite.NotContains(vErr.Fields, "prices.0.currency_id")

	suite.productRepo.AssertNotCalled(suite.T(), "SaveProduct", mock.Anything, mock.Anything)
	suite.priceRepo.AssertNotCalled(suite.T(), "SavePrice", mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestCreateProduct_MoneyOutsideColumnBounds() {
	suite.knownCurrencies(1, 2)
	huge := decimal.RequireFromString("1e400")
	req := dto.ProductRequest{
		Name:              "Widget",
		Price:             &huge,
		CurrencyID:        1,
		TaxCost:           dec("100000000"),
		ManufacturingCost: dec("12.345"),
		Prices: []dto.PriceInput{
			{CurrencyID: 2, Price: dec("123456789012345678.12")},
			{CurrencyID: 1, Price: dec("99999999.99")},
			{CurrencyID: 1, Price: dec("1.500")},
		},
	}

	_, err := suite.service.CreateProduct(suite.ctx, req)

	var vErr *apperrors.ValidationError
	suite.Require().True(errors.As(err, &vErr))
	suite.Equal([]string{"The price may not be greater than 99999999.99."}, vErr.Fields["price"])
	suite.Equal([]string{"The tax_cost may not be greater than 99999999.99."}, vErr.Fields["tax_cost"])
	suite.Equal([]string{"The manufacturing_cost may not have more than 2 decimal places."}, vErr.Fields["manufacturing_cost"])
	suite.Contains(vErr.Fields, "prices.0.price")
	suite.NotContains(vErr.Fields, "prices.1.price")
	suite.NotContains(vErr.Fields, "prices.2.price")
	suite.productRepo.AssertNotCalled(suite.T(), "SaveProduct", mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestCreateProduct_SavePriceFailurePropagates() {
	suite.knownCurrencies(1, 2)
	saved := &domain.Product{ID: 7, Name: "Widget"}
	suite.productRepo.On("SaveProduct", mock.Anything, mock.Anything).Return(saved, nil).Once()
	suite.priceRepo.On("SavePrice", mock.Anything, mock.Anything).Return(nil, errors.New("disk full")).Once()

	_, err := suite.service.CreateProduct(suite.ctx, suite.validRequest())

	suite.Require().Error(err)
	suite.Contains(err.Error(), "disk full")
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_SynchronizesPrices() {
	suite.knownCurrencies(1, 3, 4)
	locked := &domain.Product{ID: 5, Name: "Old", Price: decimal.RequireFromString("1"), CurrencyID: 1}
	suite.productRepo.On("FindProductByIDForUpdate", mock.Anything, int64(5)).Return(locked, nil).Once()
	suite.productRepo.On("UpdateProduct", mock.Anything, mock.MatchedBy(func(p domain.Product) bool {
		return p.ID == 5 && p.Name == "New" && p.UpdatedAt.Equal(suite.now)
	})).Return(nil).Once()

	existingPrice := &domain.ProductPrice{ID: 11, ProductID: 5, CurrencyID: 3, Price: decimal.RequireFromString("1")}
	suite.priceRepo.On("FindPriceByProductAndCurrency", mock.Anything, int64(5), int64(3)).Return(existingPrice, nil).Once()
	suite.priceRepo.On("UpdatePrice", mock.Anything, mock.MatchedBy(func(p domain.ProductPrice) bool {
		return p.ID == 11 && p.Price.Equal(decimal.RequireFromString("30"))
	})).Return(nil).Once()
	suite.priceRepo.On("FindPriceByProductAndCurrency", mock.Anything, int64(5), int64(4)).Return(nil, apperrors.ErrNotFound).Once()
	suite.priceRepo.On("SavePrice", mock.Anything, mock.MatchedBy(func(p domain.ProductPrice) bool {
		return p.CurrencyID == 4
	})).Return(&domain.ProductPrice{ID: 12, ProductID: 5, CurrencyID: 4}, nil).Once()
	suite.priceRepo.On("DeletePricesExcept", mock.Anything, int64(5), []int64{3, 4}).Return(int64(1), nil).Once()
	suite.priceRepo.On("FindPricesByProduct", mock.Anything, int64(5)).Return([]domain.ProductPrice{
		{ID: 11, ProductID: 5, CurrencyID: 3}, {ID: 12, ProductID: 5, CurrencyID: 4},
	}, nil).Once()

	req := dto.ProductRequest{
		Name:       "New",
		Price:      dec("2"),
		CurrencyID: 1,
		Prices: []dto.PriceInput{
			{CurrencyID: 3, Price: dec("30")},
			{CurrencyID: 4, Price: dec("40")},
		},
	}
	result, err := suite.service.UpdateProduct(suite.ctx, 5, req)

	suite.Require().NoError(err)
	suite.Equal("New", result.Name)
	suite.Len(result.Prices, 2)
	suite.productRepo.AssertExpectations(suite.T())
	suite.priceRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_NotFoundBeforeValidation() {
	suite.productRepo.On("FindProductByIDForUpdate", mock.Anything, int64(404)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateProduct(suite.ctx, 404, dto.ProductRequest{Name: "", Price: dec("-1"), CurrencyID: 99})

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.NotErrorIs(err, apperrors.ErrValidation)
	suite.currencyRepo.AssertNotCalled(suite.T(), "CurrencyExists", mock.Anything, mock.Anything)
	suite.productRepo.AssertNotCalled(suite.T(), "UpdateProduct", mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestDeleteProduct_RemovesPricesFirst() {
	suite.productRepo.On("FindProductByIDForUpdate", mock.Anything, int64(5)).Return(&domain.Product{ID: 5}, nil).Once()
	deletePrices := suite.priceRepo.On("DeletePricesByProduct", mock.Anything, int64(5)).Return(int64(2), nil).Once()
	suite.productRepo.On("DeleteProduct", mock.Anything, int64(5)).Return(nil).Once().NotBefore(deletePrices)

	suite.Require().NoError(suite.service.DeleteProduct(suite.ctx, 5))
	suite.productRepo.AssertExpectations(suite.T())
	suite.priceRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestDeleteProduct_NotFound() {
	suite.productRepo.On("FindProductByIDForUpdate", mock.Anything, int64(5)).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteProduct(suite.ctx, 5)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.priceRepo.AssertNotCalled(suite.T(), "DeletePricesByProduct", mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestGetProduct_EmptyPriceSet() {
	suite.productRepo.On("FindProductByID", mock.Anything, int64(5)).Return(&domain.Product{ID: 5, Name: "Widget"}, nil).Once()
	suite.priceRepo.On("FindPricesByProduct", mock.Anything, int64(5)).Return(nil, nil).Once()

	result, err := suite.service.GetProduct(suite.ctx, 5)

	suite.Require().NoError(err)
	suite.NotNil(result.Prices)
	suite.Empty(result.Prices)
}

func (suite *ProductServiceTestSuite) TestListProducts_EmptyIsSuccess() {
	suite.productRepo.On("ListProducts", mock.Anything).Return(nil, nil).Once()

	products, err := suite.service.ListProducts(suite.ctx)

	suite.Require().NoError(err)
	suite.NotNil(products)
	suite.Empty(products)
}

func (suite *ProductServiceTestSuite) TestListPrices_UnknownProduct() {
	suite.productRepo.On("FindProductByID", mock.Anything, int64(9)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListPrices(suite.ctx, 9)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ProductServiceTestSuite) TestAddPrice_Success() {
	suite.knownCurrencies(2)
	suite.productRepo.On("FindProductByIDForUpdate", mock.Anything, int64(5)).Return(&domain.Product{ID: 5}, nil).Once()
	suite.priceRepo.On("FindPriceByProductAndCurrency", mock.Anything, int64(5), int64(2)).Return(nil, apperrors.ErrNotFound).Once()
	created := &domain.ProductPrice{ID: 3, ProductID: 5, CurrencyID: 2, Price: decimal.RequireFromString("9.5")}
	suite.priceRepo.On("SavePrice", mock.Anything, mock.MatchedBy(func(p domain.ProductPrice) bool {
		return p.ProductID == 5 && p.CurrencyID == 2 && p.CreatedAt.Equal(suite.now)
	})).Return(created, nil).Once()

	price, err := suite.service.AddPrice(suite.ctx, 5, dto.AddPriceRequest{CurrencyID: 2, Price: dec("9.5")})

	suite.Require().NoError(err)
	suite.Equal(created, price)
}

func (suite *ProductServiceTestSuite) TestAddPrice_ConflictLeavesPriceUntouched() {
	suite.knownCurrencies(2)
	suite.productRepo.On("FindProductByIDForUpdate", mock.Anything, int64(5)).Return(&domain.Product{ID: 5}, nil).Once()
	suite.priceRepo.On("FindPriceByProductAndCurrency", mock.Anything, int64(5), int64(2)).
		Return(&domain.ProductPrice{ID: 3, ProductID: 5, CurrencyID: 2}, nil).Once()

	_, err := suite.service.AddPrice(suite.ctx, 5, dto.AddPriceRequest{CurrencyID: 2, Price: dec("1")})

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.priceRepo.AssertNotCalled(suite.T(), "SavePrice", mock.Anything, mock.Anything)
	suite.priceRepo.AssertNotCalled(suite.T(), "UpdatePrice", mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestAddPrice_InvalidCurrency() {
	suite.knownCurrencies(1)
	suite.productRepo.On("FindProductByIDForUpdate", mock.Anything, int64(5)).Return(&domain.Product{ID: 5}, nil).Once()

	_, err := suite.service.AddPrice(suite.ctx, 5, dto.AddPriceRequest{CurrencyID: 77, Price: dec("-1")})

	var vErr *apperrors.ValidationError
	suite.Require().True(errors.As(err, &vErr))
	suite.Contains(vErr.Fields, "currency_id")
	suite.Contains(vErr.Fields, "price")
	suite.priceRepo.AssertNotCalled(suite.T(), "FindPriceByProductAndCurrency", mock.Anything, mock.Anything, mock.Anything)
	suite.priceRepo.AssertNotCalled(suite.T(), "SavePrice", mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestAddPrice_TooManyDecimalPlaces() {
	suite.knownCurrencies(2)
	suite.productRepo.On("FindProductByIDForUpdate", mock.Anything, int64(5)).Return(&domain.Product{ID: 5}, nil).Once()

	_, err := suite.service.AddPrice(suite.ctx, 5, dto.AddPriceRequest{CurrencyID: 2, Price: dec("9.999")})

	var vErr *apperrors.ValidationError
	suite.Require().True(errors.As(err, &vErr))
	suite.Equal([]string{"The price may not have more than 2 decimal places."}, vErr.Fields["price"])
	suite.priceRepo.AssertNotCalled(suite.T(), "SavePrice", mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestAddPrice_ProductNotFound() {
	suite.productRepo.On("FindProductByIDForUpdate", mock.Anything, int64(5)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AddPrice(suite.ctx, 5, dto.AddPriceRequest{CurrencyID: 77, Price: dec("-1")})

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.currencyRepo.AssertNotCalled(suite.T(), "CurrencyExists", mock.Anything, mock.Anything)
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
