package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/marioapg/cipher-test/internal/apperrors"
	"github.com/marioapg/cipher-test/internal/core/domain"
	portssvc "github.com/marioapg/cipher-test/internal/core/ports/services"
	"github.com/marioapg/cipher-test/internal/core/services"
)

// --- Test Suite ---
type CurrencyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCurrencyRepository
	service  portssvc.CurrencySvcFacade
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCurrencyRepository)
	suite.service = services.NewCurrencyService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *CurrencyServiceTestSuite) TestListCurrencies_Success() {
	ctx := context.Background()
	expected := []domain.Currency{
		{ID: 1, Name: "US Dollar", Symbol: "$", ExchangeRate: decimal.RequireFromString("1.0")},
		{ID: 2, Name: "Euro", Symbol: "€", ExchangeRate: decimal.RequireFromString("0.85")},
	}
	suite.mockRepo.On("ListCurrencies", ctx).Return(expected, nil).Once()

	currencies, err := suite.service.ListCurrencies(ctx)

	suite.Require().NoError(err)
	suite.Equal(expected, currencies)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestListCurrencies_EmptyIsNotFound() {
	ctx := context.Background()
	suite.mockRepo.On("ListCurrencies", ctx).Return([]domain.Currency{}, nil).Once()

	currencies, err := suite.service.ListCurrencies(ctx)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrNotFound))
	suite.Nil(currencies)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestListCurrencies_RepoError() {
	ctx := context.Background()
	repoErr := errors.New("database connection failed")
	suite.mockRepo.On("ListCurrencies", ctx).Return(nil, repoErr).Once()

	_, err := suite.service.ListCurrencies(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, repoErr)
	suite.False(errors.Is(err, apperrors.ErrNotFound))
}

func (suite *CurrencyServiceTestSuite) TestCurrencyExists() {
	ctx := context.Background()
	suite.mockRepo.On("CurrencyExists", ctx, int64(3)).Return(true, nil).Once()

	exists, err := suite.service.CurrencyExists(ctx, 3)
	suite.Require().NoError(err)
	suite.True(exists)

	// Non-positive ids never reach the repository.
	exists, err = suite.service.CurrencyExists(ctx, 0)
	suite.Require().NoError(err)
	suite.False(exists)

	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestCurrencyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
