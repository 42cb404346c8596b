package services_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/marioapg/cipher-test/internal/apperrors"
	"github.com/marioapg/cipher-test/internal/core/domain"
	portsrepo "github.com/marioapg/cipher-test/internal/core/ports/repositories"
	portssvc "github.com/marioapg/cipher-test/internal/core/ports/services"
	"github.com/marioapg/cipher-test/internal/core/services"
	"github.com/marioapg/cipher-test/internal/dto"
	"github.com/marioapg/cipher-test/internal/repositories/database/sqlite"
)

// PriceSyncTestSuite runs the synchronizer and product service against a fresh
// in-memory SQLite store per test.
type PriceSyncTestSuite struct {
	suite.Suite
	ctx     context.Context
	repos   portsrepo.RepositoryProvider
	syncer  *services.PriceSynchronizer
	product portssvc.ProductSvcFacade
}

func (s *PriceSyncTestSuite) SetupTest() {
	s.ctx = context.Background()
	db, err := sqlite.OpenDB(s.ctx, ":memory:", true)
	s.Require().NoError(err)
	s.T().Cleanup(func() { db.Close() })

	s.repos = sqlite.NewRepositoryProvider(db)
	s.syncer = services.NewPriceSynchronizer(time.Now)
	s.product = services.NewServiceContainer(s.repos).Product
}

func (s *PriceSyncTestSuite) create(prices ...dto.PriceInput) *domain.ProductWithPrices {
	p, err := s.product.CreateProduct(s.ctx, dto.ProductRequest{
		Name:       "Widget",
		Price:      dec("100.00"),
		CurrencyID: 1,
		Prices:     prices,
	})
	s.Require().NoError(err)
	return p
}

func (s *PriceSyncTestSuite) storedPrices(productID int64) map[int64]decimal.Decimal {
	prices, err := s.repos.PriceRepo.FindPricesByProduct(s.ctx, productID)
	s.Require().NoError(err)
	out := make(map[int64]decimal.Decimal, len(prices))
	for _, p := range prices {
		out[p.CurrencyID] = p.Price
	}
	return out
}

func currencyIDs(m map[int64]decimal.Decimal) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *PriceSyncTestSuite) sync(productID int64, desired domain.DesiredPrices) []domain.ProductPrice {
	var out []domain.ProductPrice
	err := s.repos.TxManager.WithinTransaction(s.ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		var err error
		out, err = s.syncer.Synchronize(ctx, repos.Prices, productID, desired)
		return err
	})
	s.Require().NoError(err)
	return out
}

func (s *PriceSyncTestSuite) TestCreateWithInitialPrice() {
	p := s.create(dto.PriceInput{CurrencyID: 2, Price: dec("120.00")})

	prices, err := s.product.ListPrices(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Require().Len(prices, 1)
	s.Equal(int64(2), prices[0].CurrencyID)
	s.True(decimal.RequireFromString("120.00").Equal(prices[0].Price))
}

func (s *PriceSyncTestSuite) TestUpdateReplacesCurrencySet() {
	p := s.create(
		dto.PriceInput{CurrencyID: 2, Price: dec("10")},
		dto.PriceInput{CurrencyID: 3, Price: dec("20")},
	)
	before, err := s.repos.PriceRepo.FindPriceByProductAndCurrency(s.ctx, p.ID, 3)
	s.Require().NoError(err)

	updated, err := s.product.UpdateProduct(s.ctx, p.ID, dto.ProductRequest{
		Name:       "Widget",
		Price:      dec("100.00"),
		CurrencyID: 1,
		Prices: []dto.PriceInput{
			{CurrencyID: 3, Price: dec("30")},
			{CurrencyID: 4, Price: dec("40")},
		},
	})
	s.Require().NoError(err)
	s.Len(updated.Prices, 2)

	stored := s.storedPrices(p.ID)
	s.Equal([]int64{3, 4}, currencyIDs(stored))
	s.True(decimal.RequireFromString("30").Equal(stored[3]))
	s.True(decimal.RequireFromString("40").Equal(stored[4]))

	after, err := s.repos.PriceRepo.FindPriceByProductAndCurrency(s.ctx, p.ID, 3)
	s.Require().NoError(err)
	s.Equal(before.ID, after.ID, "an existing currency is overwritten in place")
}

func (s *PriceSyncTestSuite) TestSynchronizeMatchesDesiredSet() {
	cases := []domain.DesiredPrices{
		{},
		{{CurrencyID: 5, Price: decimal.RequireFromString("1")}},
		{{CurrencyID: 2, Price: decimal.RequireFromString("1")}, {CurrencyID: 6, Price: decimal.RequireFromString("2")}},
		{{CurrencyID: 7, Price: decimal.RequireFromString("3")}, {CurrencyID: 7, Price: decimal.RequireFromString("4")}},
	}
	p := s.create(dto.PriceInput{CurrencyID: 2, Price: dec("9")}, dto.PriceInput{CurrencyID: 3, Price: dec("9")})

	for _, desired := range cases {
		s.sync(p.ID, desired)
		s.Equal(desired.Normalize().CurrencyIDs(), currencyIDs(s.storedPrices(p.ID)))
	}

	// Last occurrence of a repeated currency wins.
	s.True(decimal.RequireFromString("4").Equal(s.storedPrices(p.ID)[7]))
}

func (s *PriceSyncTestSuite) TestSynchronizeIsIdempotent() {
	p := s.create(dto.PriceInput{CurrencyID: 2, Price: dec("9")})
	desired := domain.DesiredPrices{
		{CurrencyID: 2, Price: decimal.RequireFromString("11.5")},
		{CurrencyID: 8, Price: decimal.RequireFromString("0")},
	}

	first := s.sync(p.ID, desired)
	once := s.storedPrices(p.ID)
	second := s.sync(p.ID, desired)
	twice := s.storedPrices(p.ID)

	s.Equal(currencyIDs(once), currencyIDs(twice))
	for id, v := range once {
		s.True(v.Equal(twice[id]))
	}
	s.Require().Len(second, len(first))
	for i := range first {
		s.Equal(first[i].ID, second[i].ID)
	}
}

func (s *PriceSyncTestSuite) TestSynchronizeDoesNotTouchOtherProducts() {
	a := s.create(dto.PriceInput{CurrencyID: 2, Price: dec("1")})
	b := s.create(dto.PriceInput{CurrencyID: 2, Price: dec("2")})

	s.sync(a.ID, domain.DesiredPrices{})

	s.Empty(s.storedPrices(a.ID))
	s.Equal([]int64{2}, currencyIDs(s.storedPrices(b.ID)))
}

func (s *PriceSyncTestSuite) TestAddPriceTwiceConflicts() {
	p := s.create()

	first, err := s.product.AddPrice(s.ctx, p.ID, dto.AddPriceRequest{CurrencyID: 2, Price: dec("5")})
	s.Require().NoError(err)

	_, err = s.product.AddPrice(s.ctx, p.ID, dto.AddPriceRequest{CurrencyID: 2, Price: dec("6")})
	s.ErrorIs(err, apperrors.ErrDuplicate)

	stored, err := s.repos.PriceRepo.FindPriceByProductAndCurrency(s.ctx, p.ID, 2)
	s.Require().NoError(err)
	s.Equal(first.ID, stored.ID)
	s.True(decimal.RequireFromString("5").Equal(stored.Price))
}

func (s *PriceSyncTestSuite) TestDeleteLeavesNoOrphans() {
	p := s.create(dto.PriceInput{CurrencyID: 2, Price: dec("1")}, dto.PriceInput{CurrencyID: 3, Price: dec("1")})

	s.Require().NoError(s.product.DeleteProduct(s.ctx, p.ID))

	s.Empty(s.storedPrices(p.ID))
	_, err := s.product.GetProduct(s.ctx, p.ID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PriceSyncTestSuite) TestFailedValidationLeavesStoreUntouched() {
	p := s.create(dto.PriceInput{CurrencyID: 2, Price: dec("1")})

	_, err := s.product.UpdateProduct(s.ctx, p.ID, dto.ProductRequest{
		Name:       "Renamed",
		Price:      dec("100.00"),
		CurrencyID: 1,
		Prices:     []dto.PriceInput{{CurrencyID: 3, Price: dec("1")}, {CurrencyID: 999, Price: dec("1")}},
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	got, err := s.product.GetProduct(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("Widget", got.Name)
	s.Equal([]int64{2}, currencyIDs(s.storedPrices(p.ID)))
}

func TestPriceSyncTestSuite(t *testing.T) {
	suite.Run(t, new(PriceSyncTestSuite))
}
