package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/marioapg/cipher-test/internal/apperrors"
	"github.com/marioapg/cipher-test/internal/core/domain"
	portsrepo "github.com/marioapg/cipher-test/internal/core/ports/repositories"
	portssvc "github.com/marioapg/cipher-test/internal/core/ports/services"
)

type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyReader
}

// NewCurrencyService creates the currency registry service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyReader) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// ListCurrencies returns every registered currency. An empty registry is an error
// (apperrors.ErrNotFound), not an empty success.
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, fmt.Errorf("failed to list currencies in service: %w", err)
	}
	if len(currencies) == 0 {
		return nil, fmt.Errorf("%w: no currencies registered", apperrors.ErrNotFound)
	}
	s.LogDebug(ctx, "Currencies listed", slog.Int("count", len(currencies)))
	return currencies, nil
}

func (s *currencyService) CurrencyExists(ctx context.Context, currencyID int64) (bool, error) {
	if currencyID <= 0 {
		return false, nil
	}
	exists, err := s.currencyRepo.CurrencyExists(ctx, currencyID)
	if err != nil {
		return false, fmt.Errorf("failed to check currency %d in service: %w", currencyID, err)
	}
	return exists, nil
}
