package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/marioapg/cipher-test/internal/apperrors"
	"github.com/marioapg/cipher-test/internal/core/domain"
	portsrepo "github.com/marioapg/cipher-test/internal/core/ports/repositories"
)

// PriceSynchronizer reconciles the stored price set of a product with a desired set.
// It does not open transactions itself: callers pass repositories bound to the
// transaction that must contain the whole reconciliation.
type PriceSynchronizer struct {
	now func() time.Time
}

// NewPriceSynchronizer creates a synchronizer stamping rows with the given clock.
func NewPriceSynchronizer(now func() time.Time) *PriceSynchronizer {
	if now == nil {
		now = time.Now
	}
	return &PriceSynchronizer{now: now}
}

// Synchronize makes the product's price set equal to desired: existing currencies are
// overwritten, missing ones inserted, and every currency absent from desired is deleted.
// Repeated currencies in desired resolve to their last occurrence.
func (ps *PriceSynchronizer) Synchronize(
	ctx context.Context,
	prices portsrepo.ProductPriceRepositoryFacade,
	productID int64,
	desired domain.DesiredPrices,
) ([]domain.ProductPrice, error) {
	desired = desired.Normalize()
	now := ps.now()

	for _, entry := range desired {
		if err := ps.upsert(ctx, prices, productID, entry, now); err != nil {
			return nil, err
		}
	}

	// The survivor filter is the desired set, never the set that existed before.
	if _, err := prices.DeletePricesExcept(ctx, productID, desired.CurrencyIDs()); err != nil {
		return nil, fmt.Errorf("failed to prune prices of product %d: %w", productID, err)
	}

	return ps.load(ctx, prices, productID)
}

// InsertAll stores the initial price set of a newly created product. No deletion pass
// runs since a new product has no prices yet.
func (ps *PriceSynchronizer) InsertAll(
	ctx context.Context,
	prices portsrepo.ProductPriceRepositoryFacade,
	productID int64,
	desired domain.DesiredPrices,
) ([]domain.ProductPrice, error) {
	desired = desired.Normalize()
	now := ps.now()

	for _, entry := range desired {
		_, err := prices.SavePrice(ctx, domain.ProductPrice{
			ProductID:   productID,
			CurrencyID:  entry.CurrencyID,
			Price:       entry.Price,
			AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to insert price in currency %d for product %d: %w", entry.CurrencyID, productID, err)
		}
	}

	return ps.load(ctx, prices, productID)
}

func (ps *PriceSynchronizer) upsert(
	ctx context.Context,
	prices portsrepo.ProductPriceRepositoryFacade,
	productID int64,
	entry domain.PriceEntry,
	now time.Time,
) error {
	existing, err := prices.FindPriceByProductAndCurrency(ctx, productID, entry.CurrencyID)
	switch {
	case err == nil:
		existing.Price = entry.Price
		existing.UpdatedAt = now
		if err := prices.UpdatePrice(ctx, *existing); err != nil {
			return fmt.Errorf("failed to overwrite price in currency %d for product %d: %w", entry.CurrencyID, productID, err)
		}
		return nil
	case errors.Is(err, apperrors.ErrNotFound):
		_, err := prices.SavePrice(ctx, domain.ProductPrice{
			ProductID:   productID,
			CurrencyID:  entry.CurrencyID,
			Price:       entry.Price,
			AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
		})
		if err != nil {
			return fmt.Errorf("failed to insert price in currency %d for product %d: %w", entry.CurrencyID, productID, err)
		}
		return nil
	default:
		return fmt.Errorf("failed to look up price in currency %d for product %d: %w", entry.CurrencyID, productID, err)
	}
}

func (ps *PriceSynchronizer) load(
	ctx context.Context,
	prices portsrepo.ProductPriceRepositoryFacade,
	productID int64,
) ([]domain.ProductPrice, error) {
	result, err := prices.FindPricesByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load prices of product %d: %w", productID, err)
	}
	if result == nil {
		result = []domain.ProductPrice{}
	}
	return result, nil
}
