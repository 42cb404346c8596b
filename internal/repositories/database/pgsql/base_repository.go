package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	portsrepo "github.com/marioapg/cipher-test/internal/core/ports/repositories"
	"github.com/marioapg/cipher-test/internal/middleware"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so every repository can run
// either on the pool or inside an open transaction.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ querier = (*pgxpool.Pool)(nil)
	_ querier = (pgx.Tx)(nil)
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	DB querier
}

// TxManager runs units of work inside a pgx transaction.
type TxManager struct {
	Pool *pgxpool.Pool
}

func newTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{Pool: pool}
}

var _ portsrepo.TransactionManager = (*TxManager)(nil)

// WithinTransaction begins a transaction, hands fn repositories bound to it and
// commits when fn succeeds. Any error from fn rolls everything back.
func (m *TxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	tx, err := m.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Rollback is a no-op once the transaction is committed.
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to rollback transaction", slog.String("error", rbErr.Error()))
		}
	}()

	repos := portsrepo.TxRepositories{
		Currencies: &PgxCurrencyRepository{BaseRepository{DB: tx}},
		Products:   &PgxProductRepository{BaseRepository{DB: tx}},
		Prices:     &PgxProductPriceRepository{BaseRepository{DB: tx}},
	}
	if err := fn(ctx, repos); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
