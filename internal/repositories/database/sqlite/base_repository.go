package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	portsrepo "github.com/marioapg/cipher-test/internal/core/ports/repositories"
	"github.com/marioapg/cipher-test/internal/middleware"
)

// BaseRepository provides common functionality for all repositories. DB is either
// the *sqlx.DB or the *sqlx.Tx of an open transaction.
type BaseRepository struct {
	DB sqlx.ExtContext
}

// TxManager runs units of work inside an SQLite transaction.
type TxManager struct {
	DB *sqlx.DB
}

func newTxManager(db *sqlx.DB) *TxManager {
	return &TxManager{DB: db}
}

var _ portsrepo.TransactionManager = (*TxManager)(nil)

// WithinTransaction begins a transaction, hands fn repositories bound to it and
// commits when fn succeeds. Any error from fn rolls everything back.
func (m *TxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	tx, err := m.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to rollback transaction", slog.String("error", rbErr.Error()))
		}
	}()

	repos := portsrepo.TxRepositories{
		Currencies: &CurrencyRepository{BaseRepository{DB: tx}},
		Products:   &ProductRepository{BaseRepository{DB: tx}},
		Prices:     &ProductPriceRepository{BaseRepository{DB: tx}},
	}
	if err := fn(ctx, repos); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
