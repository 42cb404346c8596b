// Package sqlite implements the catalog repositories on an embedded SQLite database.
package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/marioapg/cipher-test/internal/core/domain"
	"github.com/marioapg/cipher-test/migrations"
)

// DefaultCurrencies is the registry content installed into an empty database.
var DefaultCurrencies = []domain.Currency{
	{Name: "US Dollar", Symbol: "$", ExchangeRate: decimal.RequireFromString("1.0")},
	{Name: "Euro", Symbol: "€", ExchangeRate: decimal.RequireFromString("0.85")},
	{Name: "British Pound", Symbol: "£", ExchangeRate: decimal.RequireFromString("0.75")},
	{Name: "Canadian Dollar", Symbol: "C$", ExchangeRate: decimal.RequireFromString("1.25")},
	{Name: "Australian Dollar", Symbol: "A$", ExchangeRate: decimal.RequireFromString("1.35")},
	{Name: "Japanese Yen", Symbol: "¥", ExchangeRate: decimal.RequireFromString("110.50")},
	{Name: "Swiss Franc", Symbol: "CHF", ExchangeRate: decimal.RequireFromString("0.92")},
	{Name: "Chinese Yuan", Symbol: "¥", ExchangeRate: decimal.RequireFromString("6.45")},
	{Name: "Indian Rupee", Symbol: "₹", ExchangeRate: decimal.RequireFromString("75.10")},
	{Name: "Brazilian Real", Symbol: "R$", ExchangeRate: decimal.RequireFromString("5.35")},
}

// OpenDB opens the database, creates the schema when missing and, if seedCurrencies
// is set, installs DefaultCurrencies into an empty registry.
func OpenDB(ctx context.Context, dsn string, seedCurrencies bool) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %q: %w", dsn, err)
	}

	// SQLite has a single writer. One long-lived connection makes transactions queue
	// instead of failing with SQLITE_BUSY, keeps connection pragmas in effect and
	// keeps a :memory: database alive.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if err := ensureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	if seedCurrencies {
		if err := seedCurrenciesIfEmpty(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
	}

	return db, nil
}

func ensureSchema(ctx context.Context, db *sqlx.DB) error {
	schema, err := migrations.FS.ReadFile(migrations.SQLiteSchema)
	if err != nil {
		return fmt.Errorf("failed to read sqlite schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("failed to apply sqlite schema: %w", err)
	}
	return nil
}

func seedCurrenciesIfEmpty(ctx context.Context, db *sqlx.DB) error {
	var n int
	if err := db.GetContext(ctx, &n, `SELECT COUNT(*) FROM currencies`); err != nil {
		return fmt.Errorf("failed to count currencies: %w", err)
	}
	if n > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	currencies := &CurrencyRepository{BaseRepository{DB: tx}}
	now := time.Now().UTC()
	for _, c := range DefaultCurrencies {
		c.CreatedAt, c.UpdatedAt = now, now
		if _, err := currencies.SaveCurrency(ctx, c); err != nil {
			return fmt.Errorf("failed to seed currencies: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit currency seed: %w", err)
	}
	return nil
}
