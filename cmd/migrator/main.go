package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/marioapg/cipher-test/pkg/database"
)

const (
	databaseURLFlag = "database-url"
	downFlag        = "down"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	databaseURL, down := getFlagsValues()
	if err := validateFlags(databaseURL); err != nil {
		logger.Error("too few args", slog.String("error", err.Error()))
		pflag.Usage()
		os.Exit(2)
	}

	direction := database.MigrateUp
	if down {
		direction = database.MigrateDown
	}

	if err := database.RunMigrations(databaseURL, direction, logger); err != nil {
		logger.Error("failed to migrate", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// getFlagsValues reads the flags; the database URL falls back to PGSQL_URL.
func getFlagsValues() (string, bool) {
	_ = godotenv.Load()

	databaseURL := pflag.StringP(databaseURLFlag, "d", os.Getenv("PGSQL_URL"), "PostgreSQL connection URL (defaults to $PGSQL_URL)")
	down := pflag.Bool(downFlag, false, "roll back every applied migration instead of applying pending ones")
	pflag.Parse()
	return *databaseURL, *down
}

func validateFlags(databaseURL string) error {
	var errs []error
	if databaseURL == "" {
		errs = append(errs, fmt.Errorf("--%s flag: required", databaseURLFlag))
	}
	return errors.Join(errs...)
}
