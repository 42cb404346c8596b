package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	portsrepo "github.com/marioapg/cipher-test/internal/core/ports/repositories"
	"github.com/marioapg/cipher-test/internal/core/services"
	"github.com/marioapg/cipher-test/internal/handlers"
	"github.com/marioapg/cipher-test/internal/middleware"
	"github.com/marioapg/cipher-test/internal/platform/config"
	"github.com/marioapg/cipher-test/internal/repositories/database/pgsql"
	"github.com/marioapg/cipher-test/internal/repositories/database/sqlite"
	"github.com/marioapg/cipher-test/pkg/database"
)

// @title Catalog API
// @version 1.0
// @description Multi-currency product catalog: products, per-currency price sets and the currency registry.

// @host localhost:8080
// @BasePath /api
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize store", slog.String("driver", cfg.StoreDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}

	runErr := run(ctx, cfg, logger, repos)
	closeStore()
	if runErr != nil {
		logger.Error("Server exited with error", slog.String("error", runErr.Error()))
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

// openStore connects the configured store and returns its repositories with a close func.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		if cfg.RunMigrations {
			logger.Info("Running database migrations...")
			if err := database.RunMigrations(cfg.DatabaseURL, database.MigrateUp, logger); err != nil {
				return portsrepo.RepositoryProvider{}, nil, err
			}
		}

		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Database connection pool established.")
		return pgsql.NewRepositoryProvider(pool), func() { database.ClosePgxPool(pool) }, nil

	case config.StoreDriverSQLite:
		db, err := sqlite.OpenDB(ctx, cfg.SQLiteDSN, cfg.SeedCurrencies)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("SQLite database opened.", slog.String("dsn", cfg.SQLiteDSN))
		return sqlite.NewRepositoryProvider(db), func() {
			if err := db.Close(); err != nil {
				logger.Error("Error closing SQLite database", slog.String("error", err.Error()))
			}
		}, nil
	}
	return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
}

// run serves HTTP until ctx is cancelled, then shuts the server down gracefully.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, repos portsrepo.RepositoryProvider) error {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("invalid RATE_LIMIT %q: %w", cfg.RateLimit, err)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.CORS(cfg.AllowedOrigins),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	container := services.NewServiceContainer(repos)
	handlers.RegisterRoutes(r, cfg, container, middleware.RateLimit(rateLimiter))

	server := &http.Server{Addr: ":" + cfg.Port, Handler: r}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("base_path", cfg.APIBasePath))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...", slog.Duration("timeout", cfg.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}
