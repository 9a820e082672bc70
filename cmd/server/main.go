package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/vitrina/vitrina/internal"
	"github.com/vitrina/vitrina/internal/assethost"
	"github.com/vitrina/vitrina/internal/catalog"
	"github.com/vitrina/vitrina/internal/detail"
	"github.com/vitrina/vitrina/internal/docstore"
	"github.com/vitrina/vitrina/internal/gateway"
	"github.com/vitrina/vitrina/internal/handler/admin"
	"github.com/vitrina/vitrina/internal/handler/storefront"
	"github.com/vitrina/vitrina/internal/ingest"
	"github.com/vitrina/vitrina/internal/middleware"
	"github.com/vitrina/vitrina/internal/router"
	"github.com/vitrina/vitrina/internal/routes"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// The postgres document store needs a pool and up-to-date schema; the
	// rest provider needs neither.
	var pool *pgxpool.Pool
	if cfg.Docstore.Provider == "postgres" {
		logger.Info("Connecting to database...")
		sqlDB, err := sql.Open("pgx", cfg.Docstore.DatabaseURL)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}

		if err := sqlDB.Ping(); err != nil {
			sqlDB.Close()
			return fmt.Errorf("database ping failed: %w", err)
		}

		logger.Info("Running database migrations...")
		if err := internal.RunMigrations(sqlDB); err != nil {
			sqlDB.Close()
			return fmt.Errorf("migration failed: %w", err)
		}
		sqlDB.Close()
		logger.Info("Database migrations completed")

		pool, err = pgxpool.New(ctx, cfg.Docstore.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to create connection pool: %w", err)
		}
		defer pool.Close()
	}

	// Initialize providers
	docs, err := docstore.New(cfg.Docstore, pool)
	if err != nil {
		return fmt.Errorf("failed to initialize document store: %w", err)
	}

	assets, err := assethost.New(cfg.Assets)
	if err != nil {
		return fmt.Errorf("failed to initialize asset host: %w", err)
	}

	gw := gateway.New(docs, assets)

	// The catalog store issues its initial fetch immediately.
	store := catalog.New(gw, logger)
	defer store.Close()

	binder := detail.NewBinder(store)
	pipeline := ingest.New(gw, store, logger)

	// ==========================================================================
	// Initialize middleware
	// ==========================================================================

	metrics := middleware.NewMetrics("vitrina")

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		metrics.Middleware,
		middleware.Timeout(middleware.DefaultTimeout),
		router.Logger(logger),
	)

	// Static files
	r.Static("/static/", "./web/static")

	// Locally hosted assets are served straight from disk.
	if cfg.Assets.Provider == "local" {
		r.Static(cfg.Assets.LocalURL+"/", cfg.Assets.LocalPath)
	}

	// Metrics endpoint; protect at the network layer in production
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		metrics.Handler().ServeHTTP(w, req)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// ==========================================================================
	// Register routes
	// ==========================================================================

	storefrontDeps := routes.StorefrontDeps{
		CatalogHandler:       storefront.NewCatalogHandler(store, logger),
		RefreshHandler:       storefront.NewRefreshHandler(store, logger),
		ProductDetailHandler: storefront.NewProductDetailHandler(binder, logger),
		BuyHandler:           storefront.NewBuyHandler(store, logger),
		LoginPageHandler:     storefront.NewLoginPageHandler(),
		RegisterPageHandler:  storefront.NewRegisterPageHandler(),
	}

	adminDeps := routes.AdminDeps{
		ProductFormHandler:   admin.NewProductFormHandler(),
		ProductCreateHandler: admin.NewProductCreateHandler(pipeline, logger),
	}

	// Ordinary routes get the small body cap; the admin upload route sets
	// its own larger one.
	public := r.Group(middleware.MaxBodySize(middleware.DefaultMaxBodySize))
	routes.RegisterStorefrontRoutes(public, storefrontDeps)
	routes.RegisterAdminRoutes(r, adminDeps)

	// ==========================================================================
	// Start server
	// ==========================================================================

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
