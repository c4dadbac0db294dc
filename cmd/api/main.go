package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"masala-kart/internal/cache"
	"masala-kart/internal/checkout"
	"masala-kart/internal/config"
	"masala-kart/internal/coupon"
	"masala-kart/internal/database"
	"masala-kart/internal/docstore"
	"masala-kart/internal/handler"
	"masala-kart/internal/happyhour"
	"masala-kart/internal/kv"
	"masala-kart/internal/loyalty"
	"masala-kart/internal/menu"
	"masala-kart/internal/repository"
	"masala-kart/internal/router"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting masala-kart API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Key-value store backing carts and the menu cache. Redis when
	// enabled, otherwise an in-process store.
	var store kv.Store
	if cfg.Redis.Enabled {
		store, err = kv.NewRedisStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize redis store: %w", err)
		}
	} else {
		store = kv.NewMemoryStore()
		logger.Info().Msg("using in-process key-value store (redis disabled)")
	}

	// Initialize coupon loader with S3 and local fallback
	fileLoader := coupon.NewFileLoader(logger)
	couponLoader := fileLoader

	if cfg.Coupons.S3.Enabled {
		s3Loader, err := coupon.NewS3Loader(ctx, cfg.Coupons.S3.Bucket, cfg.Coupons.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			couponLoader = coupon.NewFallbackLoader(s3Loader, fileLoader, cfg.Coupons.S3.Prefix, true, logger)
		}
	} else {
		logger.Info().Msg("using local file system for coupon files (S3 disabled)")
	}

	// Load the coupon book
	book, err := coupon.NewBook(ctx, &coupon.BookConfig{FilePath: cfg.Coupons.FilePath}, couponLoader, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize coupon book: %w", err)
	}

	// Load the loyalty tier and happy-hour window tables
	tiers, err := loyalty.LoadResolver(cfg.Catalog.LoyaltyFile, logger)
	if err != nil {
		return fmt.Errorf("failed to load loyalty tiers: %w", err)
	}

	windows, err := happyhour.LoadSelector(cfg.Catalog.HappyHourFile, logger)
	if err != nil {
		return fmt.Errorf("failed to load happy-hour windows: %w", err)
	}

	// Initialize the document store and read-through cache
	docs := docstore.NewPostgresStore(pool, logger)
	readThrough := cache.NewReadThrough(store, docs, nil, logger)

	// Initialize repositories and services
	orderRepo := repository.NewOrderRepository(pool, logger)

	menuService := menu.NewService(
		readThrough,
		time.Duration(cfg.Cache.MenuTTLSeconds)*time.Second,
		cfg.Pricing.ComboDiscount,
		logger,
	)

	totalizer := checkout.Totalizer{
		FreeDeliveryThreshold: cfg.Pricing.FreeDeliveryThreshold,
		DeliveryFee:           cfg.Pricing.DeliveryFee,
	}
	checkoutService := checkout.NewService(store, book, orderRepo, totalizer, nil, logger)

	// Initialize HTTP handlers
	menuHandler := handler.NewMenuHandler(menuService, logger)
	cartHandler := handler.NewCartHandler(store, logger)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, logger)
	loyaltyHandler := handler.NewLoyaltyHandler(tiers, logger)
	happyHourHandler := handler.NewHappyHourHandler(windows, nil, logger)

	// Initialize router
	mux := router.New(
		menuHandler,
		cartHandler,
		checkoutHandler,
		loyaltyHandler,
		happyHourHandler,
		cfg.Auth.APIKey,
		logger,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
