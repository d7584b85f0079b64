package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	cartapp "github.com/rakaadi/storefront/internal/cart/app"
	cartmem "github.com/rakaadi/storefront/internal/cart/infra/memory"
	cartrest "github.com/rakaadi/storefront/internal/cart/rest"
	catalogapp "github.com/rakaadi/storefront/internal/catalog/app"
	catalogstatic "github.com/rakaadi/storefront/internal/catalog/infra/static"
	catalogrest "github.com/rakaadi/storefront/internal/catalog/rest"
	checkoutapp "github.com/rakaadi/storefront/internal/checkout/app"
	checkoutadapter "github.com/rakaadi/storefront/internal/checkout/infra/adapter"
	checkoutrest "github.com/rakaadi/storefront/internal/checkout/rest"
	"github.com/rakaadi/storefront/internal/gateway"
	identityapp "github.com/rakaadi/storefront/internal/identity/app"
	identitymem "github.com/rakaadi/storefront/internal/identity/infra/memory"
	identityrest "github.com/rakaadi/storefront/internal/identity/rest"
	"github.com/rakaadi/storefront/pkg/config"
	"github.com/rakaadi/storefront/pkg/logger"
	"github.com/rakaadi/storefront/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "storefront",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	// Catalog
	catalogRepo, err := catalogstatic.NewRepo()
	if err != nil {
		log.Error("catalog load failed", slog.Any("err", err))
		os.Exit(1)
	}
	catalogSvc := catalogapp.NewService(catalogRepo)

	// Cart
	cartStore := cartmem.NewStore()
	cartSvc := cartapp.NewService(cartStore)

	// Identity
	userRepo := identitymem.NewUserRepo()
	identitySvc := identityapp.NewService(userRepo, []byte(cfg.SessionSecret), cfg.SessionTTL)
	seedDemoUsers(ctx, identitySvc, log)

	// Checkout (adapters)
	cartReader := checkoutadapter.NewCartServiceReader(cartSvc)
	catalogReader := checkoutadapter.NewCatalogServiceReader(catalogSvc)
	checkoutSvc := checkoutapp.NewService(cartReader, catalogReader, 10)

	handler := gateway.NewRouter(gateway.Deps{
		Log:      log,
		Catalog:  catalogrest.NewHandler(catalogSvc, log, cfg.PageSize, cfg.LoadMoreDelay),
		Cart:     cartrest.NewHandler(cartSvc, catalogSvc, log),
		CartWS:   cartrest.NewStreamHandler(cartSvc, identitySvc, log),
		Checkout: checkoutrest.NewHandler(checkoutSvc, log),
		Identity: identityrest.NewHandler(identitySvc, log),
	})

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}

// seedDemoUsers registers the demo accounts the storefront ships with.
func seedDemoUsers(ctx context.Context, svc *identityapp.Service, log *slog.Logger) {
	demo := []struct {
		email, name, password string
	}{
		{"demo@storefront.dev", "Demo Shopper", "password123"},
		{"alice@storefront.dev", "Alice", "wonderland"},
	}

	for _, u := range demo {
		if _, err := svc.Register(ctx, u.email, u.name, u.password); err != nil {
			log.Warn("demo user seed failed", slog.String("email", u.email), slog.Any("err", err))
		}
	}
}
