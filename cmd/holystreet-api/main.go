package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Evolvetech-Johnn/holystreetstore/internal/auth"
	"github.com/Evolvetech-Johnn/holystreetstore/internal/cart"
	"github.com/Evolvetech-Johnn/holystreetstore/internal/catalog"
	"github.com/Evolvetech-Johnn/holystreetstore/internal/config"
	"github.com/Evolvetech-Johnn/holystreetstore/internal/httpx"
	"github.com/Evolvetech-Johnn/holystreetstore/internal/order"
	"github.com/Evolvetech-Johnn/holystreetstore/internal/orderlog"
	"github.com/Evolvetech-Johnn/holystreetstore/internal/orderlog/sqlite"
	"github.com/Evolvetech-Johnn/holystreetstore/internal/pkg/cache"
	"github.com/Evolvetech-Johnn/holystreetstore/internal/pkg/telemetry"
)

func main() {
	telemetry.InitLogger()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	// Optional side-channels: both are nil-safe in the services.
	var transitionLog orderlog.Repository
	if cfg.OrderLogPath != "" {
		repo, err := sqlite.Open(cfg.OrderLogPath)
		if err != nil {
			slog.Error("order log open failed", "path", cfg.OrderLogPath, "error", err)
			os.Exit(1)
		}
		defer repo.Close()
		transitionLog = repo
		slog.Info("order transition log enabled", "path", cfg.OrderLogPath)
	}

	var cartMirror cache.Cache
	if cfg.RedisAddr != "" {
		cartMirror = cache.NewRedisCache(cfg.RedisAddr, "holystreet")
		slog.Info("cart mirror enabled", "addr", cfg.RedisAddr)
	}

	products := catalog.NewProvider()
	authSvc := auth.NewService(
		auth.NewMemoryUserStore(auth.SeedAdmin()),
		[]byte(cfg.JWTSecret),
		cfg.JWTExpiry.Std(),
	)
	carts := cart.NewService(cart.NewMemoryRepository(), products, cartMirror)
	orders := order.NewService(
		order.NewMemoryRepository(),
		order.NewScheduler(cfg.SettlementDelay.Std()),
		transitionLog,
		order.ShippingPolicy{
			Fee:           cfg.ShippingFeeDecimal(),
			FreeThreshold: cfg.FreeShippingOverDecimal(),
		},
	)

	router := httpx.NewRouter(authSvc, products, carts, orders)

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("holystreet api listening", "addr", cfg.ListenAddr)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown failed", "error", err)
	}

	// Stop pending settlement jobs before the process exits.
	orders.Shutdown()
}
