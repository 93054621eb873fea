package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/tiendaonline/backend/internal/auth"
	"github.com/tiendaonline/backend/internal/config"
	delivery "github.com/tiendaonline/backend/internal/delivery/http"
	"github.com/tiendaonline/backend/internal/messaging"
	"github.com/tiendaonline/backend/internal/messaging/kafka"
	"github.com/tiendaonline/backend/internal/metrics"
	"github.com/tiendaonline/backend/internal/repository/postgres"
	"github.com/tiendaonline/backend/internal/service"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Database ---
	db, err := postgres.InitDB(cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to init database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	productRepo := postgres.NewProductRepository(db)
	if err := productRepo.Seed(ctx, postgres.DefaultCategories(), postgres.DefaultProducts()); err != nil {
		slog.Error("Failed to seed catalog", "err", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	cartRepo := postgres.NewCartRepository(db)
	orderStore := postgres.NewOrderRepository(db)

	// --- Token revocation ---
	var revocation auth.RevocationStore
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		revocation = auth.NewRedisRevocationStore(client)
	} else {
		revocation = auth.NewMemoryRevocationStore()
	}

	// --- Event publishing ---
	var publisher messaging.Publisher = messaging.NopPublisher{}
	if cfg.KafkaBrokers != "" {
		publisher = kafka.NewPublisher(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaTopic)
	}
	defer publisher.Close()

	// --- Services ---
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := service.NewAuthService(userRepo, tokens, revocation)
	catalogSvc := service.NewCatalogService(productRepo)
	cartSvc := service.NewCartService(cartRepo, productRepo)
	checkoutSvc := service.NewCheckoutService(orderStore, publisher, cfg.OrderInitialStatus)
	orderSvc := service.NewOrderService(orderStore)

	// --- HTTP ---
	m := metrics.NewServerMetrics("backend")
	handler := delivery.NewHandler(authSvc, catalogSvc, cartSvc, checkoutSvc, orderSvc, m)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           delivery.EnableCORS(mux),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("HTTP server starting", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server error", "err", err)
		os.Exit(1)
	}
}

func setupLogger(cfg config.Config) {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler).With("service", "backend", "env", cfg.AppEnv))
}
