package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/nairmotors/dealerbook-backend/api/routes"
	internalauth "github.com/nairmotors/dealerbook-backend/internal/auth"
	"github.com/nairmotors/dealerbook-backend/internal/capital"
	"github.com/nairmotors/dealerbook-backend/internal/inventory"
	"github.com/nairmotors/dealerbook-backend/internal/parties"
	"github.com/nairmotors/dealerbook-backend/internal/purchases"
	"github.com/nairmotors/dealerbook-backend/internal/sales"
	"github.com/nairmotors/dealerbook-backend/internal/sequence"
	"github.com/nairmotors/dealerbook-backend/pkg/config"
	"github.com/nairmotors/dealerbook-backend/pkg/db"
	"github.com/nairmotors/dealerbook-backend/pkg/logger"
	"github.com/nairmotors/dealerbook-backend/pkg/metrics"
	"github.com/nairmotors/dealerbook-backend/pkg/migrate"
	"github.com/nairmotors/dealerbook-backend/pkg/outbox"
	"github.com/nairmotors/dealerbook-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	txnMetrics := metrics.NewTransactionMetrics(registry)

	conn := dbClient.DB()
	seqRepo := sequence.NewRepository(conn)
	seqSvc, err := sequence.NewService(seqRepo, redisClient, cfg.Sequence.AdvisoryTTL, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create sequence service", err)
		os.Exit(1)
	}

	outboxSvc := outbox.NewService(outbox.NewRepository(conn), logg)

	capitalSvc, err := capital.NewService(dbClient, capital.NewRepository(conn), outboxSvc, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create capital service", err)
		os.Exit(1)
	}
	inventorySvc, err := inventory.NewService(inventory.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}
	partyRepo := parties.NewRepository(conn)
	txnRepo := parties.NewTransactionRepository(conn)
	partiesSvc, err := parties.NewService(partyRepo, txnRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create parties service", err)
		os.Exit(1)
	}

	purchasesSvc, err := purchases.NewService(
		dbClient,
		purchases.NewRepository(conn),
		seqRepo,
		seqSvc,
		capitalSvc,
		inventorySvc,
		partyRepo,
		txnRepo,
		outboxSvc,
		txnMetrics,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create purchases service", err)
		os.Exit(1)
	}

	salesSvc, err := sales.NewService(dbClient, seqRepo, capitalSvc, partyRepo, txnRepo, outboxSvc, txnMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create sales service", err)
		os.Exit(1)
	}

	authSvc, err := internalauth.NewService(internalauth.ServiceParams{
		UserRepo:  internalauth.NewRepository(conn),
		Limiter:   redisClient,
		JWTConfig: cfg.JWT,
		RateLimit: cfg.AuthRateLimit,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	handler := routes.NewRouter(cfg, logg, dbClient, redisClient, registry, routes.Services{
		Auth:      authSvc,
		Purchases: purchasesSvc,
		Capital:   capitalSvc,
		Sales:     salesSvc,
		Parties:   partiesSvc,
		Inventory: inventorySvc,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "addr": addr})

	serverErr := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var shutdownErrs error
	if err := server.Shutdown(shutdownCtx); err != nil {
		shutdownErrs = multierr.Append(shutdownErrs, err)
	}
	if err := redisClient.Close(); err != nil {
		shutdownErrs = multierr.Append(shutdownErrs, err)
	}
	if err := dbClient.Close(); err != nil {
		shutdownErrs = multierr.Append(shutdownErrs, err)
	}
	if shutdownErrs != nil {
		logg.Error(ctx, "shutdown finished with errors", shutdownErrs)
		os.Exit(1)
	}
	logg.Info(ctx, "api server shut down cleanly")
}
