package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/rmaia/saldo/internal/adapter/http"
	"github.com/rmaia/saldo/internal/adapter/http/handler"
	postgresRepo "github.com/rmaia/saldo/internal/adapter/repository/postgres"
	redisRepo "github.com/rmaia/saldo/internal/adapter/repository/redis"
	"github.com/rmaia/saldo/internal/infrastructure/config"
	"github.com/rmaia/saldo/internal/infrastructure/logger"
	"github.com/rmaia/saldo/internal/infrastructure/metrics"
	"github.com/rmaia/saldo/internal/infrastructure/postgres"
	"github.com/rmaia/saldo/internal/infrastructure/redis"
	"github.com/rmaia/saldo/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger
	zerolog.DefaultContextLogger = &appLogger

	if cfg.RunMigrations {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			appLogger.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DatabaseTimeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	// Repositories
	retrier := postgresRepo.NewRetrier(appLogger)
	balanceRepo := postgresRepo.NewBalanceRepository(pool, retrier)
	expenseRepo := postgresRepo.NewExpenseRepository(pool)
	revenueRepo := postgresRepo.NewRevenueRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Use cases
	balanceUC := usecase.NewBalanceUseCase(balanceRepo)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo, balanceUC, idGen)
	revenueUC := usecase.NewRevenueUseCase(revenueRepo, balanceUC, idGen)
	reconUC := usecase.NewReconciliationUseCase(balanceRepo, expenseRepo, revenueRepo)

	// Handlers
	m := metrics.New()
	expenseHandler := handler.NewExpenseHandler(expenseUC, appLogger, m)
	revenueHandler := handler.NewRevenueHandler(revenueUC, appLogger, m)
	balanceHandler := handler.NewBalanceHandler(balanceUC)
	reconHandler := handler.NewReconciliationHandler(reconUC, appLogger, m)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ExpenseHandler:        expenseHandler,
		RevenueHandler:        revenueHandler,
		BalanceHandler:        balanceHandler,
		ReconciliationHandler: reconHandler,
		HealthHandler:         healthHandler,
		IdempotencyStore:      idempotencyStore,
		IdempotencyTTL:        cfg.IdempotencyTTL,
		Logger:                appLogger,
		RateLimit:             cfg.RateLimitRPS,
		RateBurst:             cfg.RateLimitBurst,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}
