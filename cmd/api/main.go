package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/rickymcpower/hrSfera/internal/adapter/api"
	"github.com/rickymcpower/hrSfera/internal/adapter/metrics"
	"github.com/rickymcpower/hrSfera/internal/adapter/repository/postgres"
	redisrepo "github.com/rickymcpower/hrSfera/internal/adapter/repository/redis"
	"github.com/rickymcpower/hrSfera/internal/pkg/config"
	"github.com/rickymcpower/hrSfera/internal/pkg/logger"
	"github.com/rickymcpower/hrSfera/internal/usecase"

	_ "github.com/lib/pq" // postgres driver
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logger.New(cfg.LogLevel)
	slog.SetDefault(logger)

	m := metrics.NewAttendanceMetrics()

	// --- Metrics Server ---
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())

	metricsServer := &http.Server{
		Addr:    cfg.MetricsAddr,
		Handler: metricsMux,
	}

	go func() {
		logger.Info("starting metrics server", "addr", metricsServer.Addr)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	// --- Graceful Shutdown Context ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database and Redis Connections ---
	db, err := sql.Open("postgres", cfg.PostgresURL)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisAddr)
	if err != nil {
		logger.Error("failed to parse redis url", "error", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error("could not connect to redis", "error", err)
		os.Exit(1)
	}

	// --- Repositories ---
	userRepo := postgres.NewUserRepository(db, logger)
	tenantRepo := postgres.NewTenantRepository(db, logger)
	entryRepo := postgres.NewTimeEntryRepository(db, logger)
	tokenStore := redisrepo.NewTokenStore(redisClient, logger)

	// --- Use Cases ---
	authUseCase := usecase.NewAuthService(userRepo, tenantRepo, tokenStore, m, logger, cfg.JWTSecret, cfg.JWTExpiry)
	trackingUseCase := usecase.NewTimeTrackingService(entryRepo, m, logger)
	directoryUseCase := usecase.NewDirectoryService(userRepo, logger)

	// --- HTTP Server ---
	router := api.NewRouter(cfg, logger, tokenStore, authUseCase, trackingUseCase, directoryUseCase)
	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	go func() {
		logger.Info("starting api server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("api server failed", "error", err)
			stop() // Trigger shutdown on server error
		}
	}()

	// --- Wait for shutdown signal ---
	<-ctx.Done()
	logger.Info("shutting down servers...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown failed", "error", err)
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("api server shutdown failed", "error", err)
	}

	logger.Info("servers shut down gracefully")
}
