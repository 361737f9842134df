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

	httpAdapter "github.com/iho/dealerledger/internal/adapter/http"
	"github.com/iho/dealerledger/internal/adapter/http/handler"
	"github.com/iho/dealerledger/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/dealerledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/dealerledger/internal/adapter/repository/redis"
	"github.com/iho/dealerledger/internal/fx"
	"github.com/iho/dealerledger/internal/infrastructure/config"
	"github.com/iho/dealerledger/internal/infrastructure/logger"
	"github.com/iho/dealerledger/internal/infrastructure/metrics"
	"github.com/iho/dealerledger/internal/infrastructure/postgres"
	"github.com/iho/dealerledger/internal/infrastructure/redis"
	"github.com/iho/dealerledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	appMetrics := metrics.New()

	// FX rate resolution: HTTP provider behind a short-TTL redis cache. With
	// no provider URL configured every foreign-currency write needs a manual
	// rate.
	rateCache := redisRepo.NewCache(redisClient)
	provider := fx.NewHTTPProvider(cfg.FXProviderURL, cfg.FXProviderTimeout)
	cachedProvider := fx.NewCachedProvider(provider, rateCache, cfg.FXCacheTTL, log.Logger)
	resolver := fx.NewResolver(cachedProvider, log.Logger, appMetrics)

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	tenantRepo := postgresRepo.NewTenantRepository(pool)
	vehicleRepo := postgresRepo.NewVehicleRepository(pool)
	costRepo := postgresRepo.NewCostItemRepository(pool)
	saleRepo := postgresRepo.NewSaleRepository(pool)
	planRepo := postgresRepo.NewPlanRepository(pool)
	paymentRepo := postgresRepo.NewPaymentRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Initialize use cases
	vehicleUC := usecase.NewVehicleUseCase(vehicleRepo, tenantRepo, resolver, idGen)
	costUC := usecase.NewCostUseCase(txManager, vehicleRepo, costRepo, tenantRepo, resolver, auditRepo, idGen, appMetrics)
	saleUC := usecase.NewSaleUseCase(txManager, vehicleRepo, saleRepo, tenantRepo, resolver, auditRepo, idGen, appMetrics)
	installmentUC := usecase.NewInstallmentUseCase(txManager, planRepo, paymentRepo, saleRepo, tenantRepo, resolver, auditRepo, idGen, appMetrics, log.Logger)
	reportUC := usecase.NewReportUseCase(tenantRepo, vehicleRepo, costRepo, saleRepo, appMetrics)

	// Initialize handlers
	vehicleHandler := handler.NewVehicleHandler(vehicleUC)
	costHandler := handler.NewCostHandler(costUC)
	saleHandler := handler.NewSaleHandler(saleUC)
	installmentHandler := handler.NewInstallmentHandler(installmentUC)
	reportHandler := handler.NewReportHandler(reportUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		VehicleHandler:     vehicleHandler,
		CostHandler:        costHandler,
		SaleHandler:        saleHandler,
		InstallmentHandler: installmentHandler,
		ReportHandler:      reportHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		RateLimiter:        middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Logging:            middleware.NewLoggingMiddleware(log.Logger),
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
