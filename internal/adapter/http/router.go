package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iho/dealerledger/internal/adapter/http/handler"
	"github.com/iho/dealerledger/internal/adapter/http/middleware"
	"github.com/iho/dealerledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	VehicleHandler     *handler.VehicleHandler
	CostHandler        *handler.CostHandler
	SaleHandler        *handler.SaleHandler
	InstallmentHandler *handler.InstallmentHandler
	ReportHandler      *handler.ReportHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	RateLimiter        *middleware.RateLimiter
	Logging            *middleware.LoggingMiddleware
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if cfg.Logging != nil {
		r.Use(cfg.Logging.Wrap)
	} else {
		r.Use(chimiddleware.Logger)
	}
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1, scoped to the tenant named in the request header
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequireTenant)

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Vehicles and their cost ledger
		r.Route("/vehicles", func(r chi.Router) {
			r.Post("/", cfg.VehicleHandler.Create)
			r.Get("/", cfg.VehicleHandler.List)
			r.Get("/{id}", cfg.VehicleHandler.Get)

			r.Post("/{id}/costs", cfg.CostHandler.Create)
			r.Get("/{id}/costs", cfg.CostHandler.Ledger)
			r.Put("/{id}/costs/{itemID}", cfg.CostHandler.Update)
			r.Delete("/{id}/costs/{itemID}", cfg.CostHandler.Delete)

			r.Post("/{id}/sale", cfg.SaleHandler.Create)
			r.Get("/{id}/sale", cfg.SaleHandler.Get)

			r.Get("/{id}/report", cfg.ReportHandler.VehicleReport)
		})

		// Installment plans and their payment ledger
		r.Route("/plans", func(r chi.Router) {
			r.Post("/", cfg.InstallmentHandler.CreatePlan)
			r.Get("/{id}/status", cfg.InstallmentHandler.Status)
			r.Post("/{id}/payments", cfg.InstallmentHandler.RecordPayment)
			r.Get("/{id}/payments", cfg.InstallmentHandler.ListPayments)
			r.Post("/{id}/cancel", cfg.InstallmentHandler.Cancel)
		})
	})

	return r
}
