package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	adaptershttp "github.com/iho/dealerledger/internal/adapter/http"
	"github.com/iho/dealerledger/internal/adapter/http/handler"
	postgresrepo "github.com/iho/dealerledger/internal/adapter/repository/postgres"
	redisrepo "github.com/iho/dealerledger/internal/adapter/repository/redis"
	"github.com/iho/dealerledger/internal/fx"
	"github.com/iho/dealerledger/internal/infrastructure/metrics"
	infraredis "github.com/iho/dealerledger/internal/infrastructure/redis"
	"github.com/iho/dealerledger/internal/usecase"
	"github.com/iho/dealerledger/tests/testutil"
)

var testMetrics = metrics.New()

// newTestServer wires the full HTTP stack against a real database and redis.
// FX lookups go through the resolver with manual rates only; no external
// provider is reachable in tests.
func newTestServer(t *testing.T, ctx context.Context, testDB *testutil.TestDB) http.Handler {
	t.Helper()

	pool := testDB.Pool

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { _ = redisClient.Close() })

	logger := zerolog.Nop()

	rateCache := redisrepo.NewCache(redisClient)
	provider := fx.NewHTTPProvider("", 0)
	resolver := fx.NewResolver(fx.NewCachedProvider(provider, rateCache, 0, logger), logger, testMetrics)

	txManager := postgresrepo.NewTxManager(pool)
	tenantRepo := postgresrepo.NewTenantRepository(pool)
	vehicleRepo := postgresrepo.NewVehicleRepository(pool)
	costRepo := postgresrepo.NewCostItemRepository(pool)
	saleRepo := postgresrepo.NewSaleRepository(pool)
	planRepo := postgresrepo.NewPlanRepository(pool)
	paymentRepo := postgresrepo.NewPaymentRepository(pool)
	auditRepo := postgresrepo.NewAuditRepository(pool)
	idGen := postgresrepo.NewULIDGenerator()

	vehicleUC := usecase.NewVehicleUseCase(vehicleRepo, tenantRepo, resolver, idGen)
	costUC := usecase.NewCostUseCase(txManager, vehicleRepo, costRepo, tenantRepo, resolver, auditRepo, idGen, testMetrics)
	saleUC := usecase.NewSaleUseCase(txManager, vehicleRepo, saleRepo, tenantRepo, resolver, auditRepo, idGen, testMetrics)
	installmentUC := usecase.NewInstallmentUseCase(txManager, planRepo, paymentRepo, saleRepo, tenantRepo, resolver, auditRepo, idGen, testMetrics, logger)
	reportUC := usecase.NewReportUseCase(tenantRepo, vehicleRepo, costRepo, saleRepo, testMetrics)

	return adaptershttp.NewRouter(adaptershttp.RouterConfig{
		VehicleHandler:     handler.NewVehicleHandler(vehicleUC),
		CostHandler:        handler.NewCostHandler(costUC),
		SaleHandler:        handler.NewSaleHandler(saleUC),
		InstallmentHandler: handler.NewInstallmentHandler(installmentUC),
		ReportHandler:      handler.NewReportHandler(reportUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:   redisrepo.NewIdempotencyStore(redisClient),
	})
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intPtr(n int) *int {
	return &n
}

// doJSON issues a request with the tenant header and decodes the JSON
// response into out when it is non-nil.
func doJSON(t *testing.T, router http.Handler, method, path, tenantID string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if tenantID != "" {
		req.Header.Set("X-Tenant-ID", tenantID)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if out != nil && rec.Body.Len() > 0 && rec.Code < 300 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("failed to decode response %s: %v", rec.Body.String(), err)
		}
	}

	return rec.Code
}
