package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/dealerledger/internal/adapter/http/dto"
	"github.com/iho/dealerledger/tests/testutil"
)

// sellVehicle creates a vehicle and a TRY sale for it, returning the sale ID.
func sellVehicle(t *testing.T, ctx context.Context, testDB *testutil.TestDB, router http.Handler, tenantID, amount string) string {
	t.Helper()

	vehicle := testDB.CreateVehicle(ctx, tenantID,
		decimal.RequireFromString("850000"), "TRY", decimal.NewFromInt(1))

	var sale dto.SaleResponse
	code := doJSON(t, router, http.MethodPost, "/api/v1/vehicles/"+vehicle.ID+"/sale", tenantID, dto.CreateSaleRequest{
		Amount:   decimal.RequireFromString(amount),
		Currency: "TRY",
		SaleDate: time.Now().UTC(),
	}, &sale)
	if code != http.StatusCreated {
		t.Fatalf("expected 201 creating sale, got %d", code)
	}

	return sale.ID
}

func TestInstallmentLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestServer(t, ctx, testDB)
	tenant := testDB.CreateTenant(ctx, "TRY")
	saleID := sellVehicle(t, ctx, testDB, router, tenant.ID, "100000")

	// 40000 down plus 6 x 10000.
	var planResp dto.PlanResponse
	code := doJSON(t, router, http.MethodPost, "/api/v1/plans/", tenant.ID, dto.CreatePlanRequest{
		SaleID:            saleID,
		TotalAmount:       decimal.RequireFromString("100000"),
		DownPayment:       decimal.RequireFromString("40000"),
		InstallmentCount:  6,
		InstallmentAmount: decimal.RequireFromString("10000"),
		Currency:          "TRY",
		PeriodDays:        30,
		StartDate:         time.Now().UTC(),
	}, &planResp)
	if code != http.StatusCreated {
		t.Fatalf("expected 201 creating plan, got %d", code)
	}

	// A sale carries at most one plan.
	code = doJSON(t, router, http.MethodPost, "/api/v1/plans/", tenant.ID, dto.CreatePlanRequest{
		SaleID:            saleID,
		TotalAmount:       decimal.RequireFromString("100000"),
		DownPayment:       decimal.RequireFromString("40000"),
		InstallmentCount:  6,
		InstallmentAmount: decimal.RequireFromString("10000"),
		Currency:          "TRY",
		PeriodDays:        30,
		StartDate:         time.Now().UTC(),
	}, nil)
	if code != http.StatusConflict {
		t.Fatalf("expected 409 for second plan on sale, got %d", code)
	}

	planPath := "/api/v1/plans/" + planResp.ID

	// Down payment.
	var payResp dto.RecordPaymentResponse
	code = doJSON(t, router, http.MethodPost, planPath+"/payments", tenant.ID, dto.RecordPaymentRequest{
		Type:        "down_payment",
		Amount:      decimal.RequireFromString("40000"),
		Currency:    "TRY",
		PaymentDate: time.Now().UTC(),
	}, &payResp)
	if code != http.StatusCreated {
		t.Fatalf("expected 201 recording down payment, got %d", code)
	}

	if !payResp.Status.RemainingBalance.Equal(decimal.RequireFromString("60000")) {
		t.Fatalf("expected remaining 60000 after down payment, got %s", payResp.Status.RemainingBalance)
	}

	// Pay all six installments; the plan completes on the last one.
	for i := 1; i <= 6; i++ {
		code = doJSON(t, router, http.MethodPost, planPath+"/payments", tenant.ID, dto.RecordPaymentRequest{
			Type:              "installment",
			InstallmentNumber: intPtr(i),
			Amount:            decimal.RequireFromString("10000"),
			Currency:          "TRY",
			PaymentDate:       time.Now().UTC(),
		}, &payResp)
		if code != http.StatusCreated {
			t.Fatalf("expected 201 recording installment %d, got %d", i, code)
		}
	}

	var statusResp dto.PlanStatusResponse
	code = doJSON(t, router, http.MethodGet, planPath+"/status", tenant.ID, nil, &statusResp)
	if code != http.StatusOK {
		t.Fatalf("expected 200 reading status, got %d", code)
	}

	if statusResp.Plan.Status != "completed" {
		t.Fatalf("expected completed plan, got %s", statusResp.Plan.Status)
	}

	if !statusResp.Status.RemainingBalance.IsZero() {
		t.Fatalf("expected zero remaining balance, got %s", statusResp.Status.RemainingBalance)
	}

	// No further payments on a completed plan.
	code = doJSON(t, router, http.MethodPost, planPath+"/payments", tenant.ID, dto.RecordPaymentRequest{
		Type:              "installment",
		InstallmentNumber: intPtr(1),
		Amount:            decimal.RequireFromString("10000"),
		Currency:          "TRY",
		PaymentDate:       time.Now().UTC(),
	}, nil)
	if code != http.StatusConflict {
		t.Fatalf("expected 409 paying a completed plan, got %d", code)
	}

	// The full payment ledger survives.
	var payments []*dto.PaymentResponse
	code = doJSON(t, router, http.MethodGet, planPath+"/payments", tenant.ID, nil, &payments)
	if code != http.StatusOK {
		t.Fatalf("expected 200 listing payments, got %d", code)
	}

	if len(payments) != 7 {
		t.Fatalf("expected 7 payments on the ledger, got %d", len(payments))
	}
}

func TestInstallmentPlanCancel(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestServer(t, ctx, testDB)
	tenant := testDB.CreateTenant(ctx, "TRY")
	saleID := sellVehicle(t, ctx, testDB, router, tenant.ID, "100000")

	var planResp dto.PlanResponse
	code := doJSON(t, router, http.MethodPost, "/api/v1/plans/", tenant.ID, dto.CreatePlanRequest{
		SaleID:            saleID,
		TotalAmount:       decimal.RequireFromString("100000"),
		DownPayment:       decimal.RequireFromString("40000"),
		InstallmentCount:  6,
		InstallmentAmount: decimal.RequireFromString("10000"),
		Currency:          "TRY",
		StartDate:         time.Now().UTC(),
	}, &planResp)
	if code != http.StatusCreated {
		t.Fatalf("expected 201 creating plan, got %d", code)
	}

	planPath := "/api/v1/plans/" + planResp.ID

	code = doJSON(t, router, http.MethodPost, planPath+"/cancel", tenant.ID, nil, nil)
	if code != http.StatusNoContent {
		t.Fatalf("expected 204 cancelling plan, got %d", code)
	}

	// Cancelled is terminal.
	code = doJSON(t, router, http.MethodPost, planPath+"/payments", tenant.ID, dto.RecordPaymentRequest{
		Type:        "down_payment",
		Amount:      decimal.RequireFromString("40000"),
		Currency:    "TRY",
		PaymentDate: time.Now().UTC(),
	}, nil)
	if code != http.StatusConflict {
		t.Fatalf("expected 409 paying a cancelled plan, got %d", code)
	}
}

func TestInstallmentMismatchRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestServer(t, ctx, testDB)
	tenant := testDB.CreateTenant(ctx, "TRY")
	saleID := sellVehicle(t, ctx, testDB, router, tenant.ID, "100000")

	// 40000 + 6 x 9000 = 94000, off by far more than one minor unit.
	code := doJSON(t, router, http.MethodPost, "/api/v1/plans/", tenant.ID, dto.CreatePlanRequest{
		SaleID:            saleID,
		TotalAmount:       decimal.RequireFromString("100000"),
		DownPayment:       decimal.RequireFromString("40000"),
		InstallmentCount:  6,
		InstallmentAmount: decimal.RequireFromString("9000"),
		Currency:          "TRY",
		StartDate:         time.Now().UTC(),
	}, nil)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for mismatched plan arithmetic, got %d", code)
	}
}
