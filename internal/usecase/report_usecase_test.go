package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/dealerledger/internal/domain"
	"github.com/iho/dealerledger/internal/usecase"
	"github.com/iho/dealerledger/internal/usecase/mocks"
)

type reportFixture struct {
	tenantRepo  *mocks.MockTenantRepository
	vehicleRepo *mocks.MockVehicleRepository
	costRepo    *mocks.MockCostItemRepository
	saleRepo    *mocks.MockSaleRepository
	uc          *usecase.ReportUseCase

	tenant  *domain.Tenant
	vehicle *domain.Vehicle
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()

	f := &reportFixture{
		tenantRepo:  mocks.NewMockTenantRepository(),
		vehicleRepo: mocks.NewMockVehicleRepository(),
		costRepo:    mocks.NewMockCostItemRepository(),
		saleRepo:    mocks.NewMockSaleRepository(),
	}

	f.tenant = seedTenant(f.tenantRepo)
	f.vehicle = seedVehicle(t, f.vehicleRepo, f.tenant.ID)

	f.uc = usecase.NewReportUseCase(
		f.tenantRepo,
		f.vehicleRepo,
		f.costRepo,
		f.saleRepo,
		nil,
	)

	return f
}

func (f *reportFixture) addCost(t *testing.T, id string, amount int64) {
	t.Helper()

	fact, err := domain.NewMonetaryFact(
		decimal.NewFromInt(amount), "TRY", decimal.NewFromInt(1))
	if err != nil {
		t.Fatalf("failed to build cost fact: %v", err)
	}

	if err := f.costRepo.Create(context.Background(), nil, &domain.CostItem{
		ID:        id,
		TenantID:  f.tenant.ID,
		VehicleID: f.vehicle.ID,
		Name:      "cost " + id,
		Category:  domain.CategoryOther,
		Fact:      fact,
	}); err != nil {
		t.Fatalf("failed to seed cost item: %v", err)
	}
}

func (f *reportFixture) addSale(t *testing.T, amount int64) {
	t.Helper()

	fact, err := domain.NewMonetaryFact(
		decimal.NewFromInt(amount), "TRY", decimal.NewFromInt(1))
	if err != nil {
		t.Fatalf("failed to build sale fact: %v", err)
	}

	if err := f.saleRepo.Create(context.Background(), nil, &domain.SaleRecord{
		ID:        "sale-1",
		TenantID:  f.tenant.ID,
		VehicleID: f.vehicle.ID,
		Fact:      fact,
		SaleDate:  time.Now().UTC(),
	}); err != nil {
		t.Fatalf("failed to seed sale: %v", err)
	}
}

func TestReportUseCase_VehicleReportSold(t *testing.T) {
	f := newReportFixture(t)

	// Purchase 850000 plus 15000 costs, sold for 1050000.
	f.addCost(t, "cost-1", 15000)
	f.addSale(t, 1050000)

	report, err := f.uc.VehicleReport(context.Background(), f.tenant.ID, f.vehicle.ID, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !report.TotalCostBase.Equal(decimal.NewFromInt(865000)) {
		t.Errorf("expected cost 865000, got %v", report.TotalCostBase)
	}
	if !report.Profit.Equal(decimal.NewFromInt(185000)) {
		t.Errorf("expected profit 185000, got %v", report.Profit)
	}

	if report.ProfitMarginPercent == nil || report.ROIPercent == nil {
		t.Fatal("expected margin and ROI to be set")
	}
	if got := report.ProfitMarginPercent.Round(2); !got.Equal(decimal.RequireFromString("17.62")) {
		t.Errorf("expected margin 17.62, got %v", got)
	}
	if got := report.ROIPercent.Round(2); !got.Equal(decimal.RequireFromString("21.39")) {
		t.Errorf("expected ROI 21.39, got %v", got)
	}
}

func TestReportUseCase_VehicleReportUnsold(t *testing.T) {
	f := newReportFixture(t)
	f.addCost(t, "cost-1", 15000)

	report, err := f.uc.VehicleReport(context.Background(), f.tenant.ID, f.vehicle.ID, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !report.SaleAmountBase.IsZero() {
		t.Errorf("expected zero sale amount, got %v", report.SaleAmountBase)
	}
	if !report.Profit.Equal(decimal.NewFromInt(-865000)) {
		t.Errorf("expected profit -865000, got %v", report.Profit)
	}
	if report.ProfitMarginPercent != nil {
		t.Error("expected nil margin for unsold vehicle")
	}
	if report.ROIPercent == nil {
		t.Fatal("expected ROI to be set against a nonzero cost basis")
	}
}

func TestReportUseCase_VehicleReportTarget(t *testing.T) {
	f := newReportFixture(t)
	f.addSale(t, 1050000)

	target := decimal.NewFromInt(250000)
	report, err := f.uc.VehicleReport(context.Background(), f.tenant.ID, f.vehicle.ID, &target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.ProfitVsTarget == nil {
		t.Fatal("expected profit vs target to be set")
	}
	// Profit 200000 against a 250000 target.
	if !report.ProfitVsTarget.Equal(decimal.NewFromInt(-50000)) {
		t.Errorf("expected -50000 vs target, got %v", report.ProfitVsTarget)
	}
}

func TestReportUseCase_VehicleReportUnknownVehicle(t *testing.T) {
	f := newReportFixture(t)

	_, err := f.uc.VehicleReport(context.Background(), f.tenant.ID, "missing", nil)
	if !errorIs(err, domain.ErrVehicleNotFound) {
		t.Errorf("expected ErrVehicleNotFound, got %v", err)
	}
}
