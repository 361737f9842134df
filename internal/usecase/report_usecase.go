package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/iho/dealerledger/internal/domain"
	"github.com/iho/dealerledger/internal/infrastructure/metrics"
)

// ReportUseCase assembles profitability reports. Reads only; the computation
// itself is the pure domain.ComputeReport.
type ReportUseCase struct {
	tenantRepo  TenantRepository
	vehicleRepo VehicleRepository
	costRepo    CostItemRepository
	saleRepo    SaleRepository
	metrics     *metrics.Metrics
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(
	tenantRepo TenantRepository,
	vehicleRepo VehicleRepository,
	costRepo CostItemRepository,
	saleRepo SaleRepository,
	metrics *metrics.Metrics,
) *ReportUseCase {
	return &ReportUseCase{
		tenantRepo:  tenantRepo,
		vehicleRepo: vehicleRepo,
		costRepo:    costRepo,
		saleRepo:    saleRepo,
		metrics:     metrics,
	}
}

// VehicleReport computes the profitability report for one vehicle. An unsold
// vehicle reports its cost basis with a zero sale amount and a nil margin.
func (uc *ReportUseCase) VehicleReport(ctx context.Context, tenantID, vehicleID string, targetProfit *decimal.Decimal) (domain.Report, error) {
	tenant, err := uc.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return domain.Report{}, err
	}

	vehicle, err := uc.vehicleRepo.GetByID(ctx, tenantID, vehicleID)
	if err != nil {
		return domain.Report{}, err
	}

	items, err := uc.costRepo.ListByVehicle(ctx, tenantID, vehicleID)
	if err != nil {
		return domain.Report{}, err
	}

	sale, err := uc.saleRepo.GetByVehicle(ctx, tenantID, vehicleID)
	if err != nil && !errors.Is(err, domain.ErrSaleNotFound) {
		return domain.Report{}, err
	}

	ledger := &domain.CostLedger{
		BaseCurrency: tenant.BaseCurrency,
		Purchase:     &vehicle.Purchase,
		Items:        items,
	}

	report := domain.ComputeReport(ledger, sale, targetProfit)

	if uc.metrics != nil {
		uc.metrics.ReportsComputed.Inc()
	}

	return report, nil
}
