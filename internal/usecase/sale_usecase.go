package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/dealerledger/internal/domain"
	"github.com/iho/dealerledger/internal/infrastructure/metrics"
)

// SaleUseCase handles vehicle disposition.
type SaleUseCase struct {
	txManager   TransactionManager
	vehicleRepo VehicleRepository
	saleRepo    SaleRepository
	tenantRepo  TenantRepository
	resolver    RateResolver
	auditRepo   AuditRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewSaleUseCase creates a new SaleUseCase.
func NewSaleUseCase(
	txManager TransactionManager,
	vehicleRepo VehicleRepository,
	saleRepo SaleRepository,
	tenantRepo TenantRepository,
	resolver RateResolver,
	auditRepo AuditRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *SaleUseCase {
	return &SaleUseCase{
		txManager:   txManager,
		vehicleRepo: vehicleRepo,
		saleRepo:    saleRepo,
		tenantRepo:  tenantRepo,
		resolver:    resolver,
		auditRepo:   auditRepo,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// CreateSaleInput represents input for selling a vehicle.
type CreateSaleInput struct {
	TenantID   string
	VehicleID  string
	Amount     decimal.Decimal
	Currency   string
	ManualRate *decimal.Decimal
	SaleDate   time.Time
}

// CreateSale records the disposition fact and flips the vehicle to sold in
// one transaction. A second sale on the same vehicle is ErrDuplicateSale;
// the correct flow is an administrative reversal, which is out of scope.
func (uc *SaleUseCase) CreateSale(ctx context.Context, input CreateSaleInput) (*domain.SaleRecord, error) {
	if err := domain.ValidateFactAmount(input.Amount); err != nil {
		return nil, err
	}

	tenant, err := uc.tenantRepo.GetByID(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}

	rate, err := uc.resolver.Resolve(ctx, input.Currency, tenant.BaseCurrency, input.ManualRate)
	if err != nil {
		return nil, err
	}

	fact, err := domain.NewMonetaryFact(input.Amount, input.Currency, rate)
	if err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// Lock the vehicle so two concurrent sales cannot both pass the
	// duplicate check.
	vehicle, err := uc.vehicleRepo.GetByIDForUpdate(txCtx, tx, input.TenantID, input.VehicleID)
	if err != nil {
		return nil, err
	}

	if vehicle.Status == domain.VehicleStatusSold {
		return nil, domain.ErrDuplicateSale
	}

	existing, err := uc.saleRepo.GetByVehicle(txCtx, input.TenantID, input.VehicleID)
	if err != nil && !errors.Is(err, domain.ErrSaleNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateSale
	}

	now := time.Now().UTC()

	sale := &domain.SaleRecord{
		ID:        uc.idGen.Generate(),
		TenantID:  tenant.ID,
		VehicleID: vehicle.ID,
		Fact:      fact,
		SaleDate:  input.SaleDate,
		CreatedAt: now,
	}

	if err := uc.saleRepo.Create(txCtx, tx, sale); err != nil {
		return nil, err
	}

	if err := uc.vehicleRepo.UpdateStatus(txCtx, tx, vehicle.ID, domain.VehicleStatusSold, now); err != nil {
		return nil, err
	}

	if uc.auditRepo != nil {
		auditLog := &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			TenantID:     tenant.ID,
			Action:       string(domain.AuditActionSaleCreate),
			ResourceType: "sale",
			ResourceID:   sale.ID,
			AfterState:   domain.MarshalState(sale),
			Status:       string(domain.AuditStatusSuccess),
			CreatedAt:    now,
		}
		if err := uc.auditRepo.CreateTx(txCtx, tx, auditLog); err != nil {
			return nil, err
		}
		countAudit(uc.metrics, auditLog.Action)
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.SalesCreated.Inc()
		amountBase, _ := sale.AmountBase(tenant.BaseCurrency).Float64()
		uc.metrics.SaleAmount.Observe(amountBase)
	}

	return sale, nil
}

// GetSaleByVehicle retrieves the sale record of a vehicle, if any.
func (uc *SaleUseCase) GetSaleByVehicle(ctx context.Context, tenantID, vehicleID string) (*domain.SaleRecord, error) {
	return uc.saleRepo.GetByVehicle(ctx, tenantID, vehicleID)
}
