package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/dealerledger/internal/domain"
	"github.com/iho/dealerledger/internal/infrastructure/metrics"
)

// CostUseCase handles the cost ledger of a vehicle.
type CostUseCase struct {
	txManager   TransactionManager
	vehicleRepo VehicleRepository
	costRepo    CostItemRepository
	tenantRepo  TenantRepository
	resolver    RateResolver
	auditRepo   AuditRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewCostUseCase creates a new CostUseCase.
func NewCostUseCase(
	txManager TransactionManager,
	vehicleRepo VehicleRepository,
	costRepo CostItemRepository,
	tenantRepo TenantRepository,
	resolver RateResolver,
	auditRepo AuditRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *CostUseCase {
	return &CostUseCase{
		txManager:   txManager,
		vehicleRepo: vehicleRepo,
		costRepo:    costRepo,
		tenantRepo:  tenantRepo,
		resolver:    resolver,
		auditRepo:   auditRepo,
		idGen:       idGen,
		metrics:     metrics,
	}
}

func countAudit(m *metrics.Metrics, action string) {
	if m != nil {
		m.AuditLogsCreated.WithLabelValues(action).Inc()
	}
}

// AddCostItemInput represents input for logging an expense.
type AddCostItemInput struct {
	TenantID   string
	VehicleID  string
	Name       string
	Category   string
	Amount     decimal.Decimal
	Currency   string
	ManualRate *decimal.Decimal
	CostDate   time.Time
}

// AddCostItem logs an expense against a vehicle. The exchange rate is fixed
// here, at creation, and never refreshed afterwards.
func (uc *CostUseCase) AddCostItem(ctx context.Context, input AddCostItemInput) (*domain.CostItem, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

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

	// Lock the owning vehicle: cost writes are serialized per vehicle, and
	// the lock doubles as the tenant ownership check.
	vehicle, err := uc.vehicleRepo.GetByIDForUpdate(txCtx, tx, input.TenantID, input.VehicleID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	item := &domain.CostItem{
		ID:        uc.idGen.Generate(),
		TenantID:  tenant.ID,
		VehicleID: vehicle.ID,
		Name:      input.Name,
		Category:  input.Category,
		CostDate:  input.CostDate,
		Fact:      fact,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.costRepo.Create(txCtx, tx, item); err != nil {
		return nil, err
	}

	if uc.auditRepo != nil {
		auditLog := &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			TenantID:     tenant.ID,
			Action:       string(domain.AuditActionCostCreate),
			ResourceType: "cost_item",
			ResourceID:   item.ID,
			AfterState:   domain.MarshalState(item),
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
		uc.metrics.CostItemsCreated.Inc()
	}

	return item, nil
}

// UpdateCostItemInput represents input for editing an expense. The
// (amount, currency, rate) triple is always replaced as one unit; there is
// no way to change the amount while keeping a stale rate.
type UpdateCostItemInput struct {
	TenantID   string
	ItemID     string
	Name       string
	Category   string
	Amount     decimal.Decimal
	Currency   string
	ManualRate *decimal.Decimal
	CostDate   time.Time
}

// UpdateCostItem edits a cost item, re-resolving its monetary fact.
func (uc *CostUseCase) UpdateCostItem(ctx context.Context, input UpdateCostItemInput) (*domain.CostItem, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	if err := domain.ValidateFactAmount(input.Amount); err != nil {
		return nil, err
	}

	tenant, err := uc.tenantRepo.GetByID(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}

	item, err := uc.costRepo.GetByID(ctx, input.TenantID, input.ItemID)
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

	before := domain.MarshalState(item)

	item.Name = input.Name
	item.Category = input.Category
	item.CostDate = input.CostDate
	item.Fact = fact
	item.UpdatedAt = time.Now().UTC()

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// Same per-vehicle serialization as item creation: the edit and its audit
	// entry commit together or not at all.
	if _, err := uc.vehicleRepo.GetByIDForUpdate(txCtx, tx, input.TenantID, item.VehicleID); err != nil {
		return nil, err
	}

	if err := uc.costRepo.Update(txCtx, tx, item); err != nil {
		return nil, err
	}

	if uc.auditRepo != nil {
		auditLog := &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			TenantID:     tenant.ID,
			Action:       string(domain.AuditActionCostUpdate),
			ResourceType: "cost_item",
			ResourceID:   item.ID,
			BeforeState:  before,
			AfterState:   domain.MarshalState(item),
			Status:       string(domain.AuditStatusSuccess),
			CreatedAt:    item.UpdatedAt,
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
		uc.metrics.CostItemsUpdated.Inc()
	}

	return item, nil
}

// DeleteCostItem removes a cost item from the ledger. No cascade beyond the
// removal from the ledger total.
func (uc *CostUseCase) DeleteCostItem(ctx context.Context, tenantID, itemID string) error {
	item, err := uc.costRepo.GetByID(ctx, tenantID, itemID)
	if err != nil {
		return err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if _, err := uc.vehicleRepo.GetByIDForUpdate(txCtx, tx, tenantID, item.VehicleID); err != nil {
		return err
	}

	if err := uc.costRepo.Delete(txCtx, tx, tenantID, itemID); err != nil {
		return err
	}

	if uc.auditRepo != nil {
		auditLog := &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			TenantID:     tenantID,
			Action:       string(domain.AuditActionCostDelete),
			ResourceType: "cost_item",
			ResourceID:   item.ID,
			BeforeState:  domain.MarshalState(item),
			Status:       string(domain.AuditStatusSuccess),
			CreatedAt:    time.Now().UTC(),
		}
		if err := uc.auditRepo.CreateTx(txCtx, tx, auditLog); err != nil {
			return err
		}
		countAudit(uc.metrics, auditLog.Action)
	}

	if err := tx.Commit(txCtx); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.CostItemsDeleted.Inc()
	}

	return nil
}

// GetCostLedger assembles the full cost ledger of a vehicle: the purchase
// pseudo-item plus every logged cost item.
func (uc *CostUseCase) GetCostLedger(ctx context.Context, tenantID, vehicleID string) (*domain.CostLedger, error) {
	tenant, err := uc.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	vehicle, err := uc.vehicleRepo.GetByID(ctx, tenantID, vehicleID)
	if err != nil {
		return nil, err
	}

	items, err := uc.costRepo.ListByVehicle(ctx, tenantID, vehicleID)
	if err != nil {
		return nil, err
	}

	return &domain.CostLedger{
		BaseCurrency: tenant.BaseCurrency,
		Purchase:     &vehicle.Purchase,
		Items:        items,
	}, nil
}

// ListCostItems lists the cost items of a vehicle.
func (uc *CostUseCase) ListCostItems(ctx context.Context, tenantID, vehicleID string) ([]*domain.CostItem, error) {
	return uc.costRepo.ListByVehicle(ctx, tenantID, vehicleID)
}
