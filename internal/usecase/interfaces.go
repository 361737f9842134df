package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/dealerledger/internal/domain"
)

// TenantRepository defines read access to tenant configuration. The engine
// never writes tenants; base currency is immutable from its perspective.
type TenantRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
}

// VehicleRepository defines data access for vehicles.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.Vehicle, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, tenantID, id string) (*domain.Vehicle, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.VehicleStatus, updatedAt time.Time) error
	List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Vehicle, error)
}

// CostItemRepository defines data access for cost items.
type CostItemRepository interface {
	Create(ctx context.Context, tx Transaction, item *domain.CostItem) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.CostItem, error)
	Update(ctx context.Context, tx Transaction, item *domain.CostItem) error
	Delete(ctx context.Context, tx Transaction, tenantID, id string) error
	ListByVehicle(ctx context.Context, tenantID, vehicleID string) ([]*domain.CostItem, error)
}

// SaleRepository defines data access for sale records.
type SaleRepository interface {
	Create(ctx context.Context, tx Transaction, sale *domain.SaleRecord) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.SaleRecord, error)
	GetByVehicle(ctx context.Context, tenantID, vehicleID string) (*domain.SaleRecord, error)
}

// PlanRepository defines data access for installment plans.
type PlanRepository interface {
	Create(ctx context.Context, tx Transaction, plan *domain.InstallmentPlan) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.InstallmentPlan, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, tenantID, id string) (*domain.InstallmentPlan, error)
	GetBySale(ctx context.Context, tenantID, saleID string) (*domain.InstallmentPlan, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.PlanStatus, updatedAt time.Time) error
	List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.InstallmentPlan, error)
}

// PaymentRepository defines data access for the append-only payment ledger.
type PaymentRepository interface {
	Create(ctx context.Context, tx Transaction, payment *domain.InstallmentPayment) error
	ListByPlan(ctx context.Context, tenantID, planID string) ([]*domain.InstallmentPayment, error)
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
	GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
}

// RateResolver decides the exchange rate fixed into a new monetary fact.
type RateResolver interface {
	Resolve(ctx context.Context, from, to string, manual *decimal.Decimal) (decimal.Decimal, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
