package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/dealerledger/internal/domain"
	"github.com/iho/dealerledger/internal/usecase"
)

// MockTransaction is a no-op transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	m.Committed = true
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	m.RolledBack = true
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockTransactionManager returns MockTransactions.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	Transactions []*MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	tx := &MockTransaction{}
	m.Transactions = append(m.Transactions, tx)
	return tx, nil
}

// MockIDGenerator generates sequential IDs.
type MockIDGenerator struct {
	GenerateFunc func() string

	mu   sync.Mutex
	next int
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return fmt.Sprintf("id-%04d", m.next)
}

// MockRateResolver is a mock implementation of RateResolver.
type MockRateResolver struct {
	ResolveFunc func(ctx context.Context, from, to string, manual *decimal.Decimal) (decimal.Decimal, error)
}

func NewMockRateResolver() *MockRateResolver {
	return &MockRateResolver{}
}

// Resolve defaults to same-currency 1, manual override, otherwise rate 1.
func (m *MockRateResolver) Resolve(ctx context.Context, from, to string, manual *decimal.Decimal) (decimal.Decimal, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, from, to, manual)
	}
	if manual != nil {
		return *manual, nil
	}
	return decimal.NewFromInt(1), nil
}

// MockTenantRepository is a mock implementation of TenantRepository.
type MockTenantRepository struct {
	mu      sync.RWMutex
	tenants map[string]*domain.Tenant

	GetByIDFunc func(ctx context.Context, id string) (*domain.Tenant, error)
}

func NewMockTenantRepository() *MockTenantRepository {
	return &MockTenantRepository{tenants: make(map[string]*domain.Tenant)}
}

func (m *MockTenantRepository) Seed(tenant *domain.Tenant) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tenants[tenant.ID] = tenant
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.tenants[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTenantNotFound
}

// MockVehicleRepository is a mock implementation of VehicleRepository.
type MockVehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[string]*domain.Vehicle

	CreateFunc           func(ctx context.Context, vehicle *domain.Vehicle) error
	GetByIDFunc          func(ctx context.Context, tenantID, id string) (*domain.Vehicle, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, tenantID, id string) (*domain.Vehicle, error)
	UpdateStatusFunc     func(ctx context.Context, tx usecase.Transaction, id string, status domain.VehicleStatus, updatedAt time.Time) error
	ListFunc             func(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Vehicle, error)
}

func NewMockVehicleRepository() *MockVehicleRepository {
	return &MockVehicleRepository{vehicles: make(map[string]*domain.Vehicle)}
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, vehicle)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
	return nil
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Vehicle, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, tenantID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.vehicles[id]; ok && v.TenantID == tenantID {
		return v, nil
	}
	return nil, domain.ErrVehicleNotFound
}

func (m *MockVehicleRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, tenantID, id string) (*domain.Vehicle, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, tenantID, id)
	}
	return m.GetByID(ctx, tenantID, id)
}

func (m *MockVehicleRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.VehicleStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.vehicles[id]; ok {
		v.Status = status
		v.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrVehicleNotFound
}

func (m *MockVehicleRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Vehicle, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, tenantID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Vehicle
	for _, v := range m.vehicles {
		if v.TenantID == tenantID {
			result = append(result, v)
		}
	}
	return result, nil
}

// MockCostItemRepository is a mock implementation of CostItemRepository.
type MockCostItemRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.CostItem

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, item *domain.CostItem) error
	GetByIDFunc       func(ctx context.Context, tenantID, id string) (*domain.CostItem, error)
	UpdateFunc        func(ctx context.Context, tx usecase.Transaction, item *domain.CostItem) error
	DeleteFunc        func(ctx context.Context, tx usecase.Transaction, tenantID, id string) error
	ListByVehicleFunc func(ctx context.Context, tenantID, vehicleID string) ([]*domain.CostItem, error)
}

func NewMockCostItemRepository() *MockCostItemRepository {
	return &MockCostItemRepository{items: make(map[string]*domain.CostItem)}
}

func (m *MockCostItemRepository) Create(ctx context.Context, tx usecase.Transaction, item *domain.CostItem) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, item)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.ID] = item
	return nil
}

func (m *MockCostItemRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.CostItem, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, tenantID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if item, ok := m.items[id]; ok && item.TenantID == tenantID {
		return item, nil
	}
	return nil, domain.ErrCostItemNotFound
}

func (m *MockCostItemRepository) Update(ctx context.Context, tx usecase.Transaction, item *domain.CostItem) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, item)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[item.ID]; !ok {
		return domain.ErrCostItemNotFound
	}
	m.items[item.ID] = item
	return nil
}

func (m *MockCostItemRepository) Delete(ctx context.Context, tx usecase.Transaction, tenantID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, tenantID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if item, ok := m.items[id]; ok && item.TenantID == tenantID {
		delete(m.items, id)
		return nil
	}
	return domain.ErrCostItemNotFound
}

func (m *MockCostItemRepository) ListByVehicle(ctx context.Context, tenantID, vehicleID string) ([]*domain.CostItem, error) {
	if m.ListByVehicleFunc != nil {
		return m.ListByVehicleFunc(ctx, tenantID, vehicleID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.CostItem
	for _, item := range m.items {
		if item.TenantID == tenantID && item.VehicleID == vehicleID {
			result = append(result, item)
		}
	}
	return result, nil
}

// MockSaleRepository is a mock implementation of SaleRepository.
type MockSaleRepository struct {
	mu    sync.RWMutex
	sales map[string]*domain.SaleRecord

	CreateFunc       func(ctx context.Context, tx usecase.Transaction, sale *domain.SaleRecord) error
	GetByIDFunc      func(ctx context.Context, tenantID, id string) (*domain.SaleRecord, error)
	GetByVehicleFunc func(ctx context.Context, tenantID, vehicleID string) (*domain.SaleRecord, error)
}

func NewMockSaleRepository() *MockSaleRepository {
	return &MockSaleRepository{sales: make(map[string]*domain.SaleRecord)}
}

func (m *MockSaleRepository) Create(ctx context.Context, tx usecase.Transaction, sale *domain.SaleRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, sale)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sales[sale.ID] = sale
	return nil
}

func (m *MockSaleRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.SaleRecord, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, tenantID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sales[id]; ok && s.TenantID == tenantID {
		return s, nil
	}
	return nil, domain.ErrSaleNotFound
}

func (m *MockSaleRepository) GetByVehicle(ctx context.Context, tenantID, vehicleID string) (*domain.SaleRecord, error) {
	if m.GetByVehicleFunc != nil {
		return m.GetByVehicleFunc(ctx, tenantID, vehicleID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.sales {
		if s.TenantID == tenantID && s.VehicleID == vehicleID {
			return s, nil
		}
	}
	return nil, domain.ErrSaleNotFound
}

// MockPlanRepository is a mock implementation of PlanRepository.
type MockPlanRepository struct {
	mu    sync.RWMutex
	plans map[string]*domain.InstallmentPlan

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, plan *domain.InstallmentPlan) error
	GetByIDFunc          func(ctx context.Context, tenantID, id string) (*domain.InstallmentPlan, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, tenantID, id string) (*domain.InstallmentPlan, error)
	GetBySaleFunc        func(ctx context.Context, tenantID, saleID string) (*domain.InstallmentPlan, error)
	UpdateStatusFunc     func(ctx context.Context, tx usecase.Transaction, id string, status domain.PlanStatus, updatedAt time.Time) error
	ListFunc             func(ctx context.Context, tenantID string, limit, offset int) ([]*domain.InstallmentPlan, error)
}

func NewMockPlanRepository() *MockPlanRepository {
	return &MockPlanRepository{plans: make(map[string]*domain.InstallmentPlan)}
}

func (m *MockPlanRepository) Create(ctx context.Context, tx usecase.Transaction, plan *domain.InstallmentPlan) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, plan)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans[plan.ID] = plan
	return nil
}

func (m *MockPlanRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.InstallmentPlan, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, tenantID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.plans[id]; ok && p.TenantID == tenantID {
		return p, nil
	}
	return nil, domain.ErrPlanNotFound
}

func (m *MockPlanRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, tenantID, id string) (*domain.InstallmentPlan, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, tenantID, id)
	}
	return m.GetByID(ctx, tenantID, id)
}

func (m *MockPlanRepository) GetBySale(ctx context.Context, tenantID, saleID string) (*domain.InstallmentPlan, error) {
	if m.GetBySaleFunc != nil {
		return m.GetBySaleFunc(ctx, tenantID, saleID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.plans {
		if p.TenantID == tenantID && p.SaleID == saleID {
			return p, nil
		}
	}
	return nil, domain.ErrPlanNotFound
}

func (m *MockPlanRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.PlanStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.plans[id]; ok {
		p.Status = status
		p.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrPlanNotFound
}

func (m *MockPlanRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.InstallmentPlan, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, tenantID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.InstallmentPlan
	for _, p := range m.plans {
		if p.TenantID == tenantID {
			result = append(result, p)
		}
	}
	return result, nil
}

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments []*domain.InstallmentPayment

	CreateFunc     func(ctx context.Context, tx usecase.Transaction, payment *domain.InstallmentPayment) error
	ListByPlanFunc func(ctx context.Context, tenantID, planID string) ([]*domain.InstallmentPayment, error)
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{}
}

func (m *MockPaymentRepository) Create(ctx context.Context, tx usecase.Transaction, payment *domain.InstallmentPayment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, payment)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments = append(m.payments, payment)
	return nil
}

func (m *MockPaymentRepository) ListByPlan(ctx context.Context, tenantID, planID string) ([]*domain.InstallmentPayment, error) {
	if m.ListByPlanFunc != nil {
		return m.ListByPlanFunc(ctx, tenantID, planID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.InstallmentPayment
	for _, pm := range m.payments {
		if pm.TenantID == tenantID && pm.PlanID == planID {
			result = append(result, pm)
		}
	}
	return result, nil
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.RWMutex
	logs []*domain.AuditLog

	CreateFunc   func(ctx context.Context, log *domain.AuditLog) error
	CreateTxFunc func(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *MockAuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, log)
	}
	return m.Create(ctx, log)
}

func (m *MockAuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.AuditLog(nil), m.logs...), nil
}

func (m *MockAuditRepository) GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.AuditLog
	for _, l := range m.logs {
		if l.ResourceType == resourceType && l.ResourceID == resourceID {
			result = append(result, l)
		}
	}
	return result, nil
}

// Logs returns a copy of the recorded logs.
func (m *MockAuditRepository) Logs() []*domain.AuditLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.AuditLog(nil), m.logs...)
}
