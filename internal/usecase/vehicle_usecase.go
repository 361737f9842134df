package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/dealerledger/internal/domain"
)

// VehicleUseCase handles vehicle intake. The purchase price is the first
// entry of the vehicle's cost ledger, so intake fixes its exchange rate the
// same way every other monetary fact does.
type VehicleUseCase struct {
	vehicleRepo VehicleRepository
	tenantRepo  TenantRepository
	resolver    RateResolver
	idGen       IDGenerator
}

// NewVehicleUseCase creates a new VehicleUseCase.
func NewVehicleUseCase(
	vehicleRepo VehicleRepository,
	tenantRepo TenantRepository,
	resolver RateResolver,
	idGen IDGenerator,
) *VehicleUseCase {
	return &VehicleUseCase{
		vehicleRepo: vehicleRepo,
		tenantRepo:  tenantRepo,
		resolver:    resolver,
		idGen:       idGen,
	}
}

// CreateVehicleInput represents input for creating a vehicle.
type CreateVehicleInput struct {
	TenantID         string
	Make             string
	Model            string
	ModelYear        int
	VIN              string
	PurchaseAmount   decimal.Decimal
	PurchaseCurrency string
	ManualRate       *decimal.Decimal
	PurchaseDate     time.Time
}

// CreateVehicle registers a vehicle with its purchase fact.
func (uc *VehicleUseCase) CreateVehicle(ctx context.Context, input CreateVehicleInput) (*domain.Vehicle, error) {
	if err := domain.ValidateName(input.Make + " " + input.Model); err != nil {
		return nil, err
	}

	if err := domain.ValidateFactAmount(input.PurchaseAmount); err != nil {
		return nil, err
	}

	tenant, err := uc.tenantRepo.GetByID(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}

	rate, err := uc.resolver.Resolve(ctx, input.PurchaseCurrency, tenant.BaseCurrency, input.ManualRate)
	if err != nil {
		return nil, err
	}

	fact, err := domain.NewMonetaryFact(input.PurchaseAmount, input.PurchaseCurrency, rate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	vehicle := &domain.Vehicle{
		ID:           uc.idGen.Generate(),
		TenantID:     tenant.ID,
		Make:         input.Make,
		Model:        input.Model,
		ModelYear:    input.ModelYear,
		VIN:          input.VIN,
		Status:       domain.VehicleStatusInStock,
		Purchase:     fact,
		PurchaseDate: input.PurchaseDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	return vehicle, nil
}

// GetVehicle retrieves a vehicle by ID within a tenant.
func (uc *VehicleUseCase) GetVehicle(ctx context.Context, tenantID, id string) (*domain.Vehicle, error) {
	return uc.vehicleRepo.GetByID(ctx, tenantID, id)
}

// ListVehiclesInput represents input for listing vehicles.
type ListVehiclesInput struct {
	TenantID string
	Limit    int
	Offset   int
}

// ListVehicles lists a tenant's vehicles with pagination.
func (uc *VehicleUseCase) ListVehicles(ctx context.Context, input ListVehiclesInput) ([]*domain.Vehicle, error) {
	limit, offset, err := domain.ValidatePagination(input.Limit, input.Offset)
	if err != nil {
		return nil, err
	}

	return uc.vehicleRepo.List(ctx, input.TenantID, limit, offset)
}
