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

func newVehicleUseCase(tenantRepo *mocks.MockTenantRepository, vehicleRepo *mocks.MockVehicleRepository, resolver *mocks.MockRateResolver) *usecase.VehicleUseCase {
	return usecase.NewVehicleUseCase(
		vehicleRepo,
		tenantRepo,
		resolver,
		mocks.NewMockIDGenerator(),
	)
}

func TestVehicleUseCase_CreateVehicle(t *testing.T) {
	tenantRepo := mocks.NewMockTenantRepository()
	vehicleRepo := mocks.NewMockVehicleRepository()
	resolver := mocks.NewMockRateResolver()

	tenant := seedTenant(tenantRepo)
	uc := newVehicleUseCase(tenantRepo, vehicleRepo, resolver)

	manual := decimal.RequireFromString("36.5")
	vehicle, err := uc.CreateVehicle(context.Background(), usecase.CreateVehicleInput{
		TenantID:         tenant.ID,
		Make:             "Honda",
		Model:            "Civic",
		ModelYear:        2021,
		VIN:              "1HGFC2F59MH000001",
		PurchaseAmount:   decimal.NewFromInt(20000),
		PurchaseCurrency: "USD",
		ManualRate:       &manual,
		PurchaseDate:     time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if vehicle.Status != domain.VehicleStatusInStock {
		t.Errorf("expected in_stock, got %s", vehicle.Status)
	}
	if !vehicle.Purchase.FXRateToBase.Equal(manual) {
		t.Errorf("expected fixed purchase rate %v, got %v", manual, vehicle.Purchase.FXRateToBase)
	}
	if got := vehicle.Purchase.AmountBase("TRY"); !got.Equal(decimal.NewFromInt(730000)) {
		t.Errorf("expected purchase base 730000, got %v", got)
	}

	stored, err := uc.GetVehicle(context.Background(), tenant.ID, vehicle.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.ID != vehicle.ID {
		t.Errorf("expected stored vehicle %s, got %s", vehicle.ID, stored.ID)
	}
}

func TestVehicleUseCase_CreateVehicleErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.CreateVehicleInput
		setup   func(*mocks.MockRateResolver)
		wantErr error
	}{
		{
			name: "unknown tenant",
			input: usecase.CreateVehicleInput{
				TenantID:         "missing",
				Make:             "Honda",
				Model:            "Civic",
				PurchaseAmount:   decimal.NewFromInt(20000),
				PurchaseCurrency: "USD",
			},
			wantErr: domain.ErrTenantNotFound,
		},
		{
			name: "unknown currency",
			input: usecase.CreateVehicleInput{
				TenantID:         "tenant-1",
				Make:             "Honda",
				Model:            "Civic",
				PurchaseAmount:   decimal.NewFromInt(20000),
				PurchaseCurrency: "XXX",
			},
			setup: func(r *mocks.MockRateResolver) {
				r.ResolveFunc = func(ctx context.Context, from, to string, manual *decimal.Decimal) (decimal.Decimal, error) {
					return decimal.Zero, domain.ErrUnknownCurrency
				}
			},
			wantErr: domain.ErrUnknownCurrency,
		},
		{
			name: "negative purchase amount",
			input: usecase.CreateVehicleInput{
				TenantID:         "tenant-1",
				Make:             "Honda",
				Model:            "Civic",
				PurchaseAmount:   decimal.NewFromInt(-1),
				PurchaseCurrency: "USD",
			},
			wantErr: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tenantRepo := mocks.NewMockTenantRepository()
			vehicleRepo := mocks.NewMockVehicleRepository()
			resolver := mocks.NewMockRateResolver()

			seedTenant(tenantRepo)
			if tt.setup != nil {
				tt.setup(resolver)
			}

			uc := newVehicleUseCase(tenantRepo, vehicleRepo, resolver)

			_, err := uc.CreateVehicle(context.Background(), tt.input)
			if !errorIs(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestVehicleUseCase_ListVehicles(t *testing.T) {
	tenantRepo := mocks.NewMockTenantRepository()
	vehicleRepo := mocks.NewMockVehicleRepository()
	resolver := mocks.NewMockRateResolver()

	tenant := seedTenant(tenantRepo)
	uc := newVehicleUseCase(tenantRepo, vehicleRepo, resolver)

	for i := 0; i < 3; i++ {
		if _, err := uc.CreateVehicle(context.Background(), usecase.CreateVehicleInput{
			TenantID:         tenant.ID,
			Make:             "Toyota",
			Model:            "Corolla",
			PurchaseAmount:   decimal.NewFromInt(800000),
			PurchaseCurrency: "TRY",
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	vehicles, err := uc.ListVehicles(context.Background(), usecase.ListVehiclesInput{TenantID: tenant.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vehicles) != 3 {
		t.Errorf("expected 3 vehicles, got %d", len(vehicles))
	}

	// Other tenants never see them.
	vehicles, err = uc.ListVehicles(context.Background(), usecase.ListVehiclesInput{TenantID: "tenant-2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vehicles) != 0 {
		t.Errorf("expected no vehicles for other tenant, got %d", len(vehicles))
	}
}

func TestVehicleUseCase_ListVehiclesClampsPagination(t *testing.T) {
	tenantRepo := mocks.NewMockTenantRepository()
	vehicleRepo := mocks.NewMockVehicleRepository()
	resolver := mocks.NewMockRateResolver()

	tenant := seedTenant(tenantRepo)
	uc := newVehicleUseCase(tenantRepo, vehicleRepo, resolver)

	var gotLimit, gotOffset int
	vehicleRepo.ListFunc = func(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Vehicle, error) {
		gotLimit, gotOffset = limit, offset
		return nil, nil
	}

	if _, err := uc.ListVehicles(context.Background(), usecase.ListVehiclesInput{
		TenantID: tenant.ID,
		Limit:    -1,
		Offset:   -5,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotLimit != 50 || gotOffset != 0 {
		t.Errorf("expected clamped pagination (50, 0), got (%d, %d)", gotLimit, gotOffset)
	}
}
