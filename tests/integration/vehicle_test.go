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

func TestVehicleLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestServer(t, ctx, testDB)
	tenant := testDB.CreateTenant(ctx, "TRY")

	// Register a vehicle bought in USD with a manual rate.
	var created dto.VehicleResponse
	code := doJSON(t, router, http.MethodPost, "/api/v1/vehicles/", tenant.ID, dto.CreateVehicleRequest{
		Make:             "Honda",
		Model:            "Civic",
		ModelYear:        2021,
		VIN:              "VIN-CIVIC-1",
		PurchaseAmount:   decimal.RequireFromString("20000"),
		PurchaseCurrency: "USD",
		ManualRate:       decPtr("36.5"),
		PurchaseDate:     time.Now().UTC(),
	}, &created)
	if code != http.StatusCreated {
		t.Fatalf("expected 201 creating vehicle, got %d", code)
	}

	if created.Status != "in_stock" {
		t.Fatalf("expected new vehicle to be in_stock, got %s", created.Status)
	}

	if !created.Purchase.FXRateToBase.Equal(decimal.RequireFromString("36.5")) {
		t.Fatalf("expected purchase rate fixed at 36.5, got %s", created.Purchase.FXRateToBase)
	}

	// Fetch it back.
	var fetched dto.VehicleResponse
	code = doJSON(t, router, http.MethodGet, "/api/v1/vehicles/"+created.ID, tenant.ID, nil, &fetched)
	if code != http.StatusOK {
		t.Fatalf("expected 200 fetching vehicle, got %d", code)
	}

	if fetched.ID != created.ID || fetched.Make != "Honda" {
		t.Fatalf("unexpected vehicle returned: %+v", fetched)
	}

	// Another tenant cannot see it.
	other := testDB.CreateTenant(ctx, "TRY")
	code = doJSON(t, router, http.MethodGet, "/api/v1/vehicles/"+created.ID, other.ID, nil, nil)
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign tenant, got %d", code)
	}

	// Listing is tenant-scoped.
	var list dto.ListVehiclesResponse
	code = doJSON(t, router, http.MethodGet, "/api/v1/vehicles/", tenant.ID, nil, &list)
	if code != http.StatusOK {
		t.Fatalf("expected 200 listing vehicles, got %d", code)
	}

	if len(list.Vehicles) != 1 {
		t.Fatalf("expected 1 vehicle in listing, got %d", len(list.Vehicles))
	}
}

func TestVehicleCreationRequiresResolvableRate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestServer(t, ctx, testDB)
	tenant := testDB.CreateTenant(ctx, "TRY")

	// No provider is configured, so a foreign-currency purchase without a
	// manual rate cannot be recorded.
	code := doJSON(t, router, http.MethodPost, "/api/v1/vehicles/", tenant.ID, dto.CreateVehicleRequest{
		Make:             "Honda",
		Model:            "Civic",
		PurchaseAmount:   decimal.RequireFromString("20000"),
		PurchaseCurrency: "USD",
		PurchaseDate:     time.Now().UTC(),
	}, nil)
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unresolvable rate, got %d", code)
	}
}
