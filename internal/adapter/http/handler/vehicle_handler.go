package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/dealerledger/internal/adapter/http/dto"
	"github.com/iho/dealerledger/internal/adapter/http/middleware"
	"github.com/iho/dealerledger/internal/domain"
	"github.com/iho/dealerledger/internal/usecase"
)

// VehicleService defines the behavior needed by VehicleHandler.
type VehicleService interface {
	CreateVehicle(ctx context.Context, input usecase.CreateVehicleInput) (*domain.Vehicle, error)
	GetVehicle(ctx context.Context, tenantID, id string) (*domain.Vehicle, error)
	ListVehicles(ctx context.Context, input usecase.ListVehiclesInput) ([]*domain.Vehicle, error)
}

// VehicleHandler handles vehicle-related HTTP requests.
type VehicleHandler struct {
	vehicleUC VehicleService
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vehicleUC VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleUC: vehicleUC}
}

// Create registers a new vehicle.
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	tenantID := middleware.TenantID(r.Context())

	vehicle, err := h.vehicleUC.CreateVehicle(r.Context(), req.ToUseCaseInput(tenantID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create vehicle", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.VehicleFromDomain(vehicle))
}

// Get retrieves a vehicle by ID.
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing vehicle ID", "")
		return
	}

	vehicle, err := h.vehicleUC.GetVehicle(r.Context(), middleware.TenantID(r.Context()), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get vehicle", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.VehicleFromDomain(vehicle))
}

// List lists the tenant's vehicles.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicleUC.ListVehicles(r.Context(), usecase.ListVehiclesInput{
		TenantID: middleware.TenantID(r.Context()),
		Limit:    parseIntQuery(r, "limit", 0),
		Offset:   parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list vehicles", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListVehiclesResponse{
		Vehicles: dto.VehiclesFromDomain(vehicles),
		Total:    int64(len(vehicles)),
	})
}
