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

// SaleService defines the behavior needed by SaleHandler.
type SaleService interface {
	CreateSale(ctx context.Context, input usecase.CreateSaleInput) (*domain.SaleRecord, error)
	GetSaleByVehicle(ctx context.Context, tenantID, vehicleID string) (*domain.SaleRecord, error)
}

// SaleHandler handles sale-related HTTP requests.
type SaleHandler struct {
	saleUC SaleService
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(saleUC SaleService) *SaleHandler {
	return &SaleHandler{saleUC: saleUC}
}

// Create records the sale of a vehicle.
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "id")
	if vehicleID == "" {
		writeError(w, http.StatusBadRequest, "missing vehicle ID", "")
		return
	}

	var req dto.CreateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	tenantID := middleware.TenantID(r.Context())

	sale, err := h.saleUC.CreateSale(r.Context(), req.ToUseCaseInput(tenantID, vehicleID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create sale", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.SaleFromDomain(sale))
}

// Get retrieves the sale record of a vehicle.
func (h *SaleHandler) Get(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "id")
	if vehicleID == "" {
		writeError(w, http.StatusBadRequest, "missing vehicle ID", "")
		return
	}

	sale, err := h.saleUC.GetSaleByVehicle(r.Context(), middleware.TenantID(r.Context()), vehicleID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get sale", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SaleFromDomain(sale))
}
