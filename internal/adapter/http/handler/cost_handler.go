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

// CostService defines the behavior needed by CostHandler.
type CostService interface {
	AddCostItem(ctx context.Context, input usecase.AddCostItemInput) (*domain.CostItem, error)
	UpdateCostItem(ctx context.Context, input usecase.UpdateCostItemInput) (*domain.CostItem, error)
	DeleteCostItem(ctx context.Context, tenantID, itemID string) error
	GetCostLedger(ctx context.Context, tenantID, vehicleID string) (*domain.CostLedger, error)
}

// CostHandler handles cost ledger HTTP requests.
type CostHandler struct {
	costUC CostService
}

// NewCostHandler creates a new CostHandler.
func NewCostHandler(costUC CostService) *CostHandler {
	return &CostHandler{costUC: costUC}
}

// Create logs a new cost item against a vehicle.
func (h *CostHandler) Create(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "id")
	if vehicleID == "" {
		writeError(w, http.StatusBadRequest, "missing vehicle ID", "")
		return
	}

	var req dto.CostItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	tenantID := middleware.TenantID(r.Context())

	item, err := h.costUC.AddCostItem(r.Context(), req.ToAddInput(tenantID, vehicleID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add cost item", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.CostItemFromDomain(item))
}

// Update edits a cost item. The monetary triple is replaced as one unit.
func (h *CostHandler) Update(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	if itemID == "" {
		writeError(w, http.StatusBadRequest, "missing cost item ID", "")
		return
	}

	var req dto.CostItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	tenantID := middleware.TenantID(r.Context())

	item, err := h.costUC.UpdateCostItem(r.Context(), req.ToUpdateInput(tenantID, itemID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update cost item", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CostItemFromDomain(item))
}

// Delete removes a cost item from the ledger.
func (h *CostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	if itemID == "" {
		writeError(w, http.StatusBadRequest, "missing cost item ID", "")
		return
	}

	if err := h.costUC.DeleteCostItem(r.Context(), middleware.TenantID(r.Context()), itemID); err != nil {
		writeError(w, mapDomainError(err), "failed to delete cost item", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Ledger returns the vehicle's full cost ledger with base-currency totals.
func (h *CostHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "id")
	if vehicleID == "" {
		writeError(w, http.StatusBadRequest, "missing vehicle ID", "")
		return
	}

	ledger, err := h.costUC.GetCostLedger(r.Context(), middleware.TenantID(r.Context()), vehicleID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get cost ledger", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CostLedgerFromDomain(ledger))
}
