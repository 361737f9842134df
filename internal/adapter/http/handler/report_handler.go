package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/dealerledger/internal/adapter/http/dto"
	"github.com/iho/dealerledger/internal/adapter/http/middleware"
	"github.com/iho/dealerledger/internal/domain"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	VehicleReport(ctx context.Context, tenantID, vehicleID string, targetProfit *decimal.Decimal) (domain.Report, error)
}

// ReportHandler handles profitability report HTTP requests.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// VehicleReport computes the profitability report for one vehicle. The
// optional target_profit query parameter is in the base currency.
func (h *ReportHandler) VehicleReport(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "id")
	if vehicleID == "" {
		writeError(w, http.StatusBadRequest, "missing vehicle ID", "")
		return
	}

	var targetProfit *decimal.Decimal
	if raw := r.URL.Query().Get("target_profit"); raw != "" {
		target, err := decimal.NewFromString(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid target_profit", err.Error())
			return
		}
		targetProfit = &target
	}

	report, err := h.reportUC.VehicleReport(r.Context(), middleware.TenantID(r.Context()), vehicleID, targetProfit)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute report", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReportFromDomain(report))
}
