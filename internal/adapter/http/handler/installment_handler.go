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

// InstallmentService defines the behavior needed by InstallmentHandler.
type InstallmentService interface {
	CreatePlan(ctx context.Context, input usecase.CreatePlanInput) (*domain.InstallmentPlan, error)
	RecordPayment(ctx context.Context, input usecase.RecordPaymentInput) (*usecase.RecordPaymentResult, error)
	CancelPlan(ctx context.Context, tenantID, planID string) error
	GetStatus(ctx context.Context, tenantID, planID string) (*domain.InstallmentPlan, domain.InstallmentStatus, error)
	ListPayments(ctx context.Context, tenantID, planID string) ([]*domain.InstallmentPayment, error)
}

// InstallmentHandler handles installment plan HTTP requests.
type InstallmentHandler struct {
	installmentUC InstallmentService
}

// NewInstallmentHandler creates a new InstallmentHandler.
func NewInstallmentHandler(installmentUC InstallmentService) *InstallmentHandler {
	return &InstallmentHandler{installmentUC: installmentUC}
}

// CreatePlan creates an installment plan for a sale.
func (h *InstallmentHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	tenantID := middleware.TenantID(r.Context())

	plan, err := h.installmentUC.CreatePlan(r.Context(), req.ToUseCaseInput(tenantID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create plan", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.PlanFromDomain(plan))
}

// RecordPayment appends a payment to the plan's ledger.
func (h *InstallmentHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "id")
	if planID == "" {
		writeError(w, http.StatusBadRequest, "missing plan ID", "")
		return
	}

	var req dto.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	tenantID := middleware.TenantID(r.Context())

	result, err := h.installmentUC.RecordPayment(r.Context(), req.ToUseCaseInput(tenantID, planID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record payment", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.RecordPaymentResponse{
		Payment: dto.PaymentFromDomain(result.Payment),
		Status:  dto.StatusFromDomain(result.Status),
	})
}

// Cancel transitions an active plan to cancelled.
func (h *InstallmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "id")
	if planID == "" {
		writeError(w, http.StatusBadRequest, "missing plan ID", "")
		return
	}

	if err := h.installmentUC.CancelPlan(r.Context(), middleware.TenantID(r.Context()), planID); err != nil {
		writeError(w, mapDomainError(err), "failed to cancel plan", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Status returns the plan together with its derived repayment state.
func (h *InstallmentHandler) Status(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "id")
	if planID == "" {
		writeError(w, http.StatusBadRequest, "missing plan ID", "")
		return
	}

	plan, status, err := h.installmentUC.GetStatus(r.Context(), middleware.TenantID(r.Context()), planID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get plan status", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PlanStatusResponse{
		Plan:   dto.PlanFromDomain(plan),
		Status: dto.StatusFromDomain(status),
	})
}

// ListPayments returns the plan's payment ledger in recorded order.
func (h *InstallmentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "id")
	if planID == "" {
		writeError(w, http.StatusBadRequest, "missing plan ID", "")
		return
	}

	payments, err := h.installmentUC.ListPayments(r.Context(), middleware.TenantID(r.Context()), planID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list payments", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentsFromDomain(payments))
}
