package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/dealerledger/internal/domain"
	"github.com/iho/dealerledger/internal/usecase"
)

// CreateVehicleRequest represents a request to register a vehicle.
type CreateVehicleRequest struct {
	Make             string           `json:"make"`
	Model            string           `json:"model"`
	ModelYear        int              `json:"model_year,omitempty"`
	VIN              string           `json:"vin,omitempty"`
	PurchaseAmount   decimal.Decimal  `json:"purchase_amount"`
	PurchaseCurrency string           `json:"purchase_currency"`
	ManualRate       *decimal.Decimal `json:"manual_rate,omitempty"`
	PurchaseDate     time.Time        `json:"purchase_date"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateVehicleRequest) ToUseCaseInput(tenantID string) usecase.CreateVehicleInput {
	return usecase.CreateVehicleInput{
		TenantID:         tenantID,
		Make:             r.Make,
		Model:            r.Model,
		ModelYear:        r.ModelYear,
		VIN:              r.VIN,
		PurchaseAmount:   r.PurchaseAmount,
		PurchaseCurrency: r.PurchaseCurrency,
		ManualRate:       r.ManualRate,
		PurchaseDate:     r.PurchaseDate,
	}
}

// CostItemRequest represents a request to log or edit a cost item. The
// amount, currency and manual rate always travel together.
type CostItemRequest struct {
	Name       string           `json:"name"`
	Category   string           `json:"category"`
	Amount     decimal.Decimal  `json:"amount"`
	Currency   string           `json:"currency"`
	ManualRate *decimal.Decimal `json:"manual_rate,omitempty"`
	CostDate   time.Time        `json:"cost_date"`
}

// ToAddInput converts to use case input for creation.
func (r *CostItemRequest) ToAddInput(tenantID, vehicleID string) usecase.AddCostItemInput {
	return usecase.AddCostItemInput{
		TenantID:   tenantID,
		VehicleID:  vehicleID,
		Name:       r.Name,
		Category:   r.Category,
		Amount:     r.Amount,
		Currency:   r.Currency,
		ManualRate: r.ManualRate,
		CostDate:   r.CostDate,
	}
}

// ToUpdateInput converts to use case input for editing.
func (r *CostItemRequest) ToUpdateInput(tenantID, itemID string) usecase.UpdateCostItemInput {
	return usecase.UpdateCostItemInput{
		TenantID:   tenantID,
		ItemID:     itemID,
		Name:       r.Name,
		Category:   r.Category,
		Amount:     r.Amount,
		Currency:   r.Currency,
		ManualRate: r.ManualRate,
		CostDate:   r.CostDate,
	}
}

// CreateSaleRequest represents a request to sell a vehicle.
type CreateSaleRequest struct {
	Amount     decimal.Decimal  `json:"amount"`
	Currency   string           `json:"currency"`
	ManualRate *decimal.Decimal `json:"manual_rate,omitempty"`
	SaleDate   time.Time        `json:"sale_date"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateSaleRequest) ToUseCaseInput(tenantID, vehicleID string) usecase.CreateSaleInput {
	return usecase.CreateSaleInput{
		TenantID:   tenantID,
		VehicleID:  vehicleID,
		Amount:     r.Amount,
		Currency:   r.Currency,
		ManualRate: r.ManualRate,
		SaleDate:   r.SaleDate,
	}
}

// CreatePlanRequest represents a request to create an installment plan.
type CreatePlanRequest struct {
	SaleID            string           `json:"sale_id"`
	TotalAmount       decimal.Decimal  `json:"total_amount"`
	DownPayment       decimal.Decimal  `json:"down_payment"`
	InstallmentCount  int              `json:"installment_count"`
	InstallmentAmount decimal.Decimal  `json:"installment_amount"`
	Currency          string           `json:"currency"`
	ManualRate        *decimal.Decimal `json:"manual_rate,omitempty"`
	PeriodDays        int              `json:"period_days,omitempty"`
	StartDate         time.Time        `json:"start_date"`
}

// ToUseCaseInput converts to use case input.
func (r *CreatePlanRequest) ToUseCaseInput(tenantID string) usecase.CreatePlanInput {
	return usecase.CreatePlanInput{
		TenantID:          tenantID,
		SaleID:            r.SaleID,
		TotalAmount:       r.TotalAmount,
		DownPayment:       r.DownPayment,
		InstallmentCount:  r.InstallmentCount,
		InstallmentAmount: r.InstallmentAmount,
		Currency:          r.Currency,
		ManualRate:        r.ManualRate,
		PeriodDays:        r.PeriodDays,
		StartDate:         r.StartDate,
	}
}

// RecordPaymentRequest represents a request to record a payment.
type RecordPaymentRequest struct {
	Type              string           `json:"type"`
	InstallmentNumber *int             `json:"installment_number,omitempty"`
	Amount            decimal.Decimal  `json:"amount"`
	Currency          string           `json:"currency"`
	ManualRate        *decimal.Decimal `json:"manual_rate,omitempty"`
	PaymentDate       time.Time        `json:"payment_date"`
	Notes             string           `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordPaymentRequest) ToUseCaseInput(tenantID, planID string) usecase.RecordPaymentInput {
	return usecase.RecordPaymentInput{
		TenantID:          tenantID,
		PlanID:            planID,
		Type:              domain.PaymentType(r.Type),
		InstallmentNumber: r.InstallmentNumber,
		Amount:            r.Amount,
		Currency:          r.Currency,
		ManualRate:        r.ManualRate,
		PaymentDate:       r.PaymentDate,
		Notes:             r.Notes,
	}
}
