package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/dealerledger/internal/domain"
)

// FactResponse represents a monetary fact in API responses. The rate is the
// one fixed when the fact was created, not a current market rate.
type FactResponse struct {
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	FXRateToBase decimal.Decimal `json:"fx_rate_to_base"`
}

// FactFromDomain converts a monetary fact to a response.
func FactFromDomain(f domain.MonetaryFact) FactResponse {
	return FactResponse{
		Amount:       f.Amount,
		Currency:     f.Currency,
		FXRateToBase: f.FXRateToBase,
	}
}

// VehicleResponse represents a vehicle in API responses.
type VehicleResponse struct {
	ID           string       `json:"id"`
	Make         string       `json:"make"`
	Model        string       `json:"model"`
	ModelYear    int          `json:"model_year,omitempty"`
	VIN          string       `json:"vin,omitempty"`
	Status       string       `json:"status"`
	Purchase     FactResponse `json:"purchase"`
	PurchaseDate time.Time    `json:"purchase_date"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// VehicleFromDomain converts a domain vehicle to a response.
func VehicleFromDomain(v *domain.Vehicle) *VehicleResponse {
	return &VehicleResponse{
		ID:           v.ID,
		Make:         v.Make,
		Model:        v.Model,
		ModelYear:    v.ModelYear,
		VIN:          v.VIN,
		Status:       string(v.Status),
		Purchase:     FactFromDomain(v.Purchase),
		PurchaseDate: v.PurchaseDate,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

// VehiclesFromDomain converts domain vehicles to responses.
func VehiclesFromDomain(vehicles []*domain.Vehicle) []*VehicleResponse {
	result := make([]*VehicleResponse, len(vehicles))
	for i, v := range vehicles {
		result[i] = VehicleFromDomain(v)
	}
	return result
}

// ListVehiclesResponse wraps a vehicle listing.
type ListVehiclesResponse struct {
	Vehicles []*VehicleResponse `json:"vehicles"`
	Total    int64              `json:"total"`
}

// CostItemResponse represents a cost item in API responses. AmountBase is
// present when the enclosing response knows the base currency.
type CostItemResponse struct {
	ID         string           `json:"id"`
	VehicleID  string           `json:"vehicle_id"`
	Name       string           `json:"name"`
	Category   string           `json:"category"`
	CostDate   time.Time        `json:"cost_date"`
	Fact       FactResponse     `json:"fact"`
	AmountBase *decimal.Decimal `json:"amount_base,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// CostItemFromDomain converts a domain cost item to a response.
func CostItemFromDomain(item *domain.CostItem) *CostItemResponse {
	return &CostItemResponse{
		ID:        item.ID,
		VehicleID: item.VehicleID,
		Name:      item.Name,
		Category:  item.Category,
		CostDate:  item.CostDate,
		Fact:      FactFromDomain(item.Fact),
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

// CostLedgerResponse represents a vehicle's full cost ledger.
type CostLedgerResponse struct {
	BaseCurrency string              `json:"base_currency"`
	TotalBase    decimal.Decimal     `json:"total_base"`
	Count        int                 `json:"count"`
	Purchase     *FactResponse       `json:"purchase,omitempty"`
	Items        []*CostItemResponse `json:"items"`
}

// CostLedgerFromDomain converts a domain cost ledger to a response,
// including per-item base amounts.
func CostLedgerFromDomain(ledger *domain.CostLedger) *CostLedgerResponse {
	resp := &CostLedgerResponse{
		BaseCurrency: ledger.BaseCurrency,
		TotalBase:    ledger.TotalBase(),
		Count:        ledger.Count(),
		Items:        make([]*CostItemResponse, len(ledger.Items)),
	}

	if ledger.Purchase != nil {
		purchase := FactFromDomain(*ledger.Purchase)
		resp.Purchase = &purchase
	}

	for i, item := range ledger.Items {
		itemResp := CostItemFromDomain(item)
		base := item.Fact.AmountBase(ledger.BaseCurrency)
		itemResp.AmountBase = &base
		resp.Items[i] = itemResp
	}

	return resp
}

// SaleResponse represents a sale record in API responses.
type SaleResponse struct {
	ID        string       `json:"id"`
	VehicleID string       `json:"vehicle_id"`
	Fact      FactResponse `json:"fact"`
	SaleDate  time.Time    `json:"sale_date"`
	CreatedAt time.Time    `json:"created_at"`
}

// SaleFromDomain converts a domain sale record to a response.
func SaleFromDomain(s *domain.SaleRecord) *SaleResponse {
	return &SaleResponse{
		ID:        s.ID,
		VehicleID: s.VehicleID,
		Fact:      FactFromDomain(s.Fact),
		SaleDate:  s.SaleDate,
		CreatedAt: s.CreatedAt,
	}
}

// PlanResponse represents an installment plan in API responses.
type PlanResponse struct {
	ID                string          `json:"id"`
	SaleID            string          `json:"sale_id"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	DownPayment       decimal.Decimal `json:"down_payment"`
	InstallmentCount  int             `json:"installment_count"`
	InstallmentAmount decimal.Decimal `json:"installment_amount"`
	Currency          string          `json:"currency"`
	FXRateToBase      decimal.Decimal `json:"fx_rate_to_base"`
	PeriodDays        int             `json:"period_days"`
	StartDate         time.Time       `json:"start_date"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// PlanFromDomain converts a domain installment plan to a response.
func PlanFromDomain(p *domain.InstallmentPlan) *PlanResponse {
	return &PlanResponse{
		ID:                p.ID,
		SaleID:            p.SaleID,
		TotalAmount:       p.TotalAmount,
		DownPayment:       p.DownPayment,
		InstallmentCount:  p.InstallmentCount,
		InstallmentAmount: p.InstallmentAmount,
		Currency:          p.Currency,
		FXRateToBase:      p.FXRateToBase,
		PeriodDays:        p.PeriodDays,
		StartDate:         p.StartDate,
		Status:            string(p.Status),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// PaymentResponse represents a payment in API responses.
type PaymentResponse struct {
	ID                string       `json:"id"`
	PlanID            string       `json:"plan_id"`
	Type              string       `json:"type"`
	InstallmentNumber *int         `json:"installment_number,omitempty"`
	Fact              FactResponse `json:"fact"`
	PaymentDate       time.Time    `json:"payment_date"`
	Notes             string       `json:"notes,omitempty"`
	Anomalous         bool         `json:"anomalous,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
}

// PaymentFromDomain converts a domain payment to a response.
func PaymentFromDomain(pm *domain.InstallmentPayment) *PaymentResponse {
	return &PaymentResponse{
		ID:                pm.ID,
		PlanID:            pm.PlanID,
		Type:              string(pm.Type),
		InstallmentNumber: pm.InstallmentNumber,
		Fact:              FactFromDomain(pm.Fact),
		PaymentDate:       pm.PaymentDate,
		Notes:             pm.Notes,
		Anomalous:         pm.Anomalous,
		CreatedAt:         pm.CreatedAt,
	}
}

// PaymentsFromDomain converts domain payments to responses.
func PaymentsFromDomain(payments []*domain.InstallmentPayment) []*PaymentResponse {
	result := make([]*PaymentResponse, len(payments))
	for i, pm := range payments {
		result[i] = PaymentFromDomain(pm)
	}
	return result
}

// InstallmentStatusResponse represents derived plan state.
type InstallmentStatusResponse struct {
	TotalPaidBase        decimal.Decimal `json:"total_paid_base"`
	RemainingBalance     decimal.Decimal `json:"remaining_balance"`
	OverpaymentBase      decimal.Decimal `json:"overpayment_base"`
	Status               string          `json:"status"`
	OverdueDays          *int            `json:"overdue_days,omitempty"`
	ExpectedInstallments int             `json:"expected_installments"`
	PaidInstallments     int             `json:"paid_installments"`
}

// StatusFromDomain converts derived plan state to a response.
func StatusFromDomain(s domain.InstallmentStatus) InstallmentStatusResponse {
	return InstallmentStatusResponse{
		TotalPaidBase:        s.TotalPaidBase,
		RemainingBalance:     s.RemainingBalance,
		OverpaymentBase:      s.OverpaymentBase,
		Status:               string(s.Status),
		OverdueDays:          s.OverdueDays,
		ExpectedInstallments: s.ExpectedInstallments,
		PaidInstallments:     s.PaidInstallments,
	}
}

// PlanStatusResponse is the combined plan and status payload.
type PlanStatusResponse struct {
	Plan   *PlanResponse             `json:"plan"`
	Status InstallmentStatusResponse `json:"status"`
}

// RecordPaymentResponse is the payload returned after a payment is recorded.
type RecordPaymentResponse struct {
	Payment *PaymentResponse          `json:"payment"`
	Status  InstallmentStatusResponse `json:"status"`
}

// ReportResponse represents a profitability report. Percentage fields are
// null when not meaningful, never zero.
type ReportResponse struct {
	TotalCostBase       decimal.Decimal  `json:"total_cost_base"`
	SaleAmountBase      decimal.Decimal  `json:"sale_amount_base"`
	Profit              decimal.Decimal  `json:"profit"`
	ProfitMarginPercent *decimal.Decimal `json:"profit_margin_percent,omitempty"`
	ROIPercent          *decimal.Decimal `json:"roi_percent,omitempty"`
	ProfitVsTarget      *decimal.Decimal `json:"profit_vs_target,omitempty"`
}

// ReportFromDomain converts a domain report to a response.
func ReportFromDomain(r domain.Report) *ReportResponse {
	return &ReportResponse{
		TotalCostBase:       r.TotalCostBase,
		SaleAmountBase:      r.SaleAmountBase,
		Profit:              r.Profit,
		ProfitMarginPercent: r.ProfitMarginPercent,
		ROIPercent:          r.ROIPercent,
		ProfitVsTarget:      r.ProfitVsTarget,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
