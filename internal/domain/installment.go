package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type PlanStatus string

const (
	PlanStatusActive    PlanStatus = "active"
	PlanStatusCompleted PlanStatus = "completed"
	PlanStatusCancelled PlanStatus = "cancelled"
)

// IsTerminal reports whether no transition may leave the status.
func (s PlanStatus) IsTerminal() bool {
	return s == PlanStatusCompleted || s == PlanStatusCancelled
}

type PaymentType string

const (
	PaymentTypeDownPayment PaymentType = "down_payment"
	PaymentTypeInstallment PaymentType = "installment"
)

// InstallmentPlan is an agreed schedule of a down payment plus N subsequent
// payments covering a sale's total amount. PeriodDays drives overdue
// detection; cadence is per plan, not a global constant.
type InstallmentPlan struct {
	ID                string
	TenantID          string
	SaleID            string
	TotalAmount       decimal.Decimal
	DownPayment       decimal.Decimal
	InstallmentCount  int
	InstallmentAmount decimal.Decimal
	Currency          string
	FXRateToBase      decimal.Decimal
	PeriodDays        int
	StartDate         time.Time
	Status            PlanStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Validate checks the plan's creation invariant: the down payment plus the
// scheduled installments must equal the total amount within one minor unit
// of the plan currency.
func (p *InstallmentPlan) Validate() error {
	if err := ValidateCurrency(p.Currency); err != nil {
		return err
	}

	if p.FXRateToBase.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: %v", ErrInvalidRate, p.FXRateToBase)
	}

	if p.TotalAmount.LessThanOrEqual(decimal.Zero) ||
		p.DownPayment.IsNegative() ||
		p.InstallmentAmount.IsNegative() {
		return fmt.Errorf("%w: plan amounts must be positive", ErrInvalidAmount)
	}

	if p.InstallmentCount <= 0 {
		return fmt.Errorf("%w: installment count must be positive", ErrInstallmentMismatch)
	}

	if p.PeriodDays <= 0 {
		return fmt.Errorf("%w: period days must be positive", ErrInstallmentMismatch)
	}

	scheduled := p.DownPayment.Add(
		p.InstallmentAmount.Mul(decimal.NewFromInt(int64(p.InstallmentCount))))

	tolerance := decimal.New(1, -MinorUnitDigits(p.Currency))
	if scheduled.Sub(p.TotalAmount).Abs().GreaterThan(tolerance) {
		return fmt.Errorf("%w: scheduled %v vs total %v",
			ErrInstallmentMismatch, scheduled, p.TotalAmount)
	}

	return nil
}

// TotalAmountBase returns the plan total converted at the plan's fixed rate.
func (p *InstallmentPlan) TotalAmountBase(baseCurrency string) decimal.Decimal {
	return p.TotalAmount.Mul(p.FXRateToBase).RoundBank(MinorUnitDigits(baseCurrency))
}

// InstallmentPayment is an append-only entry in a plan's payment ledger.
// Corrections are new payments, never in-place updates. Anomalous marks
// soft-accepted irregularities such as a second down payment.
type InstallmentPayment struct {
	ID                string
	TenantID          string
	PlanID            string
	Type              PaymentType
	InstallmentNumber *int
	Fact              MonetaryFact
	PaymentDate       time.Time
	Notes             string
	Anomalous         bool
	CreatedAt         time.Time
}

// Validate checks payment shape against its plan. Duplicate installment
// numbers are allowed; the ledger only sums amounts per slot.
func (pm *InstallmentPayment) Validate(plan *InstallmentPlan) error {
	if err := pm.Fact.Validate(); err != nil {
		return err
	}

	switch pm.Type {
	case PaymentTypeDownPayment:
		if pm.InstallmentNumber != nil {
			return fmt.Errorf("%w: down payment carries no installment number", ErrInvalidInstallmentNumber)
		}
	case PaymentTypeInstallment:
		if pm.InstallmentNumber == nil {
			return fmt.Errorf("%w: installment number required", ErrInvalidInstallmentNumber)
		}
		if *pm.InstallmentNumber < 1 || *pm.InstallmentNumber > plan.InstallmentCount {
			return fmt.Errorf("%w: %d not in [1, %d]",
				ErrInvalidInstallmentNumber, *pm.InstallmentNumber, plan.InstallmentCount)
		}
	default:
		return fmt.Errorf("%w: unknown payment type %q", ErrInvalidInstallmentNumber, pm.Type)
	}

	return nil
}
