package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentStatus is the computed repayment state of a plan. A plain
// serializable structure consumed by listing and detail views.
type InstallmentStatus struct {
	TotalPaidBase        decimal.Decimal
	RemainingBalance     decimal.Decimal
	OverpaymentBase      decimal.Decimal
	Status               PlanStatus
	OverdueDays          *int
	ExpectedInstallments int
	PaidInstallments     int
}

// ComputeInstallmentStatus derives balance, completion and overdue state from
// a plan and its payment ledger at a point in time. Pure function of its
// inputs; it never mutates the plan.
func ComputeInstallmentStatus(plan *InstallmentPlan, payments []*InstallmentPayment, now time.Time, baseCurrency string) InstallmentStatus {
	totalPaid := decimal.Zero
	paidInstallments := 0

	for _, pm := range payments {
		totalPaid = totalPaid.Add(pm.Fact.AmountBase(baseCurrency))
		if pm.Type == PaymentTypeInstallment {
			paidInstallments++
		}
	}

	totalBase := plan.TotalAmountBase(baseCurrency)

	remaining := totalBase.Sub(totalPaid)
	overpayment := decimal.Zero
	if remaining.IsNegative() {
		overpayment = remaining.Neg()
		remaining = decimal.Zero
	}

	status := plan.Status
	if status == PlanStatusActive && remaining.IsZero() {
		status = PlanStatusCompleted
	}

	result := InstallmentStatus{
		TotalPaidBase:        totalPaid,
		RemainingBalance:     remaining,
		OverpaymentBase:      overpayment,
		Status:               status,
		ExpectedInstallments: expectedInstallments(plan, now),
		PaidInstallments:     paidInstallments,
	}

	if status == PlanStatusActive &&
		remaining.IsPositive() &&
		result.ExpectedInstallments > paidInstallments {
		// The most recent unmet due date is start + expected periods.
		due := plan.StartDate.AddDate(0, 0, result.ExpectedInstallments*plan.PeriodDays)
		days := int(now.Sub(due).Hours() / 24)
		if days < 0 {
			days = 0
		}
		result.OverdueDays = &days
	}

	return result
}

// expectedInstallments returns how many installments should have been paid by
// now: one per elapsed period since the start date, capped at the plan count.
func expectedInstallments(plan *InstallmentPlan, now time.Time) int {
	if plan.PeriodDays <= 0 || !now.After(plan.StartDate) {
		return 0
	}

	elapsedDays := int(now.Sub(plan.StartDate).Hours() / 24)

	expected := elapsedDays / plan.PeriodDays
	if expected > plan.InstallmentCount {
		expected = plan.InstallmentCount
	}

	return expected
}
