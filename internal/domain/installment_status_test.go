package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/dealerledger/internal/domain"
)

func paymentOf(t *testing.T, typ domain.PaymentType, number *int, amount string) *domain.InstallmentPayment {
	t.Helper()

	return &domain.InstallmentPayment{
		Type:              typ,
		InstallmentNumber: number,
		Fact:              mustFact(t, amount, "TRY", "1"),
	}
}

func TestComputeInstallmentStatus_Completion(t *testing.T) {
	plan := validPlan(t)
	now := plan.StartDate.AddDate(0, 0, 10)

	num := func(n int) *int { return &n }

	t.Run("fully paid becomes completed", func(t *testing.T) {
		payments := []*domain.InstallmentPayment{
			paymentOf(t, domain.PaymentTypeDownPayment, nil, "10000"),
		}
		for i := 1; i <= 10; i++ {
			payments = append(payments, paymentOf(t, domain.PaymentTypeInstallment, num(i), "9000"))
		}

		status := domain.ComputeInstallmentStatus(plan, payments, now, "TRY")

		assert.Equal(t, domain.PlanStatusCompleted, status.Status)
		assert.True(t, status.RemainingBalance.IsZero())
		assert.True(t, status.TotalPaidBase.Equal(dec(t, "100000")))
		assert.True(t, status.OverpaymentBase.IsZero())
		assert.Nil(t, status.OverdueDays)
	})

	t.Run("one minor unit short stays active", func(t *testing.T) {
		payments := []*domain.InstallmentPayment{
			paymentOf(t, domain.PaymentTypeDownPayment, nil, "99999.99"),
		}

		status := domain.ComputeInstallmentStatus(plan, payments, now, "TRY")

		assert.Equal(t, domain.PlanStatusActive, status.Status)
		assert.True(t, status.RemainingBalance.Equal(dec(t, "0.01")),
			"remaining %v", status.RemainingBalance)
	})

	t.Run("overpayment clamps remaining to zero", func(t *testing.T) {
		payments := []*domain.InstallmentPayment{
			paymentOf(t, domain.PaymentTypeDownPayment, nil, "100500"),
		}

		status := domain.ComputeInstallmentStatus(plan, payments, now, "TRY")

		assert.Equal(t, domain.PlanStatusCompleted, status.Status)
		assert.True(t, status.RemainingBalance.IsZero())
		assert.True(t, status.OverpaymentBase.Equal(dec(t, "500")))
	})

	t.Run("cancelled plan stays cancelled", func(t *testing.T) {
		cancelled := validPlan(t)
		cancelled.Status = domain.PlanStatusCancelled

		payments := []*domain.InstallmentPayment{
			paymentOf(t, domain.PaymentTypeDownPayment, nil, "100000"),
		}

		status := domain.ComputeInstallmentStatus(cancelled, payments, now, "TRY")

		assert.Equal(t, domain.PlanStatusCancelled, status.Status)
	})
}

func TestComputeInstallmentStatus_Overdue(t *testing.T) {
	plan := validPlan(t)

	num := func(n int) *int { return &n }

	t.Run("no payments after three periods", func(t *testing.T) {
		// 95 days in: installments 1, 2 and 3 were due, none paid.
		now := plan.StartDate.AddDate(0, 0, 95)

		status := domain.ComputeInstallmentStatus(plan, nil, now, "TRY")

		assert.Equal(t, 3, status.ExpectedInstallments)
		assert.Equal(t, 0, status.PaidInstallments)
		require.NotNil(t, status.OverdueDays)
		// Most recent unmet due date was day 90.
		assert.Equal(t, 5, *status.OverdueDays)
	})

	t.Run("on schedule is not overdue", func(t *testing.T) {
		now := plan.StartDate.AddDate(0, 0, 65)

		payments := []*domain.InstallmentPayment{
			paymentOf(t, domain.PaymentTypeDownPayment, nil, "10000"),
			paymentOf(t, domain.PaymentTypeInstallment, num(1), "9000"),
			paymentOf(t, domain.PaymentTypeInstallment, num(2), "9000"),
		}

		status := domain.ComputeInstallmentStatus(plan, payments, now, "TRY")

		assert.Equal(t, 2, status.ExpectedInstallments)
		assert.Equal(t, 2, status.PaidInstallments)
		assert.Nil(t, status.OverdueDays)
	})

	t.Run("split payments against one slot count separately", func(t *testing.T) {
		now := plan.StartDate.AddDate(0, 0, 65)

		payments := []*domain.InstallmentPayment{
			paymentOf(t, domain.PaymentTypeDownPayment, nil, "10000"),
			paymentOf(t, domain.PaymentTypeInstallment, num(1), "4500"),
			paymentOf(t, domain.PaymentTypeInstallment, num(1), "4500"),
		}

		status := domain.ComputeInstallmentStatus(plan, payments, now, "TRY")

		// Two installment payments recorded, slot mapping is not enforced.
		assert.Equal(t, 2, status.PaidInstallments)
		assert.True(t, status.TotalPaidBase.Equal(dec(t, "19000")))
		assert.Nil(t, status.OverdueDays)
	})

	t.Run("expected count caps at plan count", func(t *testing.T) {
		now := plan.StartDate.AddDate(0, 0, 30*24)

		status := domain.ComputeInstallmentStatus(plan, nil, now, "TRY")

		assert.Equal(t, plan.InstallmentCount, status.ExpectedInstallments)
	})

	t.Run("before start nothing is expected", func(t *testing.T) {
		now := plan.StartDate.AddDate(0, 0, -1)

		status := domain.ComputeInstallmentStatus(plan, nil, now, "TRY")

		assert.Equal(t, 0, status.ExpectedInstallments)
		assert.Nil(t, status.OverdueDays)
	})
}

func TestComputeInstallmentStatus_ForeignCurrencyPlan(t *testing.T) {
	plan := validPlan(t)
	plan.Currency = "USD"
	plan.FXRateToBase = dec(t, "38.0")
	plan.TotalAmount = dec(t, "10000")
	plan.DownPayment = dec(t, "1000")
	plan.InstallmentCount = 9
	plan.InstallmentAmount = dec(t, "1000")

	payments := []*domain.InstallmentPayment{
		{
			Type: domain.PaymentTypeDownPayment,
			// Paid in TRY against a USD plan; each fact keeps its own rate.
			Fact: mustFact(t, "38000", "TRY", "1"),
		},
	}

	now := plan.StartDate.AddDate(0, 0, 10)
	status := domain.ComputeInstallmentStatus(plan, payments, now, "TRY")

	assert.True(t, status.TotalPaidBase.Equal(dec(t, "38000")))
	// 10000 USD * 38.0 = 380000 TRY total.
	assert.True(t, status.RemainingBalance.Equal(dec(t, "342000")))
}
