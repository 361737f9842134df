package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MonetaryFact is the immutable unit of money tracked by the ledger: an
// amount in its own currency plus the exchange rate to the tenant's base
// currency captured when the fact was created. The rate is never recomputed
// from later market data.
type MonetaryFact struct {
	Amount       decimal.Decimal
	Currency     string
	FXRateToBase decimal.Decimal
}

// NewMonetaryFact validates and constructs a MonetaryFact. Rejections wrap
// ErrInvalidMonetaryFact alongside the specific cause.
func NewMonetaryFact(amount decimal.Decimal, currency string, fxRateToBase decimal.Decimal) (MonetaryFact, error) {
	if amount.IsNegative() {
		return MonetaryFact{}, fmt.Errorf("%w: %w: %v", ErrInvalidMonetaryFact, ErrInvalidAmount, amount)
	}

	if fxRateToBase.LessThanOrEqual(decimal.Zero) {
		return MonetaryFact{}, fmt.Errorf("%w: %w: %v", ErrInvalidMonetaryFact, ErrInvalidRate, fxRateToBase)
	}

	if err := ValidateCurrency(currency); err != nil {
		return MonetaryFact{}, fmt.Errorf("%w: %w", ErrInvalidMonetaryFact, err)
	}

	return MonetaryFact{
		Amount:       amount,
		Currency:     NormalizeCurrency(currency),
		FXRateToBase: fxRateToBase,
	}, nil
}

// AmountBase converts the fact to the base currency, rounded half-to-even to
// the base currency's minor-unit precision. Downstream sums operate on these
// already-rounded values so totals are deterministic regardless of order.
func (f MonetaryFact) AmountBase(baseCurrency string) decimal.Decimal {
	return f.Amount.Mul(f.FXRateToBase).RoundBank(MinorUnitDigits(baseCurrency))
}

// Validate re-checks the fact's invariants. Used when an existing record's
// (amount, currency, rate) triple is edited as one unit.
func (f MonetaryFact) Validate() error {
	if f.Amount.IsNegative() {
		return fmt.Errorf("%w: %w: %v", ErrInvalidMonetaryFact, ErrInvalidAmount, f.Amount)
	}

	if f.FXRateToBase.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: %w: %v", ErrInvalidMonetaryFact, ErrInvalidRate, f.FXRateToBase)
	}

	if err := ValidateCurrency(f.Currency); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMonetaryFact, err)
	}

	return nil
}
