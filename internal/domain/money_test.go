package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/dealerledger/internal/domain"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	require.NoError(t, err)

	return d
}

func TestNewMonetaryFact(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		rate     string
		wantErr  error
	}{
		{name: "valid fact", amount: "25000", currency: "USD", rate: "38.0"},
		{name: "zero amount is valid", amount: "0", currency: "TRY", rate: "1"},
		{name: "negative amount rejected", amount: "-1", currency: "USD", rate: "38.0", wantErr: domain.ErrInvalidAmount},
		{name: "zero rate rejected", amount: "100", currency: "USD", rate: "0", wantErr: domain.ErrInvalidRate},
		{name: "negative rate rejected", amount: "100", currency: "USD", rate: "-38.0", wantErr: domain.ErrInvalidRate},
		{name: "unknown currency rejected", amount: "100", currency: "XXX", rate: "1", wantErr: domain.ErrUnknownCurrency},
		{name: "lowercase currency normalized", amount: "100", currency: "usd", rate: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fact, err := domain.NewMonetaryFact(dec(t, tt.amount), tt.currency, dec(t, tt.rate))

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, domain.ErrInvalidMonetaryFact)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, domain.NormalizeCurrency(tt.currency), fact.Currency)
		})
	}
}

func TestMonetaryFact_AmountBase(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		rate   string
		base   string
		want   string
	}{
		{name: "identity rate", amount: "850000", rate: "1", base: "TRY", want: "850000"},
		{name: "usd to try", amount: "25000", rate: "38.0", base: "TRY", want: "950000"},
		{name: "rounds half to even down", amount: "2.345", rate: "1", base: "USD", want: "2.34"},
		{name: "rounds half to even up", amount: "2.355", rate: "1", base: "USD", want: "2.36"},
		{name: "zero digit currency", amount: "10.5", rate: "1", base: "JPY", want: "10"},
		{name: "fractional rate", amount: "1000", rate: "0.0275", base: "EUR", want: "27.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fact, err := domain.NewMonetaryFact(dec(t, tt.amount), "USD", dec(t, tt.rate))
			require.NoError(t, err)

			got := fact.AmountBase(tt.base)
			assert.True(t, got.Equal(dec(t, tt.want)), "got %v want %v", got, tt.want)
		})
	}
}

func TestMonetaryFact_AmountBaseIdempotent(t *testing.T) {
	fact, err := domain.NewMonetaryFact(dec(t, "1234.567"), "USD", dec(t, "38.1275"))
	require.NoError(t, err)

	first := fact.AmountBase("TRY")
	second := fact.AmountBase("TRY")

	assert.True(t, first.Equal(second), "conversion must be idempotent: %v vs %v", first, second)
}

func TestMonetaryFact_RateFixation(t *testing.T) {
	// Two facts for the same currency pair created at different times with
	// different rates must keep their own rates.
	early, err := domain.NewMonetaryFact(dec(t, "100"), "USD", dec(t, "36.5"))
	require.NoError(t, err)

	late, err := domain.NewMonetaryFact(dec(t, "100"), "USD", dec(t, "38.0"))
	require.NoError(t, err)

	assert.False(t, early.FXRateToBase.Equal(late.FXRateToBase))
	assert.True(t, early.AmountBase("TRY").Equal(dec(t, "3650")))
	assert.True(t, late.AmountBase("TRY").Equal(dec(t, "3800")))
}
