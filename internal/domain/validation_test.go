package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/dealerledger/internal/domain"
)

func TestValidateName(t *testing.T) {
	require.NoError(t, domain.ValidateName("shipping from Baku"))
	require.ErrorIs(t, domain.ValidateName(""), domain.ErrInvalidName)
	require.ErrorIs(t, domain.ValidateName("   "), domain.ErrInvalidName)
	require.ErrorIs(t, domain.ValidateName(strings.Repeat("x", 256)), domain.ErrInvalidName)
}

func TestValidateCurrency(t *testing.T) {
	require.NoError(t, domain.ValidateCurrency("TRY"))
	require.NoError(t, domain.ValidateCurrency(" usd "))
	require.ErrorIs(t, domain.ValidateCurrency("XTS"), domain.ErrUnknownCurrency)
	require.ErrorIs(t, domain.ValidateCurrency(""), domain.ErrUnknownCurrency)
}

func TestMinorUnitDigits(t *testing.T) {
	assert.Equal(t, int32(2), domain.MinorUnitDigits("TRY"))
	assert.Equal(t, int32(0), domain.MinorUnitDigits("JPY"))
	assert.Equal(t, int32(0), domain.MinorUnitDigits("krw"))
	assert.Equal(t, domain.DefaultMinorUnitDigits, domain.MinorUnitDigits("XTS"))
}

func TestValidateFactAmount(t *testing.T) {
	require.NoError(t, domain.ValidateFactAmount(dec(t, "0")))
	require.NoError(t, domain.ValidateFactAmount(dec(t, "999999999999")))
	require.ErrorIs(t, domain.ValidateFactAmount(dec(t, "-0.01")), domain.ErrInvalidAmount)
	require.ErrorIs(t, domain.ValidateFactAmount(dec(t, "1000000000001")), domain.ErrAmountTooLarge)
}

func TestValidateNotes(t *testing.T) {
	require.NoError(t, domain.ValidateNotes(""))
	require.NoError(t, domain.ValidateNotes("paid in cash"))
	require.ErrorIs(t, domain.ValidateNotes(strings.Repeat("n", 2049)), domain.ErrNotesTooLong)
}

func TestValidatePagination(t *testing.T) {
	limit, offset, err := domain.ValidatePagination(0, -5)
	require.NoError(t, err)
	assert.Equal(t, 50, limit)
	assert.Equal(t, 0, offset)

	limit, _, err = domain.ValidatePagination(5000, 10)
	require.NoError(t, err)
	assert.Equal(t, 1000, limit)
}
