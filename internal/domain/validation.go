package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidName    = errors.New("invalid name")
	ErrAmountTooLarge = errors.New("amount exceeds maximum allowed")
	ErrNotesTooLong   = errors.New("notes exceed maximum length")
)

// Validation constants
const (
	MaxNameLength = 255
	MinNameLength = 1
	MaxNotesLen   = 2048
	MaxFactAmount = "1000000000000" // 1 trillion
)

// ValidateName validates a cost item or vehicle display name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}

	return nil
}

// ValidateFactAmount bounds-checks an amount before fact construction.
func ValidateFactAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxFactAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxFactAmount)
	}

	return nil
}

// ValidateNotes validates free-form payment notes.
func ValidateNotes(notes string) error {
	if len(notes) > MaxNotesLen {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrNotesTooLong, len(notes), MaxNotesLen)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int, error) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset, nil
}
