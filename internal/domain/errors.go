package domain

import "errors"

var (
	// Rate resolution errors
	ErrRateUnavailable = errors.New("exchange rate unavailable")
	ErrInvalidRate     = errors.New("exchange rate must be positive")

	// Monetary fact errors
	ErrInvalidMonetaryFact = errors.New("invalid monetary fact")
	ErrInvalidAmount       = errors.New("amount must not be negative")
	ErrUnknownCurrency     = errors.New("unknown currency code")

	// Vehicle / cost ledger errors. Cross-tenant access surfaces as not-found
	// because every repository query is tenant-scoped.
	ErrVehicleNotFound  = errors.New("vehicle not found")
	ErrCostItemNotFound = errors.New("cost item not found")

	// Sale errors
	ErrDuplicateSale = errors.New("vehicle already has a sale record")
	ErrSaleNotFound  = errors.New("sale record not found")

	// Installment errors
	ErrInstallmentMismatch      = errors.New("down payment plus installments does not equal total amount")
	ErrDuplicatePlan            = errors.New("sale already has an installment plan")
	ErrPlanNotFound             = errors.New("installment plan not found")
	ErrPlanNotActive            = errors.New("installment plan is not active")
	ErrInvalidInstallmentNumber = errors.New("installment number out of range")

	// Tenant errors
	ErrTenantNotFound = errors.New("tenant not found")
)
