package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRecord is the disposition fact for a vehicle. At most one exists per
// vehicle; creating it flips the vehicle to sold in the same transaction.
type SaleRecord struct {
	ID        string
	TenantID  string
	VehicleID string
	Fact      MonetaryFact
	SaleDate  time.Time
	CreatedAt time.Time
}

// AmountBase returns the sale amount converted to the base currency.
func (s *SaleRecord) AmountBase(baseCurrency string) decimal.Decimal {
	return s.Fact.AmountBase(baseCurrency)
}
