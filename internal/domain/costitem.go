package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cost categories. CategoryPurchase is reserved for the vehicle's own
// purchase pseudo-item and is never stored as a cost item row.
const (
	CategoryPurchase    = "purchase"
	CategoryRepair      = "repair"
	CategoryShipping    = "shipping"
	CategoryCommission  = "commission"
	CategoryRegistraton = "registration"
	CategoryOther       = "other"
)

// CostItem is a named expense attached to a vehicle. Mutable until deleted;
// the (amount, currency, rate) triple is only ever replaced as one unit.
type CostItem struct {
	ID        string
	TenantID  string
	VehicleID string
	Name      string
	Category  string
	CostDate  time.Time
	Fact      MonetaryFact
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CostLedger is the ordered collection of cost facts for one vehicle: the
// purchase pseudo-item plus every logged cost item.
type CostLedger struct {
	BaseCurrency string
	Purchase     *MonetaryFact
	Items        []*CostItem
}

// TotalBase sums the already-rounded base amounts of every entry. An empty
// ledger totals zero.
func (l *CostLedger) TotalBase() decimal.Decimal {
	total := decimal.Zero

	if l.Purchase != nil {
		total = total.Add(l.Purchase.AmountBase(l.BaseCurrency))
	}

	for _, item := range l.Items {
		total = total.Add(item.Fact.AmountBase(l.BaseCurrency))
	}

	return total
}

// Count returns the number of entries including the purchase pseudo-item.
func (l *CostLedger) Count() int {
	n := len(l.Items)
	if l.Purchase != nil {
		n++
	}

	return n
}
