package domain

import "time"

type VehicleStatus string

const (
	VehicleStatusInStock VehicleStatus = "in_stock"
	VehicleStatusSold    VehicleStatus = "sold"
)

// Vehicle carries the purchase-side monetary fact. The purchase price acts as
// the first item of the vehicle's cost ledger (category "purchase").
type Vehicle struct {
	ID           string
	TenantID     string
	Make         string
	Model        string
	ModelYear    int
	VIN          string
	Status       VehicleStatus
	Purchase     MonetaryFact
	PurchaseDate time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
