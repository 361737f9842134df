package domain

import "time"

// Tenant represents a dealership. BaseCurrency is fixed at tenant creation:
// changing it does not retroactively reconvert historical facts, so the
// engine treats it as immutable.
type Tenant struct {
	ID           string
	Name         string
	BaseCurrency string
	CreatedAt    time.Time
}
