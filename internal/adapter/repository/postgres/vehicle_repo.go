package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/dealerledger/internal/domain"
	"github.com/iho/dealerledger/internal/usecase"
)

// VehicleRepository implements usecase.VehicleRepository.
type VehicleRepository struct {
	pool *pgxpool.Pool
}

// NewVehicleRepository creates a new VehicleRepository.
func NewVehicleRepository(pool *pgxpool.Pool) *VehicleRepository {
	return &VehicleRepository{pool: pool}
}

const vehicleColumns = `
	id, tenant_id, make, model, model_year, vin, status,
	purchase_amount, purchase_currency, purchase_fx_rate,
	purchase_date, created_at, updated_at
`

// Create inserts a new vehicle with its purchase fact.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (` + vehicleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		vehicle.ID,
		vehicle.TenantID,
		vehicle.Make,
		vehicle.Model,
		vehicle.ModelYear,
		vehicle.VIN,
		vehicle.Status,
		decimalToNumeric(vehicle.Purchase.Amount),
		vehicle.Purchase.Currency,
		decimalToNumeric(vehicle.Purchase.FXRateToBase),
		vehicle.PurchaseDate,
		vehicle.CreatedAt,
		vehicle.UpdatedAt,
	)

	return err
}

// GetByID retrieves a vehicle by ID within a tenant.
func (r *VehicleRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Vehicle, error) {
	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		WHERE tenant_id = $1 AND id = $2
	`

	return r.scanVehicle(r.pool.QueryRow(ctx, query, tenantID, id))
}

// GetByIDForUpdate retrieves a vehicle with a FOR UPDATE lock. All writes
// touching one vehicle serialize on this lock.
func (r *VehicleRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, tenantID, id string) (*domain.Vehicle, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		WHERE tenant_id = $1 AND id = $2
		FOR UPDATE
	`

	return r.scanVehicle(pgxTx.QueryRow(ctx, query, tenantID, id))
}

// UpdateStatus updates the vehicle status within a transaction.
func (r *VehicleRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.VehicleStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE vehicles
		SET status = $2, updated_at = $3
		WHERE id = $1
	`

	_, err := pgxTx.Exec(ctx, query, id, status, updatedAt)

	return err
}

// List retrieves a tenant's vehicles with pagination.
func (r *VehicleRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Vehicle, error) {
	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		vehicle, err := r.scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}

	return vehicles, rows.Err()
}

func (r *VehicleRepository) scanVehicle(row pgx.Row) (*domain.Vehicle, error) {
	var (
		vehicle        domain.Vehicle
		purchaseAmount pgtype.Numeric
		purchaseRate   pgtype.Numeric
	)

	err := row.Scan(
		&vehicle.ID,
		&vehicle.TenantID,
		&vehicle.Make,
		&vehicle.Model,
		&vehicle.ModelYear,
		&vehicle.VIN,
		&vehicle.Status,
		&purchaseAmount,
		&vehicle.Purchase.Currency,
		&purchaseRate,
		&vehicle.PurchaseDate,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrVehicleNotFound
	}
	if err != nil {
		return nil, err
	}

	vehicle.Purchase.Amount = numericToDecimal(purchaseAmount)
	vehicle.Purchase.FXRateToBase = numericToDecimal(purchaseRate)

	return &vehicle, nil
}
