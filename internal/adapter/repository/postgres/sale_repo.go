package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/dealerledger/internal/domain"
	"github.com/iho/dealerledger/internal/usecase"
)

// SaleRepository implements usecase.SaleRepository.
type SaleRepository struct {
	pool *pgxpool.Pool
}

// NewSaleRepository creates a new SaleRepository.
func NewSaleRepository(pool *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{pool: pool}
}

const saleColumns = `
	id, tenant_id, vehicle_id, amount, currency, fx_rate, sale_date, created_at
`

// Create inserts the sale record within the transaction that also flips the
// vehicle to sold. The vehicle_id unique index backs the one-sale invariant.
func (r *SaleRepository) Create(ctx context.Context, tx usecase.Transaction, sale *domain.SaleRecord) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := pgxTx.Exec(ctx, query,
		sale.ID,
		sale.TenantID,
		sale.VehicleID,
		decimalToNumeric(sale.Fact.Amount),
		sale.Fact.Currency,
		decimalToNumeric(sale.Fact.FXRateToBase),
		sale.SaleDate,
		sale.CreatedAt,
	)

	return err
}

// GetByID retrieves a sale record by ID within a tenant.
func (r *SaleRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.SaleRecord, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE tenant_id = $1 AND id = $2
	`

	return r.scanSale(r.pool.QueryRow(ctx, query, tenantID, id))
}

// GetByVehicle retrieves the sale record of a vehicle, if any.
func (r *SaleRepository) GetByVehicle(ctx context.Context, tenantID, vehicleID string) (*domain.SaleRecord, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE tenant_id = $1 AND vehicle_id = $2
	`

	return r.scanSale(r.pool.QueryRow(ctx, query, tenantID, vehicleID))
}

func (r *SaleRepository) scanSale(row pgx.Row) (*domain.SaleRecord, error) {
	var (
		sale   domain.SaleRecord
		amount pgtype.Numeric
		rate   pgtype.Numeric
	)

	err := row.Scan(
		&sale.ID,
		&sale.TenantID,
		&sale.VehicleID,
		&amount,
		&sale.Fact.Currency,
		&rate,
		&sale.SaleDate,
		&sale.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSaleNotFound
	}
	if err != nil {
		return nil, err
	}

	sale.Fact.Amount = numericToDecimal(amount)
	sale.Fact.FXRateToBase = numericToDecimal(rate)

	return &sale, nil
}
