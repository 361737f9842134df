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

// CostItemRepository implements usecase.CostItemRepository.
type CostItemRepository struct {
	pool *pgxpool.Pool
}

// NewCostItemRepository creates a new CostItemRepository.
func NewCostItemRepository(pool *pgxpool.Pool) *CostItemRepository {
	return &CostItemRepository{pool: pool}
}

const costItemColumns = `
	id, tenant_id, vehicle_id, name, category, cost_date,
	amount, currency, fx_rate, created_at, updated_at
`

// Create inserts a new cost item within a transaction. The caller holds the
// vehicle lock.
func (r *CostItemRepository) Create(ctx context.Context, tx usecase.Transaction, item *domain.CostItem) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO cost_items (` + costItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := pgxTx.Exec(ctx, query,
		item.ID,
		item.TenantID,
		item.VehicleID,
		item.Name,
		item.Category,
		item.CostDate,
		decimalToNumeric(item.Fact.Amount),
		item.Fact.Currency,
		decimalToNumeric(item.Fact.FXRateToBase),
		item.CreatedAt,
		item.UpdatedAt,
	)

	return err
}

// GetByID retrieves a cost item by ID within a tenant.
func (r *CostItemRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.CostItem, error) {
	query := `
		SELECT ` + costItemColumns + `
		FROM cost_items
		WHERE tenant_id = $1 AND id = $2
	`

	return r.scanCostItem(r.pool.QueryRow(ctx, query, tenantID, id))
}

// Update replaces a cost item's mutable fields, the monetary triple included.
// Runs in the transaction that also records the audit entry.
func (r *CostItemRepository) Update(ctx context.Context, tx usecase.Transaction, item *domain.CostItem) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE cost_items
		SET name = $3, category = $4, cost_date = $5,
		    amount = $6, currency = $7, fx_rate = $8, updated_at = $9
		WHERE tenant_id = $1 AND id = $2
	`

	tag, err := pgxTx.Exec(ctx, query,
		item.TenantID,
		item.ID,
		item.Name,
		item.Category,
		item.CostDate,
		decimalToNumeric(item.Fact.Amount),
		item.Fact.Currency,
		decimalToNumeric(item.Fact.FXRateToBase),
		item.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCostItemNotFound
	}

	return nil
}

// Delete removes a cost item within the transaction that also records the
// audit entry.
func (r *CostItemRepository) Delete(ctx context.Context, tx usecase.Transaction, tenantID, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `DELETE FROM cost_items WHERE tenant_id = $1 AND id = $2`

	tag, err := pgxTx.Exec(ctx, query, tenantID, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCostItemNotFound
	}

	return nil
}

// ListByVehicle retrieves all cost items of a vehicle in creation order.
func (r *CostItemRepository) ListByVehicle(ctx context.Context, tenantID, vehicleID string) ([]*domain.CostItem, error) {
	query := `
		SELECT ` + costItemColumns + `
		FROM cost_items
		WHERE tenant_id = $1 AND vehicle_id = $2
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, tenantID, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.CostItem
	for rows.Next() {
		item, err := r.scanCostItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *CostItemRepository) scanCostItem(row pgx.Row) (*domain.CostItem, error) {
	var (
		item   domain.CostItem
		amount pgtype.Numeric
		rate   pgtype.Numeric
	)

	err := row.Scan(
		&item.ID,
		&item.TenantID,
		&item.VehicleID,
		&item.Name,
		&item.Category,
		&item.CostDate,
		&amount,
		&item.Fact.Currency,
		&rate,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCostItemNotFound
	}
	if err != nil {
		return nil, err
	}

	item.Fact.Amount = numericToDecimal(amount)
	item.Fact.FXRateToBase = numericToDecimal(rate)

	return &item, nil
}
