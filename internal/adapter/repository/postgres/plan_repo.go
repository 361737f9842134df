package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/dealerledger/internal/domain"
	"github.com/iho/dealerledger/internal/usecase"
)

// PlanRepository implements usecase.PlanRepository.
type PlanRepository struct {
	pool *pgxpool.Pool
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(pool *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{pool: pool}
}

const planColumns = `
	id, tenant_id, sale_id, total_amount, down_payment,
	installment_count, installment_amount, currency, fx_rate,
	period_days, start_date, status, created_at, updated_at
`

// Create inserts a new installment plan within a transaction. The sale_id
// unique index backs the one-plan-per-sale rule; a concurrent duplicate that
// slips past the usecase check surfaces as domain.ErrDuplicatePlan.
func (r *PlanRepository) Create(ctx context.Context, tx usecase.Transaction, plan *domain.InstallmentPlan) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO installment_plans (` + planColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := pgxTx.Exec(ctx, query,
		plan.ID,
		plan.TenantID,
		plan.SaleID,
		decimalToNumeric(plan.TotalAmount),
		decimalToNumeric(plan.DownPayment),
		plan.InstallmentCount,
		decimalToNumeric(plan.InstallmentAmount),
		plan.Currency,
		decimalToNumeric(plan.FXRateToBase),
		plan.PeriodDays,
		plan.StartDate,
		plan.Status,
		plan.CreatedAt,
		plan.UpdatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
		return domain.ErrDuplicatePlan
	}

	return err
}

// GetByID retrieves an installment plan by ID within a tenant.
func (r *PlanRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.InstallmentPlan, error) {
	query := `
		SELECT ` + planColumns + `
		FROM installment_plans
		WHERE tenant_id = $1 AND id = $2
	`

	return r.scanPlan(r.pool.QueryRow(ctx, query, tenantID, id))
}

// GetByIDForUpdate retrieves a plan with a FOR UPDATE lock. Payment writes
// serialize on this lock so the recomputed balance always sees the full
// ledger.
func (r *PlanRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, tenantID, id string) (*domain.InstallmentPlan, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT ` + planColumns + `
		FROM installment_plans
		WHERE tenant_id = $1 AND id = $2
		FOR UPDATE
	`

	return r.scanPlan(pgxTx.QueryRow(ctx, query, tenantID, id))
}

// GetBySale retrieves the plan attached to a sale, if any.
func (r *PlanRepository) GetBySale(ctx context.Context, tenantID, saleID string) (*domain.InstallmentPlan, error) {
	query := `
		SELECT ` + planColumns + `
		FROM installment_plans
		WHERE tenant_id = $1 AND sale_id = $2
	`

	return r.scanPlan(r.pool.QueryRow(ctx, query, tenantID, saleID))
}

// UpdateStatus transitions a plan's status within a transaction.
func (r *PlanRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.PlanStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE installment_plans
		SET status = $2, updated_at = $3
		WHERE id = $1
	`

	_, err := pgxTx.Exec(ctx, query, id, status, updatedAt)

	return err
}

// List retrieves a tenant's plans with pagination.
func (r *PlanRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.InstallmentPlan, error) {
	query := `
		SELECT ` + planColumns + `
		FROM installment_plans
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*domain.InstallmentPlan
	for rows.Next() {
		plan, err := r.scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	return plans, rows.Err()
}

func (r *PlanRepository) scanPlan(row pgx.Row) (*domain.InstallmentPlan, error) {
	var (
		plan              domain.InstallmentPlan
		totalAmount       pgtype.Numeric
		downPayment       pgtype.Numeric
		installmentAmount pgtype.Numeric
		rate              pgtype.Numeric
	)

	err := row.Scan(
		&plan.ID,
		&plan.TenantID,
		&plan.SaleID,
		&totalAmount,
		&downPayment,
		&plan.InstallmentCount,
		&installmentAmount,
		&plan.Currency,
		&rate,
		&plan.PeriodDays,
		&plan.StartDate,
		&plan.Status,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}

	plan.TotalAmount = numericToDecimal(totalAmount)
	plan.DownPayment = numericToDecimal(downPayment)
	plan.InstallmentAmount = numericToDecimal(installmentAmount)
	plan.FXRateToBase = numericToDecimal(rate)

	return &plan, nil
}
