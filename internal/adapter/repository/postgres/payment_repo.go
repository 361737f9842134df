package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/dealerledger/internal/domain"
	"github.com/iho/dealerledger/internal/usecase"
)

// PaymentRepository implements usecase.PaymentRepository. The payments table
// is append-only; there are no update or delete statements here.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

const paymentColumns = `
	id, tenant_id, plan_id, payment_type, installment_number,
	amount, currency, fx_rate, payment_date, notes, anomalous, created_at
`

// Create appends a payment within a transaction. The caller holds the plan
// lock.
func (r *PaymentRepository) Create(ctx context.Context, tx usecase.Transaction, payment *domain.InstallmentPayment) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO installment_payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := pgxTx.Exec(ctx, query,
		payment.ID,
		payment.TenantID,
		payment.PlanID,
		payment.Type,
		payment.InstallmentNumber,
		decimalToNumeric(payment.Fact.Amount),
		payment.Fact.Currency,
		decimalToNumeric(payment.Fact.FXRateToBase),
		payment.PaymentDate,
		payment.Notes,
		payment.Anomalous,
		payment.CreatedAt,
	)

	return err
}

// ListByPlan retrieves a plan's payments in recorded order.
func (r *PaymentRepository) ListByPlan(ctx context.Context, tenantID, planID string) ([]*domain.InstallmentPayment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM installment_payments
		WHERE tenant_id = $1 AND plan_id = $2
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, tenantID, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*domain.InstallmentPayment
	for rows.Next() {
		var (
			payment domain.InstallmentPayment
			amount  pgtype.Numeric
			rate    pgtype.Numeric
		)

		err := rows.Scan(
			&payment.ID,
			&payment.TenantID,
			&payment.PlanID,
			&payment.Type,
			&payment.InstallmentNumber,
			&amount,
			&payment.Fact.Currency,
			&rate,
			&payment.PaymentDate,
			&payment.Notes,
			&payment.Anomalous,
			&payment.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		payment.Fact.Amount = numericToDecimal(amount)
		payment.Fact.FXRateToBase = numericToDecimal(rate)

		payments = append(payments, &payment)
	}

	return payments, rows.Err()
}
