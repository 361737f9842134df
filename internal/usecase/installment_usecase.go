package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/dealerledger/internal/domain"
	"github.com/iho/dealerledger/internal/infrastructure/metrics"
)

// InstallmentUseCase handles installment plans and their append-only payment
// ledger.
type InstallmentUseCase struct {
	txManager   TransactionManager
	planRepo    PlanRepository
	paymentRepo PaymentRepository
	saleRepo    SaleRepository
	tenantRepo  TenantRepository
	resolver    RateResolver
	auditRepo   AuditRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewInstallmentUseCase creates a new InstallmentUseCase.
func NewInstallmentUseCase(
	txManager TransactionManager,
	planRepo PlanRepository,
	paymentRepo PaymentRepository,
	saleRepo SaleRepository,
	tenantRepo TenantRepository,
	resolver RateResolver,
	auditRepo AuditRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
	logger zerolog.Logger,
) *InstallmentUseCase {
	return &InstallmentUseCase{
		txManager:   txManager,
		planRepo:    planRepo,
		paymentRepo: paymentRepo,
		saleRepo:    saleRepo,
		tenantRepo:  tenantRepo,
		resolver:    resolver,
		auditRepo:   auditRepo,
		idGen:       idGen,
		metrics:     metrics,
		logger:      logger,
	}
}

// CreatePlanInput represents input for creating an installment plan.
type CreatePlanInput struct {
	TenantID          string
	SaleID            string
	TotalAmount       decimal.Decimal
	DownPayment       decimal.Decimal
	InstallmentCount  int
	InstallmentAmount decimal.Decimal
	Currency          string
	ManualRate        *decimal.Decimal
	PeriodDays        int
	StartDate         time.Time
}

// CreatePlan creates an installment plan for a sale. The schedule must sum
// to the total within one minor unit; the plan's exchange rate is fixed here.
func (uc *InstallmentUseCase) CreatePlan(ctx context.Context, input CreatePlanInput) (*domain.InstallmentPlan, error) {
	tenant, err := uc.tenantRepo.GetByID(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}

	sale, err := uc.saleRepo.GetByID(ctx, input.TenantID, input.SaleID)
	if err != nil {
		return nil, err
	}

	existing, err := uc.planRepo.GetBySale(ctx, input.TenantID, input.SaleID)
	if err != nil && !errors.Is(err, domain.ErrPlanNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: sale %s already has plan %s",
			domain.ErrDuplicatePlan, sale.ID, existing.ID)
	}

	rate, err := uc.resolver.Resolve(ctx, input.Currency, tenant.BaseCurrency, input.ManualRate)
	if err != nil {
		return nil, err
	}

	periodDays := input.PeriodDays
	if periodDays == 0 {
		periodDays = DefaultInstallmentPeriodDays
	}

	now := time.Now().UTC()

	plan := &domain.InstallmentPlan{
		ID:                uc.idGen.Generate(),
		TenantID:          tenant.ID,
		SaleID:            sale.ID,
		TotalAmount:       input.TotalAmount,
		DownPayment:       input.DownPayment,
		InstallmentCount:  input.InstallmentCount,
		InstallmentAmount: input.InstallmentAmount,
		Currency:          domain.NormalizeCurrency(input.Currency),
		FXRateToBase:      rate,
		PeriodDays:        periodDays,
		StartDate:         input.StartDate,
		Status:            domain.PlanStatusActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if err := uc.planRepo.Create(txCtx, tx, plan); err != nil {
		return nil, err
	}

	if uc.auditRepo != nil {
		auditLog := &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			TenantID:     tenant.ID,
			Action:       string(domain.AuditActionPlanCreate),
			ResourceType: "installment_plan",
			ResourceID:   plan.ID,
			AfterState:   domain.MarshalState(plan),
			Status:       string(domain.AuditStatusSuccess),
			CreatedAt:    now,
		}
		if err := uc.auditRepo.CreateTx(txCtx, tx, auditLog); err != nil {
			return nil, err
		}
		countAudit(uc.metrics, auditLog.Action)
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.PlansCreated.Inc()
	}

	return plan, nil
}

// RecordPaymentInput represents input for recording a payment.
type RecordPaymentInput struct {
	TenantID          string
	PlanID            string
	Type              domain.PaymentType
	InstallmentNumber *int
	Amount            decimal.Decimal
	Currency          string
	ManualRate        *decimal.Decimal
	PaymentDate       time.Time
	Notes             string
}

// RecordPaymentResult carries the appended payment together with the
// recomputed plan status.
type RecordPaymentResult struct {
	Payment *domain.InstallmentPayment
	Status  domain.InstallmentStatus
}

// RecordPayment appends a payment to the plan's ledger under a per-plan lock,
// recomputes the remaining balance and auto-completes the plan when it
// reaches zero. A second down payment is soft-accepted and flagged as
// anomalous rather than rejected.
func (uc *InstallmentUseCase) RecordPayment(ctx context.Context, input RecordPaymentInput) (*RecordPaymentResult, error) {
	start := time.Now()

	if err := domain.ValidateFactAmount(input.Amount); err != nil {
		return nil, err
	}

	if err := domain.ValidateNotes(input.Notes); err != nil {
		return nil, err
	}

	tenant, err := uc.tenantRepo.GetByID(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}

	rate, err := uc.resolver.Resolve(ctx, input.Currency, tenant.BaseCurrency, input.ManualRate)
	if err != nil {
		return nil, err
	}

	fact, err := domain.NewMonetaryFact(input.Amount, input.Currency, rate)
	if err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// Per-plan lock: two concurrent writers must not both observe a stale
	// remaining balance and double-complete the plan.
	plan, err := uc.planRepo.GetByIDForUpdate(txCtx, tx, input.TenantID, input.PlanID)
	if err != nil {
		return nil, err
	}

	if plan.Status != domain.PlanStatusActive {
		return nil, fmt.Errorf("%w: status %s", domain.ErrPlanNotActive, plan.Status)
	}

	// Prior writers have committed, so a plain read under the lock sees the
	// complete ledger.
	payments, err := uc.paymentRepo.ListByPlan(txCtx, input.TenantID, input.PlanID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	payment := &domain.InstallmentPayment{
		ID:                uc.idGen.Generate(),
		TenantID:          tenant.ID,
		PlanID:            plan.ID,
		Type:              input.Type,
		InstallmentNumber: input.InstallmentNumber,
		Fact:              fact,
		PaymentDate:       input.PaymentDate,
		Notes:             input.Notes,
		CreatedAt:         now,
	}

	if err := payment.Validate(plan); err != nil {
		return nil, err
	}

	if input.Type == domain.PaymentTypeDownPayment && hasDownPayment(payments) {
		payment.Anomalous = true

		uc.logger.Warn().
			Str("plan_id", plan.ID).
			Str("payment_id", payment.ID).
			Msg("additional down payment recorded on plan")

		if uc.metrics != nil {
			uc.metrics.PaymentAnomalies.Inc()
		}
	}

	if err := uc.paymentRepo.Create(txCtx, tx, payment); err != nil {
		return nil, err
	}

	status := domain.ComputeInstallmentStatus(plan, append(payments, payment), now, tenant.BaseCurrency)

	completed := status.Status == domain.PlanStatusCompleted
	if completed {
		if err := uc.planRepo.UpdateStatus(txCtx, tx, plan.ID, domain.PlanStatusCompleted, now); err != nil {
			return nil, err
		}
	}

	if uc.auditRepo != nil {
		auditLog := &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			TenantID:     tenant.ID,
			Action:       string(domain.AuditActionPaymentRecord),
			ResourceType: "installment_payment",
			ResourceID:   payment.ID,
			AfterState:   domain.MarshalState(payment),
			Status:       string(domain.AuditStatusSuccess),
			CreatedAt:    now,
		}
		if err := uc.auditRepo.CreateTx(txCtx, tx, auditLog); err != nil {
			return nil, err
		}
		countAudit(uc.metrics, auditLog.Action)
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.PaymentsRecorded.Inc()
		uc.metrics.PaymentDuration.Observe(time.Since(start).Seconds())
		if completed {
			uc.metrics.PlansCompleted.Inc()
		}
	}

	return &RecordPaymentResult{Payment: payment, Status: status}, nil
}

// CancelPlan transitions an active plan to cancelled. Terminal states are
// never left.
func (uc *InstallmentUseCase) CancelPlan(ctx context.Context, tenantID, planID string) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	plan, err := uc.planRepo.GetByIDForUpdate(txCtx, tx, tenantID, planID)
	if err != nil {
		return err
	}

	if plan.Status != domain.PlanStatusActive {
		return fmt.Errorf("%w: status %s", domain.ErrPlanNotActive, plan.Status)
	}

	now := time.Now().UTC()

	if err := uc.planRepo.UpdateStatus(txCtx, tx, plan.ID, domain.PlanStatusCancelled, now); err != nil {
		return err
	}

	if uc.auditRepo != nil {
		auditLog := &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			TenantID:     tenantID,
			Action:       string(domain.AuditActionPlanCancel),
			ResourceType: "installment_plan",
			ResourceID:   plan.ID,
			BeforeState:  domain.MarshalState(plan),
			Status:       string(domain.AuditStatusSuccess),
			CreatedAt:    now,
		}
		if err := uc.auditRepo.CreateTx(txCtx, tx, auditLog); err != nil {
			return err
		}
		countAudit(uc.metrics, auditLog.Action)
	}

	if err := tx.Commit(txCtx); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.PlansCancelled.Inc()
	}

	return nil
}

// GetStatus computes the repayment state of a plan as of now.
func (uc *InstallmentUseCase) GetStatus(ctx context.Context, tenantID, planID string) (*domain.InstallmentPlan, domain.InstallmentStatus, error) {
	tenant, err := uc.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, domain.InstallmentStatus{}, err
	}

	plan, err := uc.planRepo.GetByID(ctx, tenantID, planID)
	if err != nil {
		return nil, domain.InstallmentStatus{}, err
	}

	payments, err := uc.paymentRepo.ListByPlan(ctx, tenantID, planID)
	if err != nil {
		return nil, domain.InstallmentStatus{}, err
	}

	status := domain.ComputeInstallmentStatus(plan, payments, time.Now().UTC(), tenant.BaseCurrency)

	return plan, status, nil
}

// ListPayments returns a plan's payment ledger in recorded order.
func (uc *InstallmentUseCase) ListPayments(ctx context.Context, tenantID, planID string) ([]*domain.InstallmentPayment, error) {
	if _, err := uc.planRepo.GetByID(ctx, tenantID, planID); err != nil {
		return nil, err
	}

	return uc.paymentRepo.ListByPlan(ctx, tenantID, planID)
}

func hasDownPayment(payments []*domain.InstallmentPayment) bool {
	for _, pm := range payments {
		if pm.Type == domain.PaymentTypeDownPayment {
			return true
		}
	}

	return false
}
