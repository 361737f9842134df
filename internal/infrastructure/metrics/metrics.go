package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Cost ledger metrics
	CostItemsCreated prometheus.Counter
	CostItemsUpdated prometheus.Counter
	CostItemsDeleted prometheus.Counter

	// Sale metrics
	SalesCreated prometheus.Counter
	SaleAmount   prometheus.Histogram

	// Installment metrics
	PlansCreated     prometheus.Counter
	PlansCompleted   prometheus.Counter
	PlansCancelled   prometheus.Counter
	PaymentsRecorded prometheus.Counter
	PaymentAnomalies prometheus.Counter
	PaymentDuration  prometheus.Histogram

	// Report metrics
	ReportsComputed prometheus.Counter

	// FX metrics
	RateLookups *prometheus.CounterVec
	RateErrors  prometheus.Counter

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		CostItemsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dealerledger_cost_items_created_total",
			Help: "Total number of cost items created",
		}),
		CostItemsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dealerledger_cost_items_updated_total",
			Help: "Total number of cost items updated",
		}),
		CostItemsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dealerledger_cost_items_deleted_total",
			Help: "Total number of cost items deleted",
		}),
		SalesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dealerledger_sales_created_total",
			Help: "Total number of sale records created",
		}),
		SaleAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "dealerledger_sale_amount_base",
			Help:    "Sale amounts in tenant base currency",
			Buckets: []float64{1000, 10000, 100000, 500000, 1000000, 5000000},
		}),
		PlansCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dealerledger_installment_plans_created_total",
			Help: "Total number of installment plans created",
		}),
		PlansCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dealerledger_installment_plans_completed_total",
			Help: "Total number of installment plans auto-completed",
		}),
		PlansCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dealerledger_installment_plans_cancelled_total",
			Help: "Total number of installment plans cancelled",
		}),
		PaymentsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dealerledger_payments_recorded_total",
			Help: "Total number of installment payments recorded",
		}),
		PaymentAnomalies: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dealerledger_payment_anomalies_total",
			Help: "Total number of soft-accepted anomalous payments",
		}),
		PaymentDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "dealerledger_payment_duration_seconds",
			Help:    "Duration of payment recording operations",
			Buckets: prometheus.DefBuckets,
		}),
		ReportsComputed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dealerledger_reports_computed_total",
			Help: "Total number of profitability reports computed",
		}),
		RateLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dealerledger_rate_lookups_total",
				Help: "Total number of exchange rate resolutions by source",
			},
			[]string{"source"},
		),
		RateErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dealerledger_rate_errors_total",
			Help: "Total number of failed exchange rate resolutions",
		}),
		AuditLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dealerledger_audit_logs_created_total",
				Help: "Total number of audit log entries by action",
			},
			[]string{"action"},
		),
	}
}

// Rate lookup sources.
const (
	RateSourceManual   = "manual"
	RateSourceProvider = "provider"
	RateSourceIdentity = "identity"
)
