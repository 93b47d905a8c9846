package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the business-level Prometheus metrics. HTTP-level metrics
// live in the router middleware.
type Metrics struct {
	// Record lifecycle
	ExpenseOperations *prometheus.CounterVec
	RevenueOperations *prometheus.CounterVec

	// Balance consistency
	ReconciliationRequired *prometheus.CounterVec
	ReconciliationRuns     prometheus.Counter
	BalanceDrift           *prometheus.GaugeVec
}

// New creates and registers all metrics on the default registerer.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates the metrics on a specific registerer. Tests use a fresh
// registry to avoid duplicate registration.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ExpenseOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "saldo_expense_operations_total",
				Help: "Total expense operations by type",
			},
			[]string{"operation"},
		),
		RevenueOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "saldo_revenue_operations_total",
				Help: "Total revenue operations by type",
			},
			[]string{"operation"},
		),
		ReconciliationRequired: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "saldo_reconciliation_required_total",
				Help: "Mutations whose record committed but whose balance adjustment was not applied",
			},
			[]string{"record_type", "kind"},
		),
		ReconciliationRuns: factory.NewCounter(prometheus.CounterOpts{
			Name: "saldo_reconciliation_runs_total",
			Help: "Total drift report computations",
		}),
		BalanceDrift: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "saldo_balance_drift",
				Help: "Last observed drift (stored minus recomputed) per register",
			},
			[]string{"kind"},
		),
	}
}
