package observability

import (
	"credit-account/internal/account"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	HTTPRequestsTotal      *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec
	AccountOperationsTotal *prometheus.CounterVec
	AccountBalance         prometheus.Gauge
	AccountMaxCredit       prometheus.Gauge
	AccountBlocked         prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		AccountOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "account_operations_total",
				Help: "Total number of account operations by outcome",
			},
			[]string{"operation", "result"},
		),
		AccountBalance: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "account_balance",
				Help: "Current account balance",
			},
		),
		AccountMaxCredit: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "account_max_credit",
				Help: "Current account credit limit",
			},
		),
		AccountBlocked: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "account_blocked",
				Help: "1 while the account is blocked",
			},
		),
	}
}

// Result is the outcome label for an operation.
func Result(applied bool) string {
	if applied {
		return "applied"
	}
	return "rejected"
}

// RecordOperation counts op and refreshes the state gauges.
func (m *Metrics) RecordOperation(op account.Op, applied bool, state account.State) {
	m.AccountOperationsTotal.WithLabelValues(string(op), Result(applied)).Inc()
	m.SetState(state)
}

func (m *Metrics) SetState(state account.State) {
	m.AccountBalance.Set(float64(state.Balance))
	m.AccountMaxCredit.Set(float64(state.MaxCredit))
	if state.Blocked {
		m.AccountBlocked.Set(1)
	} else {
		m.AccountBlocked.Set(0)
	}
}
