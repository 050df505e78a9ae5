package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters for the normalizer.
type Metrics struct {
	transactionsProcessed prometheus.Counter
	transactionsFailed    prometheus.Counter
	activitiesEmitted     *prometheus.CounterVec
	eventsSkipped         prometheus.Counter
}

var (
	once    sync.Once
	metrics *Metrics
)

// Init initializes global metrics (idempotent).
func Init() *Metrics {
	once.Do(func() {
		metrics = New(prometheus.DefaultRegisterer)
	})
	return metrics
}

// New registers a fresh set of counters with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		transactionsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "token_indexer_transactions_processed_total",
			Help: "Total number of transactions normalized",
		}),
		transactionsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "token_indexer_transactions_failed_total",
			Help: "Total number of transactions rejected as malformed",
		}),
		activitiesEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "token_indexer_activities_emitted_total",
			Help: "Total number of token activities emitted, by transfer type",
		}, []string{"transfer_type"}),
		eventsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "token_indexer_events_skipped_total",
			Help: "Total number of events that are not token events",
		}),
	}
	reg.MustRegister(
		m.transactionsProcessed,
		m.transactionsFailed,
		m.activitiesEmitted,
		m.eventsSkipped,
	)
	return m
}

// TransactionProcessed increments the processed transactions counter.
func (m *Metrics) TransactionProcessed() {
	if m != nil {
		m.transactionsProcessed.Inc()
	}
}

// TransactionFailed increments the failed transactions counter.
func (m *Metrics) TransactionFailed() {
	if m != nil {
		m.transactionsFailed.Inc()
	}
}

// ActivityEmitted increments the activity counter for a transfer type.
func (m *Metrics) ActivityEmitted(transferType string) {
	if m != nil {
		m.activitiesEmitted.WithLabelValues(transferType).Inc()
	}
}

// EventsSkipped adds n to the skipped events counter.
func (m *Metrics) EventsSkipped(n int) {
	if m != nil && n > 0 {
		m.eventsSkipped.Add(float64(n))
	}
}

// Handler returns an HTTP handler for /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
