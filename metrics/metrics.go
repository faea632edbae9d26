package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the ledger's Prometheus instruments on a private registry.
// A nil *Collector is valid and records nothing.
type Collector struct {
	registry       *prometheus.Registry
	operations     *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	conflictRetry  *prometheus.CounterVec
	amountMoved    *prometheus.CounterVec
	publishFailure prometheus.Counter
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_operations_total",
			Help: "Ledger operations by operation and outcome",
		}, []string{"operation", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ledger_operation_duration_seconds",
			Help:    "Time taken by a ledger operation including internal retries",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		conflictRetry: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_conflict_retries_total",
			Help: "Units of work retried after a storage conflict",
		}, []string{"operation"}),
		amountMoved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_amount_moved_total",
			Help: "Sum of completed transaction amounts by type and currency",
		}, []string{"type", "currency"}),
		publishFailure: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_event_publish_failures_total",
			Help: "Transaction events that could not be handed to the broker",
		}),
	}
}

func (c *Collector) ObserveOperation(operation, outcome string, took time.Duration) {
	if c == nil {
		return
	}
	c.operations.WithLabelValues(operation, outcome).Inc()
	c.duration.WithLabelValues(operation).Observe(took.Seconds())
}

func (c *Collector) ConflictRetry(operation string) {
	if c == nil {
		return
	}
	c.conflictRetry.WithLabelValues(operation).Inc()
}

func (c *Collector) AmountMoved(txType, currency string, amount float64) {
	if c == nil {
		return
	}
	c.amountMoved.WithLabelValues(txType, currency).Add(amount)
}

func (c *Collector) PublishFailed() {
	if c == nil {
		return
	}
	c.publishFailure.Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
