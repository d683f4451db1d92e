package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shopfloor_sim"

const (
	OutcomeOK          = "ok"
	OutcomeParseError  = "parse_error"
	OutcomeDomainError = "domain_error"
	OutcomeInvalid     = "invalid"
	OutcomeStoreError  = "store_error"
)

type Metrics struct {
	registry *prometheus.Registry

	Runs            *prometheus.CounterVec
	OrdersSimulated prometheus.Counter
	UnitsProduced   prometheus.Counter
	RunDuration     prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Simulation runs by outcome.",
		}, []string{"outcome"}),
		OrdersSimulated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_simulated_total",
			Help:      "Orders completed across all successful runs.",
		}),
		UnitsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "units_produced_total",
			Help:      "Production units across all successful runs.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time spent simulating one run.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}

	m.registry.MustRegister(
		m.Runs,
		m.OrdersSimulated,
		m.UnitsProduced,
		m.RunDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) ObserveRun(outcome string, started time.Time) {
	m.Runs.WithLabelValues(outcome).Inc()
	m.RunDuration.Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObserveCompleted(orders, units int) {
	m.OrdersSimulated.Add(float64(orders))
	m.UnitsProduced.Add(float64(units))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
