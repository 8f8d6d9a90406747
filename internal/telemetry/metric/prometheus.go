package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "respkv"

// Registry holds all application metrics on a private prometheus registry.
type Registry struct {
	reg *prometheus.Registry

	// Command metrics
	CommandsTotal   *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec
	ExpiredReads    prometheus.Counter

	// Connection metrics
	ConnectionsActive prometheus.Gauge
	ConnectionsTotal  prometheus.Counter
	DecodeErrors      *prometheus.CounterVec
}

// NewRegistry creates the registry with Go runtime and process collectors
// already registered.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),

		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands interpreted, by command name and result",
		}, []string{"command", "result"}),

		CommandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Time spent interpreting a command",
			Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
		}, []string{"command"}),

		ExpiredReads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expired_reads_total",
			Help:      "GET requests that found and removed an expired key",
		}),

		ConnectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections_active",
			Help:      "Client connections currently open",
		}),

		ConnectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_total",
			Help:      "Client connections accepted",
		}),

		DecodeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decode_errors_total",
			Help:      "Frames rejected by the decoder, by error kind",
		}, []string{"kind"}),
	}

	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.CommandsTotal,
		r.CommandDuration,
		r.ExpiredReads,
		r.ConnectionsActive,
		r.ConnectionsTotal,
		r.DecodeErrors,
	)

	return r
}

// RegisterStore exposes the size of store as the respkv_keys gauge.
func (r *Registry) RegisterStore(store KeyCounter) {
	r.reg.MustRegister(NewCollector(store))
}

// CommandDone records one interpreted command.
func (r *Registry) CommandDone(name, result string, elapsed time.Duration) {
	r.CommandsTotal.WithLabelValues(name, result).Inc()
	r.CommandDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	if result == "expired" {
		r.ExpiredReads.Inc()
	}
}

// ConnOpened records an accepted connection.
func (r *Registry) ConnOpened() {
	r.ConnectionsTotal.Inc()
	r.ConnectionsActive.Inc()
}

// ConnClosed records a connection that has ended.
func (r *Registry) ConnClosed() {
	r.ConnectionsActive.Dec()
}

// DecodeError records a frame the decoder rejected.
func (r *Registry) DecodeError(kind string) {
	r.DecodeErrors.WithLabelValues(kind).Inc()
}

// Gatherer returns the underlying registry for scraping or tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{
		Registry:      r.reg,
		ErrorHandling: promhttp.ContinueOnError,
	})
}
