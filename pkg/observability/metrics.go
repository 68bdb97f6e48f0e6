package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Event outcome labels.
const (
	ResultHandled   = "handled"
	ResultUnhandled = "unhandled"
	ResultError     = "error"
)

// Metrics bundles the engine's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	Events      *prometheus.CounterVec
	Transitions *prometheus.CounterVec
	ChainDepth  prometheus.Histogram
}

// New creates and registers the engine collectors on a private registry,
// together with the standard Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scenekit",
			Name:      "events_total",
			Help:      "Events processed, by outcome.",
		}, []string{"result"}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scenekit",
			Name:      "transitions_total",
			Help:      "Scene entries, by target scene full name.",
		}, []string{"scene"}),
		ChainDepth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "scenekit",
			Name:      "transition_chain_depth",
			Help:      "Scenes entered per event (transitional chains).",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 32},
		}),
	}

	reg.MustRegister(
		m.Events,
		m.Transitions,
		m.ChainDepth,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveEvent records the outcome of one processed event.
func (m *Metrics) ObserveEvent(result string, chainDepth int) {
	if m == nil {
		return
	}
	m.Events.WithLabelValues(result).Inc()
	if chainDepth > 0 {
		m.ChainDepth.Observe(float64(chainDepth))
	}
}

// ObserveTransition records one scene entry.
func (m *Metrics) ObserveTransition(sceneFullName string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(sceneFullName).Inc()
}

// Handler exposes the collectors for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
