// Package observability provides Prometheus instrumentation for the
// Canvass engine. A Metrics value is optional everywhere it is accepted;
// a nil *Metrics records nothing.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Navigation and submission outcomes used as label values.
const (
	OutcomeOK       = "ok"
	OutcomeBlocked  = "blocked"  // required questions missing
	OutcomeRejected = "rejected" // out-of-bounds step index
	OutcomeError    = "error"
)

// Metrics holds the engine's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	responsesSaved prometheus.Counter
	navigations    *prometheus.CounterVec
	submissions    *prometheus.CounterVec
	loads          *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		responsesSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "canvass",
			Name:      "responses_saved_total",
			Help:      "Number of responses recorded by the engine.",
		}),
		navigations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "canvass",
			Name:      "navigations_total",
			Help:      "Step navigation attempts, by outcome.",
		}, []string{"outcome"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "canvass",
			Name:      "submissions_total",
			Help:      "Survey submission attempts, by outcome.",
		}, []string{"outcome"}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "canvass",
			Name:      "definition_loads_total",
			Help:      "Survey definition loads, by outcome.",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(m.responsesSaved, m.navigations, m.submissions, m.loads)
	return m
}

// Handler exposes the registry for a /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ResponseSaved records one saved response.
func (m *Metrics) ResponseSaved() {
	if m == nil {
		return
	}
	m.responsesSaved.Inc()
}

// Navigation records a navigation attempt.
func (m *Metrics) Navigation(outcome string) {
	if m == nil {
		return
	}
	m.navigations.WithLabelValues(outcome).Inc()
}

// Submission records a submission attempt.
func (m *Metrics) Submission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

// DefinitionLoad records a definition load.
func (m *Metrics) DefinitionLoad(outcome string) {
	if m == nil {
		return
	}
	m.loads.WithLabelValues(outcome).Inc()
}
