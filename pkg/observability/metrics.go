package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the Prometheus collectors for the matching engine.
type Metrics struct {
	Searches        *prometheus.CounterVec
	Matches         *prometheus.CounterVec
	BuildDuration   *prometheus.HistogramVec
	AutomatonStates *prometheus.GaugeVec
}

// NewMetrics creates the collector set. Collectors are not registered;
// call Register with the target registry.
func NewMetrics() *Metrics {
	return &Metrics{
		Searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "espalier_searches_total",
				Help: "Total number of searches executed",
			},
			[]string{"algorithm", "mode"},
		),
		Matches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "espalier_matches_total",
				Help: "Total number of matches reported",
			},
			[]string{"algorithm"},
		),
		BuildDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "espalier_build_duration_seconds",
				Help: "Duration of automaton builds",
			},
			[]string{"algorithm"},
		),
		AutomatonStates: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "espalier_automaton_states",
				Help: "Number of states in the most recently built automaton",
			},
			[]string{"algorithm"},
		),
	}
}

// Register registers all collectors with the given registerer.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.Searches, m.Matches, m.BuildDuration, m.AutomatonStates} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveBuild records a completed build. Safe to call on a nil receiver.
func (m *Metrics) ObserveBuild(algorithm string, states int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.BuildDuration.WithLabelValues(algorithm).Observe(elapsed.Seconds())
	m.AutomatonStates.WithLabelValues(algorithm).Set(float64(states))
}

// ObserveSearch records a completed search and its match count.
// Safe to call on a nil receiver.
func (m *Metrics) ObserveSearch(algorithm, mode string, matches int) {
	if m == nil {
		return
	}
	m.Searches.WithLabelValues(algorithm, mode).Inc()
	m.Matches.WithLabelValues(algorithm).Add(float64(matches))
}
