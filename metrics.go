package graphkit

import "github.com/prometheus/client_golang/prometheus"

// metrics holds the graph's prometheus instrumentation (SPEC_FULL.md §1).
// A nil *metrics is valid and every method is a no-op, so instrumentation
// is opt-in: callers call Graph.SetMetricsRegistry only when they want it.
type metrics struct {
	frameDuration    prometheus.Histogram
	dirtyComponents  prometheus.Gauge
	hitTestLatency   prometheus.Histogram
	selectionChanges prometheus.Counter
}

func newMetrics(reg *prometheus.Registry) *metrics {
	if reg == nil {
		return nil
	}
	m := &metrics{
		frameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "graphkit_frame_duration_seconds",
			Help: "Duration of one scheduler RunFrame call.",
		}),
		dirtyComponents: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "graphkit_dirty_components",
			Help: "Number of component instances flagged needsUpdate at the start of the last update phase.",
		}),
		hitTestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "graphkit_hittest_query_seconds",
			Help: "Latency of a TestPoint hit-test query.",
		}),
		selectionChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "graphkit_selection_changes_total",
			Help: "Number of selection updates that changed the selection set.",
		}),
	}
	reg.MustRegister(m.frameDuration, m.dirtyComponents, m.hitTestLatency, m.selectionChanges)
	return m
}

func (m *metrics) observeFrame(seconds float64) {
	if m == nil {
		return
	}
	m.frameDuration.Observe(seconds)
}

func (m *metrics) setDirtyComponents(n int) {
	if m == nil {
		return
	}
	m.dirtyComponents.Set(float64(n))
}

func (m *metrics) observeHitTest(seconds float64) {
	if m == nil {
		return
	}
	m.hitTestLatency.Observe(seconds)
}

func (m *metrics) incSelectionChange() {
	if m == nil {
		return
	}
	m.selectionChanges.Inc()
}
