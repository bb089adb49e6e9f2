// Package metrics holds the Prometheus collectors of the quote pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	cacheLookups     *prometheus.CounterVec
	providerResults  *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quotes",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Quote cache lookups by result (hit, miss, error).",
		}, []string{"result"}),
		providerResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quotes",
			Subsystem: "provider",
			Name:      "results_total",
			Help:      "Provider lookups by kind and source (live, static_fallback, not_found).",
		}, []string{"kind", "source"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "quotes",
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Upstream API call latency by function and outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"function", "outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.cacheLookups, m.providerResults, m.upstreamDuration)
	}
	return m
}

func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) ProviderResult(kind, source string) {
	if m == nil {
		return
	}
	m.providerResults.WithLabelValues(kind, source).Inc()
}

// ObserveUpstream records the latency of one upstream call started at start.
func (m *Metrics) ObserveUpstream(function string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.upstreamDuration.WithLabelValues(function, outcome).Observe(time.Since(start).Seconds())
}
