// Package prom exports linkedmap.Metrics signals to Prometheus.
package prom

import (
	"github.com/IvanBrykalov/queuemap/linkedmap"
	"github.com/prometheus/client_golang/prometheus"
)

// Adapter implements linkedmap.Metrics and exports Prometheus counters/gauges.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
//
// Several maps (e.g. one per shard) may share a registry if each Adapter is
// given distinct constLabels.
type Adapter struct {
	hits    prometheus.Counter
	misses  prometheus.Counter
	inserts prometheus.Counter
	evicts  *prometheus.CounterVec
	size    prometheus.Gauge
}

// New constructs a Prometheus metrics adapter.
//   - reg:          registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        name,
			Help:        help,
			ConstLabels: constLabels,
		})
	}
	a := &Adapter{
		hits:    counter("hits_total", "Lookups that found the key"),
		misses:  counter("misses_total", "Lookups that did not find the key"),
		inserts: counter("inserts_total", "Entries appended to the map"),
		evicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "evictions_total",
				Help:        "Entries removed by the map, by reason",
				ConstLabels: constLabels,
			},
			[]string{"reason"},
		),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "size_entries",
			Help:        "Number of resident entries",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.hits, a.misses, a.inserts, a.evicts, a.size)
	return a
}

// Hit increments the hit counter.
func (a *Adapter) Hit() { a.hits.Inc() }

// Miss increments the miss counter.
func (a *Adapter) Miss() { a.misses.Inc() }

// Insert increments the insert counter.
func (a *Adapter) Insert() { a.inserts.Inc() }

// Evict increments the eviction counter with a reason label.
func (a *Adapter) Evict(r linkedmap.EvictReason) {
	a.evicts.WithLabelValues(r.String()).Inc()
}

// Size updates the resident entries gauge.
func (a *Adapter) Size(entries int) { a.size.Set(float64(entries)) }

// Compile-time check: ensure Adapter implements linkedmap.Metrics.
var _ linkedmap.Metrics = (*Adapter)(nil)
