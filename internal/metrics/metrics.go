// Package metrics exposes engine activity as Prometheus collectors, fed
// through dataflow hooks.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vk/attrflow/internal/dataflow"
)

// Collector aggregates per-attribute engine counters and recompute timings.
type Collector struct {
	setTotal          *prometheus.CounterVec
	invalidationTotal *prometheus.CounterVec
	cacheHitTotal     *prometheus.CounterVec
	recomputeTotal    *prometheus.CounterVec
	recomputeFailures *prometheus.CounterVec
	recomputeDuration prometheus.Histogram
}

// New creates the collectors and registers them with the given registerer.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		setTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "attrflow_set_total",
				Help: "Number of attribute assignments, by attribute.",
			},
			[]string{"attribute"},
		),
		invalidationTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "attrflow_invalidation_total",
				Help: "Number of times an attribute was marked dirty by propagation.",
			},
			[]string{"attribute"},
		),
		cacheHitTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "attrflow_cache_hit_total",
				Help: "Number of reads served from the cached value.",
			},
			[]string{"attribute"},
		),
		recomputeTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "attrflow_recompute_total",
				Help: "Number of successful updater invocations, by attribute.",
			},
			[]string{"attribute"},
		),
		recomputeFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "attrflow_recompute_failures_total",
				Help: "Number of updater invocations that returned an error.",
			},
			[]string{"attribute"},
		),
		recomputeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "attrflow_recompute_duration_seconds",
				Help:    "Time spent inside updaters.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	reg.MustRegister(
		c.setTotal,
		c.invalidationTotal,
		c.cacheHitTotal,
		c.recomputeTotal,
		c.recomputeFailures,
		c.recomputeDuration,
	)
	return c
}

// Hooks returns engine callbacks that feed the collectors. Attach them to an
// instance with dataflow.WithHooks.
func (c *Collector) Hooks() dataflow.Hooks {
	return dataflow.Hooks{
		OnSet: func(_ context.Context, event dataflow.Event) {
			c.setTotal.WithLabelValues(event.Attribute).Inc()
		},
		OnInvalidate: func(_ context.Context, event dataflow.Event) {
			c.invalidationTotal.WithLabelValues(event.Attribute).Inc()
		},
		OnCacheHit: func(_ context.Context, event dataflow.Event) {
			c.cacheHitTotal.WithLabelValues(event.Attribute).Inc()
		},
		OnRecompute: func(_ context.Context, event dataflow.Event) {
			if event.Err != nil {
				c.recomputeFailures.WithLabelValues(event.Attribute).Inc()
			} else {
				c.recomputeTotal.WithLabelValues(event.Attribute).Inc()
			}
			c.recomputeDuration.Observe(event.Duration.Seconds())
		},
	}
}
