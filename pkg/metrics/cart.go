package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records pricing-engine activity.
type CartMetrics struct {
	recomputeDuration *prometheus.HistogramVec
	mutations         *prometheus.CounterVec
	cacheHits         *prometheus.CounterVec
	cacheMisses       *prometheus.CounterVec
	snapshotFailures  prometheus.Counter
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	recomputeDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cart_recompute_duration_seconds",
		Help:    "Duration of full-cart price recomputations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"store"})
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations by operation.",
	}, []string{"operation"})
	cacheHits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_cache_hits_total",
		Help: "Pricing cache hits by resource kind.",
	}, []string{"kind"})
	cacheMisses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_cache_misses_total",
		Help: "Pricing cache misses by resource kind.",
	}, []string{"kind"})
	snapshotFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_snapshot_failures_total",
		Help: "Failed cart snapshot writes.",
	})
	reg.MustRegister(recomputeDuration, mutations, cacheHits, cacheMisses, snapshotFailures)
	return &CartMetrics{
		recomputeDuration: recomputeDuration,
		mutations:         mutations,
		cacheHits:         cacheHits,
		cacheMisses:       cacheMisses,
		snapshotFailures:  snapshotFailures,
	}
}

// ObserveRecompute records the duration of one full recomputation pass.
func (c *CartMetrics) ObserveRecompute(storeID string, duration time.Duration) {
	if c == nil || c.recomputeDuration == nil {
		return
	}
	c.recomputeDuration.WithLabelValues(normalizeLabel(storeID)).Observe(duration.Seconds())
}

// IncMutation increments the mutation counter for the named operation.
func (c *CartMetrics) IncMutation(operation string) {
	if c == nil || c.mutations == nil {
		return
	}
	c.mutations.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncCacheHit increments the pricing cache hit counter for the resource kind.
func (c *CartMetrics) IncCacheHit(kind string) {
	if c == nil || c.cacheHits == nil {
		return
	}
	c.cacheHits.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncCacheMiss increments the pricing cache miss counter for the resource kind.
func (c *CartMetrics) IncCacheMiss(kind string) {
	if c == nil || c.cacheMisses == nil {
		return
	}
	c.cacheMisses.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncSnapshotFailure counts a failed snapshot persistence attempt.
func (c *CartMetrics) IncSnapshotFailure() {
	if c == nil || c.snapshotFailures == nil {
		return
	}
	c.snapshotFailures.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
