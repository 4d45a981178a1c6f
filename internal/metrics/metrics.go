// Package metrics - Prometheus metrics for the attribute engine
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AttributeComputeDuration tracks attrmap.Map.Get compute duration,
	// from cache miss to final capped value.
	AttributeComputeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "attribute_compute_duration_seconds",
		Help:    "Duration of a single attribute recompute (cache miss path)",
		Buckets: prometheus.ExponentialBuckets(0.00005, 2, 12),
	})

	// AttributeCacheHitsTotal counts attribute reads served from cache.
	AttributeCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attribute_cache_hits_total",
		Help: "Total attribute reads served from a holder's cached value",
	})

	// AttributeCacheMissesTotal counts attribute reads that recomputed.
	AttributeCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attribute_cache_misses_total",
		Help: "Total attribute reads that recomputed from affectors",
	})

	// LinkTrackerEdgesTotal tracks the current count of live modifier
	// edges held by a fit's link tracker.
	LinkTrackerEdgesTotal = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "link_tracker_edges",
		Help: "Current number of live modifier edges in a fit's link tracker",
	}, []string{"fit_id"})

	// InvalidationCascadeSize tracks how many attribute keys one
	// link-tracker rebuild evicts, summed over all of that rebuild's
	// dependency.Graph eviction cascades.
	InvalidationCascadeSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "invalidation_cascade_size",
		Help:    "Number of attribute keys evicted by one link-tracker rebuild",
		Buckets: prometheus.LinearBuckets(0, 2, 10),
	})

	// RestrictionViolationsTotal counts violations returned by
	// restrictions.ValidateAll, labeled by restriction name.
	RestrictionViolationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "restriction_violations_total",
		Help: "Total restriction violations found, by restriction",
	}, []string{"restriction"})

	// APIRequestsTotal is a request counter labeled by route and status
	// code. It is registered, but no handler or middleware increments it.
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "api_requests_total",
		Help: "Total API requests by route and status code",
	}, []string{"route", "status_code"})

	// APIRateLimitRejectionsTotal counts requests dropped by the
	// recompute route's rate limiter.
	APIRateLimitRejectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "api_rate_limit_rejections_total",
		Help: "Total requests rejected by the recompute rate limiter",
	})

	// FitsActive tracks the number of fits currently held in memory.
	FitsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fits_active",
		Help: "Current number of fits held in memory",
	})
)
