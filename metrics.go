package neighborhood

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	neighborBuildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "neighborhood_neighbor_build_duration_seconds",
		Help:    "Time to build a neighbor relation, by spatial index",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16), // 0.1ms to ~3s
	}, []string{"index"})

	bootstrapRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "neighborhood_bootstrap_runs_total",
		Help: "Permutation tests run, by reduction method",
	}, []string{"method"})

	bootstrapDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "neighborhood_bootstrap_duration_seconds",
		Help:    "Wall time of a permutation test, by reduction method",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 16), // 1ms to ~65s
	}, []string{"method"})

	bootstrapTrials = promauto.NewCounter(prometheus.CounterOpts{
		Name: "neighborhood_bootstrap_trials_total",
		Help: "Label permutations evaluated across all permutation tests",
	})

	zeroVariancePairs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "neighborhood_zero_variance_pairs_total",
		Help: "Combinations whose null distribution had no spread (z-score reported as 0)",
	})
)

// methodBoolean labels boolean co-occurrence runs in the method dimension.
const methodBoolean = "boolean"
