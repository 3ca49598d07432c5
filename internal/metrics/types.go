package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	RefreshRuns        prometheus.Counter
	RefreshFailures    prometheus.Counter
	CacheHits          prometheus.Counter
	CacheMisses        prometheus.Counter
	RefreshDuration    prometheus.Histogram
	StartupTimeSeconds prometheus.Gauge
}

// Counter keys for the durable store.
const (
	KeyRefreshRuns     = "refresh_runs"
	KeyRefreshFailures = "refresh_failures"
	KeyCacheHits       = "cache_hits"
	KeyCacheMisses     = "cache_misses"
)
