package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncRefreshRuns()
	IncRefreshFailures()
	IncCacheHits()
	IncCacheMisses()
	ObserveRefreshDuration(duration float64)
	SetStartupTime(duration float64)
}

// MetricsStore defines the interface for durable operational counters. Unlike
// the Prometheus metrics, these survive restarts.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
