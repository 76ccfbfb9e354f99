package cache

const (
	// MetricHit is a name of a metric to count cache hits.
	MetricHit = "cache_hit"

	// MetricMiss is a name of a metric to count cache misses.
	MetricMiss = "cache_miss"

	// MetricWrite is a name of a metric to count cache writes.
	MetricWrite = "cache_write"

	// MetricEvict is a name of a metric to count entries evicted for exceeding capacity.
	MetricEvict = "cache_evict"

	// MetricExpired is a name of a metric to count entries removed for exceeding time to live.
	MetricExpired = "cache_expired"

	// MetricItems is a name of a gauge with count of cached entries after purge.
	MetricItems = "cache_items"
)
