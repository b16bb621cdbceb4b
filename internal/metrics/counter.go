package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value atomic.Uint64
}

func (c *Counter) Inc() {
	c.value.Add(1)
}

func (c *Counter) Load() uint64 {
	return c.value.Load()
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// CatalogStats counts how the catalog snapshot was served.
type CatalogStats struct {
	CacheHits      Counter
	CacheMisses    Counter
	SourceLoads    Counter
	SourceFailures Counter
	FilterCalls    Counter
}

// Snapshot returns a point-in-time copy suitable for JSON output.
func (s *CatalogStats) Snapshot() map[string]uint64 {
	return map[string]uint64{
		"cache_hits":      s.CacheHits.Load(),
		"cache_misses":    s.CacheMisses.Load(),
		"source_loads":    s.SourceLoads.Load(),
		"source_failures": s.SourceFailures.Load(),
		"filter_calls":    s.FilterCalls.Load(),
	}
}
