package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter_ConcurrentInc(t *testing.T) {
	var c Counter
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(50), c.Load())
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(time.Millisecond)
	assert.GreaterOrEqual(t, timer.Duration(), time.Millisecond)
}

func TestCatalogStats_Snapshot(t *testing.T) {
	var s CatalogStats
	s.CacheHits.Inc()
	s.FilterCalls.Inc()
	s.FilterCalls.Inc()

	snap := s.Snapshot()
	assert.Equal(t, uint64(1), snap["cache_hits"])
	assert.Equal(t, uint64(0), snap["cache_misses"])
	assert.Equal(t, uint64(2), snap["filter_calls"])
}
