package cache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// dateKey is the map key layout; ISO dates compare correctly as strings.
const dateKey = "2006-01-02"

// Daily caches one value per calendar date. Writes prune every entry
// keyed earlier than today.
type Daily[T any] struct {
	name string

	mu      sync.Mutex
	entries map[string]T
	sf      singleflight.Group

	// now is injectable for tests.
	now func() time.Time
}

// NewDaily creates a named per-day cache. The name labels its metrics.
func NewDaily[T any](name string) *Daily[T] {
	return &Daily[T]{
		name:    name,
		entries: make(map[string]T),
		now:     time.Now,
	}
}

// GetOrCompute returns the cached value for date, or invokes compute,
// stores the result, and prunes past-dated entries. Concurrent callers
// for the same date share a single compute call. The lock is never held
// across compute.
func (c *Daily[T]) GetOrCompute(date time.Time, compute func() (T, error)) (T, error) {
	key := date.Format(dateKey)

	c.mu.Lock()
	if v, ok := c.entries[key]; ok {
		c.mu.Unlock()
		cacheHits.WithLabelValues(c.name).Inc()
		return v, nil
	}
	c.mu.Unlock()
	cacheMisses.WithLabelValues(c.name).Inc()

	v, err, _ := c.sf.Do(key, func() (any, error) {
		// A concurrent flight may have stored the value between our miss
		// and this call.
		c.mu.Lock()
		if v, ok := c.entries[key]; ok {
			c.mu.Unlock()
			return v, nil
		}
		c.mu.Unlock()

		val, err := compute()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = val
		c.pruneLocked()
		cacheEntries.WithLabelValues(c.name).Set(float64(len(c.entries)))
		c.mu.Unlock()

		return val, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Len returns the number of live entries.
func (c *Daily[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// pruneLocked drops entries keyed earlier than today. Failed computes
// never reach the map, so only successfully computed values are pruned.
func (c *Daily[T]) pruneLocked() {
	today := c.now().Format(dateKey)
	for k := range c.entries {
		if k < today {
			delete(c.entries, k)
		}
	}
}
